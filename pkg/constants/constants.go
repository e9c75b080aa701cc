// Package constants provides shared constants for the business-case application.
package constants

// Cost model defaults, mirroring the recommended scenario.
const (
	// DefaultHourlyRate is the implementation hourly rate
	DefaultHourlyRate = 50.0

	// DefaultImplementationHours is the estimated implementation effort
	DefaultImplementationHours = 215.0

	// DefaultSubscriptionFee is the annual platform subscription
	DefaultSubscriptionFee = 1863.0

	// DefaultStorageFee is the annual data storage fee
	DefaultStorageFee = 1140.0

	// DefaultContingencyRate is the contingency fraction applied to the cost base
	DefaultContingencyRate = 0.15

	// DefaultComparisonCostFixed is the total cost of a custom development build
	DefaultComparisonCostFixed = 184800.0

	// DefaultComparisonCostPerUnit is the traditional support cost per student
	DefaultComparisonCostPerUnit = 500.0

	// DefaultActivePreset is the preset reported as active on start-up
	DefaultActivePreset = "recommended"
)

// DefaultPopulations is the ordered list of student populations used for the
// scale and savings tables.
var DefaultPopulations = []int{1000, 10000, 100000, 500000}

// Rate breakdown defaults
const (
	// DefaultBaseRateLabel labels the first step of the rate breakdown
	DefaultBaseRateLabel = "Base SFIA Level 3 Rate"

	// DefaultBaseRate is the market hourly rate before adjustments
	DefaultBaseRate = 70.0

	// FinalRateLabel labels the rounded last step of the rate breakdown
	FinalRateLabel = "Final Rounded Rate"
)

// Slider bounds
const (
	MinHourlyRate = 40.0
	MaxHourlyRate = 80.0

	MinImplementationHours = 80.0
	MaxImplementationHours = 300.0

	MinSubscriptionFee = 1000.0
	MaxSubscriptionFee = 5000.0

	MinContingencyRate = 0.0
	MaxContingencyRate = 0.30

	MinStorageFee = 0.0
	MaxStorageFee = 5000.0

	MinComparisonCostFixed = 50000.0
	MaxComparisonCostFixed = 300000.0

	MinComparisonCostPerUnit = 100.0
	MaxComparisonCostPerUnit = 1000.0
)

// Rounding constants
const (
	// PercentPrecision is the precision for displayed percentages (1 decimal place)
	PercentPrecision = 10

	// CurrencyTolerance is the tolerance for currency comparisons (1 penny)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024
)
