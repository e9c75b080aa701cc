// Package config defines the data structures related to configuration and
// includes functions for loading and validating it.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/business-case/internal/costmodel"
	"github.com/iwvelando/business-case/internal/preset"
	"github.com/iwvelando/business-case/internal/simulator"
	"github.com/iwvelando/business-case/pkg/constants"
	"github.com/iwvelando/business-case/pkg/validation"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. BUSINESS_CASE_INPUTS_HOURLYRATE.
const EnvPrefix = "BUSINESS_CASE"

// Configuration holds all configuration for business-case.
type Configuration struct {
	Inputs       costmodel.CostInputs   `yaml:"inputs" json:"inputs"`
	Populations  []int                  `yaml:"populations" json:"populations"`
	RateSchedule costmodel.RateSchedule `yaml:"rateSchedule" json:"rateSchedule"`
	Presets      []preset.Preset        `yaml:"presets,omitempty" json:"presets,omitempty"`
	ActivePreset string                 `yaml:"activePreset,omitempty" json:"activePreset,omitempty"`
	Logging      LoggingConfig          `yaml:"logging,omitempty" json:"logging,omitempty"`
	Output       OutputConfig           `yaml:"output,omitempty" json:"output,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty" jsonschema:"enum=debug,enum=info,enum=warn,enum=error"`
	Format     string `yaml:"format,omitempty" json:"format,omitempty" jsonschema:"enum=json,enum=console"`
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty" jsonschema:"enum=pretty,enum=csv"`
}

// Default returns the configuration used when no file is given.
func Default() *Configuration {
	return &Configuration{
		Inputs:       simulator.DefaultInputs(),
		Populations:  append([]int(nil), constants.DefaultPopulations...),
		RateSchedule: costmodel.DefaultRateSchedule(),
		ActivePreset: constants.DefaultActivePreset,
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := Default()
	v.SetDefault("inputs.hourlyRate", defaults.Inputs.HourlyRate)
	v.SetDefault("inputs.implementationHours", defaults.Inputs.ImplementationHours)
	v.SetDefault("inputs.subscriptionFee", defaults.Inputs.SubscriptionFee)
	v.SetDefault("inputs.storageFee", defaults.Inputs.StorageFee)
	v.SetDefault("inputs.contingencyRate", defaults.Inputs.ContingencyRate)
	v.SetDefault("inputs.comparisonCostFixed", defaults.Inputs.ComparisonCostFixed)
	v.SetDefault("inputs.comparisonCostPerUnit", defaults.Inputs.ComparisonCostPerUnit)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	return v
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}
	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %w", err)
	}
	return decode(v)
}

// LoadDefaults returns the default configuration with environment overrides
// applied.
func LoadDefaults() (*Configuration, error) {
	return decode(newViper())
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	if len(configuration.Populations) == 0 {
		configuration.Populations = append([]int(nil), constants.DefaultPopulations...)
	}
	if configuration.RateSchedule.BaseRate == 0 && len(configuration.RateSchedule.Factors) == 0 {
		configuration.RateSchedule = costmodel.DefaultRateSchedule()
	}
	if configuration.RateSchedule.BaseLabel == "" {
		configuration.RateSchedule.BaseLabel = constants.DefaultBaseRateLabel
	}
	// The default label is only true when the defaults are what is loaded.
	if configuration.ActivePreset == "" && len(configuration.Presets) == 0 && configuration.Inputs == simulator.DefaultInputs() {
		configuration.ActivePreset = constants.DefaultActivePreset
	}

	return &configuration, nil
}

// PresetCatalog returns the configured presets, or the builtin ones when the
// configuration lists none.
func (c *Configuration) PresetCatalog() (*preset.Catalog, error) {
	if len(c.Presets) == 0 {
		return preset.BuiltinCatalog(), nil
	}
	catalog, err := preset.NewCatalog(c.Presets)
	if err != nil {
		return nil, fmt.Errorf("invalid presets: %w", err)
	}
	return catalog, nil
}

// SimulatorOptions converts the configuration into simulator options.
func (c *Configuration) SimulatorOptions() (simulator.Options, error) {
	catalog, err := c.PresetCatalog()
	if err != nil {
		return simulator.Options{}, err
	}

	inputs := c.Inputs
	schedule := c.RateSchedule
	return simulator.Options{
		Inputs:       &inputs,
		Populations:  c.Populations,
		RateSchedule: &schedule,
		Presets:      catalog,
		ActivePreset: c.ActivePreset,
	}, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	validator := validation.ConfigValidator{
		Inputs: []validation.InputRange{
			{Name: "hourlyRate", Value: c.Inputs.HourlyRate, Min: constants.MinHourlyRate, Max: constants.MaxHourlyRate},
			{Name: "implementationHours", Value: c.Inputs.ImplementationHours, Min: constants.MinImplementationHours, Max: constants.MaxImplementationHours},
			{Name: "subscriptionFee", Value: c.Inputs.SubscriptionFee, Min: constants.MinSubscriptionFee, Max: constants.MaxSubscriptionFee},
			{Name: "contingencyRate", Value: c.Inputs.ContingencyRate, Min: constants.MinContingencyRate, Max: constants.MaxContingencyRate},
			{Name: "storageFee", Value: c.Inputs.StorageFee, Min: constants.MinStorageFee, Max: constants.MaxStorageFee},
			{Name: "comparisonCostFixed", Value: c.Inputs.ComparisonCostFixed, Min: constants.MinComparisonCostFixed, Max: constants.MaxComparisonCostFixed},
			{Name: "comparisonCostPerUnit", Value: c.Inputs.ComparisonCostPerUnit, Min: constants.MinComparisonCostPerUnit, Max: constants.MaxComparisonCostPerUnit},
		},
		Populations: c.Populations,
		Fractions:   make(map[string]float64),
	}
	for _, factor := range c.RateSchedule.Factors {
		validator.Fractions[fmt.Sprintf("Rate factor '%s'", factor.Label)] = factor.Percent
	}

	warnings := validator.ValidateAll()

	for _, factor := range c.RateSchedule.Factors {
		if factor.Kind != costmodel.Discount && factor.Kind != costmodel.Premium {
			warnings = append(warnings, fmt.Sprintf("Rate factor '%s' has unknown kind %q", factor.Label, factor.Kind))
		}
	}

	if c.ActivePreset != "" {
		catalog, err := c.PresetCatalog()
		if err != nil {
			warnings = append(warnings, err.Error())
		} else if _, err := catalog.Lookup(c.ActivePreset); err != nil {
			warnings = append(warnings, fmt.Sprintf("Active preset '%s' is not defined", c.ActivePreset))
		}
	}

	return warnings
}
