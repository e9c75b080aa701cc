package simulator

import (
	"errors"
	"fmt"

	"github.com/iwvelando/business-case/internal/costmodel"
	"github.com/iwvelando/business-case/pkg/constants"
	"github.com/iwvelando/business-case/pkg/mathutil"
)

// ErrUnknownField is returned when writing an input that does not exist.
var ErrUnknownField = errors.New("unknown input field")

// Field names one CostInputs value.
type Field string

const (
	FieldHourlyRate            Field = "hourlyRate"
	FieldImplementationHours   Field = "implementationHours"
	FieldSubscriptionFee       Field = "subscriptionFee"
	FieldStorageFee            Field = "storageFee"
	FieldContingencyRate       Field = "contingencyRate"
	FieldComparisonCostFixed   Field = "comparisonCostFixed"
	FieldComparisonCostPerUnit Field = "comparisonCostPerUnit"
)

// Slider describes the bounds of the control for one field.
type Slider struct {
	Field Field   `json:"field"`
	Label string  `json:"label"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Step  float64 `json:"step"`
}

// Clamp snaps value onto the slider's step grid and bounds it.
func (s Slider) Clamp(value float64) float64 {
	return mathutil.Clamp(mathutil.SnapToStep(value, s.Min, s.Step), s.Min, s.Max)
}

var sliders = []Slider{
	{Field: FieldHourlyRate, Label: "Hourly Rate", Min: constants.MinHourlyRate, Max: constants.MaxHourlyRate, Step: 1},
	{Field: FieldImplementationHours, Label: "Implementation Hours", Min: constants.MinImplementationHours, Max: constants.MaxImplementationHours, Step: 1},
	{Field: FieldSubscriptionFee, Label: "Annual Subscription", Min: constants.MinSubscriptionFee, Max: constants.MaxSubscriptionFee, Step: 100},
	{Field: FieldContingencyRate, Label: "Contingency Rate", Min: constants.MinContingencyRate, Max: constants.MaxContingencyRate, Step: 0.01},
	{Field: FieldStorageFee, Label: "Annual Storage", Min: constants.MinStorageFee, Max: constants.MaxStorageFee, Step: 10},
	{Field: FieldComparisonCostFixed, Label: "Custom Development Cost", Min: constants.MinComparisonCostFixed, Max: constants.MaxComparisonCostFixed, Step: 1000},
	{Field: FieldComparisonCostPerUnit, Label: "Traditional Cost per Student", Min: constants.MinComparisonCostPerUnit, Max: constants.MaxComparisonCostPerUnit, Step: 10},
}

// Sliders returns the input controls in display order.
func Sliders() []Slider {
	return append([]Slider(nil), sliders...)
}

// SliderFor returns the slider of a field.
func SliderFor(field Field) (Slider, error) {
	for _, s := range sliders {
		if s.Field == field {
			return s, nil
		}
	}
	return Slider{}, fmt.Errorf("%w: %q", ErrUnknownField, field)
}

// Get reads one field from inputs.
func Get(inputs costmodel.CostInputs, field Field) (float64, error) {
	switch field {
	case FieldHourlyRate:
		return inputs.HourlyRate, nil
	case FieldImplementationHours:
		return inputs.ImplementationHours, nil
	case FieldSubscriptionFee:
		return inputs.SubscriptionFee, nil
	case FieldStorageFee:
		return inputs.StorageFee, nil
	case FieldContingencyRate:
		return inputs.ContingencyRate, nil
	case FieldComparisonCostFixed:
		return inputs.ComparisonCostFixed, nil
	case FieldComparisonCostPerUnit:
		return inputs.ComparisonCostPerUnit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
}

func set(inputs *costmodel.CostInputs, field Field, value float64) error {
	switch field {
	case FieldHourlyRate:
		inputs.HourlyRate = value
	case FieldImplementationHours:
		inputs.ImplementationHours = value
	case FieldSubscriptionFee:
		inputs.SubscriptionFee = value
	case FieldStorageFee:
		inputs.StorageFee = value
	case FieldContingencyRate:
		inputs.ContingencyRate = value
	case FieldComparisonCostFixed:
		inputs.ComparisonCostFixed = value
	case FieldComparisonCostPerUnit:
		inputs.ComparisonCostPerUnit = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}
