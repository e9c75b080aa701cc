package costmodel

import (
	"errors"
	"fmt"

	"github.com/iwvelando/business-case/pkg/constants"
	"github.com/iwvelando/business-case/pkg/mathutil"
)

// ErrUnknownFactorKind is returned for a rate factor that is neither a
// discount nor a premium.
var ErrUnknownFactorKind = errors.New("unknown rate factor kind")

// FactorKind tags a rate factor as a discount or a premium.
type FactorKind string

const (
	// Discount multiplies the running rate by 1-p.
	Discount FactorKind = "discount"
	// Premium multiplies the running rate by 1+p.
	Premium FactorKind = "premium"
)

// RateFactor is one named percentage adjustment. Percent is a fraction.
type RateFactor struct {
	Label   string     `json:"label" yaml:"label"`
	Kind    FactorKind `json:"kind" yaml:"kind"`
	Percent float64    `json:"percent" yaml:"percent"`
}

// Apply adjusts rate by the factor.
func (f RateFactor) Apply(rate float64) (float64, error) {
	switch f.Kind {
	case Discount:
		return mathutil.Discount(rate, f.Percent), nil
	case Premium:
		return mathutil.Premium(rate, f.Percent), nil
	default:
		return 0, fmt.Errorf("%w: %q (factor %q)", ErrUnknownFactorKind, f.Kind, f.Label)
	}
}

// RateSchedule is a base rate and the ordered factors applied to it.
type RateSchedule struct {
	BaseLabel string       `json:"baseLabel" yaml:"baseLabel"`
	BaseRate  float64      `json:"baseRate" yaml:"baseRate"`
	Factors   []RateFactor `json:"factors" yaml:"factors"`
}

// RateBreakdownStep is one row of the rate waterfall.
type RateBreakdownStep struct {
	Label string  `json:"label"`
	Rate  float64 `json:"rate"`
}

// DefaultRateSchedule returns the market-rate waterfall used by the business
// case. It is independent of the configured hourly rate.
func DefaultRateSchedule() RateSchedule {
	return RateSchedule{
		BaseLabel: constants.DefaultBaseRateLabel,
		BaseRate:  constants.DefaultBaseRate,
		Factors: []RateFactor{
			{Label: "Social Enterprise Discount", Kind: Discount, Percent: 0.10},
			{Label: "Non-Profit Discount", Kind: Discount, Percent: 0.15},
			{Label: "Geographic Adjustment", Kind: Discount, Percent: 0.10},
			{Label: "AWS Specialisation", Kind: Premium, Percent: 0.10},
			{Label: "Budget Consideration", Kind: Discount, Percent: 0.05},
		},
	}
}

// ComputeRateBreakdown applies each factor in order to the base rate. The
// result holds the base step, one step per factor and a final step rounded to
// a whole currency unit. Intermediate rates are not rounded.
func ComputeRateBreakdown(schedule RateSchedule) ([]RateBreakdownStep, error) {
	baseLabel := schedule.BaseLabel
	if baseLabel == "" {
		baseLabel = constants.DefaultBaseRateLabel
	}

	steps := make([]RateBreakdownStep, 0, len(schedule.Factors)+2)
	steps = append(steps, RateBreakdownStep{Label: baseLabel, Rate: schedule.BaseRate})

	rate := schedule.BaseRate
	for _, factor := range schedule.Factors {
		next, err := factor.Apply(rate)
		if err != nil {
			return nil, err
		}
		rate = next
		steps = append(steps, RateBreakdownStep{Label: "After " + factor.Label, Rate: rate})
	}

	steps = append(steps, RateBreakdownStep{Label: constants.FinalRateLabel, Rate: mathutil.RoundWhole(rate)})
	return steps, nil
}

// FinalRate returns the rate of the last step, or 0 for an empty breakdown.
func FinalRate(steps []RateBreakdownStep) float64 {
	if len(steps) == 0 {
		return 0
	}
	return steps[len(steps)-1].Rate
}
