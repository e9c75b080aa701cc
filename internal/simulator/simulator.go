// Package simulator owns the live cost inputs of one view and keeps every
// derived figure in step with them.
//
// Every input write goes through Set or ApplyPreset, which update the stored
// inputs and then recompute all outputs in full. A Simulator is not safe for
// concurrent use; each view instance owns its own.
package simulator

import (
	"fmt"

	"github.com/iwvelando/business-case/internal/costmodel"
	"github.com/iwvelando/business-case/internal/preset"
	"github.com/iwvelando/business-case/pkg/constants"
	"go.uber.org/zap"
)

// Options configures a Simulator. Zero values fall back to defaults.
type Options struct {
	Inputs       *costmodel.CostInputs
	Populations  []int
	RateSchedule *costmodel.RateSchedule
	Presets      *preset.Catalog
	ActivePreset string
	View         View
}

// State is a snapshot of everything the view layer reads.
type State struct {
	Inputs        costmodel.CostInputs          `json:"inputs"`
	Outputs       costmodel.CostOutputs         `json:"outputs"`
	ScaleSamples  []costmodel.ScaleSample       `json:"scaleSamples"`
	Savings       []costmodel.SavingsRow        `json:"savings"`
	Comparison    []costmodel.ComparisonBar     `json:"comparison"`
	RateBreakdown []costmodel.RateBreakdownStep `json:"rateBreakdown"`
	ActivePreset  string                        `json:"activePreset,omitempty"`
	View          View                          `json:"view"`
}

// Simulator holds the CostInputs/CostOutputs aggregate of one view.
type Simulator struct {
	logger *zap.Logger

	inputs       costmodel.CostInputs
	populations  []int
	rateSchedule costmodel.RateSchedule
	presets      *preset.Catalog
	activePreset string
	view         View

	outputs       costmodel.CostOutputs
	scaleSamples  []costmodel.ScaleSample
	savings       []costmodel.SavingsRow
	comparison    []costmodel.ComparisonBar
	rateBreakdown []costmodel.RateBreakdownStep
}

// DefaultInputs returns the inputs of the recommended scenario.
func DefaultInputs() costmodel.CostInputs {
	return costmodel.CostInputs{
		HourlyRate:            constants.DefaultHourlyRate,
		ImplementationHours:   constants.DefaultImplementationHours,
		SubscriptionFee:       constants.DefaultSubscriptionFee,
		StorageFee:            constants.DefaultStorageFee,
		ContingencyRate:       constants.DefaultContingencyRate,
		ComparisonCostFixed:   constants.DefaultComparisonCostFixed,
		ComparisonCostPerUnit: constants.DefaultComparisonCostPerUnit,
	}
}

// New builds a Simulator and computes its initial outputs. The active preset
// is recorded as a label only; it does not overwrite Options.Inputs.
func New(logger *zap.Logger, opts Options) (*Simulator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Simulator{
		logger:       logger,
		inputs:       DefaultInputs(),
		populations:  append([]int(nil), constants.DefaultPopulations...),
		rateSchedule: costmodel.DefaultRateSchedule(),
		presets:      opts.Presets,
		activePreset: opts.ActivePreset,
		view:         ViewSummary,
	}
	if opts.Inputs != nil {
		s.inputs = *opts.Inputs
	}
	if len(opts.Populations) > 0 {
		for _, n := range opts.Populations {
			if n <= 0 {
				return nil, fmt.Errorf("population sizes must be positive, got %d", n)
			}
		}
		s.populations = append([]int(nil), opts.Populations...)
	}
	if opts.RateSchedule != nil {
		s.rateSchedule = *opts.RateSchedule
		s.rateSchedule.Factors = append([]costmodel.RateFactor(nil), opts.RateSchedule.Factors...)
	}
	if s.presets == nil {
		s.presets = preset.BuiltinCatalog()
	}
	if opts.View != "" {
		if _, err := ParseView(string(opts.View)); err != nil {
			return nil, err
		}
		s.view = opts.View
	}
	if s.activePreset != "" {
		if _, err := s.presets.Lookup(s.activePreset); err != nil {
			return nil, err
		}
	}

	if err := s.recompute(); err != nil {
		return nil, err
	}
	return s, nil
}

// Set writes one input field and recomputes. The active preset label is kept
// even when the new value no longer matches it.
func (s *Simulator) Set(field Field, value float64) error {
	if err := set(&s.inputs, field, value); err != nil {
		return err
	}
	s.logger.Debug("input updated",
		zap.String("op", "simulator.Set"),
		zap.String("field", string(field)),
		zap.Float64("value", value),
	)
	return s.recompute()
}

// ApplyPreset overwrites hourly rate, implementation hours, subscription fee
// and contingency rate from the named preset, marks it active and
// recomputes. Other inputs are untouched.
func (s *Simulator) ApplyPreset(key string) error {
	p, err := s.presets.Lookup(key)
	if err != nil {
		return err
	}
	s.inputs = p.ApplyTo(s.inputs)
	s.activePreset = p.Key
	s.logger.Debug("preset applied",
		zap.String("op", "simulator.ApplyPreset"),
		zap.String("preset", p.Key),
	)
	return s.recompute()
}

// SetView selects the display tab.
func (s *Simulator) SetView(view View) error {
	if _, err := ParseView(string(view)); err != nil {
		return err
	}
	s.view = view
	return nil
}

// Inputs returns the current inputs.
func (s *Simulator) Inputs() costmodel.CostInputs {
	return s.inputs
}

// ActivePreset returns the key of the last applied preset.
func (s *Simulator) ActivePreset() string {
	return s.activePreset
}

// Presets returns the preset catalog.
func (s *Simulator) Presets() *preset.Catalog {
	return s.presets
}

// State returns a snapshot. Slices are copies.
func (s *Simulator) State() State {
	return State{
		Inputs:        s.inputs,
		Outputs:       s.outputs,
		ScaleSamples:  append([]costmodel.ScaleSample(nil), s.scaleSamples...),
		Savings:       append([]costmodel.SavingsRow(nil), s.savings...),
		Comparison:    append([]costmodel.ComparisonBar(nil), s.comparison...),
		RateBreakdown: append([]costmodel.RateBreakdownStep(nil), s.rateBreakdown...),
		ActivePreset:  s.activePreset,
		View:          s.view,
	}
}

// recompute replaces every derived figure from the current inputs.
func (s *Simulator) recompute() error {
	breakdown, err := costmodel.ComputeRateBreakdown(s.rateSchedule)
	if err != nil {
		return fmt.Errorf("failed to compute rate breakdown: %w", err)
	}

	outputs := costmodel.ComputeCosts(s.inputs)
	s.outputs = outputs
	s.scaleSamples = costmodel.ComputeScaleSamples(outputs.TotalCost, s.inputs.ComparisonCostFixed, s.inputs.ComparisonCostPerUnit, s.populations)
	s.savings = costmodel.ComputeSavingsTable(outputs.TotalCost, s.inputs.ComparisonCostPerUnit, s.populations)
	s.comparison = costmodel.ComputeComparison(outputs.TotalCost, s.inputs, s.populations)
	s.rateBreakdown = breakdown

	s.logger.Debug("outputs recomputed",
		zap.String("op", "simulator.recompute"),
		zap.Float64("totalCost", outputs.TotalCost),
	)
	return nil
}
