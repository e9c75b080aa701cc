// Package costmodel converts cost inputs into the derived figures of the
// business case: totals, per-student costs at scale, savings against
// traditional support, and the illustrative hourly-rate breakdown.
//
// Every function is pure. Callers own recomputation.
package costmodel

import (
	"github.com/iwvelando/business-case/pkg/mathutil"
)

// CostInputs holds the user-adjustable parameters.
//
// Expected ranges: HourlyRate in [40,80], ImplementationHours in [80,300],
// SubscriptionFee in [1000,5000], ContingencyRate in [0,0.30]. Values outside
// these ranges are computed as given.
type CostInputs struct {
	HourlyRate            float64 `json:"hourlyRate" yaml:"hourlyRate"`
	ImplementationHours   float64 `json:"implementationHours" yaml:"implementationHours"`
	SubscriptionFee       float64 `json:"subscriptionFee" yaml:"subscriptionFee"`
	StorageFee            float64 `json:"storageFee" yaml:"storageFee"` // zero when not used
	ContingencyRate       float64 `json:"contingencyRate" yaml:"contingencyRate"`
	ComparisonCostFixed   float64 `json:"comparisonCostFixed" yaml:"comparisonCostFixed"`
	ComparisonCostPerUnit float64 `json:"comparisonCostPerUnit" yaml:"comparisonCostPerUnit"`
}

// CostOutputs holds the monetary totals derived from CostInputs.
type CostOutputs struct {
	ImplementationCost float64 `json:"implementationCost"`
	RecurringCost      float64 `json:"recurringCost"`
	ContingencyAmount  float64 `json:"contingencyAmount"`
	TotalCost          float64 `json:"totalCost"`
}

// ScaleSample is the cost per student at one population size.
type ScaleSample struct {
	Population int `json:"population"`
	// CostPerUnitModelA spreads the total cost of this implementation.
	CostPerUnitModelA float64 `json:"costPerUnitModelA"`
	// CostPerUnitModelB spreads the fixed custom development cost.
	CostPerUnitModelB float64 `json:"costPerUnitModelB"`
	// CostPerUnitModelC is the traditional per-student cost.
	CostPerUnitModelC float64 `json:"costPerUnitModelC"`
}

// SavingsRow compares the total cost against traditional support for one
// population size.
type SavingsRow struct {
	Population     int     `json:"population"`
	ModelACost     float64 `json:"modelACost"`
	ComparisonCost float64 `json:"comparisonCost"`
	SavingAmount   float64 `json:"savingAmount"`
	// SavingPercent is rounded to one decimal. It is 0 when ComparisonCost is 0.
	SavingPercent float64 `json:"savingPercent"`
}

// ComparisonBar is one bar of the headline cost comparison.
type ComparisonBar struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

// ComputeCosts derives the cost totals. The storage fee is part of the
// recurring cost and so enters the contingency base once. The contingency is
// rounded to a whole currency unit with halves rounded away from zero; no
// other value is rounded.
func ComputeCosts(inputs CostInputs) CostOutputs {
	implementationCost := inputs.HourlyRate * inputs.ImplementationHours
	recurringCost := inputs.SubscriptionFee + inputs.StorageFee
	contingency := mathutil.RoundWhole(inputs.ContingencyRate * (implementationCost + recurringCost))

	return CostOutputs{
		ImplementationCost: implementationCost,
		RecurringCost:      recurringCost,
		ContingencyAmount:  contingency,
		TotalCost:          implementationCost + recurringCost + contingency,
	}
}

// ComputeScaleSamples spreads totalCost and fixedComparisonA over each
// population. Populations must be non-zero.
func ComputeScaleSamples(totalCost, fixedComparisonA, perUnitComparisonB float64, populations []int) []ScaleSample {
	samples := make([]ScaleSample, 0, len(populations))
	for _, n := range populations {
		samples = append(samples, ScaleSample{
			Population:        n,
			CostPerUnitModelA: totalCost / float64(n),
			CostPerUnitModelB: fixedComparisonA / float64(n),
			CostPerUnitModelC: perUnitComparisonB,
		})
	}
	return samples
}

// ComputeSavingsTable compares totalCost with traditional support for each
// population, in input order.
func ComputeSavingsTable(totalCost, perUnitComparisonB float64, populations []int) []SavingsRow {
	rows := make([]SavingsRow, 0, len(populations))
	for _, n := range populations {
		comparisonCost := perUnitComparisonB * float64(n)
		saving := comparisonCost - totalCost
		rows = append(rows, SavingsRow{
			Population:     n,
			ModelACost:     totalCost,
			ComparisonCost: comparisonCost,
			SavingAmount:   saving,
			SavingPercent:  mathutil.RoundPercent(mathutil.CalculatePercentage(saving, comparisonCost)),
		})
	}
	return rows
}

// Comparison bar names.
const (
	BarImplementation     = "Platform Implementation"
	BarCustomDevelopment  = "Custom Development"
	BarTraditionalSupport = "Traditional Support"
)

// ComputeComparison returns the headline comparison: this implementation,
// custom development and traditional support for the smallest population.
// Traditional support is omitted when populations is empty.
func ComputeComparison(totalCost float64, inputs CostInputs, populations []int) []ComparisonBar {
	bars := []ComparisonBar{
		{Name: BarImplementation, Cost: totalCost},
		{Name: BarCustomDevelopment, Cost: inputs.ComparisonCostFixed},
	}
	if len(populations) == 0 {
		return bars
	}

	smallest := populations[0]
	for _, n := range populations[1:] {
		if n < smallest {
			smallest = n
		}
	}
	return append(bars, ComparisonBar{
		Name: BarTraditionalSupport,
		Cost: inputs.ComparisonCostPerUnit * float64(smallest),
	})
}
