// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/business-case/internal/costmodel"
)

// FindSavingsRow finds the savings row for a population.
// Returns a pointer to the row if found, nil otherwise.
func FindSavingsRow(rows []costmodel.SavingsRow, population int) *costmodel.SavingsRow {
	for i := range rows {
		if rows[i].Population == population {
			return &rows[i]
		}
	}
	return nil
}

// FindScaleSample finds the scale sample for a population.
func FindScaleSample(samples []costmodel.ScaleSample, population int) *costmodel.ScaleSample {
	for i := range samples {
		if samples[i].Population == population {
			return &samples[i]
		}
	}
	return nil
}

// FindComparisonBar finds a comparison bar by name.
func FindComparisonBar(bars []costmodel.ComparisonBar, name string) *costmodel.ComparisonBar {
	for i := range bars {
		if bars[i].Name == name {
			return &bars[i]
		}
	}
	return nil
}
