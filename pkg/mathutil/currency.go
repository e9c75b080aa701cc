// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/business-case/pkg/constants"
)

// RoundWhole rounds to the nearest whole currency unit, halves away from zero.
func RoundWhole(val float64) float64 {
	return math.Round(val)
}

// RoundPercent rounds a percentage to one decimal place.
func RoundPercent(val float64) float64 {
	return math.Round(val*constants.PercentPrecision) / constants.PercentPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// CalculatePercentage calculates what percentage value is of total.
// A total within a penny of zero yields 0 rather than a division fault.
func CalculatePercentage(value, total float64) float64 {
	if IsZero(total) {
		return 0
	}
	return (value / total) * constants.PercentageMultiplier
}

// Discount reduces value by the given fraction.
func Discount(value, fraction float64) float64 {
	return value * (1 - fraction)
}

// Premium increases value by the given fraction.
func Premium(value, fraction float64) float64 {
	return value * (1 + fraction)
}

// Clamp bounds value to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	return math.Min(math.Max(value, lo), hi)
}

// SnapToStep rounds value to the nearest multiple of step counted from origin.
func SnapToStep(value, origin, step float64) float64 {
	if step <= 0 {
		return value
	}
	steps := math.Round((value - origin) / step)
	// Re-round to clear float noise from fractional steps like 0.01.
	return math.Round((origin+steps*step)*1e6) / 1e6
}
