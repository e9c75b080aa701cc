// Package validation provides configuration validation utilities.
package validation

import (
	"fmt"
	"sort"
)

// ValidateRange returns a warning when value falls outside [min, max].
func ValidateRange(name string, value, min, max float64) string {
	if value < min || value > max {
		return fmt.Sprintf("%s %v is outside the supported range [%v, %v]", name, value, min, max)
	}
	return ""
}

// ValidatePopulations checks that population sizes are positive, unique and
// ascending.
func ValidatePopulations(populations []int) []string {
	var warnings []string

	seen := make(map[int]struct{}, len(populations))
	for _, n := range populations {
		if n <= 0 {
			warnings = append(warnings, fmt.Sprintf("Population size %d must be positive", n))
		}
		if _, dup := seen[n]; dup {
			warnings = append(warnings, fmt.Sprintf("Population size %d is listed more than once", n))
		}
		seen[n] = struct{}{}
	}

	if !sort.IntsAreSorted(populations) {
		warnings = append(warnings, "Population sizes are not in ascending order; tables follow the listed order")
	}

	return warnings
}

// ValidateFraction returns a warning when a percentage expressed as a
// fraction is outside [0, 1].
func ValidateFraction(name string, value float64) string {
	if value < 0 || value > 1 {
		return fmt.Sprintf("%s %v should be a fraction between 0 and 1", name, value)
	}
	return ""
}

// InputRange is one bounded input to check.
type InputRange struct {
	Name  string
	Value float64
	Min   float64
	Max   float64
}

// ConfigValidator gathers everything the configuration validation inspects.
type ConfigValidator struct {
	Inputs      []InputRange
	Populations []int
	Fractions   map[string]float64
}

// ValidateAll validates the entire configuration and returns warnings
func (cv *ConfigValidator) ValidateAll() []string {
	var warnings []string

	for _, in := range cv.Inputs {
		if warning := ValidateRange(in.Name, in.Value, in.Min, in.Max); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	warnings = append(warnings, ValidatePopulations(cv.Populations)...)

	names := make([]string, 0, len(cv.Fractions))
	for name := range cv.Fractions {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if warning := ValidateFraction(name, cv.Fractions[name]); warning != "" {
			warnings = append(warnings, warning)
		}
	}

	return warnings
}
