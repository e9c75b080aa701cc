// Package format renders monetary figures for display.
package format

import (
	"math"

	"github.com/iwvelando/business-case/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol prefixes every formatted amount.
const CurrencySymbol = "£"

var printer = message.NewPrinter(language.BritishEnglish)

// Currency returns an amount with a pound sign, thousands separators and two
// decimals (e.g., "-£1,234.56").
func Currency(amount float64) string {
	formatted := printer.Sprintf("%.2f", math.Abs(amount))
	if amount < 0 {
		return "-" + CurrencySymbol + formatted
	}
	return CurrencySymbol + formatted
}

// WholeCurrency returns an amount rounded to whole pounds (e.g., "£14,495").
func WholeCurrency(amount float64) string {
	formatted := printer.Sprintf("%.0f", math.Abs(amount))
	if amount < 0 && formatted != "0" {
		return "-" + CurrencySymbol + formatted
	}
	return CurrencySymbol + formatted
}

// UnitCost renders a per-student cost. Amounts under one pound are shown in
// pence with one decimal (e.g., "2.9p").
func UnitCost(amount float64) string {
	if amount >= 1 {
		return Currency(amount)
	}
	return printer.Sprintf("%.1fp", amount*constants.PercentageMultiplier)
}

// Rate renders an hourly rate with two decimals.
func Rate(rate float64) string {
	return Currency(rate) + "/h"
}

// Count renders an integer with thousands separators (e.g., "100,000").
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Percent renders a percentage with one decimal place (e.g., "97.1%").
func Percent(value float64) string {
	return printer.Sprintf("%.1f%%", value)
}

// Fraction renders a fraction in [0,1] as a whole percentage (e.g., "15%").
func Fraction(value float64) string {
	return printer.Sprintf("%.0f%%", value*constants.PercentageMultiplier)
}
