// Package output provides utilities for formatting and displaying cost model results.
package output

import (
	"fmt"
	"strings"

	"github.com/iwvelando/business-case/internal/costmodel"
	"github.com/iwvelando/business-case/internal/simulator"
	"github.com/iwvelando/business-case/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(state simulator.State) {
	fmt.Print(PrettyString(state))
}

// PrettyString renders the human-readable report.
func PrettyString(state simulator.State) string {
	p := message.NewPrinter(language.BritishEnglish)
	var b strings.Builder

	preset := state.ActivePreset
	if preset == "" {
		preset = "none"
	}
	fmt.Fprintf(&b, "--- Cost summary (preset: %s) ---\n", preset)
	fmt.Fprintf(&b, "Implementation | %s\n", format.Currency(state.Outputs.ImplementationCost))
	fmt.Fprintf(&b, "Recurring      | %s\n", format.Currency(state.Outputs.RecurringCost))
	fmt.Fprintf(&b, "Contingency    | %s\n", format.Currency(state.Outputs.ContingencyAmount))
	fmt.Fprintf(&b, "Total          | %s\n", format.Currency(state.Outputs.TotalCost))

	b.WriteString("\n--- Cost comparison ---\n")
	for _, bar := range state.Comparison {
		fmt.Fprintf(&b, "%s | %s\n", bar.Name, format.WholeCurrency(bar.Cost))
	}

	b.WriteString("\n--- Cost per student ---\n")
	b.WriteString("Students | Platform | Custom | Traditional\n")
	b.WriteString("________ | ________ | ______ | ___________\n")
	for _, sample := range state.ScaleSamples {
		_, _ = p.Fprintf(&b, "%d | %s | %s | %s\n",
			sample.Population,
			format.UnitCost(sample.CostPerUnitModelA),
			format.UnitCost(sample.CostPerUnitModelB),
			format.UnitCost(sample.CostPerUnitModelC),
		)
	}

	b.WriteString("\n--- Savings against traditional support ---\n")
	b.WriteString("Students | Platform | Traditional | Saving | Saving %\n")
	b.WriteString("________ | ________ | ___________ | ______ | ________\n")
	for _, row := range state.Savings {
		_, _ = p.Fprintf(&b, "%d | %s | %s | %s | %s\n",
			row.Population,
			format.WholeCurrency(row.ModelACost),
			format.WholeCurrency(row.ComparisonCost),
			format.WholeCurrency(row.SavingAmount),
			format.Percent(row.SavingPercent),
		)
	}

	b.WriteString("\n--- Hourly rate breakdown ---\n")
	for _, step := range state.RateBreakdown {
		fmt.Fprintf(&b, "%s | %s\n", step.Label, format.Rate(step.Rate))
	}
	fmt.Fprintf(&b, "Entered rate | %s (indicative %s)\n",
		format.Rate(state.Inputs.HourlyRate),
		format.Rate(costmodel.FinalRate(state.RateBreakdown)),
	)

	return b.String()
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(state simulator.State) {
	fmt.Print(CsvString(state))
}

// CsvString renders every table in one long-format CSV with the columns
// table, label, population, metric and value.
func CsvString(state simulator.State) string {
	var b strings.Builder
	b.WriteString(`"table","label","population","metric","value"` + "\n")

	row := func(table, label string, population int, metric string, value float64) {
		pop := ""
		if population > 0 {
			pop = fmt.Sprintf("%d", population)
		}
		fmt.Fprintf(&b, "%q,%q,%q,%q,\"%.4f\"\n", table, label, pop, metric, value)
	}

	row("costs", "", 0, "implementationCost", state.Outputs.ImplementationCost)
	row("costs", "", 0, "recurringCost", state.Outputs.RecurringCost)
	row("costs", "", 0, "contingencyAmount", state.Outputs.ContingencyAmount)
	row("costs", "", 0, "totalCost", state.Outputs.TotalCost)

	for _, bar := range state.Comparison {
		row("comparison", bar.Name, 0, "cost", bar.Cost)
	}
	for _, sample := range state.ScaleSamples {
		row("scale", "", sample.Population, "costPerUnitModelA", sample.CostPerUnitModelA)
		row("scale", "", sample.Population, "costPerUnitModelB", sample.CostPerUnitModelB)
		row("scale", "", sample.Population, "costPerUnitModelC", sample.CostPerUnitModelC)
	}
	for _, s := range state.Savings {
		row("savings", "", s.Population, "comparisonCost", s.ComparisonCost)
		row("savings", "", s.Population, "savingAmount", s.SavingAmount)
		row("savings", "", s.Population, "savingPercent", s.SavingPercent)
	}
	for _, step := range state.RateBreakdown {
		row("rateBreakdown", step.Label, 0, "rate", step.Rate)
	}

	return b.String()
}
