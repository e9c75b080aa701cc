package tui

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/iwvelando/business-case/internal/costmodel"
	"github.com/iwvelando/business-case/internal/simulator"
	"github.com/iwvelando/business-case/pkg/format"
)

const barWidth = 30

var viewTitles = map[simulator.View]string{
	simulator.ViewSummary:            "Summary",
	simulator.ViewUserNeeds:          "User Needs",
	simulator.ViewArchitecture:       "Architecture",
	simulator.ViewImplementation:     "Implementation",
	simulator.ViewCost:               "Cost",
	simulator.ViewScale:              "Scale",
	simulator.ViewPlatformComparison: "Platforms",
	simulator.ViewFeatureMatrix:      "Features",
	simulator.ViewRatingBreakdown:    "Rate",
	simulator.ViewGlossary:           "Glossary",
}

func viewTitle(v simulator.View) string {
	if title, ok := viewTitles[v]; ok {
		return title
	}
	return string(v)
}

func (m *App) renderView(state simulator.State) string {
	switch state.View {
	case simulator.ViewCost:
		return m.renderCost(state)
	case simulator.ViewScale:
		return m.renderScale(state)
	case simulator.ViewRatingBreakdown:
		return m.renderRateBreakdown(state)
	case simulator.ViewSummary:
		return m.renderSummary(state)
	}

	if m.tablesErr != nil {
		return m.theme.ErrorStyle.Render("reference tables unavailable: " + m.tablesErr.Error())
	}

	switch state.View {
	case simulator.ViewUserNeeds:
		return m.renderUserNeeds()
	case simulator.ViewArchitecture:
		return m.renderArchitecture()
	case simulator.ViewImplementation:
		return m.renderImplementation()
	case simulator.ViewPlatformComparison:
		return m.renderPlatforms()
	case simulator.ViewFeatureMatrix:
		return m.renderFeatureMatrix()
	case simulator.ViewGlossary:
		return m.renderGlossary()
	default:
		return m.theme.MutedStyle.Render("nothing to show")
	}
}

func (m *App) renderSummary(state simulator.State) string {
	lines := []string{
		m.theme.HeadingStyle.Render("Total Cost"),
		m.theme.FigureStyle.Render(format.WholeCurrency(state.Outputs.TotalCost)),
		"",
		m.theme.HeadingStyle.Render("Cost Comparison"),
	}
	lines = append(lines, m.renderBars(state.Comparison)...)

	if len(state.Savings) > 0 {
		largest := state.Savings[len(state.Savings)-1]
		lines = append(lines, "",
			fmt.Sprintf("At %s students: %s saved (%s)",
				format.Count(largest.Population),
				m.savingText(largest.SavingAmount),
				format.Percent(largest.SavingPercent)),
		)
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderBars(bars []costmodel.ComparisonBar) []string {
	longest := 0.0
	nameWidth := 0
	for _, bar := range bars {
		longest = math.Max(longest, bar.Cost)
		if len(bar.Name) > nameWidth {
			nameWidth = len(bar.Name)
		}
	}

	lines := make([]string, 0, len(bars))
	for _, bar := range bars {
		n := 0
		if longest > 0 {
			n = int(math.Round(bar.Cost / longest * barWidth))
		}
		if n == 0 && bar.Cost > 0 {
			n = 1
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s",
			nameWidth, bar.Name,
			m.theme.BarStyle.Render(strings.Repeat("█", n)),
			format.WholeCurrency(bar.Cost)))
	}
	return lines
}

func (m *App) renderCost(state simulator.State) string {
	in := state.Inputs
	out := state.Outputs
	lines := []string{
		m.theme.HeadingStyle.Render("Cost Breakdown"),
		fmt.Sprintf("Implementation (%.0f h × %s)  %s", in.ImplementationHours, format.Rate(in.HourlyRate), format.Currency(out.ImplementationCost)),
		fmt.Sprintf("Annual subscription            %s", format.Currency(in.SubscriptionFee)),
		fmt.Sprintf("Annual storage                 %s", format.Currency(in.StorageFee)),
		fmt.Sprintf("Contingency (%s)              %s", format.Fraction(in.ContingencyRate), format.Currency(out.ContingencyAmount)),
		m.theme.FigureStyle.Render(fmt.Sprintf("Total                          %s", format.Currency(out.TotalCost))),
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderScale(state simulator.State) string {
	lines := []string{
		m.theme.HeadingStyle.Render("Cost per Student"),
		fmt.Sprintf("%-10s %-12s %-12s %-12s", "Students", "Platform", "Custom", "Traditional"),
	}
	for _, s := range state.ScaleSamples {
		lines = append(lines, fmt.Sprintf("%-10s %-12s %-12s %-12s",
			format.Count(s.Population),
			format.UnitCost(s.CostPerUnitModelA),
			format.UnitCost(s.CostPerUnitModelB),
			format.UnitCost(s.CostPerUnitModelC)))
	}

	lines = append(lines, "", m.theme.HeadingStyle.Render("Savings"))
	for _, row := range state.Savings {
		lines = append(lines, fmt.Sprintf("%-10s %s vs %s: %s (%s)",
			format.Count(row.Population),
			format.WholeCurrency(row.ModelACost),
			format.WholeCurrency(row.ComparisonCost),
			m.savingText(row.SavingAmount),
			format.Percent(row.SavingPercent)))
	}
	return strings.Join(lines, "\n")
}

func (m *App) savingText(amount float64) string {
	if amount < 0 {
		return m.theme.LossStyle.Render(format.WholeCurrency(amount))
	}
	return m.theme.SavingStyle.Render(format.WholeCurrency(amount))
}

func (m *App) renderRateBreakdown(state simulator.State) string {
	lines := []string{m.theme.HeadingStyle.Render("Hourly Rate Breakdown")}
	for i, step := range state.RateBreakdown {
		line := fmt.Sprintf("%-34s %s", step.Label, format.Rate(step.Rate))
		if i == len(state.RateBreakdown)-1 {
			line = m.theme.FigureStyle.Render(line)
		}
		lines = append(lines, line)
	}
	lines = append(lines,
		"",
		fmt.Sprintf("%-34s %s", "Entered Hourly Rate", format.Rate(state.Inputs.HourlyRate)),
		m.theme.MutedStyle.Render(fmt.Sprintf("Illustrative only. The indicative %s does not set the hourly rate input.", format.Rate(costmodel.FinalRate(state.RateBreakdown)))),
	)
	return strings.Join(lines, "\n")
}

func (m *App) renderUserNeeds() string {
	lines := []string{m.theme.HeadingStyle.Render("User Needs")}
	for _, need := range m.tables.UserNeeds {
		lines = append(lines, "", m.theme.FigureStyle.Render(need.UserType))
		for _, item := range need.Needs {
			lines = append(lines, "  • "+item)
		}
		if need.Quote != "" {
			lines = append(lines, m.theme.MutedStyle.Render("  \""+need.Quote+"\""))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderArchitecture() string {
	lines := []string{m.theme.HeadingStyle.Render("Architecture")}
	for _, c := range m.tables.Architecture {
		lines = append(lines, "", fmt.Sprintf("%s (%s)", m.theme.FigureStyle.Render(c.Name), c.Role), "  "+c.Description)
		for _, benefit := range c.Benefits {
			lines = append(lines, "  • "+benefit)
		}
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderImplementation() string {
	lines := []string{m.theme.HeadingStyle.Render("Phases")}
	for _, p := range m.tables.Phases {
		lines = append(lines, "", fmt.Sprintf("%s  %s  %s",
			m.theme.FigureStyle.Render(p.Phase), p.Timeframe, format.WholeCurrency(p.Cost)))
		for _, feature := range p.Features {
			lines = append(lines, "  • "+feature)
		}
	}

	lines = append(lines, "", m.theme.HeadingStyle.Render("Timeline"))
	for _, milestone := range m.tables.Timeline {
		lines = append(lines, fmt.Sprintf("%-12s %s", milestone.Period, milestone.Name))
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderPlatforms() string {
	lines := []string{
		m.theme.HeadingStyle.Render("Platform Comparison"),
		fmt.Sprintf("%-22s %-12s %-8s %-10s %s", "Platform", "3-year TCO", "Weeks", "Features", "Scalability"),
	}
	for _, p := range m.tables.Platforms {
		lines = append(lines, fmt.Sprintf("%-22s %-12s %-8d %-10s %s",
			p.Name,
			format.WholeCurrency(p.ThreeYearTCO),
			p.ImplementationWeeks,
			fmt.Sprintf("%d/%d", p.FeatureScore, p.TotalFeatures),
			p.Scalability))
	}

	if len(m.tables.CaseStudies) > 0 {
		lines = append(lines, "", m.theme.HeadingStyle.Render("Digital Scale"))
		for _, cs := range m.tables.CaseStudies {
			lines = append(lines, fmt.Sprintf("%s (%d): %d× staff efficiency", cs.Name, cs.FoundedYear, cs.EfficiencyMultiplier))
		}
	}
	return strings.Join(lines, "\n")
}

func (m *App) renderFeatureMatrix() string {
	seen := make(map[string]bool)
	for _, p := range m.tables.Platforms {
		for feature := range p.Features {
			seen[feature] = true
		}
	}
	features := make([]string, 0, len(seen))
	for feature := range seen {
		features = append(features, feature)
	}
	sort.Strings(features)

	lines := []string{m.theme.HeadingStyle.Render("Feature Matrix")}
	for _, p := range m.tables.Platforms {
		marks := make([]string, 0, len(features))
		for _, feature := range features {
			if p.Features[feature] {
				marks = append(marks, m.theme.SavingStyle.Render("✓"))
			} else {
				marks = append(marks, m.theme.LossStyle.Render("✗"))
			}
		}
		lines = append(lines, fmt.Sprintf("%-22s %s", p.Name, strings.Join(marks, " ")))
	}
	lines = append(lines, "", m.theme.MutedStyle.Render("Columns: "+strings.Join(features, ", ")))
	return strings.Join(lines, "\n")
}

func (m *App) renderGlossary() string {
	lines := []string{m.theme.HeadingStyle.Render("Glossary")}
	for _, term := range m.tables.Glossary {
		lines = append(lines, m.theme.FigureStyle.Render(term.Term)+": "+term.Definition)
	}
	return strings.Join(lines, "\n")
}
