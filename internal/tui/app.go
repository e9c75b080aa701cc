// Package tui renders the business case as an interactive terminal view with
// input sliders, presets and one tab per view.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/iwvelando/business-case/internal/reference"
	"github.com/iwvelando/business-case/internal/simulator"
	"github.com/iwvelando/business-case/pkg/format"
	"go.uber.org/zap"
)

const (
	defaultAppWidth    = 110
	defaultSliderWidth = 44
	minimumViewWidth   = 40
	bigStepMultiplier  = 10
	maxPresetShortcuts = 9
)

// AppConfig configures the root BubbleTea model.
type AppConfig struct {
	Version   string
	ThemeName string
	Simulator *simulator.Simulator
	Logger    *zap.Logger
}

// App is the root TUI model. It owns one Simulator and mutates it only from
// Update.
type App struct {
	theme   Theme
	logger  *zap.Logger
	version string

	sim     *simulator.Simulator
	sliders []simulator.Slider
	focus   int

	tables    reference.Tables
	tablesErr error

	width  int
	height int

	lastErr error
}

// NewApp constructs the root TUI model. A nil simulator is replaced by one
// built from defaults.
func NewApp(cfg AppConfig) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sim := cfg.Simulator
	if sim == nil {
		var err error
		sim, err = simulator.New(logger, simulator.Options{})
		if err != nil {
			return nil, fmt.Errorf("build simulator: %w", err)
		}
	}

	tables, tablesErr := reference.Load()
	if tablesErr != nil {
		logger.Warn("reference tables unavailable",
			zap.String("op", "tui.NewApp"),
			zap.Error(tablesErr),
		)
	}

	return &App{
		theme:     ResolveTheme(cfg.ThemeName),
		logger:    logger,
		version:   fallbackText(cfg.Version, "dev"),
		sim:       sim,
		sliders:   simulator.Sliders(),
		tables:    tables,
		tablesErr: tablesErr,
		width:     defaultAppWidth,
	}, nil
}

// Init starts background commands if needed.
func (m *App) Init() tea.Cmd {
	return nil
}

// Update applies state changes from user input.
func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "tab":
			m.shiftView(1)
		case "shift+tab":
			m.shiftView(-1)
		case "up", "k":
			m.moveFocus(-1)
		case "down", "j":
			m.moveFocus(1)
		case "left", "h":
			m.adjustFocused(-1)
		case "right", "l":
			m.adjustFocused(1)
		case "pgdown", "H":
			m.adjustFocused(-bigStepMultiplier)
		case "pgup", "L":
			m.adjustFocused(bigStepMultiplier)
		default:
			if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
				m.handlePresetShortcut(msg.Runes[0])
			}
		}
		return m, nil
	}

	return m, nil
}

// View renders status bar, tab bar, sliders beside the selected view, and a
// help line.
func (m *App) View() string {
	width := m.width
	if width <= 0 {
		width = defaultAppWidth
	}

	state := m.sim.State()
	statusLine := m.renderStatus(width, state)
	tabs := m.renderTabs(state.View)
	body := m.renderBody(width, state)
	help := m.theme.MutedStyle.Render("tab/shift+tab view | ↑/↓ select | ←/→ adjust | H/L ×10 | 1-9 preset | q quit")

	lines := []string{statusLine, tabs, body}
	if m.lastErr != nil {
		lines = append(lines, m.theme.ErrorStyle.Render("error: "+m.lastErr.Error()))
	}
	lines = append(lines, help)
	return strings.Join(lines, "\n")
}

// Simulator returns the owned simulator.
func (m *App) Simulator() *simulator.Simulator {
	return m.sim
}

// Focused returns the field of the selected slider.
func (m *App) Focused() simulator.Field {
	return m.sliders[m.focus].Field
}

func (m *App) shiftView(delta int) {
	views := simulator.Views()
	current := m.sim.State().View
	index := 0
	for i, v := range views {
		if v == current {
			index = i
			break
		}
	}
	next := (index + delta + len(views)) % len(views)
	m.setErr(m.sim.SetView(views[next]))
}

func (m *App) moveFocus(delta int) {
	m.focus = (m.focus + delta + len(m.sliders)) % len(m.sliders)
}

func (m *App) adjustFocused(steps int) {
	slider := m.sliders[m.focus]
	current, err := simulator.Get(m.sim.Inputs(), slider.Field)
	if err != nil {
		m.setErr(err)
		return
	}
	next := slider.Clamp(current + float64(steps)*slider.Step)
	if next == current {
		return
	}
	m.setErr(m.sim.Set(slider.Field, next))
}

func (m *App) handlePresetShortcut(r rune) {
	if r < '1' || r > '0'+maxPresetShortcuts {
		return
	}
	presets := m.sim.Presets().List()
	index := int(r - '1')
	if index >= len(presets) {
		return
	}
	m.setErr(m.sim.ApplyPreset(presets[index].Key))
}

func (m *App) setErr(err error) {
	m.lastErr = err
	if err != nil {
		m.logger.Warn("tui action failed",
			zap.String("op", "tui.Update"),
			zap.Error(err),
		)
	}
}

func (m *App) renderStatus(width int, state simulator.State) string {
	parts := []string{
		"business-case " + m.version,
		"preset: " + fallbackText(state.ActivePreset, "custom"),
		"total: " + format.WholeCurrency(state.Outputs.TotalCost),
	}
	style := m.theme.StatusBarStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.Join(parts, " | "))
}

func (m *App) renderTabs(current simulator.View) string {
	tabs := make([]string, 0, len(simulator.Views()))
	for _, v := range simulator.Views() {
		if v == current {
			tabs = append(tabs, m.theme.ActiveTabStyle.Render(viewTitle(v)))
			continue
		}
		tabs = append(tabs, m.theme.TabStyle.Render(viewTitle(v)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *App) renderBody(width int, state simulator.State) string {
	sliderWidth := defaultSliderWidth
	if width/3 < sliderWidth {
		sliderWidth = width / 3
	}

	viewWidth := width - sliderWidth - 1
	if viewWidth < minimumViewWidth {
		viewWidth = minimumViewWidth
	}

	sliderView := renderPanel(sliderWidth, m.theme.SliderPanelStyle, m.renderSliders(state))
	content := renderPanel(viewWidth, m.theme.PanelStyle, m.renderView(state))
	return lipgloss.JoinHorizontal(lipgloss.Top, sliderView, content)
}

func (m *App) renderSliders(state simulator.State) string {
	lines := []string{m.theme.HeadingStyle.Render("Inputs")}
	for i, slider := range m.sliders {
		value, err := simulator.Get(state.Inputs, slider.Field)
		if err != nil {
			continue
		}
		line := fmt.Sprintf("%s: %s", slider.Label, sliderValue(slider.Field, value))
		if i == m.focus {
			lines = append(lines, m.theme.FocusedSliderStyle.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+line)
	}

	lines = append(lines, "", m.theme.HeadingStyle.Render("Presets"))
	for i, p := range m.sim.Presets().List() {
		marker := " "
		if p.Key == state.ActivePreset {
			marker = "*"
		}
		if i < maxPresetShortcuts {
			lines = append(lines, fmt.Sprintf("%s %d %s", marker, i+1, p.Name))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s   %s", marker, p.Name))
	}
	return strings.Join(lines, "\n")
}

func sliderValue(field simulator.Field, value float64) string {
	switch field {
	case simulator.FieldHourlyRate:
		return format.Rate(value)
	case simulator.FieldImplementationHours:
		return fmt.Sprintf("%.0f h", value)
	case simulator.FieldContingencyRate:
		return format.Fraction(value)
	default:
		return format.WholeCurrency(value)
	}
}

func renderPanel(width int, style lipgloss.Style, content string) string {
	if width > 0 {
		return style.Width(width).Render(content)
	}
	return style.Render(content)
}

func fallbackText(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
