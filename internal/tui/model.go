// Package tui is the interactive calculator: one form per operation, a text
// field per input slot and a result panel that flashes on every calculation.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/roach88/abacus/internal/calc"
	"github.com/roach88/abacus/internal/catalog"
	"github.com/roach88/abacus/internal/display"
	"github.com/roach88/abacus/internal/format"
)

// Config holds what the TUI needs from the environment.
type Config struct {
	Calculator *calc.Calculator
	Catalog    *catalog.Catalog

	// Locale renders slot ranges next to their labels.
	Locale *format.Locale

	// ClearAfter overrides display.DefaultClearAfter when positive.
	ClearAfter time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the bubbletea model of the calculator.
type Model struct {
	width  int
	height int

	calc   *calc.Calculator
	locale *format.Locale
	now    func() time.Time

	forms     []catalog.Form
	formIndex int

	inputs []textinput.Model
	focus  int

	panel *display.Panel
}

// New creates the model with the first form selected.
func New(cfg Config) Model {
	panel := display.NewPanel()
	if cfg.ClearAfter > 0 {
		panel.ClearAfter = cfg.ClearAfter
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	m := Model{
		calc:   cfg.Calculator,
		locale: cfg.Locale,
		now:    now,
		forms:  cfg.Catalog.Forms(),
		panel:  panel,
	}
	m.selectForm(0)
	return m
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case flashMsg:
		m.panel.Tick(time.Time(msg))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m.updateFocused(msg)
}

// handleKeyPress handles keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit

	case "up":
		if m.formIndex > 0 {
			m.selectForm(m.formIndex - 1)
		}
		return m, nil

	case "down":
		if m.formIndex < len(m.forms)-1 {
			m.selectForm(m.formIndex + 1)
		}
		return m, nil

	case "tab":
		m.focusInput((m.focus + 1) % len(m.inputs))
		return m, nil

	case "shift+tab":
		m.focusInput((m.focus + len(m.inputs) - 1) % len(m.inputs))
		return m, nil

	case "ctrl+l":
		m.panel.Clear()
		return m, nil

	case "enter":
		cmd := m.calculate()
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(m.inputs) == 0 {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// calculate runs the selected form and schedules the end of the flash.
func (m *Model) calculate() tea.Cmd {
	form := m.Form()
	raw := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		raw[i] = in.Value()
	}

	result := m.calc.Calculate(form.Operation, form.Descriptors(raw))
	m.panel.Show(result, m.now())

	if !result.OK() && calc.IsInputError(result.Err) {
		slot := result.Err.Slot
		if form.List || slot >= len(m.inputs) {
			slot = 0
		}
		m.focusInput(slot)
	}

	return tea.Tick(m.panel.ClearAfter, func(t time.Time) tea.Msg {
		return flashMsg(t)
	})
}

// selectForm switches forms and resets the input fields. The panel keeps
// the last result.
func (m *Model) selectForm(i int) {
	m.formIndex = i
	form := m.forms[i]

	slots := len(form.Inputs)
	if form.List {
		slots = 1
	}
	m.inputs = make([]textinput.Model, slots)
	for j := range m.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 256
		ti.Width = 32
		if form.List {
			ti.Placeholder = "1, 2, 3"
		} else {
			ti.Placeholder = "0"
		}
		m.inputs[j] = ti
	}
	m.focusInput(0)
}

func (m *Model) focusInput(i int) {
	for j := range m.inputs {
		if j == i {
			m.inputs[j].Focus()
		} else {
			m.inputs[j].Blur()
		}
	}
	m.focus = i
}

// Form returns the selected form.
func (m Model) Form() catalog.Form { return m.forms[m.formIndex] }

// Focus returns the index of the focused input.
func (m Model) Focus() int { return m.focus }

// Values returns the raw text of every input.
func (m Model) Values() []string {
	out := make([]string, len(m.inputs))
	for i, in := range m.inputs {
		out[i] = in.Value()
	}
	return out
}

// FieldState is the live validity of one input field.
type FieldState int

const (
	FieldEmpty FieldState = iota
	FieldValid
	FieldInvalid
)

// InputState reports whether field i parses and lies within its slot's
// range. Every item of a list field must pass.
func (m Model) InputState(i int) FieldState {
	value := m.inputs[i].Value()
	if strings.TrimSpace(value) == "" {
		return FieldEmpty
	}
	form := m.Form()
	var inputs []calc.Input
	if form.List {
		inputs = form.Descriptors([]string{value})
	} else {
		raw := make([]string, i+1)
		raw[i] = value
		inputs = form.Descriptors(raw)[i:]
	}
	for _, in := range inputs {
		if !in.Check() {
			return FieldInvalid
		}
	}
	return FieldValid
}

// Panel returns the result panel.
func (m Model) Panel() *display.Panel { return m.panel }

// View renders the UI
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("abacus"))
	b.WriteString("\n\n")
	b.WriteString(m.renderForms())
	b.WriteString("\n")

	form := m.Form()
	b.WriteString(TitleStyle.Render(form.Title))
	b.WriteString(" ")
	b.WriteString(SectionStyle.Render(form.Section))
	b.WriteString("\n\n")

	for i, in := range m.inputs {
		label := LabelStyle
		if i == m.focus {
			label = FocusedLabelStyle
		}
		slot := form.Inputs[min(i, len(form.Inputs)-1)]
		b.WriteString(label.Render(slot.Label))
		switch m.InputState(i) {
		case FieldValid:
			in.PromptStyle = ValidInputStyle
			in.TextStyle = ValidInputStyle
		case FieldInvalid:
			in.PromptStyle = InvalidInputStyle
			in.TextStyle = InvalidInputStyle
		}
		b.WriteString(in.View())
		if r := m.describeRange(slot); r != "" {
			b.WriteString(" ")
			b.WriteString(RangeStyle.Render(r))
		}
		b.WriteString("\n")
	}

	b.WriteString(PanelStyle.Render(m.panel.Render()))
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("↑/↓ form • tab field • enter calculate • ctrl+l clear • esc quit"))
	return b.String()
}

// renderForms shows a window of forms around the selection.
func (m Model) renderForms() string {
	const window = 5

	start := max(0, m.formIndex-window/2)
	end := min(len(m.forms), start+window)
	start = max(0, end-window)

	var b strings.Builder
	for i := start; i < end; i++ {
		f := m.forms[i]
		if i == m.formIndex {
			b.WriteString(SelectedFormStyle.Render("› " + f.Title))
		} else {
			b.WriteString(FormItemStyle.Render(f.Title))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) describeRange(s catalog.Slot) string {
	if m.locale == nil || (s.Min == nil && s.Max == nil) {
		return ""
	}
	lo, hi := s.Bounds()
	return fmt.Sprintf("[%s, %s]", m.locale.FormatBound(lo), m.locale.FormatBound(hi))
}
