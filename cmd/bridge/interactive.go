package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ffikit/ffi-bridge/cheader"
	"github.com/ffikit/ffi-bridge/pipeline"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	directiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type interactiveModel struct {
	err      error
	cfg      pipeline.Config
	result   *pipeline.Result
	inputs   []textinput.Model
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateEditConfig modelState = iota
	stateRunning
	stateShowResult
)

// Field order matches the inputs slice.
var fieldLabels = []string{"source", "out dir", "lib name", "package", "target os"}

func newInteractiveModel(cfg pipeline.Config) *interactiveModel {
	m := &interactiveModel{cfg: cfg, state: stateEditConfig}

	values := []string{cfg.Source, cfg.OutDir, cfg.LibName, cfg.Package, cfg.TargetOS}
	m.inputs = make([]textinput.Model, len(fieldLabels))
	for i, label := range fieldLabels {
		ti := textinput.New()
		ti.Prompt = label + ": "
		ti.SetValue(values[i])
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	return m
}

type runDoneMsg struct {
	err error
	res *pipeline.Result
}

func (m *interactiveModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *interactiveModel) runPipeline() tea.Msg {
	cfg := m.cfg
	cfg.Source = m.inputs[0].Value()
	cfg.OutDir = m.inputs[1].Value()
	cfg.LibName = m.inputs[2].Value()
	cfg.Package = m.inputs[3].Value()
	cfg.TargetOS = m.inputs[4].Value()
	cfg.BindingFile = ""

	res, err := pipeline.Run(context.Background(), cfg)
	return runDoneMsg{err: err, res: res}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateEditConfig {
				return m, tea.Quit
			}

		case "enter":
			switch m.state {
			case stateEditConfig:
				m.state = stateRunning
				return m, m.runPipeline

			case stateShowResult:
				m.state = stateEditConfig
				m.result = nil
				m.err = nil
			}

		case "tab":
			if m.state == stateEditConfig {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "shift+tab":
			if m.state == stateEditConfig {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + len(m.inputs) - 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}
		}

	case runDoneMsg:
		m.result = msg.res
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateEditConfig {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *interactiveModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("FFI Bridge"))
	b.WriteString("\n\n")

	switch m.state {
	case stateEditConfig:
		b.WriteString("Configure the run:\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter run • ctrl+c quit"))

	case stateRunning:
		b.WriteString("Compiling " + m.inputs[0].Value() + "...\n")

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
			b.WriteString("\n\n")
			b.WriteString(helpStyle.Render("enter back • q quit"))
			break
		}

		b.WriteString(fmt.Sprintf("Bindings written to %s\n\n", m.result.BindingFile))

		b.WriteString("Bound functions:\n")
		for _, d := range m.result.Decls {
			if d.Kind != cheader.DeclFunc {
				continue
			}
			b.WriteString("  " + formatFunc(d) + "\n")
		}

		b.WriteString("\nDirectives:\n")
		for _, line := range m.result.Directives.Lines() {
			b.WriteString("  " + directiveStyle.Render(line) + "\n")
		}

		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter run again • q quit"))
	}

	return b.String()
}

func formatFunc(d cheader.Decl) string {
	var params []string
	for i, p := range d.Params {
		name := p.Name
		if name == "" {
			name = fmt.Sprintf("arg%d", i)
		}
		params = append(params, name+": "+typeStyle.Render(p.Type.String()))
	}
	result := ""
	if !d.Ret.IsVoid() {
		result = " -> " + typeStyle.Render(d.Ret.String())
	}
	return funcStyle.Render(d.Name) + "(" + strings.Join(params, ", ") + ")" + result
}

func runInteractive(cfg pipeline.Config) error {
	p := tea.NewProgram(newInteractiveModel(cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
