// Package tui is the interactive front door: a small menu over the same
// engine operations the CLI exposes. It holds no state of its own; every
// action runs a fresh engine call.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/driftwatch/driftwatch/internal/baseline"
	"github.com/driftwatch/driftwatch/internal/engine"
	"github.com/driftwatch/driftwatch/internal/hashing"
	"github.com/driftwatch/driftwatch/internal/report"
)

type state int

const (
	stateMenu state = iota
	stateInput
	stateWorking
	stateResult
)

type action int

const (
	actionHash action = iota
	actionCreate
	actionCheck
	actionShow
)

var menuItems = []struct {
	label  string
	act    action
	prompt string
}{
	{"Hash a single file", actionHash, "File to hash"},
	{"Create baseline", actionCreate, "Directory to scan"},
	{"Check against baseline", actionCheck, "Directory to check"},
	{"Show baseline", actionShow, "Baseline file"},
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10")).
			Bold(true)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))
)

type doneMsg struct {
	output string
	err    error
}

// Model is the bubbletea model for the driftwatch menu.
type Model struct {
	cfg      engine.Config
	state    state
	cursor   int
	selected action
	input    textinput.Model
	spinner  spinner.Model
	output   string
	err      error
	quitting bool
}

// NewModel builds the menu with cfg as the base for every action.
func NewModel(cfg engine.Config) Model {
	ti := textinput.New()
	ti.Placeholder = "."
	ti.CharLimit = 512
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return Model{cfg: cfg, input: ti, spinner: sp}
}

// Run starts the interactive menu.
func Run(cfg engine.Config) error {
	if _, err := tea.NewProgram(NewModel(cfg), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case doneMsg:
		m.state = stateResult
		m.output = msg.output
		m.err = msg.err
		return m, nil
	}
	if m.state == stateInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateMenu:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(menuItems)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = menuItems[m.cursor].act
			m.state = stateInput
			m.input.SetValue("")
			m.input.Focus()
			return m, textinput.Blink
		}
	case stateInput:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "esc":
			m.state = stateMenu
			return m, nil
		case "enter":
			target := strings.TrimSpace(m.input.Value())
			if target == "" {
				target = "."
			}
			m.state = stateWorking
			return m, tea.Batch(m.spinner.Tick, m.runAction(m.selected, target))
		default:
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
	case stateResult:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		default:
			m.state = stateMenu
			return m, nil
		}
	case stateWorking:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// runAction executes the selected operation off the UI loop.
func (m Model) runAction(act action, target string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		switch act {
		case actionHash:
			digest, err := hashing.Sum(target, orDefault(cfg.Algorithm), cfg.ChunkSize)
			if err != nil {
				return doneMsg{err: err}
			}
			return doneMsg{output: fmt.Sprintf("%s  %s\n", digest, target)}

		case actionCreate:
			cfg.Root = target
			out := filepath.Join(target, baseline.DefaultFileName)
			res, err := engine.Create(context.Background(), cfg, out)
			if err != nil {
				return doneMsg{err: err}
			}
			return doneMsg{output: fmt.Sprintf("Baseline saved to %s\nFiles tracked: %d\n", out, res.Inventory.Count())}

		case actionCheck:
			cfg.Root = target
			chk, err := engine.Check(context.Background(), cfg, filepath.Join(target, baseline.DefaultFileName))
			if err != nil {
				return doneMsg{err: err}
			}
			var buf bytes.Buffer
			report.PrintReport(&buf, chk.Report, chk.Skipped, report.PrintOptions{
				NoColor:      true,
				Duration:     chk.Duration,
				FilesScanned: chk.Current.Count(),
			})
			return doneMsg{output: buf.String()}

		case actionShow:
			inv, err := engine.Describe(target)
			if err != nil {
				return doneMsg{err: err}
			}
			var buf bytes.Buffer
			report.PrintBaseline(&buf, inv, report.PrintOptions{NoColor: true})
			return doneMsg{output: buf.String()}
		}
		return doneMsg{err: fmt.Errorf("unknown action")}
	}
}

func orDefault(algorithm string) string {
	if algorithm == "" {
		return hashing.DefaultAlgorithm
	}
	return algorithm
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("driftwatch") + "\n\n")

	switch m.state {
	case stateMenu:
		for i, item := range menuItems {
			cursor := "  "
			line := item.label
			if i == m.cursor {
				cursor = cursorStyle.Render("> ")
				line = cursorStyle.Render(line)
			}
			b.WriteString(cursor + line + "\n")
		}
		b.WriteString("\n" + hintStyle.Render("↑/↓ move · enter select · q quit") + "\n")
	case stateInput:
		b.WriteString(menuItems[m.cursor].prompt + ":\n")
		b.WriteString(m.input.View() + "\n")
		b.WriteString("\n" + hintStyle.Render("enter run · esc back") + "\n")
	case stateWorking:
		b.WriteString(m.spinner.View() + " working...\n")
	case stateResult:
		if m.err != nil {
			b.WriteString(errStyle.Render("error: "+m.err.Error()) + "\n")
		} else {
			b.WriteString(m.output)
		}
		b.WriteString("\n" + hintStyle.Render("any key for menu · q quit") + "\n")
	}
	return b.String()
}
