package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Full-screen interactive evaluator",
	Long: "Open an interactive screen: type an expression, press Enter to evaluate it.\n" +
		"Up/Down recall previous expressions, Ctrl+C or Esc quits.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		recalled, err := s.history.Entries()
		if err != nil {
			s.logger.Warn("history not loaded", "err", err)
		}
		_, err = tea.NewProgram(newShellModel(s, recalled)).Run()
		return err
	},
}

var (
	styleShellTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	styleShellHelp = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)

	styleShellEcho = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))

	styleShellOK = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42"))

	styleShellErr = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))
)

// maxScrollback bounds the lines kept on screen.
const maxScrollback = 200

type lineKind int

const (
	lineEcho lineKind = iota
	lineResult
	lineError
)

type shellLine struct {
	kind lineKind
	text string
}

type shellModel struct {
	session  *session
	input    textinput.Model
	lines    []shellLine
	recalled []string // oldest first
	cursor   int      // index into recalled; len(recalled) means "new input"
}

func newShellModel(s *session, recalled []string) shellModel {
	ti := textinput.New()
	ti.Placeholder = "expression, e.g. 3ae4c66fb32"
	ti.Focus()
	ti.CharLimit = 256
	return shellModel{
		session:  s,
		input:    ti,
		recalled: recalled,
		cursor:   len(recalled),
	}
}

func (m shellModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m shellModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			expression := strings.TrimSpace(m.input.Value())
			if expression == "" {
				return m, nil
			}
			switch expression {
			case "exit", "quit":
				return m, tea.Quit
			}
			m = m.evaluate(expression)
			m.input.SetValue("")
			return m, nil

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				m.input.SetValue(m.recalled[m.cursor])
				m.input.CursorEnd()
			}
			return m, nil

		case tea.KeyDown:
			if m.cursor < len(m.recalled) {
				m.cursor++
				if m.cursor == len(m.recalled) {
					m.input.SetValue("")
				} else {
					m.input.SetValue(m.recalled[m.cursor])
				}
				m.input.CursorEnd()
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// evaluate runs expression and appends the echo and outcome to the scrollback.
func (m shellModel) evaluate(expression string) shellModel {
	v, err := m.session.eval(expression)
	m.lines = append(m.lines, shellLine{kind: lineEcho, text: "> " + expression})
	if err != nil {
		m.lines = append(m.lines, shellLine{kind: lineError, text: (&evalError{expression: expression, err: err}).Error()})
	} else {
		m.lines = append(m.lines, shellLine{kind: lineResult, text: formatResult(v)})
	}
	if n := len(m.lines); n > maxScrollback {
		m.lines = m.lines[n-maxScrollback:]
	}
	m.recalled = append(m.recalled, expression)
	m.cursor = len(m.recalled)
	return m
}

func (m shellModel) View() string {
	var sb strings.Builder

	sb.WriteString(styleShellTitle.Render(appName+" · "+codesSummary(m.session.cfg.Codes)) + "\n\n")

	for _, line := range m.lines {
		switch line.kind {
		case lineEcho:
			sb.WriteString(styleShellEcho.Render(line.text))
		case lineResult:
			sb.WriteString(styleShellOK.Render(line.text))
		case lineError:
			sb.WriteString(styleShellErr.Render("Error: " + line.text))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("\n> " + m.input.View() + "\n\n")
	sb.WriteString(styleShellHelp.Render("[Enter] evaluate  [↑/↓] history  [Ctrl+C] quit") + "\n")
	return sb.String()
}
