package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var (
	styleReplResult = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	styleReplError  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Evaluate expressions line by line with history and line editing",
	Long: "Read expressions from the terminal, one per line, and print each result.\n" +
		"Errors are printed and the loop continues. Type exit, quit or press Ctrl+D to leave.\n" +
		"History is shared with the other commands (" + historyFileName + " in the config directory).",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}

		historyPath := ""
		if s.history.enabled {
			historyPath = s.history.path
		}
		rl, err := readline.NewEx(&readline.Config{
			Prompt:          "> ",
			HistoryFile:     historyPath,
			HistoryLimit:    s.history.max,
			InterruptPrompt: "^C",
			EOFPrompt:       "exit",
		})
		if err != nil {
			return fmt.Errorf("starting line editor: %w", err)
		}
		defer rl.Close()

		return runRepl(rl, rl.Stdout(), s)
	},
}

// lineReader is the part of *readline.Instance the loop needs.
type lineReader interface {
	Readline() (string, error)
}

// runRepl evaluates every line until EOF or an exit command. Ctrl+C on an
// empty line ends the loop, on a partial line it discards the line.
func runRepl(rl lineReader, out io.Writer, s *session) error {
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		expression := strings.TrimSpace(line)
		switch expression {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		v, err := s.parser.Parse(expression)
		if err != nil {
			s.logger.Debug("evaluation failed", "expression", expression, "err", err)
			fmt.Fprintln(out, styleReplError.Render("Error: "+(&evalError{expression: expression, err: err}).Error()))
			continue
		}
		fmt.Fprintln(out, styleReplResult.Render(formatResult(v)))
	}
}
