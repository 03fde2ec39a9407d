package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Pick a previous expression and evaluate it again",
	Long: "Open a fuzzy finder over the recorded expressions (newest first) and\n" +
		"evaluate the selected one. With --list, or when stdout is not a terminal,\n" +
		"the history is printed instead.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, _ := cmd.Flags().GetBool("list")

		s, err := newSession()
		if err != nil {
			return err
		}
		entries, err := s.history.Entries()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(os.Stderr, "history is empty")
			return nil
		}

		if list || !readline.IsTerminal(int(os.Stdout.Fd())) {
			for i, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %s\n", i+1, e)
			}
			return nil
		}

		newestFirst := reversed(entries)
		idx, err := fuzzyfinder.Find(
			newestFirst,
			func(i int) string {
				return newestFirst[i]
			},
			fuzzyfinder.WithPromptString("Expression: "),
		)
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		if err != nil {
			return err
		}

		expression := newestFirst[idx]
		fmt.Fprintln(os.Stderr, "> "+expression)
		return runEval(cmd, s, expression, false)
	},
}

func init() {
	historyCmd.Flags().Bool("list", false, "print the history instead of opening the finder")
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[len(in)-1-i] = v
	}
	return out
}
