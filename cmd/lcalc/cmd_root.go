package main

import (
	"fmt"

	"lcalc/pkg/lib"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   appName + " <expression>",
	Short: "Evaluate letter-coded arithmetic expressions",
	Long: appName + " evaluates expressions written with letters instead of symbols.\n" +
		"Default codes:\n\n" +
		"  a add   b subtract   c multiply   d divide   e (   f )\n\n" +
		"Operators apply strictly left to right, groups are evaluated first.\n" +
		"  " + appName + " 3a2c4        → 20\n" +
		"  " + appName + " 3ae4c66fb32  → 235\n\n" +
		"The codes can be changed in the config file (" + appName + " config init);\n" +
		"`" + appName + " config show` prints the codes in effect.",
	Example: "  " + appName + " 500a10b66c32\n  " + appName + " --json 3aa2c4",
	// Positional args are expressions, not subcommand names.
	Args: cobra.ArbitraryArgs,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		switch len(args) {
		case 0:
			cmd.Println(cmd.UsageString())
			return &lib.UsageError{Msg: "missing expression"}
		case 1:
		default:
			return &lib.UsageError{Msg: fmt.Sprintf("expected exactly one expression, got %d arguments", len(args))}
		}

		s, err := newSession()
		if err != nil {
			return err
		}
		return runEval(cmd, s, args[0], flagJSON)
	},
}

// runEval evaluates one expression and writes the outcome in text or JSON.
func runEval(cmd *cobra.Command, s *session, expression string, asJSON bool) error {
	v, err := s.eval(expression)
	if asJSON {
		if werr := writeJSON(cmd.OutOrStdout(), newReport(expression, v, err)); werr != nil {
			return werr
		}
		if err != nil {
			return &reportedError{err: err}
		}
		return nil
	}
	if err != nil {
		return &evalError{expression: expression, err: err}
	}
	fmt.Fprintln(cmd.OutOrStdout(), formatResult(v))
	return nil
}
