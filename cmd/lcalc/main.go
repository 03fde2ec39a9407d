package main

import (
	"errors"
	"os"

	"lcalc/pkg/lib"

	"github.com/spf13/cobra"
)

var (
	flagConfig    string
	flagLogLevel  string
	flagNoHistory bool
	flagJSON      bool
)

func main() {
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "",
		"config file (default: ~/.config/"+appName+"/"+configFileName+")")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "",
		"diagnostic log level: trace, debug, info, warn, error, none (default: $"+envLog+" or config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoHistory, "no-history", false,
		"do not record evaluated expressions")
	rootCmd.Flags().BoolVar(&flagJSON, "json", false,
		"print the result or error as a JSON object on stdout")

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &lib.UsageError{Msg: err.Error()}
	})
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		var reported *reportedError
		if errors.As(err, &reported) {
			os.Exit(lib.ExitCode(err))
		}
		lib.Exit(err)
	}
}
