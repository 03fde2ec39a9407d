package main

import (
	"fmt"
	"os"

	"lcalc/cmd/lcalc/exprcfg"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the " + appName + " config file",
	Long:  "Commands for creating and inspecting the " + appName + " config file.",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: "Print the configuration in effect, as YAML, after defaults are applied.\n" +
		"The source file (or \"defaults\") is reported on stderr.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}
		cfg, path, err := loadConfig(configDir, flagConfig)
		if err != nil {
			return err
		}
		data, err := exprcfg.Marshal(cfg)
		if err != nil {
			return err
		}
		source := path
		if source == "" {
			source = "defaults"
		}
		fmt.Fprintf(os.Stderr, "# source: %s\n", source)
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
