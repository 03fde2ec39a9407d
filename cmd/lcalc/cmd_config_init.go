package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"lcalc/cmd/lcalc/expr"
	"lcalc/cmd/lcalc/exprcfg"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

const configInitHeader = "# " + appName + " configuration\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n" +
	"# codes:    one character per operation and per group delimiter\n" +
	"# log_level: trace | debug | info | warn | error | off\n" +
	"# history:  expressions evaluated by the CLI, newest last\n" +
	"# ─────────────────────────────────────────────────────────────────────────────\n\n"

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: "Create the config directory and write " + configFileName + " with the default\n" +
		"alphabet. With --interactive, the six codes are asked for first.\n\n" +
		"The default config directory is resolved as:\n" +
		"  $LCALC_CONFIG_DIR > $XDG_CONFIG_HOME/" + appName + " > ~/.config/" + appName,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		force, _ := cmd.Flags().GetBool("force")
		dir, _ := cmd.Flags().GetString("dir")
		interactive, _ := cmd.Flags().GetBool("interactive")

		if dir == "" {
			var err error
			dir, err = resolveConfigDir()
			if err != nil {
				return err
			}
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}

		cfg := exprcfg.Default()
		if interactive {
			codes, err := askCodes(cfg.Codes)
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(os.Stderr, "aborted")
				return nil
			}
			if err != nil {
				return err
			}
			cfg.Codes = codes
		}

		content, err := exprcfg.Marshal(cfg)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, configFileName)
		if err := writeInitFile(path, configInitHeader, content, force); err != nil {
			return err
		}

		fmt.Fprintf(os.Stderr, "initialised %s\n", path)
		fmt.Fprintf(os.Stderr, "  %s\n", codesSummary(cfg.Codes))
		return nil
	},
}

// askCodes prompts for each code, starting from base.
func askCodes(base expr.Codes) (expr.Codes, error) {
	values := [6]string{
		string(base.Add), string(base.Sub), string(base.Mul),
		string(base.Div), string(base.Open), string(base.Close),
	}
	titles := [6]string{"Add", "Subtract", "Multiply", "Divide", "Open group", "Close group"}

	fields := make([]huh.Field, 0, len(values))
	for i := range values {
		fields = append(fields, huh.NewInput().
			Title(titles[i]).
			CharLimit(1).
			Value(&values[i]).
			Validate(validateCode))
	}
	if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
		return expr.Codes{}, err
	}

	codes := codesFromStrings(values)
	if err := codes.Validate(); err != nil {
		return expr.Codes{}, fmt.Errorf("invalid alphabet: %w", err)
	}
	return codes, nil
}

func validateCode(s string) error {
	if utf8.RuneCountInString(s) != 1 {
		return errors.New("enter exactly one character")
	}
	return nil
}

func codesFromStrings(v [6]string) expr.Codes {
	first := func(s string) rune {
		r, _ := utf8.DecodeRuneInString(s)
		return r
	}
	return expr.Codes{
		Add:   first(v[0]),
		Sub:   first(v[1]),
		Mul:   first(v[2]),
		Div:   first(v[3]),
		Open:  first(v[4]),
		Close: first(v[5]),
	}
}

func writeInitFile(path, header string, content []byte, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if header != "" {
		fmt.Fprint(f, header)
	}
	_, err = f.Write(content)
	return err
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing config file")
	configInitCmd.Flags().String("dir", "", "target config directory (default: auto-resolved)")
	configInitCmd.Flags().Bool("interactive", false, "choose the codes in a form")
}
