package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"lcalc/cmd/lcalc/expr"
	"lcalc/cmd/lcalc/exprcfg"
	"lcalc/pkg/lib"
)

// appName is the single source of truth for the application name.
// All derived identifiers (env vars, config paths, error messages) are computed from it.
const appName = "lcalc"

const (
	configFileName  = "config.yml"
	historyFileName = "history"
)

// Derived env var names, computed once from appName.
var (
	envConfigDir = strings.ToUpper(appName) + "_CONFIG_DIR"
	envLog       = strings.ToUpper(appName) + "_LOG"
)

// resolveConfigDir returns the base config directory for the application.
// Priority: $<APPNAME>_CONFIG_DIR > $XDG_CONFIG_HOME/<appName> > ~/.config/<appName>
func resolveConfigDir() (string, error) {
	if v := os.Getenv(envConfigDir); v != "" {
		return v, nil
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", appName), nil
}

// loadConfig reads the config file. An explicit path must exist; the default
// <configDir>/config.yml is optional and its absence yields defaults.
func loadConfig(configDir, explicit string) (exprcfg.Config, string, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(configDir, configFileName)
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) && explicit == "" {
		return exprcfg.Default(), "", nil
	}
	if err != nil {
		return exprcfg.Config{}, "", fmt.Errorf("config file %s: %w", path, err)
	}
	cfg, err := exprcfg.Parse(data)
	if err != nil {
		return exprcfg.Config{}, "", fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, path, nil
}

// resolveLogLevel applies the verbosity priority:
// --log-level > $<APPNAME>_LOG > config file.
func resolveLogLevel(flagVal, fileVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv(envLog); v != "" {
		return v
	}
	return fileVal
}

// session bundles everything a command needs to evaluate expressions.
type session struct {
	cfg        exprcfg.Config
	configDir  string
	configPath string // empty when running on defaults
	logger     *slog.Logger
	parser     *expr.Parser
	history    *historyFile
}

// newSession resolves configuration, logging and history from the global
// flags and the environment.
func newSession() (*session, error) {
	configDir, err := resolveConfigDir()
	if err != nil {
		return nil, err
	}
	cfg, path, err := loadConfig(configDir, flagConfig)
	if err != nil {
		return nil, err
	}
	logger := lib.NewLogger(os.Stderr, resolveLogLevel(flagLogLevel, cfg.LogLevel))
	logger.Debug("configuration loaded", "dir", configDir, "file", path, "codes", codesSummary(cfg.Codes))

	return &session{
		cfg:        cfg,
		configDir:  configDir,
		configPath: path,
		logger:     logger,
		parser:     expr.NewParser(cfg.Codes, logger),
		history: &historyFile{
			path:    filepath.Join(configDir, historyFileName),
			max:     cfg.History.MaxEntries,
			enabled: cfg.History.Enabled && !flagNoHistory,
		},
	}, nil
}

// eval parses expression and records it in the history. A failure to write
// the history is logged, never returned.
func (s *session) eval(expression string) (uint64, error) {
	v, err := s.parser.Parse(expression)
	if herr := s.history.Append(expression); herr != nil {
		s.logger.Warn("history not saved", "path", s.history.path, "err", herr)
	}
	return v, err
}

// codesSummary renders an alphabet as "add=a sub=b ...".
func codesSummary(c expr.Codes) string {
	return fmt.Sprintf("add=%c sub=%c mul=%c div=%c open=%c close=%c", c.Add, c.Sub, c.Mul, c.Div, c.Open, c.Close)
}
