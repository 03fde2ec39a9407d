package exprcfg

import (
	"fmt"
	"unicode/utf8"

	"lcalc/cmd/lcalc/expr"

	"gopkg.in/yaml.v3"
)

// DefaultMaxEntries bounds the history file when the config does not.
const DefaultMaxEntries = 500

// Config is the Go-level representation of a parsed config file.
type Config struct {
	Codes    expr.Codes
	LogLevel string
	History  History
}

// History controls the expression history shared by the interactive commands.
type History struct {
	Enabled    bool
	MaxEntries int
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Codes:    expr.DefaultCodes,
		LogLevel: "warn",
		History:  History{Enabled: true, MaxEntries: DefaultMaxEntries},
	}
}

// ---- Internal YAML parsing structs ----------------------------------------
//
// Codes are held as strings because YAML has no character type; absent keys
// stay nil so that defaults survive a partial file.

type yamlConfig struct {
	Codes    yamlCodes    `yaml:"codes,omitempty"`
	LogLevel *string      `yaml:"log_level,omitempty"`
	History  *yamlHistory `yaml:"history,omitempty"`
}

type yamlCodes struct {
	Add   *string `yaml:"add,omitempty"`
	Sub   *string `yaml:"sub,omitempty"`
	Mul   *string `yaml:"mul,omitempty"`
	Div   *string `yaml:"div,omitempty"`
	Open  *string `yaml:"open,omitempty"`
	Close *string `yaml:"close,omitempty"`
}

type yamlHistory struct {
	Enabled    *bool `yaml:"enabled,omitempty"`
	MaxEntries *int  `yaml:"max_entries,omitempty"`
}

// ---- Parse -----------------------------------------------------------------

// Parse decodes a config file. Keys that are absent keep their Default value.
// An empty document yields Default().
func Parse(in []byte) (Config, error) {
	cfg := Default()

	var docNode yaml.Node
	if err := yaml.Unmarshal(in, &docNode); err != nil {
		return Config{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}
	if len(docNode.Content) == 0 {
		return cfg, nil
	}
	root := docNode.Content[0]
	if root.Kind != yaml.MappingNode {
		return Config{}, fmt.Errorf("phase=parse path=<doc>: expected a mapping, got YAML kind %d", root.Kind)
	}

	var yc yamlConfig
	if err := root.Decode(&yc); err != nil {
		return Config{}, fmt.Errorf("phase=parse path=<doc>: %w", err)
	}

	codes, err := convertCodes(yc.Codes, cfg.Codes)
	if err != nil {
		return Config{}, err
	}
	cfg.Codes = codes

	if yc.LogLevel != nil {
		cfg.LogLevel = *yc.LogLevel
	}

	if yc.History != nil {
		if yc.History.Enabled != nil {
			cfg.History.Enabled = *yc.History.Enabled
		}
		if yc.History.MaxEntries != nil {
			if *yc.History.MaxEntries <= 0 {
				return Config{}, fmt.Errorf("phase=config path=history.max_entries: must be positive, got %d", *yc.History.MaxEntries)
			}
			cfg.History.MaxEntries = *yc.History.MaxEntries
		}
	}

	return cfg, nil
}

// convertCodes overlays the configured codes on base and validates the
// resulting alphabet.
func convertCodes(yc yamlCodes, base expr.Codes) (expr.Codes, error) {
	fields := []struct {
		name string
		raw  *string
		dst  *rune
	}{
		{"add", yc.Add, &base.Add},
		{"sub", yc.Sub, &base.Sub},
		{"mul", yc.Mul, &base.Mul},
		{"div", yc.Div, &base.Div},
		{"open", yc.Open, &base.Open},
		{"close", yc.Close, &base.Close},
	}
	for _, f := range fields {
		if f.raw == nil {
			continue
		}
		r, err := singleRune(*f.raw)
		if err != nil {
			return expr.Codes{}, fmt.Errorf("phase=config path=codes.%s: %w", f.name, err)
		}
		*f.dst = r
	}
	if err := base.Validate(); err != nil {
		return expr.Codes{}, fmt.Errorf("phase=config path=codes.%w", err)
	}
	return base, nil
}

// singleRune accepts strings of exactly one character.
func singleRune(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("code must be exactly one character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// ---- Marshal ---------------------------------------------------------------

type yamlOut struct {
	Codes    yamlCodesOut   `yaml:"codes"`
	LogLevel string         `yaml:"log_level"`
	History  yamlHistoryOut `yaml:"history"`
}

type yamlCodesOut struct {
	Add   string `yaml:"add"`
	Sub   string `yaml:"sub"`
	Mul   string `yaml:"mul"`
	Div   string `yaml:"div"`
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

type yamlHistoryOut struct {
	Enabled    bool `yaml:"enabled"`
	MaxEntries int  `yaml:"max_entries"`
}

// Marshal renders cfg as a complete config file that Parse reads back.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(yamlOut{
		Codes: yamlCodesOut{
			Add:   string(cfg.Codes.Add),
			Sub:   string(cfg.Codes.Sub),
			Mul:   string(cfg.Codes.Mul),
			Div:   string(cfg.Codes.Div),
			Open:  string(cfg.Codes.Open),
			Close: string(cfg.Codes.Close),
		},
		LogLevel: cfg.LogLevel,
		History: yamlHistoryOut{
			Enabled:    cfg.History.Enabled,
			MaxEntries: cfg.History.MaxEntries,
		},
	})
}
