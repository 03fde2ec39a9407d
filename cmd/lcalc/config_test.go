package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"lcalc/cmd/lcalc/expr"
	"lcalc/cmd/lcalc/exprcfg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSession returns a session on default codes with history stored in a
// temporary directory.
func newTestSession(t *testing.T) *session {
	t.Helper()
	dir := t.TempDir()
	cfg := exprcfg.Default()
	logger := slog.New(slog.DiscardHandler)
	return &session{
		cfg:       cfg,
		configDir: dir,
		logger:    logger,
		parser:    expr.NewParser(cfg.Codes, logger),
		history: &historyFile{
			path:    filepath.Join(dir, historyFileName),
			max:     cfg.History.MaxEntries,
			enabled: true,
		},
	}
}

func TestResolveConfigDir(t *testing.T) {
	t.Run("explicit env wins", func(t *testing.T) {
		t.Setenv(envConfigDir, "/tmp/custom")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := resolveConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/custom", dir)
	})

	t.Run("xdg", func(t *testing.T) {
		t.Setenv(envConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := resolveConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join("/tmp/xdg", appName), dir)
	})

	t.Run("home", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv(envConfigDir, "")
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", home)
		dir, err := resolveConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", appName), dir)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing default file yields defaults", func(t *testing.T) {
		cfg, path, err := loadConfig(t.TempDir(), "")
		require.NoError(t, err)
		assert.Equal(t, exprcfg.Default(), cfg)
		assert.Empty(t, path)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		_, _, err := loadConfig(t.TempDir(), filepath.Join(t.TempDir(), "nope.yml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope.yml")
	})

	t.Run("default file is read", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, configFileName)
		require.NoError(t, os.WriteFile(file, []byte("codes:\n  add: p\nlog_level: debug\n"), 0o644))

		cfg, path, err := loadConfig(dir, "")
		require.NoError(t, err)
		assert.Equal(t, file, path)
		assert.Equal(t, 'p', cfg.Codes.Add)
		assert.Equal(t, "debug", cfg.LogLevel)
	})

	t.Run("invalid file names the path", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, configFileName)
		require.NoError(t, os.WriteFile(file, []byte("codes:\n  add: b\n"), 0o644))

		_, _, err := loadConfig(dir, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), file)
		assert.Contains(t, err.Error(), "phase=config")
	})
}

func TestResolveLogLevel(t *testing.T) {
	t.Setenv(envLog, "")
	assert.Equal(t, "error", resolveLogLevel("", "error"))

	t.Setenv(envLog, "info")
	assert.Equal(t, "info", resolveLogLevel("", "error"))
	assert.Equal(t, "trace", resolveLogLevel("trace", "error"))
}

func TestSession_EvalRecordsHistory(t *testing.T) {
	s := newTestSession(t)

	v, err := s.eval("3a2c4")
	require.NoError(t, err)
	assert.Equal(t, uint64(20), v)

	_, err = s.eval("3aa2c4")
	require.ErrorIs(t, err, expr.ErrMalformedExpression)

	entries, err := s.history.Entries()
	require.NoError(t, err)
	assert.Equal(t, []string{"3a2c4", "3aa2c4"}, entries)
}

func TestCodesSummary(t *testing.T) {
	assert.Equal(t, "add=a sub=b mul=c div=d open=e close=f", codesSummary(expr.DefaultCodes))
}
