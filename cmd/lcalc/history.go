package main

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// historyFile stores evaluated expressions, one per line, oldest first. The
// format is the one readline uses for its own history file, so `repl` and the
// other commands share it.
type historyFile struct {
	path    string
	max     int
	enabled bool
}

// Append records expression and trims the file to the newest max entries.
// Blank expressions and a disabled history are no-ops.
func (h *historyFile) Append(expression string) error {
	expression = strings.TrimSpace(expression)
	if !h.enabled || expression == "" || strings.ContainsAny(expression, "\r\n") {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", h.path, err)
	}
	f, err := os.OpenFile(h.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", h.path, err)
	}
	if _, err := fmt.Fprintln(f, expression); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", h.path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	return h.trim()
}

// Entries returns the recorded expressions, oldest first. A missing file
// yields no entries.
func (h *historyFile) Entries() ([]string, error) {
	f, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", h.path, err)
	}
	defer f.Close()

	var entries []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			entries = append(entries, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", h.path, err)
	}
	return entries, nil
}

func (h *historyFile) trim() error {
	if h.max <= 0 {
		return nil
	}
	entries, err := h.Entries()
	if err != nil || len(entries) <= h.max {
		return err
	}
	keep := entries[len(entries)-h.max:]
	return os.WriteFile(h.path, []byte(strings.Join(keep, "\n")+"\n"), 0o644)
}
