package lib

import (
	"io"
	"log/slog"
	"strings"
)

// LevelTrace sits below slog.LevelDebug and is used for per-symbol parser
// output.
const LevelTrace = slog.LevelDebug - 4

// levelOff is above every level ever logged.
const levelOff = slog.LevelError + 100

// ParseLevel parses a level name. Unknown names yield slog.LevelWarn.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trace":
		return LevelTrace
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning", "":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	case "none", "off":
		return levelOff
	default:
		return slog.LevelWarn
	}
}

// NewLogger returns a text logger writing to w at the named level. "none" and
// "off" return a logger that discards everything.
func NewLogger(w io.Writer, level string) *slog.Logger {
	lvl := ParseLevel(level)
	if lvl >= levelOff {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.LevelKey && len(groups) == 0 {
				if l, ok := a.Value.Any().(slog.Level); ok && l <= LevelTrace {
					a.Value = slog.StringValue("TRACE")
				}
			}
			return a
		},
	}))
}
