package exprcfg

import (
	"testing"

	"lcalc/cmd/lcalc/expr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_EmptyDocumentIsDefault(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Parse([]byte("# only a comment\n"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_FullDocument(t *testing.T) {
	in := []byte(`
codes:
  add: "+"
  sub: "-"
  mul: "*"
  div: "/"
  open: "("
  close: ")"
log_level: debug
history:
  enabled: false
  max_entries: 20
`)
	cfg, err := Parse(in)
	require.NoError(t, err)

	assert.Equal(t, expr.Codes{Add: '+', Sub: '-', Mul: '*', Div: '/', Open: '(', Close: ')'}, cfg.Codes)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, 20, cfg.History.MaxEntries)
}

func TestParse_PartialCodesKeepDefaults(t *testing.T) {
	cfg, err := Parse([]byte("codes:\n  add: p\n  sub: m\n"))
	require.NoError(t, err)

	want := expr.DefaultCodes
	want.Add, want.Sub = 'p', 'm'
	assert.Equal(t, want, cfg.Codes)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.History.Enabled)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"multi-character code", "codes:\n  add: plus\n", []string{"phase=config", "path=codes.add", "exactly one character"}},
		{"empty code", "codes:\n  open: \"\"\n", []string{"path=codes.open", "exactly one character"}},
		{"digit code", "codes:\n  mul: 7\n", []string{"path=codes.mul", "is a digit"}},
		{"collision with default", "codes:\n  add: b\n", []string{"path=codes.sub", "already used by add"}},
		{"bad max entries", "history:\n  max_entries: 0\n", []string{"path=history.max_entries", "must be positive"}},
		{"not a mapping", "- a\n- b\n", []string{"phase=parse", "expected a mapping"}},
		{"invalid yaml", "codes: [\n", []string{"phase=parse"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.in))
			require.Error(t, err)
			for _, sub := range tt.want {
				assert.Contains(t, err.Error(), sub)
			}
		})
	}
}

func TestMarshal_ParsesBack(t *testing.T) {
	cfg := Config{
		Codes:    expr.Codes{Add: '+', Sub: '-', Mul: 'x', Div: ':', Open: '[', Close: ']'},
		LogLevel: "trace",
		History:  History{Enabled: true, MaxEntries: 7},
	}
	out, err := Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(out), "max_entries: 7")

	back, err := Parse(out)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
