package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"lcalc/cmd/lcalc/expr"

	"github.com/goccy/go-json"
)

// evalReport is the --json form of one evaluation.
type evalReport struct {
	Expression string       `json:"expression"`
	Result     *uint64      `json:"result,omitempty"`
	Error      *errorReport `json:"error,omitempty"`
}

type errorReport struct {
	Kind     string       `json:"kind"`
	Message  string       `json:"message"`
	Symbol   string       `json:"symbol,omitempty"`
	Position *int         `json:"position,omitempty"`
	Cause    *causeReport `json:"cause,omitempty"`
}

type causeReport struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func newReport(expression string, v uint64, err error) evalReport {
	r := evalReport{Expression: expression}
	if err == nil {
		r.Result = &v
		return r
	}
	er := &errorReport{Kind: "Error", Message: err.Error()}
	var pe *expr.ParseError
	if errors.As(err, &pe) {
		er.Kind = pe.KindName()
		er.Symbol = pe.Symbol
		if pe.Pos >= 0 {
			pos := pe.Pos
			er.Position = &pos
		}
	}
	var oe *expr.OperationError
	if errors.As(err, &oe) {
		er.Cause = &causeReport{Kind: oe.KindName(), Message: oe.Error()}
	}
	r.Error = er
	return r
}

func writeJSON(w io.Writer, r evalReport) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func formatResult(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// evalError decorates a parse failure with the expression and, when the
// failure is tied to a symbol, a caret under it.
type evalError struct {
	expression string
	err        error
}

func (e *evalError) Error() string {
	var pe *expr.ParseError
	if !errors.As(e.err, &pe) || pe.Pos < 0 {
		return e.err.Error()
	}
	return e.err.Error() + "\n  " + e.expression + "\n  " + caretAt(e.expression, pe.Pos)
}

func (e *evalError) Unwrap() error { return e.err }

// caretAt returns a marker line pointing at the pos-th symbol of s.
func caretAt(s string, pos int) string {
	runes := []rune(s)
	if pos > len(runes) {
		pos = len(runes)
	}
	return strings.Repeat(" ", pos) + "^"
}

// reportedError is returned once the failure has already been written to
// stdout, so main only sets the exit code.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }
