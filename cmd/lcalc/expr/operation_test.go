package expr

import (
	"errors"
	"math"
	"strconv"
	"testing"
)

func TestOperation_FromCode(t *testing.T) {
	tests := []struct {
		code rune
		want OpKind
	}{
		{'a', OpAdd},
		{'b', OpSub},
		{'c', OpMul},
		{'d', OpDiv},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			op, err := NewOperation(tt.code, "42")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if op.Kind() != tt.want || op.First() != 42 {
				t.Fatalf("got %s, want %s(42)", op, tt.want)
			}
		})
	}
}

func TestOperation_InvalidCode(t *testing.T) {
	for _, code := range []rune{'e', 'f', 'x', '+'} {
		_, err := DefaultCodes.OperationFromResult(code, 1)
		if !errors.Is(err, ErrInvalidOperationCode) {
			t.Fatalf("code %q: expected ErrInvalidOperationCode, got %v", code, err)
		}
		var opErr *OperationError
		if !errors.As(err, &opErr) || opErr.Code != code {
			t.Fatalf("code %q: expected payload to carry the code, got %#v", code, err)
		}
	}
}

func TestOperation_InvalidFirstOperand(t *testing.T) {
	t.Run("not a number", func(t *testing.T) {
		_, err := NewOperation('a', "1x")
		if !errors.Is(err, ErrInvalidFirstOperand) {
			t.Fatalf("expected ErrInvalidFirstOperand, got %v", err)
		}
		mustContain(t, err.Error(), `"1x"`, "invalid syntax")
	})

	t.Run("out of range", func(t *testing.T) {
		_, err := NewOperation('a', "99999999999999999999")
		var opErr *OperationError
		if !errors.As(err, &opErr) {
			t.Fatalf("expected *OperationError, got %v", err)
		}
		if opErr.Kind != ErrInvalidFirstOperand || opErr.Detail != strconv.ErrRange.Error() {
			t.Fatalf("unexpected payload: %#v", opErr)
		}
	})

	t.Run("negative", func(t *testing.T) {
		_, err := NewOperation('a', "-1")
		if !errors.Is(err, ErrInvalidFirstOperand) {
			t.Fatalf("expected ErrInvalidFirstOperand, got %v", err)
		}
	})
}

func TestOperation_Apply(t *testing.T) {
	tests := []struct {
		name   string
		code   rune
		first  uint64
		second string
		want   uint64
	}{
		{"add", 'a', 3, "2", 5},
		{"sub", 'b', 10, "4", 6},
		{"sub to zero", 'b', 7, "7", 0},
		{"mul", 'c', 6, "7", 42},
		{"div truncates", 'd', 7, "2", 3},
		{"div exact", 'd', 34, "2", 17},
		{"leading zeros", 'a', 1, "007", 8},
		{"max", 'a', math.MaxUint64 - 1, "1", math.MaxUint64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := DefaultCodes.OperationFromResult(tt.code, tt.first)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got, err := op.Apply(tt.second)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("%s %s = %d, want %d", op, tt.second, got, tt.want)
			}
		})
	}
}

func TestOperation_CheckedFailures(t *testing.T) {
	tests := []struct {
		name   string
		code   rune
		first  uint64
		second uint64
	}{
		{"add overflow", 'a', math.MaxUint64, 1},
		{"sub underflow", 'b', 1, 2},
		{"mul overflow", 'c', math.MaxUint64 / 2, 3},
		{"div by zero", 'd', 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := DefaultCodes.OperationFromResult(tt.code, tt.first)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			_, err = op.ApplyResult(tt.second)
			if !errors.Is(err, ErrOverflow) {
				t.Fatalf("expected ErrOverflow, got %v", err)
			}
			var opErr *OperationError
			if errors.As(err, &opErr) && opErr.KindName() != "OverflowError" {
				t.Fatalf("unexpected kind name %q", opErr.KindName())
			}
		})
	}
}

func TestOperation_InvalidSecondOperand(t *testing.T) {
	op, _ := NewOperation('c', "2")
	_, err := op.Apply("")
	if !errors.Is(err, ErrInvalidSecondOperand) {
		t.Fatalf("expected ErrInvalidSecondOperand, got %v", err)
	}
}

func TestOperation_IsValue(t *testing.T) {
	op, _ := NewOperation('a', "5")
	first, _ := op.Apply("1")
	second, _ := op.Apply("1")
	if first != second || op.First() != 5 {
		t.Fatalf("operation changed after apply: %s", op)
	}
}

func TestCodes_Validate(t *testing.T) {
	if err := DefaultCodes.Validate(); err != nil {
		t.Fatalf("default codes rejected: %v", err)
	}

	tests := []struct {
		name  string
		codes Codes
		want  string
	}{
		{"duplicate", Codes{Add: 'a', Sub: 'a', Mul: 'c', Div: 'd', Open: 'e', Close: 'f'}, "already used by add"},
		{"digit", Codes{Add: 'a', Sub: 'b', Mul: '7', Div: 'd', Open: 'e', Close: 'f'}, "is a digit"},
		{"space", Codes{Add: 'a', Sub: 'b', Mul: 'c', Div: 'd', Open: ' ', Close: 'f'}, "not a printable symbol"},
		{"unset", Codes{Add: 'a', Sub: 'b', Mul: 'c', Div: 'd', Open: 'e'}, "close: code is not set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.codes.Validate()
			if err == nil {
				t.Fatal("expected error")
			}
			mustContain(t, err.Error(), tt.want)
		})
	}
}
