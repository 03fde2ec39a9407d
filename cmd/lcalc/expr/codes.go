package expr

import (
	"fmt"
	"unicode"
)

// Codes is the reserved part of the symbol alphabet: one character per
// arithmetic operator and one per group boundary. Everything else except
// ASCII digits is invalid input.
type Codes struct {
	Add   rune
	Sub   rune
	Mul   rune
	Div   rune
	Open  rune
	Close rune
}

// DefaultCodes is the alphabet used when nothing else is configured.
var DefaultCodes = Codes{
	Add:   'a',
	Sub:   'b',
	Mul:   'c',
	Div:   'd',
	Open:  'e',
	Close: 'f',
}

// symbolClass is the column of the state-transition table a symbol falls in.
type symbolClass int

const (
	classInvalid symbolClass = iota
	classDigit
	classOperator
	classOpen
	classClose
)

func (c Codes) classify(r rune) symbolClass {
	switch {
	case r >= '0' && r <= '9':
		return classDigit
	case r == c.Add, r == c.Sub, r == c.Mul, r == c.Div:
		return classOperator
	case r == c.Open:
		return classOpen
	case r == c.Close:
		return classClose
	default:
		return classInvalid
	}
}

// kindOf maps an operator code to its arithmetic kind.
func (c Codes) kindOf(code rune) (OpKind, bool) {
	switch code {
	case c.Add:
		return OpAdd, true
	case c.Sub:
		return OpSub, true
	case c.Mul:
		return OpMul, true
	case c.Div:
		return OpDiv, true
	}
	return 0, false
}

// CodeOf returns the operator code for kind k.
func (c Codes) CodeOf(k OpKind) rune {
	switch k {
	case OpAdd:
		return c.Add
	case OpSub:
		return c.Sub
	case OpMul:
		return c.Mul
	default:
		return c.Div
	}
}

// Validate reports whether the six codes form a usable alphabet: each one
// printable, not a digit or whitespace, and no two equal.
func (c Codes) Validate() error {
	named := []struct {
		name string
		code rune
	}{
		{"add", c.Add},
		{"sub", c.Sub},
		{"mul", c.Mul},
		{"div", c.Div},
		{"open", c.Open},
		{"close", c.Close},
	}
	seen := make(map[rune]string, len(named))
	for _, n := range named {
		switch {
		case n.code == 0:
			return fmt.Errorf("%s: code is not set", n.name)
		case n.code >= '0' && n.code <= '9':
			return fmt.Errorf("%s: code %q is a digit", n.name, n.code)
		case unicode.IsSpace(n.code) || !unicode.IsPrint(n.code):
			return fmt.Errorf("%s: code %q is not a printable symbol", n.name, n.code)
		}
		if other, dup := seen[n.code]; dup {
			return fmt.Errorf("%s: code %q already used by %s", n.name, n.code, other)
		}
		seen[n.code] = n.name
	}
	return nil
}
