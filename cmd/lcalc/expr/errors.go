package expr

import (
	"errors"
	"fmt"
)

// Sentinels for every failure kind. Use errors.Is against these; the payload
// travels in *ParseError or *OperationError.
var (
	ErrEmptyExpression       = errors.New("empty expression")
	ErrParseDigit            = errors.New("operand does not fit in an unsigned 64-bit integer")
	ErrInvalidOperation      = errors.New("invalid operation")
	ErrMalformedExpression   = errors.New("malformed expression")
	ErrUnbalancedParenthesis = errors.New("unbalanced parenthesis")
	ErrUnexpectedSymbol      = errors.New("unexpected symbol")
	ErrIllegalState          = errors.New("illegal parser state")

	ErrInvalidFirstOperand  = errors.New("invalid first operand")
	ErrInvalidSecondOperand = errors.New("invalid second operand")
	ErrInvalidOperationCode = errors.New("invalid operation code")
	ErrOverflow             = errors.New("arithmetic overflow")
)

// ParseError is the single error type returned by Parser.Parse. Kind is one
// of the parse sentinels above; the remaining fields are populated according
// to the kind.
type ParseError struct {
	Kind error

	// Symbol is the offending symbol for MalformedExpression,
	// UnbalancedParenthesis and UnexpectedSymbol.
	Symbol string
	// Pos is the zero-based index of Symbol in the input, or -1.
	Pos int

	// Digits and Detail describe a ParseDigitError.
	Digits string
	Detail string

	// State and Operation are the parser context of an UnexpectedSymbol.
	State     State
	Operation *Operation

	// Cause is the *OperationError behind an InvalidOperation, or a short
	// description for IllegalState.
	Cause error
}

func (e *ParseError) Error() string {
	switch e.Kind {
	case ErrParseDigit:
		return fmt.Sprintf("%v: %q (%s)", e.Kind, e.Digits, e.Detail)
	case ErrMalformedExpression, ErrUnbalancedParenthesis:
		if e.Pos >= 0 {
			return fmt.Sprintf("%v: %q at position %d", e.Kind, e.Symbol, e.Pos)
		}
		return fmt.Sprintf("%v: %q", e.Kind, e.Symbol)
	case ErrUnexpectedSymbol:
		return fmt.Sprintf("%v: %q at position %d (state=%s, operation=%s)", e.Kind, e.Symbol, e.Pos, e.State, describe(e.Operation))
	case ErrInvalidOperation, ErrIllegalState:
		if e.Cause != nil {
			return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
		}
	}
	return e.Kind.Error()
}

func (e *ParseError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Kind, e.Cause}
	}
	return []error{e.Kind}
}

// KindName returns the stable identifier of the error kind, e.g.
// "MalformedExpression".
func (e *ParseError) KindName() string {
	switch e.Kind {
	case ErrEmptyExpression:
		return "EmptyExpression"
	case ErrParseDigit:
		return "ParseDigitError"
	case ErrInvalidOperation:
		return "InvalidOperation"
	case ErrMalformedExpression:
		return "MalformedExpression"
	case ErrUnbalancedParenthesis:
		return "UnbalancedParenthesis"
	case ErrUnexpectedSymbol:
		return "UnexpectedSymbol"
	case ErrIllegalState:
		return "IllegalState"
	}
	return "Unknown"
}

// OperationError is returned by Operation construction and application.
type OperationError struct {
	Kind error

	// Text and Detail describe an operand literal that failed to parse.
	Text   string
	Detail string

	// Code is the rejected operator code of an InvalidOperationCode.
	Code rune
}

func (e *OperationError) Error() string {
	switch e.Kind {
	case ErrInvalidFirstOperand, ErrInvalidSecondOperand:
		return fmt.Sprintf("%v %q: %s", e.Kind, e.Text, e.Detail)
	case ErrInvalidOperationCode:
		return fmt.Sprintf("%v %q", e.Kind, e.Code)
	}
	return e.Kind.Error()
}

func (e *OperationError) Unwrap() error { return e.Kind }

// KindName returns the stable identifier of the error kind, e.g.
// "OverflowError".
func (e *OperationError) KindName() string {
	switch e.Kind {
	case ErrInvalidFirstOperand:
		return "InvalidFirstOperand"
	case ErrInvalidSecondOperand:
		return "InvalidSecondOperand"
	case ErrInvalidOperationCode:
		return "InvalidOperationCode"
	case ErrOverflow:
		return "OverflowError"
	}
	return "Unknown"
}

func describe(op *Operation) string {
	if op == nil {
		return "none"
	}
	return op.String()
}
