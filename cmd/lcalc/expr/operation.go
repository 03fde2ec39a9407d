package expr

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
)

// OpKind is one of the four arithmetic operations.
type OpKind int

const (
	OpAdd OpKind = iota
	OpSub
	OpMul
	OpDiv
)

func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "Add"
	case OpSub:
		return "Sub"
	case OpMul:
		return "Mul"
	case OpDiv:
		return "Div"
	}
	return "Unknown"
}

// Operation is a pending binary operation: its kind and the already resolved
// first operand. It is an immutable value; a new one is built for every
// operator encountered.
type Operation struct {
	kind  OpKind
	first uint64
}

// NewOperation builds an Operation with the default codes. See
// Codes.NewOperation.
func NewOperation(code rune, first string) (Operation, error) {
	return DefaultCodes.NewOperation(code, first)
}

// NewOperation parses first as a non-negative integer and pairs it with the
// operation named by code.
func (c Codes) NewOperation(code rune, first string) (Operation, error) {
	v, err := parseOperand(first)
	if err != nil {
		return Operation{}, &OperationError{Kind: ErrInvalidFirstOperand, Text: first, Detail: err.Error()}
	}
	return c.OperationFromResult(code, v)
}

// OperationFromResult pairs an already resolved first operand, typically the
// result of a prior operation or group, with the operation named by code.
func (c Codes) OperationFromResult(code rune, first uint64) (Operation, error) {
	k, ok := c.kindOf(code)
	if !ok {
		return Operation{}, &OperationError{Kind: ErrInvalidOperationCode, Code: code}
	}
	return Operation{kind: k, first: first}, nil
}

// Kind returns the arithmetic kind of the operation.
func (o Operation) Kind() OpKind { return o.kind }

// First returns the first operand.
func (o Operation) First() uint64 { return o.first }

func (o Operation) String() string {
	return fmt.Sprintf("%s(%d)", o.kind, o.first)
}

// Apply parses second as a non-negative integer and applies it.
func (o Operation) Apply(second string) (uint64, error) {
	v, err := parseOperand(second)
	if err != nil {
		return 0, &OperationError{Kind: ErrInvalidSecondOperand, Text: second, Detail: err.Error()}
	}
	return o.ApplyResult(v)
}

// ApplyResult computes first <op> second with checked arithmetic. Overflow,
// subtraction below zero and division by zero all fail with ErrOverflow.
// Division truncates toward zero.
func (o Operation) ApplyResult(second uint64) (uint64, error) {
	overflow := &OperationError{Kind: ErrOverflow}
	switch o.kind {
	case OpAdd:
		sum, carry := bits.Add64(o.first, second, 0)
		if carry != 0 {
			return 0, overflow
		}
		return sum, nil
	case OpSub:
		diff, borrow := bits.Sub64(o.first, second, 0)
		if borrow != 0 {
			return 0, overflow
		}
		return diff, nil
	case OpMul:
		hi, lo := bits.Mul64(o.first, second)
		if hi != 0 {
			return 0, overflow
		}
		return lo, nil
	case OpDiv:
		if second == 0 {
			return 0, overflow
		}
		return o.first / second, nil
	}
	return 0, &OperationError{Kind: ErrInvalidOperationCode}
}

// parseOperand accepts only ASCII digit runs. On range errors the returned
// error is the bare strconv reason, e.g. "value out of range".
func parseOperand(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, numErr.Err
		}
		return 0, err
	}
	return v, nil
}
