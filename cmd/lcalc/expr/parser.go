package expr

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"lcalc/pkg/lib"
)

// Parser evaluates expressions written in a letter alphabet: digit runs are
// operands, operator codes are applied strictly left to right, and a pair of
// group codes nests a sub-expression that is evaluated first.
//
// A Parser holds only configuration, so Parse may be called concurrently.
type Parser struct {
	codes Codes
	log   *slog.Logger
}

// NewParser returns a Parser for the given alphabet. A nil logger disables
// logging.
func NewParser(codes Codes, logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Parser{codes: codes, log: logger}
}

// Eval parses expression with DefaultCodes and no logging.
func Eval(expression string) (uint64, error) {
	return NewParser(DefaultCodes, nil).Parse(expression)
}

// Codes returns the alphabet the parser was built with.
func (p *Parser) Codes() Codes { return p.codes }

// Parse evaluates expression and returns its value or a *ParseError.
func (p *Parser) Parse(expression string) (uint64, error) {
	symbols := []rune(expression)
	if err := p.checkBalance(symbols); err != nil {
		return 0, err
	}
	return p.parseFrame(&cursor{symbols: symbols}, 0)
}

// checkBalance compares the global counts of group-open and group-close
// symbols and names the one in excess.
func (p *Parser) checkBalance(symbols []rune) error {
	open, closed := 0, 0
	for _, r := range symbols {
		switch r {
		case p.codes.Open:
			open++
		case p.codes.Close:
			closed++
		}
	}
	switch {
	case open > closed:
		return &ParseError{Kind: ErrUnbalancedParenthesis, Symbol: string(p.codes.Open), Pos: -1}
	case closed > open:
		return &ParseError{Kind: ErrUnbalancedParenthesis, Symbol: string(p.codes.Close), Pos: -1}
	}
	return nil
}

// cursor is the single forward-only position shared by every frame of one
// parse. Frames receive it by pointer and never copy it.
type cursor struct {
	symbols []rune
	pos     int
}

func (c *cursor) next() (rune, int, bool) {
	if c.pos >= len(c.symbols) {
		return 0, c.pos, false
	}
	r, at := c.symbols[c.pos], c.pos
	c.pos++
	return r, at, true
}

// frame is the per-nesting-level parse state.
type frame struct {
	level     int
	state     State
	acc       strings.Builder
	op        *Operation
	result    uint64
	hasResult bool
}

// parseFrame consumes symbols until the input ends or the group-close
// matching this frame is read. Every group-open recurses with the same cursor.
func (p *Parser) parseFrame(cur *cursor, level int) (uint64, error) {
	p.log.Debug("parse recursion", "level", level)
	f := &frame{level: level, state: StateFirstOperand}

	for {
		sym, pos, ok := cur.next()
		if !ok {
			break
		}
		class := p.codes.classify(sym)

		next, legal := transition(f.state, class, f.acc.Len() == 0)
		if !legal {
			return 0, &ParseError{Kind: ErrMalformedExpression, Symbol: string(sym), Pos: pos}
		}
		prev := f.state
		if next != prev {
			p.trace("state", "from", prev, "to", next)
			f.state = next
		}

		// The accumulator never outlives a non-digit symbol. Digits read in
		// FirstOperand are handed to the operator as its literal operand.
		var literal string
		if class != classDigit {
			if prev == StateFirstOperand {
				literal = f.acc.String()
			}
			f.acc.Reset()
		}

		var err error
		switch {
		case class == classDigit && f.state == StateFirstOperand:
			err = p.readFirstOperand(f, sym)
		case class == classDigit && f.state == StateSecondOperand:
			err = p.readSecondOperand(f, sym)
		case class == classOperator && f.state == StateOperation:
			err = p.startOperation(f, sym, literal)
		case class == classOpen:
			err = p.enterGroup(cur, f)
		case class == classClose && f.state == StateCloseParenthesis:
			if level == 0 {
				return 0, &ParseError{Kind: ErrUnbalancedParenthesis, Symbol: string(sym), Pos: pos}
			}
			if !f.hasResult {
				return 0, &ParseError{Kind: ErrEmptyExpression, Pos: -1}
			}
			p.log.Debug("close group", "level", level, "result", f.result)
			return f.result, nil
		default:
			return 0, &ParseError{Kind: ErrUnexpectedSymbol, Symbol: string(sym), Pos: pos, State: f.state, Operation: f.op}
		}
		if err != nil {
			return 0, err
		}
	}

	p.log.Debug("input exhausted", "level", level, "result", f.result, "has_result", f.hasResult)
	if level > 0 {
		return 0, &ParseError{Kind: ErrUnbalancedParenthesis, Symbol: string(p.codes.Open), Pos: -1}
	}
	if !f.hasResult {
		return 0, &ParseError{Kind: ErrEmptyExpression, Pos: -1}
	}
	return f.result, nil
}

func (p *Parser) readFirstOperand(f *frame, sym rune) error {
	f.acc.WriteRune(sym)
	p.trace("first operand", "acc", f.acc.String())
	v, err := strconv.ParseUint(f.acc.String(), 10, 64)
	if err != nil {
		detail := err.Error()
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			detail = numErr.Err.Error()
		}
		return &ParseError{Kind: ErrParseDigit, Digits: f.acc.String(), Detail: detail, Pos: -1}
	}
	f.result, f.hasResult = v, true
	return nil
}

func (p *Parser) readSecondOperand(f *frame, sym rune) error {
	f.acc.WriteRune(sym)
	p.trace("second operand", "acc", f.acc.String())
	if f.op == nil {
		return &ParseError{Kind: ErrIllegalState, Cause: errors.New("second operand without a pending operation"), Pos: -1}
	}
	v, err := f.op.Apply(f.acc.String())
	if err != nil {
		return &ParseError{Kind: ErrInvalidOperation, Cause: err, Pos: -1}
	}
	p.trace("apply", "operation", f.op, "second", f.acc.String(), "result", v)
	f.result, f.hasResult = v, true
	return nil
}

// startOperation builds the pending operation. Its first operand is the
// literal digit run when one was just read, otherwise the running result of a
// closed group or a previous operation.
func (p *Parser) startOperation(f *frame, code rune, literal string) error {
	var (
		op  Operation
		err error
	)
	if literal != "" {
		op, err = p.codes.NewOperation(code, literal)
	} else {
		if !f.hasResult {
			return &ParseError{Kind: ErrIllegalState, Cause: errors.New("operator without a first operand"), Pos: -1}
		}
		op, err = p.codes.OperationFromResult(code, f.result)
	}
	if err != nil {
		return &ParseError{Kind: ErrInvalidOperation, Cause: err, Pos: -1}
	}
	p.trace("operation", "op", op)
	f.op = &op
	return nil
}

// enterGroup evaluates a nested group and folds its value into the frame:
// as the second operand of the pending operation, or as the frame's value
// when nothing is pending. In the latter case the group replaces any digits
// read before it. Afterwards only an operator or a group-close may
// follow.
func (p *Parser) enterGroup(cur *cursor, f *frame) error {
	sub, err := p.parseFrame(cur, f.level+1)
	if err != nil {
		return err
	}
	if f.op != nil {
		v, err := f.op.ApplyResult(sub)
		if err != nil {
			return &ParseError{Kind: ErrInvalidOperation, Cause: err, Pos: -1}
		}
		p.trace("apply group", "operation", f.op, "second", sub, "result", v)
		f.result = v
		f.op = nil
	} else {
		f.result = sub
	}
	f.hasResult = true
	p.trace("state", "from", f.state, "to", StateCloseParenthesis)
	f.state = StateCloseParenthesis
	return nil
}

func (p *Parser) trace(msg string, args ...any) {
	p.log.Log(context.Background(), lib.LevelTrace, msg, args...)
}
