package expr

// State is the parser position within the current frame. It alone decides
// which symbols are legal next.
type State int

const (
	// StateFirstOperand expects digits of the first operand or a group.
	StateFirstOperand State = iota
	// StateOperation follows an operator code.
	StateOperation
	// StateSecondOperand reads digits of the second operand.
	StateSecondOperand
	// StateCloseParenthesis follows a closed group or a group-close symbol.
	StateCloseParenthesis
)

func (s State) String() string {
	switch s {
	case StateFirstOperand:
		return "FirstOperand"
	case StateOperation:
		return "Operation"
	case StateSecondOperand:
		return "SecondOperand"
	case StateCloseParenthesis:
		return "CloseParenthesis"
	}
	return "Unknown"
}

// transition computes the next state for a symbol of class c. accEmpty
// reports whether the accumulator holds no digits. The second result is false
// when the symbol is illegal in state s.
//
//	state            digit          operator          open        close
//	FirstOperand     FirstOperand   Operation (1)     stay        CloseParenthesis
//	Operation        SecondOperand  stay (1)          stay        -
//	SecondOperand    SecondOperand  Operation         -           CloseParenthesis
//	CloseParenthesis -              Operation         -           stay
//
// (1) needs accumulated digits.
func transition(s State, c symbolClass, accEmpty bool) (State, bool) {
	switch s {
	case StateFirstOperand:
		switch c {
		case classDigit:
			return StateFirstOperand, true
		case classOperator:
			return StateOperation, !accEmpty
		case classOpen:
			return StateFirstOperand, true
		case classClose:
			return StateCloseParenthesis, true
		}
	case StateOperation:
		switch c {
		case classDigit:
			return StateSecondOperand, true
		case classOperator:
			return StateOperation, !accEmpty
		case classOpen:
			return StateOperation, true
		}
	case StateSecondOperand:
		switch c {
		case classDigit:
			return StateSecondOperand, true
		case classOperator:
			return StateOperation, true
		case classClose:
			return StateCloseParenthesis, true
		}
	case StateCloseParenthesis:
		switch c {
		case classOperator:
			return StateOperation, true
		case classClose:
			return StateCloseParenthesis, true
		}
	}
	return s, false
}
