package opparser

import "strconv"

// Kind classifies a parsing failure. Kind implements error so that callers can
// test for a class of failure with errors.Is(err, opparser.TokenCollision).
type Kind int8

const (
	kindNone Kind = iota
	// UnrecognizedInput means no lexer in the active chain accepted the input
	// at the cursor.
	UnrecognizedInput
	// UnknownIdentifier means a name matched neither a function nor a
	// constant.
	UnknownIdentifier
	// AssignToFunction means an assignment targeted a function name.
	AssignToFunction
	// TokenCollision means two adjacent tokens have equal precedence levels,
	// which the grammar leaves undefined.
	TokenCollision
	// MissingOperand means a reduction needed more values than the out stack
	// held.
	MissingOperand
	// TypeMismatch means a reduction popped a value of the wrong kind.
	TypeMismatch
	// IncompleteExpression means finishing left no value.
	IncompleteExpression
	// MalformedResult means finishing left more than one value.
	MalformedResult
	// BadNumberFormat means a numeric literal could not be converted.
	BadNumberFormat
	// UnbalancedBracket means a close bracket had no open bracket or an open
	// bracket was never closed.
	UnbalancedBracket
)

func (k Kind) String() string {
	switch k {
	case kindNone:
		return "none"
	case UnrecognizedInput:
		return "unrecognized input"
	case UnknownIdentifier:
		return "unknown identifier"
	case AssignToFunction:
		return "assignment to function"
	case TokenCollision:
		return "token collision"
	case MissingOperand:
		return "missing operand"
	case TypeMismatch:
		return "type mismatch"
	case IncompleteExpression:
		return "incomplete expression"
	case MalformedResult:
		return "malformed result"
	case BadNumberFormat:
		return "bad number format"
	case UnbalancedBracket:
		return "unbalanced bracket"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

func (k Kind) Error() string {
	return k.String()
}

// Error is a parsing failure with position information. It implements
// InputError.
type Error struct {
	// Kind is the class of failure.
	Kind Kind
	// Col is the 1-based byte column in the current statement at which the
	// failure was detected. Input fed by several calls to Parse counts as one
	// statement.
	Col int
	// Text describes the offending input or tokens. It may be empty.
	Text string
}

func (err *Error) Error() string {
	if err.Text == "" {
		return errpos(err.Col, err.Kind.String())
	}
	return errpos(err.Col, err.Kind.String()+": "+err.Text)
}

// Unwrap returns the error's Kind.
func (err *Error) Unwrap() error {
	return err.Kind
}

func (err *Error) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of bytes up to and
	// including the start of the input that caused the error.
	Pos() int
}

var _ InputError = (*Error)(nil)
