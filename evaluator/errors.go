package evaluator

import (
	"strconv"

	"github.com/pkg/errors"
)

var (
	// ErrDivisionByZero is returned when the right side of '/' is zero.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrIntegerOverflow is returned when an integer result does not fit in
	// 64 bits.
	ErrIntegerOverflow = errors.New("integer overflow")
)

// NameError is an error from a lookup for a variable that has never been
// assigned.
type NameError struct {
	// Name is the name that was missing.
	Name string
}

func (err *NameError) Error() string {
	return "identifier " + strconv.Quote(err.Name) + " is not defined"
}

// AssignmentError is an assignment whose left side is not a plain identifier.
type AssignmentError struct {
	// Target is the dump of the left side.
	Target string
}

func (err *AssignmentError) Error() string {
	return "expected identifier before '=', got " + err.Target
}

// TypeError is an operand of the wrong kind, e.g. a boolean in a sum.
type TypeError struct {
	Operator string
	Value    Value
}

func (err *TypeError) Error() string {
	return "unsupported operand for " + strconv.Quote(err.Operator) + ": " + err.Value.String()
}
