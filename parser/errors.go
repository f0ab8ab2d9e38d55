package parser

import (
	"strconv"

	"go.creack.net/eqcalc/lexer"
)

// BracketError is an unpaired bracket. It implements InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Left is the open bracket with no close bracket, if any.
	Left string
	// Right is the close bracket with no open bracket, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left != "" {
		return errpos(err.Col, "left bracket "+err.Left+" is unpaired")
	}
	return errpos(err.Col, "right bracket "+err.Right+" is unpaired")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// OperatorError is a token found where a number, an identifier or an open
// bracket was expected. It implements InputError.
type OperatorError struct {
	Col int
	// Operator is the unexpected token. It is empty when the equation ended.
	Operator string
}

func (err *OperatorError) Error() string {
	if err.Operator == "" {
		return errpos(err.Col, "unexpected end of equation")
	}
	return errpos(err.Col, "unexpected operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// TokenError is a token left over after a complete equation, e.g. the x in
// "5x". It implements InputError.
type TokenError struct {
	Col   int
	Value string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unexpected "+strconv.Quote(err.Value)+" after end of equation")
}

func (err *TokenError) Pos() int {
	return err.Col
}

// NumberError is a numeric literal that cannot be represented. It implements
// InputError.
type NumberError struct {
	Col  int
	Text string
	Err  error
}

func (err *NumberError) Error() string {
	return errpos(err.Col, "invalid number "+strconv.Quote(err.Text))
}

func (err *NumberError) Pos() int {
	return err.Col
}

func (err *NumberError) Unwrap() error {
	return err.Err
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the byte offset in the equation of the offending token.
	Pos() int
}

var (
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*NumberError)(nil)
	_ InputError = (*lexer.SymbolError)(nil)
	_ InputError = (*lexer.DuplicateEqualsError)(nil)
	_ InputError = (*lexer.TrailingDotError)(nil)
)
