package lexer

import "strconv"

// SymbolError is a character outside of the equation alphabet.
type SymbolError struct {
	// Col is the byte offset of the character.
	Col  int
	Char rune
}

func (err *SymbolError) Error() string {
	return "unexpected symbol at " + strconv.Itoa(err.Col) + ": " + strconv.QuoteRune(err.Char)
}

func (err *SymbolError) Pos() int {
	return err.Col
}

// DuplicateEqualsError is a second '=' or '==' in the same equation.
type DuplicateEqualsError struct {
	Col int
}

func (err *DuplicateEqualsError) Error() string {
	return "only one equal-like sign allowed, got another at " + strconv.Itoa(err.Col)
}

func (err *DuplicateEqualsError) Pos() int {
	return err.Col
}

// TrailingDotError is a number literal ending with a '.'.
type TrailingDotError struct {
	// Col is the byte offset of the dot.
	Col int
}

func (err *TrailingDotError) Error() string {
	return "unexpected symbol at " + strconv.Itoa(err.Col) + ": '.'"
}

func (err *TrailingDotError) Pos() int {
	return err.Col
}
