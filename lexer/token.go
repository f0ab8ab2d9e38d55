package lexer

import (
	"fmt"
	"slices"
)

// TokenType is the type of token.
type TokenType int

// Token types as constants.
const (
	TokError TokenType = iota
	TokEOF

	// Identifiers + literals.
	TokIdentifier
	TokInt
	TokFloat

	// Operators.
	TokPlus     // '+'.
	TokMinus    // '-'.
	TokMultiply // '*'.
	TokDivide   // '/'.
	TokAssign   // '='.
	TokEqual    // '=='.

	// Delimiters.
	TokParenLeft
	TokParenRight

	// End of tokens.
	FinalToken
)

// String returns the string representation of the token type.
func (tt TokenType) String() string {
	return tokenTypeStrings[tt]
}

// Map of token types to their string representation for debugging.
var tokenTypeStrings = map[TokenType]string{
	TokError: "ERROR",
	TokEOF:   "EOF",

	TokIdentifier: "IDENTIFIER",
	TokInt:        "INT",
	TokFloat:      "FLOAT",

	TokPlus:     "+",
	TokMinus:    "-",
	TokMultiply: "*",
	TokDivide:   "/",
	TokAssign:   "=",
	TokEqual:    "==",

	TokParenLeft:  "PAREN_LEFT",
	TokParenRight: "PAREN_RIGHT",
}

func (tt TokenType) IsOneOf(t ...TokenType) bool {
	return slices.Contains(t, tt)
}

// IsOperator reports whether the token type is one of the six operators.
func (tt TokenType) IsOperator() bool {
	return tt.IsOneOf(TokPlus, TokMinus, TokMultiply, TokDivide, TokAssign, TokEqual)
}

// Token represents a lexical token of an equation.
type Token struct {
	Type  TokenType
	Value string

	Pos int // Byte offset of the token start in the input.
}

func (t Token) String() string {
	switch {
	case t.Type == TokEOF:
		return "EOF"
	case len(t.Value) > 16:
		return fmt.Sprintf("%s[%d]: %.16q", t.Type, t.Pos, t.Value)
	}
	return fmt.Sprintf("%s[%d]: %q", t.Type, t.Pos, t.Value)
}
