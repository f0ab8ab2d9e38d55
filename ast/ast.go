package ast

import (
	"fmt"
	"strconv"
	"strings"

	"go.creack.net/eqcalc/lexer"
)

// Structure following the equation grammar:
//
//	equation    := expression ( ('=' | '==') expression )*
//	expression  := term ( ('+' | '-') term )*
//	term        := factor ( ('*' | '/') factor )*
//	factor      := INT | FLOAT | IDENTIFIER | '(' equation ')'
//
// Brackets only drive the shape of the tree, they have no node of their own.

// Expr is any node of an equation tree. The set of implementations is closed.
type Expr interface {
	Dump() string
	expr()
}

// IntExpr is an integer literal.
type IntExpr struct {
	Value int64
}

func (IntExpr) expr() {}

func (e IntExpr) Dump() string {
	return strconv.FormatInt(e.Value, 10)
}

// FloatExpr is a floating point literal.
type FloatExpr struct {
	Value float64
}

func (FloatExpr) expr() {}

func (e FloatExpr) Dump() string {
	return FormatFloat(e.Value)
}

// IdentifierExpr references a variable.
type IdentifierExpr struct {
	Name string
}

func (IdentifierExpr) expr() {}

func (e IdentifierExpr) Dump() string {
	return e.Name
}

// BinaryExpr is any of the six binary operators, assignment included.
type BinaryExpr struct {
	Left     Expr
	Operator lexer.Token
	Right    Expr
}

func (BinaryExpr) expr() {}

func (e BinaryExpr) Dump() string {
	return fmt.Sprintf("%s(%s, %s)", e.Operator.Type, e.Left.Dump(), e.Right.Dump())
}

// FormatFloat formats f in its shortest form, keeping a fractional part for
// integral values so that 10.0 does not read as an integer.
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}
