package evaluator

import (
	"math"
	"strconv"

	"go.creack.net/eqcalc/ast"
)

// Value is the result of an evaluation: Int, Float, Bool or Assignment.
type Value interface {
	String() string
	value()
}

// Int is an integral number.
type Int int64

// Float is a floating point number.
type Float float64

// Bool is the result of an equality test.
type Bool bool

// Assignment confirms that Value was stored under Name.
type Assignment struct {
	Name  string
	Value Value
}

func (Int) value()        {}
func (Float) value()      {}
func (Bool) value()       {}
func (Assignment) value() {}

func (v Int) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string { return ast.FormatFloat(float64(v)) }
func (v Bool) String() string  { return strconv.FormatBool(bool(v)) }

func (a Assignment) String() string {
	return a.Name + " = " + a.Value.String()
}

// isNumber reports whether v can be an arithmetic operand.
func isNumber(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	}
	return false
}

// toFloat promotes a number to Float.
func toFloat(v Value) float64 {
	switch v := v.(type) {
	case Int:
		return float64(v)
	case Float:
		return float64(v)
	}
	panic("evaluator: not a number: " + v.String())
}

func isZero(v Value) bool {
	switch v := v.(type) {
	case Int:
		return v == 0
	case Float:
		return v == 0
	}
	return false
}

func addInt(a, b int64) (int64, bool) {
	c := a + b
	return c, (c > a) == (b > 0)
}

func subInt(a, b int64) (int64, bool) {
	c := a - b
	return c, (c < a) == (b > 0)
}

func mulInt(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return c, false
	}
	return c, c/b == a
}
