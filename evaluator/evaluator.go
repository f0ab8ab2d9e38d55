package evaluator

import (
	"fmt"
	"math"

	"github.com/pkg/errors"

	"go.creack.net/eqcalc/ast"
	"go.creack.net/eqcalc/lexer"
)

// Evaluator computes equation trees against a Scope.
type Evaluator struct {
	Scope Scope
	// Tolerance is the largest absolute difference under which '==' holds
	// when a float is involved. Zero means exact comparison.
	Tolerance float64
}

// Evaluate is a shortcut to evaluate a tree with exact equality.
func Evaluate(expr ast.Expr, scope Scope) (Value, error) {
	e := &Evaluator{Scope: scope}
	return e.Eval(expr)
}

// Eval evaluates the tree. The tree itself is never modified, the only side
// effect is the assignment to the scope.
func (e *Evaluator) Eval(expr ast.Expr) (Value, error) {
	switch n := expr.(type) {
	case ast.IntExpr:
		return Int(n.Value), nil
	case ast.FloatExpr:
		return Float(n.Value), nil
	case ast.IdentifierExpr:
		v, ok := e.Scope.Lookup(n.Name)
		if !ok {
			return nil, &NameError{Name: n.Name}
		}
		return v, nil
	case ast.BinaryExpr:
		if n.Operator.Type == lexer.TokAssign {
			return e.evalAssignment(n)
		}
		return e.evalBinary(n)
	default:
		panic(fmt.Errorf("unsupported expression type %T", n))
	}
}

func (e *Evaluator) evalAssignment(n ast.BinaryExpr) (Value, error) {
	target, ok := n.Left.(ast.IdentifierExpr)
	if !ok {
		return nil, &AssignmentError{Target: n.Left.Dump()}
	}
	v, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	if !isNumber(v) {
		return nil, &TypeError{Operator: n.Operator.Value, Value: v}
	}
	e.Scope.Assign(target.Name, v)
	return Assignment{Name: target.Name, Value: v}, nil
}

func (e *Evaluator) evalBinary(n ast.BinaryExpr) (Value, error) {
	left, err := e.Eval(n.Left)
	if err != nil {
		return nil, err
	}
	right, err := e.Eval(n.Right)
	if err != nil {
		return nil, err
	}
	for _, v := range []Value{left, right} {
		if !isNumber(v) {
			return nil, &TypeError{Operator: n.Operator.Value, Value: v}
		}
	}

	switch n.Operator.Type {
	case lexer.TokEqual:
		return e.equal(left, right), nil
	case lexer.TokDivide:
		if isZero(right) {
			return nil, errors.WithStack(ErrDivisionByZero)
		}
		return Float(toFloat(left) / toFloat(right)), nil
	}

	l, lok := left.(Int)
	r, rok := right.(Int)
	if lok && rok {
		return intArith(n.Operator.Type, int64(l), int64(r))
	}
	return floatArith(n.Operator.Type, toFloat(left), toFloat(right)), nil
}

func (e *Evaluator) equal(left, right Value) Bool {
	l, lok := left.(Int)
	r, rok := right.(Int)
	if lok && rok {
		return l == r
	}
	a, b := toFloat(left), toFloat(right)
	if e.Tolerance > 0 {
		return math.Abs(a-b) <= e.Tolerance
	}
	switch {
	case lok:
		return intFloatEqual(int64(l), b)
	case rok:
		return intFloatEqual(int64(r), a)
	}
	return a == b
}

// intFloatEqual compares exactly: converting i to float64 would round above
// 2^53.
func intFloatEqual(i int64, f float64) Bool {
	if math.IsNaN(f) || f != math.Trunc(f) || f < math.MinInt64 || f >= -math.MinInt64 {
		return false
	}
	return int64(f) == i
}

func intArith(op lexer.TokenType, a, b int64) (Value, error) {
	var (
		c  int64
		ok bool
	)
	switch op {
	case lexer.TokPlus:
		c, ok = addInt(a, b)
	case lexer.TokMinus:
		c, ok = subInt(a, b)
	case lexer.TokMultiply:
		c, ok = mulInt(a, b)
	default:
		panic(fmt.Errorf("unsupported integer operator %s", op))
	}
	if !ok {
		return nil, errors.WithStack(ErrIntegerOverflow)
	}
	return Int(c), nil
}

func floatArith(op lexer.TokenType, a, b float64) Value {
	switch op {
	case lexer.TokPlus:
		return Float(a + b)
	case lexer.TokMinus:
		return Float(a - b)
	case lexer.TokMultiply:
		return Float(a * b)
	default:
		panic(fmt.Errorf("unsupported float operator %s", op))
	}
}
