package evaluator

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.creack.net/eqcalc/parser"
)

type testCase struct {
	name  string
	setup []string
	input string
	want  Value
}

func assertValue(t *testing.T, want, got Value) {
	t.Helper()
	require.IsType(t, want, got, "got %s", got)
	if f, ok := want.(Float); ok {
		assert.InDelta(t, float64(f), float64(got.(Float)), 1e-9)
		return
	}
	assert.Equal(t, want, got)
}

func TestEval(t *testing.T) {
	tests := []testCase{
		{name: "int", input: "5", want: Int(5)},
		{name: "float", input: "2.5", want: Float(2.5)},
		{name: "precedence", input: "2+3*4", want: Int(14)},
		{name: "brackets", input: "(2+3)*4", want: Int(20)},
		{name: "left assoc", input: "10-3-2", want: Int(5)},
		{name: "int product", input: "33*2", want: Int(66)},
		{name: "int plus float", input: "5+35.4", want: Float(40.4)},
		{name: "float sum", input: "1.1+2.2", want: Float(3.3)},
		{name: "float difference", input: "47.9-100.3", want: Float(-52.4)},
		{name: "float difference 2", input: "15.101-4.91", want: Float(10.191)},
		{name: "float product", input: "25.33*3", want: Float(75.99)},
		{name: "float product 2", input: "66*3.442", want: Float(227.172)},
		{name: "int division is float", input: "36/3", want: Float(12)},
		{name: "float division", input: "36.9/3", want: Float(12.3)},
		{name: "inexact division", input: "7/2", want: Float(3.5)},
		{name: "integral float stays float", input: "1.5+1.5", want: Float(3)},
		{name: "equal", input: "5==2+3", want: Bool(true)},
		{name: "not equal", input: "5==6", want: Bool(false)},
		{name: "equal difference", input: "15==17-2", want: Bool(true)},
		{name: "equal int float", input: "12==36/3", want: Bool(true)},
		{name: "negative result", input: "1-3", want: Int(-2)},
		{name: "assign", input: "x=5", want: Assignment{Name: "x", Value: Int(5)}},
		{name: "assign bracketed target", input: "(x)=2.5*2", want: Assignment{Name: "x", Value: Float(5)}},

		{name: "var sum", setup: []string{"a=5"}, input: "a+35.4", want: Float(40.4)},
		{name: "var sum 2", setup: []string{"boolka=2.2"}, input: "1.1+boolka", want: Float(3.3)},
		{name: "var difference", setup: []string{"a=0.9"}, input: "47+a-100.3", want: Float(-52.4)},
		{name: "var difference 2", setup: []string{"b=4.91"}, input: "15.101-b", want: Float(10.191)},
		{name: "var product", setup: []string{"a=36/6*2/4"}, input: "25.33*a", want: Float(75.99)},
		{name: "var product 2", setup: []string{"b=33*2"}, input: "b*3.442", want: Float(227.172)},
		{name: "var division", setup: []string{"a=6*6", "b=a/12"}, input: "a/b", want: Float(12)},
		{name: "var division 2", setup: []string{"c=3"}, input: "36.9/c", want: Float(12.3)},
		{name: "var equality", setup: []string{"a=2.5*2", "b=60/2"}, input: "3*(5+a)==b/3+5*4", want: Bool(true)},
		{name: "reassign", setup: []string{"a=1", "a=a+1"}, input: "a", want: Int(2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			for _, eq := range tt.setup {
				_, err := s.Eval(eq)
				require.NoError(t, err, "setup %q", eq)
			}
			got, err := s.Eval(tt.input)
			require.NoError(t, err)
			assertValue(t, tt.want, got)
		})
	}
}

func TestEvalSum(t *testing.T) {
	for _, a := range []int64{-7, 0, 3, 1000} {
		for _, b := range []int64{-2, 0, 41} {
			got, err := NewSession().Eval(fmt.Sprintf("%d+%d", a, b))
			if a < 0 || b < 0 {
				// No unary minus.
				require.Error(t, err)
				continue
			}
			require.NoError(t, err)
			assert.Equal(t, Int(a+b), got)

			got, err = NewSession().Eval(fmt.Sprintf("%d+%d.5", a, b))
			require.NoError(t, err)
			assert.Equal(t, Float(float64(a)+float64(b)+0.5), got)
		}
	}
}

func TestEvalRoundTrip(t *testing.T) {
	s := NewSession()
	v, err := s.Eval("x=5")
	require.NoError(t, err)
	assert.Equal(t, "x = 5", v.String())

	v, err = s.Eval("x")
	require.NoError(t, err)
	assert.Equal(t, Int(5), v)
	assert.Equal(t, []string{"x"}, s.Vars().Names())
}

func TestEvalTolerance(t *testing.T) {
	v, err := NewSession().Eval("1.1+2.2==3.3")
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)

	v, err = NewSession(WithTolerance(1e-9)).Eval("1.1+2.2==3.3")
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)

	v, err = NewSession(WithTolerance(1e-9)).Eval("1.1==1.2")
	require.NoError(t, err)
	assert.Equal(t, Bool(false), v)
}

func TestEvalMixedEquality(t *testing.T) {
	tests := []struct {
		input string
		want  Bool
	}{
		// 2^53+1 has no float64 form.
		{input: "9007199254740993==9007199254740992.0", want: false},
		{input: "9007199254740992.0==9007199254740993", want: false},
		{input: "9007199254740992==9007199254740992.0", want: true},
		{input: "12==36/3", want: true},
		{input: "3==3.5", want: false},
		{input: "3.0==3", want: true},
		{input: "9223372036854775807==9223372036854775807.0", want: false},
	}
	for _, tt := range tests {
		v, err := NewSession().Eval(tt.input)
		require.NoError(t, err, tt.input)
		assert.Equal(t, tt.want, v, tt.input)
	}

	// A tolerance compares as floats.
	v, err := NewSession(WithTolerance(1e-9)).Eval("9007199254740993==9007199254740992.0")
	require.NoError(t, err)
	assert.Equal(t, Bool(true), v)
}

func TestEvalErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, err error)
	}{
		{name: "undefined", input: "undefinedVar+1", check: func(t *testing.T, err error) {
			var nameErr *NameError
			require.True(t, errors.As(err, &nameErr), "%T", err)
			assert.Equal(t, "undefinedVar", nameErr.Name)
		}},
		{name: "undefined in product", input: "3*balls+10", check: func(t *testing.T, err error) {
			assert.Regexp(t, `identifier .+ is not defined`, err.Error())
		}},
		{name: "assign to number", input: "5=3", check: func(t *testing.T, err error) {
			var aErr *AssignmentError
			require.True(t, errors.As(err, &aErr), "%T", err)
			assert.Equal(t, "5", aErr.Target)
		}},
		{name: "assign to expression", input: "(a+b)=3", check: func(t *testing.T, err error) {
			var aErr *AssignmentError
			require.True(t, errors.As(err, &aErr), "%T", err)
			assert.Equal(t, "+(a, b)", aErr.Target)
		}},
		{name: "int division by zero", input: "1/0", check: func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrDivisionByZero))
		}},
		{name: "float division by zero", input: "1.5/(2-2.0)", check: func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrDivisionByZero))
		}},
		{name: "overflow", input: "9223372036854775807+1", check: func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrIntegerOverflow))
		}},
		{name: "overflow product", input: "4294967296*4294967296", check: func(t *testing.T, err error) {
			assert.True(t, errors.Is(err, ErrIntegerOverflow))
		}},
		{name: "bool operand", input: "(1==1)+2", check: func(t *testing.T, err error) {
			var tErr *TypeError
			require.True(t, errors.As(err, &tErr), "%T", err)
			assert.Equal(t, "+", tErr.Operator)
			assert.Equal(t, Bool(true), tErr.Value)
		}},
		{name: "parse error", input: "3*(5+10", check: func(t *testing.T, err error) {
			var bErr *parser.BracketError
			require.True(t, errors.As(err, &bErr), "%T", err)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewSession().Eval(tt.input)
			require.Error(t, err)
			assert.Nil(t, v)
			tt.check(t, err)
		})
	}
}

func TestEvalFailureLeavesTableUntouched(t *testing.T) {
	s := NewSession()
	_, err := s.Eval("x=1")
	require.NoError(t, err)
	before := s.Vars().Snapshot()

	for _, eq := range []string{
		"x=1/0",
		"x=y",
		"(x=2)+1",
		"z=(5",
		"x=9223372036854775807*2",
	} {
		_, err := s.Eval(eq)
		require.Error(t, err, eq)
		assert.Equal(t, before, s.Vars().Snapshot(), eq)
	}

	// The session keeps working after a failure.
	v, err := s.Eval("x+1")
	require.NoError(t, err)
	assert.Equal(t, Int(2), v)
}

func TestEvalIdempotent(t *testing.T) {
	s := NewSession()
	_, err := s.Eval("y=4")
	require.NoError(t, err)

	tree, err := s.Parse("y*2+1==9")
	require.NoError(t, err)
	dump := tree.Dump()
	before := s.Vars().Snapshot()

	e := &Evaluator{Scope: s.Vars()}
	first, err := e.Eval(tree)
	require.NoError(t, err)
	second, err := e.Eval(tree)
	require.NoError(t, err)

	assert.Equal(t, Bool(true), first)
	assert.Equal(t, first, second)
	assert.Equal(t, before, s.Vars().Snapshot())
	assert.Equal(t, dump, tree.Dump())
}

func TestEvaluateShortcut(t *testing.T) {
	tree, err := parser.Parse("n=n*3")
	require.NoError(t, err)

	vars := NewTable()
	vars.Assign("n", Int(2))
	v, err := Evaluate(tree, vars)
	require.NoError(t, err)
	assert.Equal(t, Assignment{Name: "n", Value: Int(6)}, v)

	got, ok := vars.Lookup("n")
	require.True(t, ok)
	assert.Equal(t, Int(6), got)
}

func TestSessionSharedTable(t *testing.T) {
	vars := NewTable()
	a := NewSession(WithTable(vars))
	b := NewSession(WithTable(vars), WithSkipSpaces())

	_, err := a.Eval("k=10")
	require.NoError(t, err)
	v, err := b.Eval("k / 4")
	require.NoError(t, err)
	assert.Equal(t, Float(2.5), v)
}

func TestSessionConcurrent(t *testing.T) {
	s := NewSession()
	_, err := s.Eval("c=0")
	require.NoError(t, err)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Eval("c=c+1")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	v, err := s.Eval("c")
	require.NoError(t, err)
	assert.Equal(t, Int(n), v)
}

func TestStagedScope(t *testing.T) {
	vars := NewTable()
	vars.Assign("a", Int(1))

	scope := stage(vars)
	scope.Assign("a", Int(2))
	scope.Assign("b", Float(0.5))

	v, ok := scope.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, Int(2), v)

	v, ok = vars.Lookup("a")
	require.True(t, ok)
	assert.Equal(t, Int(1), v)
	assert.Equal(t, 1, vars.Len())

	scope.commit()
	assert.Equal(t, map[string]Value{"a": Int(2), "b": Float(0.5)}, vars.Snapshot())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "3", Int(3).String())
	assert.Equal(t, "12.0", Float(12).String())
	assert.Equal(t, "0.5", Float(0.5).String())
	assert.Equal(t, "true", Bool(true).String())
	assert.Equal(t, "a = 5.0", Assignment{Name: "a", Value: Float(5)}.String())
}
