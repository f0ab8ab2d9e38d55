// Package executor runs batches of equations, one per line, against a
// session and reports each result or error.
package executor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/kr/pretty"
	"github.com/pkg/errors"

	"go.creack.net/eqcalc/evaluator"
	"go.creack.net/eqcalc/parser"
)

// Mode selects what is printed for each equation.
type Mode int

// Output modes.
const (
	ModeValue  Mode = iota // Evaluate and print the result.
	ModeTree               // Parse and print the syntax tree.
	ModeTokens             // Lex and print the tokens.
)

// Executor evaluates equations and writes results to Stdout and errors to
// Stderr.
type Executor struct {
	Session *evaluator.Session
	Mode    Mode

	Stdout io.Writer
	Stderr io.Writer
}

// New creates an executor for the given session.
func New(session *evaluator.Session, stdout, stderr io.Writer) *Executor {
	return &Executor{
		Session: session,
		Stdout:  stdout,
		Stderr:  stderr,
	}
}

// Line processes a single equation. The error is also reported to Stderr.
func (e *Executor) Line(equation string) error {
	if err := e.line(equation); err != nil {
		e.report(equation, err)
		return err
	}
	return nil
}

func (e *Executor) line(equation string) error {
	switch e.Mode {
	case ModeTokens:
		toks, err := e.Session.Tokenize(equation)
		if err != nil {
			return err
		}
		for _, tok := range toks {
			fmt.Fprintln(e.Stdout, tok)
		}
	case ModeTree:
		tree, err := e.Session.Parse(equation)
		if err != nil {
			return err
		}
		fmt.Fprintf(e.Stdout, "%s\n%s\n", tree.Dump(), pretty.Sprintf("%# v", tree))
	default:
		v, err := e.Session.Eval(equation)
		if err != nil {
			return err
		}
		fmt.Fprintln(e.Stdout, v)
	}
	return nil
}

// report writes the error, with a caret under the offending column when the
// error has one.
func (e *Executor) report(equation string, err error) {
	fmt.Fprintf(e.Stderr, "eqcalc: %s\n", err)

	var ierr parser.InputError
	if !errors.As(err, &ierr) {
		return
	}
	col := ierr.Pos()
	if col < 0 || col > len(equation) {
		return
	}
	pad := strings.Repeat(" ", utf8.RuneCountInString(equation[:col]))
	fmt.Fprintf(e.Stderr, "  %s\n  %s^\n", equation, pad)
}

// Run processes every line of stdin. Blank lines are ignored. A failing
// equation does not stop the run; Run returns how many equations failed.
func (e *Executor) Run(stdin io.Reader) (int, error) {
	failed := 0
	scanner := bufio.NewScanner(stdin)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := e.Line(line); err != nil {
			failed++
		}
	}
	if err := scanner.Err(); err != nil {
		return failed, errors.Wrap(err, "failed to read equations")
	}
	return failed, nil
}
