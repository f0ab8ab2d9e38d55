package evaluator

import (
	"sync"

	"github.com/sirupsen/logrus"

	"go.creack.net/eqcalc/ast"
	"go.creack.net/eqcalc/lexer"
	"go.creack.net/eqcalc/parser"
)

// logger instance
var log = logrus.New()

// SetLogLevel changes the evaluator's logging level.
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// GetLogLevel gets the evaluator's logging level.
func GetLogLevel() logrus.Level {
	return log.GetLevel()
}

// Option configures a Session.
type Option func(*Session)

// WithSkipSpaces lets equations contain blanks between tokens.
func WithSkipSpaces() Option {
	return func(s *Session) { s.lexOpts = append(s.lexOpts, lexer.SkipSpaces()) }
}

// WithTolerance sets the '==' tolerance for floats.
func WithTolerance(tolerance float64) Option {
	return func(s *Session) { s.tolerance = tolerance }
}

// WithTable makes the session use an existing variable table.
func WithTable(vars *Table) Option {
	return func(s *Session) { s.vars = vars }
}

// Session owns a variable table and evaluates successive equations against
// it, so that an assignment is visible to the following equations. Equations
// of a session are evaluated one at a time.
type Session struct {
	mu sync.Mutex

	vars      *Table
	parser    *parser.Parser
	lexOpts   []lexer.Option
	tolerance float64
}

// NewSession creates a session with an empty variable table unless
// WithTable is given.
func NewSession(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.vars == nil {
		s.vars = NewTable()
	}
	s.parser = parser.New("", s.lexOpts...)
	return s
}

// Vars returns the session's variable table.
func (s *Session) Vars() *Table {
	return s.vars
}

// Parse parses an equation without evaluating it.
func (s *Session) Parse(equation string) (ast.Expr, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.parse(equation)
}

// Tokenize splits an equation into tokens with the session's lexer options.
func (s *Session) Tokenize(equation string) ([]lexer.Token, error) {
	return lexer.Tokenize(equation, s.lexOpts...)
}

func (s *Session) parse(equation string) (ast.Expr, error) {
	s.parser.Reset(equation)
	return s.parser.Equation()
}

// Eval parses and evaluates an equation. Assignments are committed to the
// variable table only if the whole equation succeeds.
func (s *Session) Eval(equation string) (Value, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tree, err := s.parse(equation)
	if err != nil {
		log.WithError(err).WithField("equation", equation).Debug("parse failed")
		return nil, err
	}

	scope := stage(s.vars)
	e := &Evaluator{Scope: scope, Tolerance: s.tolerance}
	v, err := e.Eval(tree)
	if err != nil {
		log.WithError(err).WithField("equation", equation).Debug("evaluation failed")
		return nil, err
	}
	scope.commit()

	log.WithFields(logrus.Fields{
		"equation": equation,
		"result":   v.String(),
	}).Debug("equation evaluated")
	return v, nil
}
