package parser

import (
	"github.com/sirupsen/logrus"

	"go.creack.net/eqcalc/ast"
	"go.creack.net/eqcalc/lexer"
)

// logger instance
var log = logrus.New()

// SetLogLevel changes the parser's logging level.
func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

// GetLogLevel gets the parser's logging level.
func GetLogLevel() logrus.Level {
	return log.GetLevel()
}

// Parser builds equation trees. It can be reused for many equations via
// Reset, each equation gets a fresh lexer.
type Parser struct {
	lex  *lexer.Lexer
	opts []lexer.Option

	curToken lexer.Token

	nudLookupTable          lookupTable[nudHandler]
	ledLookupTable          lookupTable[ledHandler]
	bindingPowerLookupTable lookupTable[bindingPower]
}

// New creates a parser for the given equation.
func New(input string, opts ...lexer.Option) *Parser {
	p := &Parser{opts: opts}
	p.createTokenLookups()
	p.Reset(input)
	return p
}

// Parse is a shortcut to parse a single equation.
func Parse(input string, opts ...lexer.Option) (ast.Expr, error) {
	return New(input, opts...).Equation()
}

// Reset points the parser to a new equation, discarding the state of the
// previous lexer.
func (p *Parser) Reset(input string) {
	p.lex = lexer.New(input, p.opts...)
	p.curToken = lexer.Token{}
}

// Equation parses the whole input as an equation. The input must be fully
// consumed: any token left after the equation is an error.
func (p *Parser) Equation() (ast.Expr, error) {
	tree, err := parseExpr(p, bpDefault)
	if err != nil {
		return nil, err
	}
	switch p.curToken.Type {
	case lexer.TokEOF:
	case lexer.TokParenRight:
		return nil, &BracketError{Col: p.curToken.Pos, Right: p.curToken.Value}
	default:
		return nil, &TokenError{Col: p.curToken.Pos, Value: p.curToken.Value}
	}
	log.WithField("tree", tree.Dump()).Debug("equation parsed")
	return tree, nil
}

func (p *Parser) nextToken() error {
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.curToken = tok
	return nil
}
