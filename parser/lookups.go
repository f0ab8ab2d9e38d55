package parser

import (
	"go.creack.net/eqcalc/ast"
	"go.creack.net/eqcalc/lexer"
)

type bindingPower int

const (
	bpDefault bindingPower = iota
	bpEquation
	bpAdditive
	bpMultiplicative
)

type nudHandler func(*Parser) (ast.Expr, error)
type ledHandler func(*Parser, ast.Expr, bindingPower) (ast.Expr, error)

type lookupTable[T any] map[lexer.TokenType]T

func (p *Parser) led(kind lexer.TokenType, bp bindingPower, fn ledHandler) {
	if _, ok := p.ledLookupTable[kind]; ok {
		panic("duplicate led handler")
	}
	p.ledLookupTable[kind] = fn
	p.bindingPowerLookupTable[kind] = bp
}

func (p *Parser) nud(kind lexer.TokenType, fn nudHandler) {
	if _, ok := p.nudLookupTable[kind]; ok {
		panic("duplicate nud handler")
	}
	p.nudLookupTable[kind] = fn
}

func (p *Parser) createTokenLookups() {
	p.nudLookupTable = lookupTable[nudHandler]{}
	p.ledLookupTable = lookupTable[ledHandler]{}
	p.bindingPowerLookupTable = lookupTable[bindingPower]{}

	// Assignment & equality.
	p.led(lexer.TokAssign, bpEquation, parseBinaryExpr)
	p.led(lexer.TokEqual, bpEquation, parseBinaryExpr)

	// Additive & multiplicative.
	p.led(lexer.TokPlus, bpAdditive, parseBinaryExpr)
	p.led(lexer.TokMinus, bpAdditive, parseBinaryExpr)
	p.led(lexer.TokMultiply, bpMultiplicative, parseBinaryExpr)
	p.led(lexer.TokDivide, bpMultiplicative, parseBinaryExpr)

	// Literals & brackets.
	p.nud(lexer.TokInt, parsePrimaryExpr)
	p.nud(lexer.TokFloat, parsePrimaryExpr)
	p.nud(lexer.TokIdentifier, parsePrimaryExpr)
	p.nud(lexer.TokParenLeft, parseGroupingExpr)
}
