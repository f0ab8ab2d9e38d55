package parser

import (
	"strconv"

	"go.creack.net/eqcalc/ast"
	"go.creack.net/eqcalc/lexer"
)

// parseExpr consumes the token following the current one as the start of an
// operand, then folds every operator binding tighter than bp. On return the
// current token is the first one not part of the expression.
func parseExpr(p *Parser, bp bindingPower) (ast.Expr, error) {
	if err := p.nextToken(); err != nil {
		return nil, err
	}

	// Parse the operand, always start with nud.
	nudFn, exists := p.nudLookupTable[p.curToken.Type]
	if !exists {
		if p.curToken.Type == lexer.TokEOF {
			return nil, &OperatorError{Col: p.curToken.Pos}
		}
		return nil, &OperatorError{Col: p.curToken.Pos, Operator: p.curToken.Value}
	}
	left, err := nudFn(p)
	if err != nil {
		return nil, err
	}

	// While we have tokens with a higher binding power, parse them using led.
	for p.bindingPowerLookupTable[p.curToken.Type] > bp {
		ledFn := p.ledLookupTable[p.curToken.Type]
		if left, err = ledFn(p, left, p.bindingPowerLookupTable[p.curToken.Type]); err != nil {
			return nil, err
		}
	}

	return left, nil
}

func parsePrimaryExpr(p *Parser) (ast.Expr, error) {
	tok := p.curToken

	var expr ast.Expr
	switch tok.Type {
	case lexer.TokInt:
		number, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return nil, &NumberError{Col: tok.Pos, Text: tok.Value, Err: err}
		}
		expr = ast.IntExpr{Value: number}
	case lexer.TokFloat:
		number, err := strconv.ParseFloat(tok.Value, 64)
		if err != nil {
			return nil, &NumberError{Col: tok.Pos, Text: tok.Value, Err: err}
		}
		expr = ast.FloatExpr{Value: number}
	default:
		expr = ast.IdentifierExpr{Name: tok.Value}
	}

	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return expr, nil
}

func parseGroupingExpr(p *Parser) (ast.Expr, error) {
	open := p.curToken
	inner, err := parseExpr(p, bpDefault)
	if err != nil {
		return nil, err
	}
	if p.curToken.Type != lexer.TokParenRight {
		return nil, &BracketError{Col: open.Pos, Left: open.Value}
	}

	// Step past the close bracket.
	if err := p.nextToken(); err != nil {
		return nil, err
	}
	return inner, nil
}

// parseBinaryExpr parses the right operand at the operator's own binding
// power, so a run of operators of the same level folds to the left: 10-3-2 is
// -(-(10, 3), 2).
func parseBinaryExpr(p *Parser, left ast.Expr, bp bindingPower) (ast.Expr, error) {
	operator := p.curToken
	right, err := parseExpr(p, bp)
	if err != nil {
		return nil, err
	}

	return ast.BinaryExpr{
		Left:     left,
		Operator: operator,
		Right:    right,
	}, nil
}
