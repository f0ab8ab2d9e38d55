package lexer

import (
	"strings"
	"unicode"
)

const (
	digits      = "0123456789"
	numberChars = digits + "."
	spaceChars  = " \t"
)

type stateFn func(*Lexer) stateFn

// List of runes that just advance one and emit a token.
var singles = map[rune]TokenType{
	'(': TokParenLeft,
	')': TokParenRight,
	'+': TokPlus,
	'-': TokMinus,
	'*': TokMultiply,
	'/': TokDivide,
}

func lexEquation(l *Lexer) stateFn {
	switch r := l.peek(); {
	case r == eof:
		return l.emit(TokEOF)
	case l.skipSpaces && strings.ContainsRune(spaceChars, r):
		l.acceptRun(spaceChars)
		l.ignore()
		return lexEquation
	case r == '=':
		return lexEquals
	case r >= '0' && r <= '9':
		return lexNumber
	case unicode.IsLetter(r):
		return lexIdentifier
	default:
		if tok, ok := singles[r]; ok {
			l.next()
			return l.emit(tok)
		}
		return l.fail(&SymbolError{Col: l.pos, Char: r})
	}
}

// lexEquals scans '=' or '=='. Only one of them is allowed per equation.
func lexEquals(l *Lexer) stateFn {
	if l.equals > 0 {
		return l.fail(&DuplicateEqualsError{Col: l.pos})
	}
	l.equals++
	l.next()
	if l.accept("=") {
		return l.emit(TokEqual)
	}
	return l.emit(TokAssign)
}

func lexNumber(l *Lexer) stateFn {
	l.acceptRun(numberChars)
	text := l.input[l.start:l.pos]
	switch {
	case strings.HasSuffix(text, "."):
		return l.fail(&TrailingDotError{Col: l.pos - 1})
	case strings.Contains(text, "."):
		return l.emit(TokFloat)
	}
	return l.emit(TokInt)
}

func lexIdentifier(l *Lexer) stateFn {
	l.acceptRunFunc(func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	})
	return l.emit(TokIdentifier)
}
