// Package lexer provides the lexical analyzer for arithmetic equations.
package lexer

import (
	"strings"
	"unicode/utf8"
)

const eof rune = -1

// Option configures a Lexer.
type Option func(*Lexer)

// SkipSpaces makes the lexer ignore blanks and tabs between tokens. By
// default any whitespace is an unexpected symbol.
func SkipSpaces() Option {
	return func(l *Lexer) { l.skipSpaces = true }
}

type Lexer struct {
	input string

	curToken Token
	err      error // Sticky, once set every NextToken returns it.

	atEOF bool

	pos   int // Current position in input.
	start int // Position of the start of the current token.

	equals     int // Number of '=' or '==' tokens emitted so far.
	skipSpaces bool
}

// New creates a new Lexer for the given equation. A lexer is never reset,
// each equation needs its own.
func New(input string, opts ...Option) *Lexer {
	l := &Lexer{
		input: input,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NextToken scans and returns the next token. Once the input is exhausted it
// keeps returning TokEOF.
func (l *Lexer) NextToken() (Token, error) {
	if l.err != nil {
		return l.curToken, l.err
	}
	l.curToken = Token{Type: TokEOF, Value: "EOF", Pos: l.pos}
	state := lexEquation
	for {
		state = state(l)
		if state == nil {
			return l.curToken, l.err
		}
	}
}

// Tokenize drains a new lexer over input, EOF token included.
func Tokenize(input string, opts ...Option) ([]Token, error) {
	l := New(input, opts...)
	var tokens []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokEOF {
			return tokens, nil
		}
	}
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.input) {
		l.atEOF = true
		return eof
	}
	r, n := utf8.DecodeRuneInString(l.input[l.pos:])
	l.pos += n
	return r
}

func (l *Lexer) backup() {
	// If we reached eof, we can't back up.
	// If we are at the beginning of the input, we can't back up.
	if l.atEOF || l.pos == 0 {
		return
	}
	_, n := utf8.DecodeLastRuneInString(l.input[:l.pos])
	l.pos -= n
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *Lexer) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

func (l *Lexer) acceptRun(valid string) bool {
	accepted := false
	for strings.ContainsRune(valid, l.next()) {
		accepted = true
	}
	l.backup()
	return accepted
}

func (l *Lexer) acceptRunFunc(valid func(rune) bool) bool {
	accepted := false
	for r := l.next(); r != eof && valid(r); r = l.next() {
		accepted = true
	}
	l.backup()
	return accepted
}

func (l *Lexer) thisToken(tt TokenType) Token {
	t := Token{
		Type:  tt,
		Value: l.input[l.start:l.pos],
		Pos:   l.start,
	}
	l.start = l.pos
	return t
}

func (l *Lexer) emitToken(t Token) stateFn {
	l.curToken = t
	return nil
}

func (l *Lexer) emit(tt TokenType) stateFn {
	return l.emitToken(l.thisToken(tt))
}

func (l *Lexer) ignore() {
	l.start = l.pos
}

func (l *Lexer) fail(err error) stateFn {
	l.curToken = Token{
		Type:  TokError,
		Value: err.Error(),
		Pos:   l.start,
	}
	l.err = err
	return nil
}
