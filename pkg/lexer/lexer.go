// Package lexer implements the lexical analyzer (scanner) for quill.
//
// The scanner turns source text into a stream of tokens with line numbers.
// It keeps three pointers into the source: start (of the current lexeme),
// current (the read head), and line. ScanToken is called on demand by the
// compiler; there is no up-front tokenization pass.
package lexer

import (
	"github.com/kristofer/quill/pkg/token"
)

// Lexer is the scanner state. Unlike the teacher's module-level scanner
// singleton, this is an explicit value the compiler owns and advances,
// which lets nested function compilation share one scanner without any
// global mutable state.
type Lexer struct {
	source  string
	start   int // start of the lexeme currently being scanned
	current int // read head
	line    int // current source line, 1-based
}

// New creates a scanner positioned at the start of source.
func New(source string) *Lexer {
	return &Lexer{source: source, start: 0, current: 0, line: 1}
}

// ScanToken returns the next token from the source, advancing past it.
// At end of input it returns an EOF token forever.
func (l *Lexer) ScanToken() token.Token {
	l.skipWhitespace()
	l.start = l.current

	if l.atEnd() {
		return l.make(token.EOF)
	}

	c := l.advance()

	if isAlpha(c) {
		return l.identifier()
	}
	if isDigit(c) {
		return l.number()
	}

	switch c {
	case '(':
		return l.make(token.LeftParen)
	case ')':
		return l.make(token.RightParen)
	case '{':
		return l.make(token.LeftBrace)
	case '}':
		return l.make(token.RightBrace)
	case ',':
		return l.make(token.Comma)
	case '.':
		return l.make(token.Dot)
	case '-':
		return l.make(token.Minus)
	case '+':
		return l.make(token.Plus)
	case ';':
		return l.make(token.Semicolon)
	case '*':
		return l.make(token.Star)
	case '/':
		return l.make(token.Slash)
	case '!':
		return l.make(l.ifMatch('=', token.BangEqual, token.Bang))
	case '=':
		return l.make(l.ifMatch('=', token.EqualEqual, token.Equal))
	case '<':
		return l.make(l.ifMatch('=', token.LessEqual, token.Less))
	case '>':
		return l.make(l.ifMatch('=', token.GreaterEqual, token.Greater))
	case '"':
		return l.string()
	}

	return l.errorToken("Unexpected character.")
}

func (l *Lexer) atEnd() bool {
	return l.current >= len(l.source)
}

func (l *Lexer) advance() byte {
	c := l.source[l.current]
	l.current++
	return c
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.source[l.current]
}

func (l *Lexer) peekNext() byte {
	if l.current+1 >= len(l.source) {
		return 0
	}
	return l.source[l.current+1]
}

// ifMatch consumes the next character and returns matched if it equals
// expected, else returns unmatched without consuming anything.
func (l *Lexer) ifMatch(expected byte, matched, unmatched token.Type) token.Type {
	if l.atEnd() || l.source[l.current] != expected {
		return unmatched
	}
	l.current++
	return matched
}

// skipWhitespace advances past spaces, tabs, newlines (tracking line), and
// "//" line comments.
func (l *Lexer) skipWhitespace() {
	for {
		if l.atEnd() {
			return
		}
		switch l.peek() {
		case ' ', '\r', '\t':
			l.current++
		case '\n':
			l.line++
			l.current++
		case '/':
			if l.peekNext() == '/' {
				for l.peek() != '\n' && !l.atEnd() {
					l.current++
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// string scans a "-delimited string literal. Embedded newlines count lines;
// reaching end of input first is a scanner error.
func (l *Lexer) string() token.Token {
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.current++
	}
	if l.atEnd() {
		return l.errorToken("Unterminated string.")
	}
	l.current++ // closing quote
	return l.make(token.String)
}

// number scans one or more digits with an optional .digits tail.
func (l *Lexer) number() token.Token {
	for isDigit(l.peek()) {
		l.current++
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.current++ // consume the '.'
		for isDigit(l.peek()) {
			l.current++
		}
	}
	return l.make(token.Number)
}

// identifier scans an alphanumeric-plus-underscore, ASCII-only identifier
// and classifies it against the keyword table.
func (l *Lexer) identifier() token.Token {
	for isAlpha(l.peek()) || isDigit(l.peek()) {
		l.current++
	}
	lexeme := l.source[l.start:l.current]
	if kw, ok := token.Keywords[lexeme]; ok {
		return l.make(kw)
	}
	return l.make(token.Identifier)
}

func (l *Lexer) make(tt token.Type) token.Token {
	return token.Token{Type: tt, Lexeme: l.source[l.start:l.current], Line: l.line}
}

func (l *Lexer) errorToken(msg string) token.Token {
	return token.Token{Type: token.Illegal, Lexeme: msg, Line: l.line}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
