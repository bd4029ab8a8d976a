package compiler

import (
	"fmt"

	"github.com/kristofer/quill/pkg/lexer"
	"github.com/kristofer/quill/pkg/token"
)

// parser drives the scanner one token at a time and tracks error state.
// Unlike the teacher lineage's module-level singleton, this is a value
// owned by the Compiler and used by every nested function's compilerState,
// since there is exactly one token stream for an entire compilation
// regardless of how many nested fn bodies it holds.
type parser struct {
	lex *lexer.Lexer

	previous token.Token
	current  token.Token

	hadError  bool
	panicMode bool
	errors    []string
}

func newParser(source string) *parser {
	return &parser{lex: lexer.New(source)}
}

// advance pulls the next token from the scanner into current, reporting
// any scanner-level error tokens (ILLEGAL / unterminated string) as they
// pass through.
func (p *parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lex.ScanToken()
		if p.current.Type != token.Illegal {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

// consume advances past current if it matches tt, else reports msg at the
// current token without advancing.
func (p *parser) consume(tt token.Type, msg string) {
	if p.current.Type == tt {
		p.advance()
		return
	}
	p.errorAtCurrent(msg)
}

// check reports whether the current token has type tt, without consuming.
func (p *parser) check(tt token.Type) bool {
	return p.current.Type == tt
}

// match consumes and returns true if current has type tt; otherwise it is
// a no-op returning false.
func (p *parser) match(tt token.Type) bool {
	if !p.check(tt) {
		return false
	}
	p.advance()
	return true
}

func (p *parser) errorAtCurrent(msg string) {
	p.errorAt(p.current, msg)
}

func (p *parser) error(msg string) {
	p.errorAt(p.previous, msg)
}

// errorAt records a diagnostic in the spec's "[line L] Error at 'LEX': MSG"
// format. While panicMode is set, further errors are swallowed so one
// cascading mistake doesn't flood the report; synchronize clears it again.
func (p *parser) errorAt(tok token.Token, msg string) {
	if p.panicMode {
		return
	}
	p.panicMode = true

	where := fmt.Sprintf("'%s'", tok.Lexeme)
	if tok.Type == token.EOF {
		where = "at end"
	} else {
		where = "at " + where
	}
	p.errors = append(p.errors, fmt.Sprintf("[line %d] Error %s: %s", tok.Line, where, msg))
	p.hadError = true
}

// synchronize skips tokens until a likely statement boundary, so compile
// errors inside one statement don't cascade into bogus errors for the rest
// of the file.
func (p *parser) synchronize() {
	p.panicMode = false

	for p.current.Type != token.EOF {
		if p.previous.Type == token.Semicolon {
			return
		}
		switch p.current.Type {
		case token.Class, token.Fn, token.Let, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}
