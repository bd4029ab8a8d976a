package compiler

import (
	"github.com/kristofer/quill/pkg/chunk"
	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/token"
)

// declaration compiles one top-level-or-block item: a let/fn declaration
// or a plain statement. On a compile error it resynchronizes at the next
// likely statement boundary so one bad line doesn't cascade.
func (c *Compiler) declaration() {
	switch {
	case c.p.match(token.Fn):
		c.fnDeclaration()
	case c.p.match(token.Let):
		c.letDeclaration()
	default:
		c.statement()
	}

	if c.p.panicMode {
		c.p.synchronize()
	}
}

func (c *Compiler) statement() {
	switch {
	case c.p.match(token.Print):
		c.printStatement()
	case c.p.match(token.If):
		c.ifStatement()
	case c.p.match(token.Return):
		c.returnStatement()
	case c.p.match(token.While):
		c.whileStatement()
	case c.p.match(token.For):
		c.forStatement()
	case c.p.match(token.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) block() {
	for !c.p.check(token.RightBrace) && !c.p.check(token.EOF) {
		c.declaration()
	}
	c.p.consume(token.RightBrace, "Expect '}' after block.")
}

func (c *Compiler) printStatement() {
	c.expression()
	c.p.consume(token.Semicolon, "Expect ';' after value.")
	c.emitByte(byte(chunk.OpPrint))
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.p.consume(token.Semicolon, "Expect ';' after expression.")
	c.emitByte(byte(chunk.OpPop))
}

// returnStatement rejects a bare return at the top level: the script body
// is itself compiled as a typeScript function, which has no caller to
// return a value to.
func (c *Compiler) returnStatement() {
	if c.state.fnType == typeScript {
		c.p.error("Can't return from top-level code.")
	}

	if c.p.match(token.Semicolon) {
		c.emitByte(byte(chunk.OpNull))
		c.emitByte(byte(chunk.OpReturn))
		return
	}
	c.expression()
	c.p.consume(token.Semicolon, "Expect ';' after return value.")
	c.emitByte(byte(chunk.OpReturn))
}

func (c *Compiler) letDeclaration() {
	global := c.parseVariable("Expect variable name.")

	if c.p.match(token.Equal) {
		c.expression()
	} else {
		c.emitByte(byte(chunk.OpNull))
	}
	c.p.consume(token.Semicolon, "Expect ';' after variable declaration.")

	c.defineVariable(global)
}

// fnDeclaration compiles `fn NAME(params) { body }`. The name is marked
// initialized before the body compiles so a function can call itself
// recursively by name.
func (c *Compiler) fnDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.compileFunction(typeFunction)
	c.defineVariable(global)
}

func (c *Compiler) compileFunction(fnType funcType) {
	name := c.p.previous.Lexeme
	c.pushState(fnType, name)
	c.beginScope()

	c.p.consume(token.LeftParen, "Expect '(' after function name.")
	if !c.p.check(token.RightParen) {
		for {
			c.state.function.Arity++
			if c.state.function.Arity > MaxParams {
				c.p.error("Can't have more than 255 parameters.")
			}
			paramConst := c.parseVariable("Expect parameter name.")
			c.defineVariable(paramConst)
			if !c.p.match(token.Comma) {
				break
			}
		}
	}
	c.p.consume(token.RightParen, "Expect ')' after parameters.")
	c.p.consume(token.LeftBrace, "Expect '{' before function body.")
	c.block()

	fn := c.endCompiler()
	c.emitConstant(object.FromObj(fn))
}

func (c *Compiler) ifStatement() {
	c.p.consume(token.LeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.p.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitByte(byte(chunk.OpPop))
	c.statement()

	elseJump := c.emitJump(chunk.OpJump)
	c.patchJump(thenJump)
	c.emitByte(byte(chunk.OpPop))

	if c.p.match(token.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) whileStatement() {
	loopStart := len(c.currentChunk().Code)

	c.p.consume(token.LeftParen, "Expect '(' after 'while'.")
	c.expression()
	c.p.consume(token.RightParen, "Expect ')' after condition.")

	exitJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitByte(byte(chunk.OpPop))
	c.statement()
	c.emitLoop(loopStart)

	c.patchJump(exitJump)
	c.emitByte(byte(chunk.OpPop))
}

// forStatement desugars the classic three-clause loop into the same
// while-with-increment shape the teacher's C ancestor uses: the
// initializer runs once, then the condition/jump/body/increment/loop
// sequence is threaded through a scope opened for the whole statement so
// a `let` initializer's variable is scoped to just this loop.
func (c *Compiler) forStatement() {
	c.beginScope()
	c.p.consume(token.LeftParen, "Expect '(' after 'for'.")

	switch {
	case c.p.match(token.Semicolon):
		// no initializer
	case c.p.match(token.Let):
		c.letDeclaration()
	default:
		c.expressionStatement()
	}

	loopStart := len(c.currentChunk().Code)
	exitJump := -1
	if !c.p.check(token.Semicolon) {
		c.expression()
		c.p.consume(token.Semicolon, "Expect ';' after loop condition.")
		exitJump = c.emitJump(chunk.OpJumpIfFalse)
		c.emitByte(byte(chunk.OpPop))
	} else {
		c.p.advance()
	}

	if !c.p.check(token.RightParen) {
		bodyJump := c.emitJump(chunk.OpJump)
		incrementStart := len(c.currentChunk().Code)
		c.expression()
		c.emitByte(byte(chunk.OpPop))
		c.p.consume(token.RightParen, "Expect ')' after for clauses.")

		c.emitLoop(loopStart)
		loopStart = incrementStart
		c.patchJump(bodyJump)
	} else {
		c.p.consume(token.RightParen, "Expect ')' after for clauses.")
	}

	c.statement()
	c.emitLoop(loopStart)

	if exitJump != -1 {
		c.patchJump(exitJump)
		c.emitByte(byte(chunk.OpPop))
	}

	c.endScope()
}
