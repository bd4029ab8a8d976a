package compiler

import (
	"strconv"

	"github.com/kristofer/quill/pkg/chunk"
	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/token"
)

func (c *Compiler) expression() {
	c.parsePrecedence(precAssignment)
}

// parsePrecedence is the Pratt engine: consume one token, dispatch its
// prefix handler, then keep consuming and dispatching infix handlers as
// long as the current token's precedence is at least minPrec.
func (c *Compiler) parsePrecedence(minPrec precedence) {
	c.p.advance()
	prefixRule := getRule(c.p.previous.Type).prefix
	if prefixRule == nil {
		c.p.error("Expected expression.")
		return
	}

	canAssign := minPrec <= precAssignment
	prefixRule(c, canAssign)

	for minPrec <= getRule(c.p.current.Type).precedence {
		c.p.advance()
		infixRule := getRule(c.p.previous.Type).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.p.match(token.Equal) {
		c.p.error("Invalid assignment target.")
	}
}

func (c *Compiler) number(_ bool) {
	v, _ := strconv.ParseFloat(c.p.previous.Lexeme, 64)
	c.emitConstant(object.Number(v))
}

// stringLiteral strips the surrounding quotes the scanner left in place
// before interning the contents.
func (c *Compiler) stringLiteral(_ bool) {
	lexeme := c.p.previous.Lexeme
	raw := lexeme[1 : len(lexeme)-1]
	c.emitConstant(c.internString(raw))
}

func (c *Compiler) literal(_ bool) {
	switch c.p.previous.Type {
	case token.False:
		c.emitByte(byte(chunk.OpFalse))
	case token.True:
		c.emitByte(byte(chunk.OpTrue))
	case token.Null:
		c.emitByte(byte(chunk.OpNull))
	}
}

func (c *Compiler) grouping(_ bool) {
	c.expression()
	c.p.consume(token.RightParen, "Expect ')' after expression.")
}

func (c *Compiler) unary(_ bool) {
	opType := c.p.previous.Type
	c.parsePrecedence(precUnary)

	switch opType {
	case token.Minus:
		c.emitByte(byte(chunk.OpNegate))
	case token.Bang:
		c.emitByte(byte(chunk.OpNot))
	}
}

func (c *Compiler) binary(_ bool) {
	opType := c.p.previous.Type
	rule := getRule(opType)
	c.parsePrecedence(rule.precedence + 1)

	switch opType {
	case token.BangEqual:
		c.emitBytes(byte(chunk.OpEqual), byte(chunk.OpNot))
	case token.EqualEqual:
		c.emitByte(byte(chunk.OpEqual))
	case token.Greater:
		c.emitByte(byte(chunk.OpGreater))
	case token.GreaterEqual:
		c.emitBytes(byte(chunk.OpLess), byte(chunk.OpNot))
	case token.Less:
		c.emitByte(byte(chunk.OpLess))
	case token.LessEqual:
		c.emitBytes(byte(chunk.OpGreater), byte(chunk.OpNot))
	case token.Plus:
		c.emitByte(byte(chunk.OpAdd))
	case token.Minus:
		c.emitByte(byte(chunk.OpSubtract))
	case token.Star:
		c.emitByte(byte(chunk.OpMultiply))
	case token.Slash:
		c.emitByte(byte(chunk.OpDivide))
	}
}

// and short-circuits: if the left operand is falsey, jump over the right
// operand entirely (leaving the falsey left value as the result);
// otherwise pop it and evaluate the right operand.
func (c *Compiler) and(_ bool) {
	endJump := c.emitJump(chunk.OpJumpIfFalse)
	c.emitByte(byte(chunk.OpPop))
	c.parsePrecedence(precAnd)
	c.patchJump(endJump)
}

// or mirrors and: if the left operand is truthy, skip straight past the
// right operand.
func (c *Compiler) or(_ bool) {
	elseJump := c.emitJump(chunk.OpJumpIfFalse)
	endJump := c.emitJump(chunk.OpJump)

	c.patchJump(elseJump)
	c.emitByte(byte(chunk.OpPop))

	c.parsePrecedence(precOr)
	c.patchJump(endJump)
}

func (c *Compiler) call(_ bool) {
	argCount := c.argumentList()
	c.emitBytes(byte(chunk.OpCall), argCount)
}

func (c *Compiler) argumentList() byte {
	var count int
	if !c.p.check(token.RightParen) {
		for {
			c.expression()
			count++
			if count > MaxParams {
				c.p.error("Can't have more than 255 arguments.")
			}
			if !c.p.match(token.Comma) {
				break
			}
		}
	}
	c.p.consume(token.RightParen, "Expect ')' after arguments.")
	return byte(count)
}

// variable resolves an identifier to a local slot or a global name and
// emits the matching GET/SET opcode; when canAssign is true and an '='
// follows, it compiles an assignment instead of a read.
func (c *Compiler) variable(canAssign bool) {
	c.namedVariable(c.p.previous, canAssign)
}

func (c *Compiler) namedVariable(name token.Token, canAssign bool) {
	var getOp, setOp chunk.OpCode
	arg := c.resolveLocal(name)
	if arg != -1 {
		getOp, setOp = chunk.OpGetLocal, chunk.OpSetLocal
	} else {
		arg = int(c.identifierConstant(name))
		getOp, setOp = chunk.OpGetGlobal, chunk.OpSetGlobal
	}

	if canAssign && c.p.match(token.Equal) {
		c.expression()
		c.emitBytes(byte(setOp), byte(arg))
		return
	}
	c.emitBytes(byte(getOp), byte(arg))
}
