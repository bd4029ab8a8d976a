// Package compiler implements the single-pass Pratt compiler: it consumes
// tokens from pkg/lexer and emits bytecode directly into pkg/chunk
// instruction blocks, with no intermediate AST. Grounded in structure on
// the teacher's parser+compiler split, but merged into one pass because
// the language this compiler targets forbids a separate tree-building
// stage (see the design note on single-pass compilation).
package compiler

import (
	"github.com/kristofer/quill/pkg/chunk"
	"github.com/kristofer/quill/pkg/object"
	"github.com/kristofer/quill/pkg/table"
	"github.com/kristofer/quill/pkg/token"
)

// MaxLocals bounds how many local-variable slots a single function body
// may declare at once (the slot index is a single byte operand).
const MaxLocals = 256

// MaxParams bounds a function's parameter count (the CALL operand is a
// single byte too, but arity specifically is capped one lower by the
// spec's 255/256 boundary case).
const MaxParams = 255

type funcType int

const (
	typeFunction funcType = iota
	typeScript
)

// local is one entry in a function's compile-time local-variable table:
// the token it was declared with (for its name and redeclaration errors)
// and its lexical depth. depth -1 means "declared but not yet initialized"
// — reading it inside its own initializer is a compile error.
type local struct {
	name  token.Token
	depth int
}

// compilerState is one function's worth of compile-time bookkeeping. It
// chains to an enclosing state while compiling nested fn bodies, mirroring
// the teacher's Compiler->enclosing pointer chain but threaded explicitly
// rather than through module-level globals.
type compilerState struct {
	enclosing *compilerState

	function *object.Function
	chunk    *chunk.Chunk
	fnType   funcType

	locals     [MaxLocals]local
	localCount int
	scopeDepth int
}

// Compiler holds everything shared across the whole compilation: the
// token stream, the string-interning table the VM will also use, and the
// stack of nested function compiler states.
type Compiler struct {
	p       *parser
	strings *table.Table
	state   *compilerState
}

// Compile parses and compiles source in a single pass, returning the
// top-level script function on success. On failure it returns a
// *CompileError carrying every diagnostic collected during the run.
//
// strings is the VM's intern table; the compiler interns every string and
// identifier constant into it directly so that by the time the VM runs,
// there is exactly one allocation per distinct string content shared
// between compile-time constants and runtime-created strings.
func Compile(source string, strings *table.Table) (*object.Function, error) {
	c := &Compiler{p: newParser(source), strings: strings}
	c.pushState(typeScript, "")

	c.p.advance()
	for !c.p.match(token.EOF) {
		c.declaration()
	}

	fn := c.endCompiler()

	if c.p.hadError {
		return nil, &CompileError{Messages: c.p.errors}
	}
	return fn, nil
}

func (c *Compiler) pushState(fnType funcType, name string) {
	fn := &object.Function{Name: name}
	st := &compilerState{enclosing: c.state, function: fn, chunk: chunk.New(), fnType: fnType}
	// Slot 0 is reserved for the callee itself (used by recursive calls);
	// it is never addressable by source-level names.
	st.locals[0] = local{name: token.Token{Lexeme: ""}, depth: 0}
	st.localCount = 1
	fn.Chunk = st.chunk
	c.state = st
}

// endCompiler finalizes the current function: every instruction block
// implicitly returns null if control falls off its end, then pops back to
// the enclosing compiler state.
func (c *Compiler) endCompiler() *object.Function {
	c.emitByte(byte(chunk.OpNull))
	c.emitByte(byte(chunk.OpReturn))

	fn := c.state.function
	c.state = c.state.enclosing
	return fn
}

func (c *Compiler) currentChunk() *chunk.Chunk {
	return c.state.chunk
}

// emitByte appends one byte of bytecode tagged with the line of the most
// recently consumed token, matching the teacher's "attribute to previous"
// convention.
func (c *Compiler) emitByte(b byte) {
	c.currentChunk().Write(b, c.p.previous.Line)
}

func (c *Compiler) emitBytes(a, b byte) {
	c.emitByte(a)
	c.emitByte(b)
}

func (c *Compiler) emitConstant(v object.Value) {
	idx := c.makeConstant(v)
	c.emitBytes(byte(chunk.OpConstant), idx)
}

func (c *Compiler) makeConstant(v object.Value) byte {
	idx := c.currentChunk().AddConstant(v)
	if idx > 255 {
		c.p.error("Too many constants in one chunk.")
		return 0
	}
	return byte(idx)
}

// internString interns s into the shared strings table and wraps it as a
// Value ready for the constant pool.
func (c *Compiler) internString(s string) object.Value {
	return object.FromObj(table.Intern(c.strings, s))
}

// beginScope/endScope track lexical nesting. Leaving a scope pops every
// local declared inside it, one OP_POP per local, so the VM's operand
// stack is exactly back to where it was on entry.
func (c *Compiler) beginScope() {
	c.state.scopeDepth++
}

func (c *Compiler) endScope() {
	c.state.scopeDepth--
	st := c.state
	for st.localCount > 0 && st.locals[st.localCount-1].depth > st.scopeDepth {
		c.emitByte(byte(chunk.OpPop))
		st.localCount--
	}
}
