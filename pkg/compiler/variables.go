package compiler

import (
	"github.com/kristofer/quill/pkg/chunk"
	"github.com/kristofer/quill/pkg/token"
)

// parseVariable consumes an identifier and returns a constant-pool index
// for it when compiling at global scope (index 0 is returned, unused, for
// locals — see declareVariable). errMsg is reported if the next token
// isn't an identifier.
func (c *Compiler) parseVariable(errMsg string) byte {
	c.p.consume(token.Identifier, errMsg)

	c.declareVariable()
	if c.state.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.p.previous)
}

func (c *Compiler) identifierConstant(name token.Token) byte {
	return c.makeConstant(c.internString(name.Lexeme))
}

// declareVariable registers the identifier just consumed (c.p.previous) as
// a new local, if currently inside a scope; it is a no-op at global scope,
// where parseVariable's constant-pool index does the job instead.
func (c *Compiler) declareVariable() {
	if c.state.scopeDepth == 0 {
		return
	}

	name := c.p.previous
	st := c.state
	for i := st.localCount - 1; i >= 0; i-- {
		l := st.locals[i]
		if l.depth != -1 && l.depth < st.scopeDepth {
			break
		}
		if l.name.Lexeme == name.Lexeme {
			c.p.error("Redeclaration of local variable.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) addLocal(name token.Token) {
	st := c.state
	if st.localCount == MaxLocals {
		c.p.error("Too many local variables in function.")
		return
	}
	st.locals[st.localCount] = local{name: name, depth: -1}
	st.localCount++
}

// defineVariable finishes defining the variable whose index parseVariable
// returned: at global scope it emits DEFINE_GLOBAL; at local scope the
// value is already sitting in its slot on the stack, so defining it is
// just flipping the "initialized" marker so it becomes readable (this is
// what blocks `let a = a;` from reading uninitialized garbage).
func (c *Compiler) defineVariable(global byte) {
	if c.state.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitBytes(byte(chunk.OpDefineGlobal), global)
}

func (c *Compiler) markInitialized() {
	st := c.state
	st.locals[st.localCount-1].depth = st.scopeDepth
}

// resolveLocal scans the current function's locals from the top (most
// recently declared first) looking for name, returning its slot or -1 if
// it must be a global. A local found with depth -1 (declared but not yet
// initialized) is a compile error: the name is being read inside its own
// initializer.
func (c *Compiler) resolveLocal(name token.Token) int {
	st := c.state
	for i := st.localCount - 1; i >= 0; i-- {
		l := st.locals[i]
		if l.name.Lexeme == name.Lexeme {
			if l.depth == -1 {
				c.p.error("Cannot read local variable in its own initializer.")
			}
			return i
		}
	}
	return -1
}
