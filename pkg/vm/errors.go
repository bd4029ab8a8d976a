// Package vm implements the stack-based virtual machine: the dispatch
// loop, operand stack, call-frame stack, globals table, and the runtime
// error/stack-trace reporting below.
package vm

import (
	"fmt"
	"strings"
)

// StackFrame is one entry of a runtime error's trace: the function name
// the frame was executing (empty for the top-level script) and the
// source line active when the error was raised.
type StackFrame struct {
	Name string
	Line int
}

// RuntimeError is raised by the dispatch loop for type mismatches,
// undefined variables, arity mismatches, stack overflow, and failed
// native calls. Its Error() rendering matches the spec's trace format:
// one "[line L] in NAME()" line per frame, innermost first, or
// "[line L] in script" for the top-level frame.
type RuntimeError struct {
	Message    string
	StackTrace []StackFrame
}

func (e *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for i := len(e.StackTrace) - 1; i >= 0; i-- {
		frame := e.StackTrace[i]
		b.WriteString("\n[line ")
		b.WriteString(fmt.Sprintf("%d", frame.Line))
		b.WriteString("] in ")
		if frame.Name == "" {
			b.WriteString("script")
		} else {
			b.WriteString(frame.Name)
			b.WriteString("()")
		}
	}
	return b.String()
}

func newRuntimeError(message string, stack []StackFrame) *RuntimeError {
	return &RuntimeError{Message: message, StackTrace: stack}
}
