package compiler

import "strings"

// CompileError accumulates every diagnostic produced while compiling one
// source string. Compile keeps going after the first error (see panicMode
// in parser.go) so a single run can report more than one mistake, the way
// the teacher's parser.go collects into an []error rather than stopping at
// the first one.
type CompileError struct {
	Messages []string
}

func (e *CompileError) Error() string {
	return strings.Join(e.Messages, "\n")
}
