package vm

import (
	"fmt"

	"github.com/kristofer/quill/pkg/chunk"
	"github.com/kristofer/quill/pkg/object"
)

// traceInstruction prints the operand stack and the next instruction about
// to execute, adapted from the teacher's interactive debugger's
// instruction display with the breakpoint/stepping machinery stripped out:
// this is a pure opt-in print, enabled via WithTrace/QUILL_TRACE=1, never
// a blocking prompt.
func (vm *VM) traceInstruction(frame *CallFrame) {
	fmt.Fprint(vm.stderr, "          ")
	for i := 0; i < vm.stackTop; i++ {
		fmt.Fprintf(vm.stderr, "[ %s ]", object.Print(vm.stack[i]))
	}
	fmt.Fprintln(vm.stderr)

	ch := frame.function.Chunk.(*chunk.Chunk)
	chunk.DisassembleInstruction(vm.stderr, ch, frame.ip)
}
