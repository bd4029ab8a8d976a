package chunk

import (
	"fmt"
	"io"

	"github.com/kristofer/quill/pkg/object"
)

// Disassemble prints every instruction in c to w, labeled with name (the
// function or "<script>" it came from). Adapted from the original's
// debug.c disassembleChunk/disassembleInstruction pair, rendered as a
// text-only diagnostic since the spec carries no on-disk bytecode format.
func Disassemble(w io.Writer, c *Chunk, name string) {
	fmt.Fprintf(w, "== %s ==\n", name)
	for offset := 0; offset < len(c.Code); {
		offset = DisassembleInstruction(w, c, offset)
	}
}

// DisassembleInstruction prints the single instruction at offset and
// returns the offset of the next one.
func DisassembleInstruction(w io.Writer, c *Chunk, offset int) int {
	fmt.Fprintf(w, "%04d ", offset)
	if offset > 0 && c.Lines[offset] == c.Lines[offset-1] {
		fmt.Fprint(w, "   | ")
	} else {
		fmt.Fprintf(w, "%4d ", c.Lines[offset])
	}

	op := OpCode(c.Code[offset])
	switch op {
	case OpConstant:
		return constantInstruction(w, op, c, offset)
	case OpNull, OpTrue, OpFalse, OpPop, OpEqual, OpGreater, OpLess,
		OpAdd, OpSubtract, OpMultiply, OpDivide, OpNot, OpNegate,
		OpPrint, OpReturn:
		return simpleInstruction(w, op, offset)
	case OpGetLocal, OpSetLocal, OpCall:
		return byteInstruction(w, op, c, offset)
	case OpGetGlobal, OpDefineGlobal, OpSetGlobal:
		return constantInstruction(w, op, c, offset)
	case OpJump, OpJumpIfFalse:
		return jumpInstruction(w, op, 1, c, offset)
	case OpLoop:
		return jumpInstruction(w, op, -1, c, offset)
	default:
		fmt.Fprintf(w, "Unknown opcode %d\n", op)
		return offset + 1
	}
}

func simpleInstruction(w io.Writer, op OpCode, offset int) int {
	fmt.Fprintf(w, "%s\n", op)
	return offset + 1
}

func byteInstruction(w io.Writer, op OpCode, c *Chunk, offset int) int {
	slot := c.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d\n", op, slot)
	return offset + 2
}

func constantInstruction(w io.Writer, op OpCode, c *Chunk, offset int) int {
	idx := c.Code[offset+1]
	fmt.Fprintf(w, "%-16s %4d '%s'\n", op, idx, object.Print(c.Constants[idx]))
	return offset + 2
}

// jumpInstruction prints a two-byte big-endian jump offset and the target
// address it resolves to. sign is +1 for forward jumps, -1 for OP_LOOP's
// backward jump.
func jumpInstruction(w io.Writer, op OpCode, sign int, c *Chunk, offset int) int {
	jump := int(c.Code[offset+1])<<8 | int(c.Code[offset+2])
	target := offset + 3 + sign*jump
	fmt.Fprintf(w, "%-16s %4d -> %d\n", op, offset, target)
	return offset + 3
}
