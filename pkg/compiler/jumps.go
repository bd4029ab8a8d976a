package compiler

import "github.com/kristofer/quill/pkg/chunk"

// maxJump is the largest forward/backward distance a 2-byte big-endian
// jump operand can encode.
const maxJump = 65535

// emitJump writes op followed by a two-byte placeholder offset and returns
// the offset of the placeholder's first byte, to be filled in later by
// patchJump once the jump target is known.
func (c *Compiler) emitJump(op chunk.OpCode) int {
	c.emitByte(byte(op))
	c.emitByte(0xFF)
	c.emitByte(0xFF)
	return len(c.currentChunk().Code) - 2
}

// patchJump backfills the placeholder at offset with the distance from
// just after the placeholder to the current end of the chunk.
func (c *Compiler) patchJump(offset int) {
	jump := len(c.currentChunk().Code) - offset - 2
	if jump > maxJump {
		c.p.error("Too much code to jump over.")
		return
	}
	code := c.currentChunk().Code
	code[offset] = byte((jump >> 8) & 0xFF)
	code[offset+1] = byte(jump & 0xFF)
}

// emitLoop writes OP_LOOP followed by the big-endian back-distance to
// loopStart: the offset of the loop's condition, or of a for loop's
// increment clause when the body jumps back to it.
func (c *Compiler) emitLoop(loopStart int) {
	c.emitByte(byte(chunk.OpLoop))

	offset := len(c.currentChunk().Code) - loopStart + 2
	if offset > maxJump {
		c.p.error("Loop body too large.")
		return
	}
	c.emitByte(byte((offset >> 8) & 0xFF))
	c.emitByte(byte(offset & 0xFF))
}
