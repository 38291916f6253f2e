package chip8

// Instruction is an immutable decoded view of one raw 16-bit instruction
// word. Decoding never fails: every bit pattern yields a value in each
// field, and validity is decided by the opcode dispatch, not here.
type Instruction struct {
	raw uint16
}

// DecodeInstruction decodes two raw memory bytes in big-endian order.
func DecodeInstruction(high, low byte) Instruction {
	return Instruction{raw: uint16(high)<<8 | uint16(low)}
}

// Raw returns the original 16-bit instruction word.
func (i Instruction) Raw() uint16 {
	return i.raw
}

// FirstNibble returns the opcode family selector (0-F).
func (i Instruction) FirstNibble() byte {
	return byte(i.raw >> 12)
}

// LastNibble returns the lowest 4 bits (n), the sub-code of the ALU family
// and the sprite height of the draw opcode.
func (i Instruction) LastNibble() byte {
	return byte(i.raw & 0x000F)
}

// X returns the first register index field.
func (i Instruction) X() byte {
	return byte(i.raw >> 8 & 0x000F)
}

// Y returns the second register index field.
func (i Instruction) Y() byte {
	return byte(i.raw >> 4 & 0x000F)
}

// Addr returns the 12-bit address field (nnn).
func (i Instruction) Addr() uint16 {
	return i.raw & 0x0FFF
}

// Byte returns the 8-bit immediate field (kk), also used as the sub-code
// selector of the system, key and timer opcode families.
func (i Instruction) Byte() byte {
	return byte(i.raw & 0x00FF)
}
