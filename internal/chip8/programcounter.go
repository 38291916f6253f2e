package chip8

// ProgramCounter is a 16-bit cursor over memory. Instructions are two bytes
// wide, so the counter always moves in steps of two. It performs no bounds
// checking itself; the fetch path validates the address before reading.
type ProgramCounter struct {
	value uint16
}

// newProgramCounter returns a program counter pointing at the program start.
func newProgramCounter() ProgramCounter {
	return ProgramCounter{value: ProgramStart}
}

// Value returns the current address.
func (p *ProgramCounter) Value() uint16 {
	return p.value
}

// SetTo jumps to the given address.
func (p *ProgramCounter) SetTo(address uint16) {
	p.value = address
}

// Increment advances the counter past one instruction.
func (p *ProgramCounter) Increment() {
	p.value += 2
}

// IncrementIf advances the counter past one instruction if the condition
// holds, implementing the conditional skip opcodes.
func (p *ProgramCounter) IncrementIf(condition bool) {
	if condition {
		p.Increment()
	}
}

// DecrementIf rewinds the counter by one instruction if the condition holds,
// used by the wait-for-key opcode to re-execute itself on the next step.
func (p *ProgramCounter) DecrementIf(condition bool) {
	if condition {
		p.value -= 2
	}
}
