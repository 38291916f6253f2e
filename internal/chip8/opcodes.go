package chip8

import (
	"github.com/retroenv/retrogolib/log"
)

// opcodeHandlers routes the leading nibble of an instruction to its handler.
// The table is fixed at compile time; the families 0x0, 0x8, 0xE and 0xF
// branch further on their sub-codes inside the handler.
var opcodeHandlers = [16]func(*Chip8, Instruction){
	0x0: handleSystem,
	0x1: handleJump,
	0x2: handleCall,
	0x3: handleSkipEqualByte,
	0x4: handleSkipNotEqualByte,
	0x5: handleSkipEqualRegister,
	0x6: handleLoadByte,
	0x7: handleAddByte,
	0x8: handleALU,
	0x9: handleSkipNotEqualRegister,
	0xA: handleLoadAddress,
	0xB: handleJumpOffset,
	0xC: handleRandom,
	0xD: handleDraw,
	0xE: handleKey,
	0xF: handleTimerAndMemory,
}

// handleSystem executes the 0nnn family: 00E0 clears the display and 00EE
// returns from a subroutine. Returning with an empty call stack falls back
// to address 0, a leniency some historical programs rely on. The machine
// code call (0nnn) of the original hardware is not implemented and reports
// as unknown.
func handleSystem(c *Chip8, ins Instruction) {
	switch ins.Byte() {
	case 0xE0:
		c.display.clear()

	case 0xEE:
		var address uint16
		if n := len(c.stack); n > 0 {
			address = c.stack[n-1]
			c.stack = c.stack[:n-1]
		} else {
			c.logger.Debug("return with empty call stack",
				log.Hex("pc", c.pc.Value()))
		}
		c.pc.SetTo(address)

	default:
		c.unknownInstruction(ins)
	}
}

// handleJump executes 1nnn, an absolute jump.
func handleJump(c *Chip8, ins Instruction) {
	c.pc.SetTo(ins.Addr())
}

// handleCall executes 2nnn: push the address of the next instruction onto
// the call stack and jump to the subroutine.
func handleCall(c *Chip8, ins Instruction) {
	c.stack = append(c.stack, c.pc.Value())
	c.pc.SetTo(ins.Addr())
}

// handleSkipEqualByte executes 3xkk: skip the next instruction if Vx equals
// the immediate.
func handleSkipEqualByte(c *Chip8, ins Instruction) {
	c.pc.IncrementIf(c.registers[ins.X()] == ins.Byte())
}

// handleSkipNotEqualByte executes 4xkk: skip the next instruction if Vx
// does not equal the immediate.
func handleSkipNotEqualByte(c *Chip8, ins Instruction) {
	c.pc.IncrementIf(c.registers[ins.X()] != ins.Byte())
}

// handleSkipEqualRegister executes 5xy0: skip the next instruction if Vx
// equals Vy.
func handleSkipEqualRegister(c *Chip8, ins Instruction) {
	c.pc.IncrementIf(c.registers[ins.X()] == c.registers[ins.Y()])
}

// handleLoadByte executes 6xkk: load the immediate into Vx.
func handleLoadByte(c *Chip8, ins Instruction) {
	c.registers[ins.X()] = ins.Byte()
}

// handleAddByte executes 7xkk: add the immediate to Vx, wrapping modulo 256.
// The flag register is not touched.
func handleAddByte(c *Chip8, ins Instruction) {
	c.registers[ins.X()] += ins.Byte()
}

// handleALU executes the 8xyn register-to-register family. The arithmetic
// and shift operations write the flag register after computing the result
// and before storing it, so an operation targeting VF itself ends with the
// result in VF, not the flag.
func handleALU(c *Chip8, ins Instruction) {
	x, y := ins.X(), ins.Y()
	vx, vy := c.registers[x], c.registers[y]

	switch ins.LastNibble() {
	case 0x0: // assign
		c.registers[x] = vy

	case 0x1: // or
		c.registers[x] = vx | vy

	case 0x2: // and
		c.registers[x] = vx & vy

	case 0x3: // xor
		c.registers[x] = vx ^ vy

	case 0x4: // add, flag reports the carry
		sum := uint16(vx) + uint16(vy)
		c.setFlag(sum > 0xFF)
		c.registers[x] = byte(sum)

	case 0x5: // subtract, flag set when no borrow occurs
		c.setFlag(vx >= vy)
		c.registers[x] = vx - vy

	case 0x6:
		c.shiftRight(x, y)

	case 0x7: // reverse subtract, flag set when no borrow occurs
		c.setFlag(vy >= vx)
		c.registers[x] = vy - vx

	case 0xE:
		c.shiftLeft(x, y)

	default:
		c.unknownInstruction(ins)
	}
}

// shiftRight executes 8xy6. In classic mode Vy is copied into Vx before the
// shift; in CHIP-48 mode Vx shifts in place and Vy is ignored. The flag
// register receives the shifted out bit.
func (c *Chip8) shiftRight(x, y byte) {
	if !c.chip48Mode {
		c.registers[x] = c.registers[y]
	}
	value := c.registers[x]
	c.setFlag(value&0x01 != 0)
	c.registers[x] = value >> 1
}

// shiftLeft executes 8xyE, mirroring shiftRight for the high bit.
func (c *Chip8) shiftLeft(x, y byte) {
	if !c.chip48Mode {
		c.registers[x] = c.registers[y]
	}
	value := c.registers[x]
	c.setFlag(value&0x80 != 0)
	c.registers[x] = value << 1
}

// handleSkipNotEqualRegister executes 9xy0: skip the next instruction if Vx
// does not equal Vy.
func handleSkipNotEqualRegister(c *Chip8, ins Instruction) {
	c.pc.IncrementIf(c.registers[ins.X()] != c.registers[ins.Y()])
}

// handleLoadAddress executes Annn: load the 12-bit constant into the
// address register.
func handleLoadAddress(c *Chip8, ins Instruction) {
	c.addressRegister = ins.Addr()
}

// handleJumpOffset executes Bnnn, the indexed jump with two historical
// interpretations. Classic mode jumps to nnn plus V0. CHIP-48 mode reads
// the register selected by the high nibble of the constant and jumps to its
// value plus the low byte. Both sums are computed in 16-bit space so large
// register values cannot overflow the addition.
func handleJumpOffset(c *Chip8, ins Instruction) {
	if c.chip48Mode {
		c.pc.SetTo(uint16(c.registers[ins.X()]) + uint16(ins.Byte()))
		return
	}
	c.pc.SetTo(ins.Addr() + uint16(c.registers[0]))
}

// handleRandom executes Cxkk: load a pseudo-random byte masked by the
// immediate into Vx.
func handleRandom(c *Chip8, ins Instruction) {
	c.registers[ins.X()] = byte(c.rand.IntN(256)) & ins.Byte()
}

// handleDraw executes Dxyn, the sprite draw. The sprite is n bytes tall,
// read from memory at the address register, one byte per row with the most
// significant bit leftmost. The start coordinates wrap around the display
// edges; the drawn pixels do not: bits past the right edge are clipped
// instead of wrapping into the next row, and rows past the bottom edge are
// dropped. Each set sprite bit toggles its cell; a cell turning from lit to
// unlit sets the flag register to 1, any number of collisions still only
// sets it to 1.
func handleDraw(c *Chip8, ins Instruction) {
	startX := int(c.registers[ins.X()]) % DisplayWidth
	startY := int(c.registers[ins.Y()]) % DisplayHeight
	height := int(ins.LastNibble())

	c.registers[flagRegister] = 0

	for row := range height {
		y := startY + row
		if y >= DisplayHeight {
			break
		}

		sprite := c.readMemory(c.addressRegister + uint16(row))
		for bit := range 8 {
			x := startX + bit
			if x >= DisplayWidth {
				break
			}
			if sprite&(0x80>>bit) == 0 {
				continue
			}
			if c.display.flip(x, y) {
				c.registers[flagRegister] = 1
			}
		}
	}

	c.display.markRefresh()
}

// handleKey executes the Exkk family: skip the next instruction depending
// on whether the key selected by Vx is currently pressed. Register values
// outside the keypad never count as pressed.
func handleKey(c *Chip8, ins Instruction) {
	key := c.registers[ins.X()]
	pressed := key < keypadKeys && c.keys[key]

	switch ins.Byte() {
	case 0x9E:
		c.pc.IncrementIf(pressed)
	case 0xA1:
		c.pc.IncrementIf(!pressed)
	default:
		c.unknownInstruction(ins)
	}
}

// handleTimerAndMemory executes the Fxkk family covering timer access,
// keypad waiting, address register arithmetic, font addressing, BCD
// conversion and bulk register transfer.
func handleTimerAndMemory(c *Chip8, ins Instruction) {
	x := ins.X()

	switch ins.Byte() {
	case 0x07: // read delay timer
		c.registers[x] = c.delayTimer

	case 0x0A:
		c.waitForKey(x)

	case 0x15: // set delay timer
		c.delayTimer = c.registers[x]

	case 0x18: // set sound timer
		c.soundTimer = c.registers[x]

	case 0x1E: // add to address register
		// The flag is set once the register passes 0x1000 and is never
		// cleared here; programs use it to detect addressing overflow.
		c.addressRegister += uint16(c.registers[x])
		if c.addressRegister > 0x1000 {
			c.registers[flagRegister] = 1
		}

	case 0x29: // point address register at a built-in glyph
		c.addressRegister = fontOffset + glyphSize*uint16(c.registers[x]&0x0F)

	case 0x33: // binary-coded decimal
		value := c.registers[x]
		c.writeMemory(c.addressRegister, value/100)
		c.writeMemory(c.addressRegister+1, value/10%10)
		c.writeMemory(c.addressRegister+2, value%10)

	case 0x55: // store V0..Vx to memory, address register unchanged
		for i := range uint16(x) + 1 {
			c.writeMemory(c.addressRegister+i, c.registers[i])
		}

	case 0x65: // load V0..Vx from memory, address register unchanged
		for i := range uint16(x) + 1 {
			c.registers[i] = c.readMemory(c.addressRegister + i)
		}

	default:
		c.unknownInstruction(ins)
	}
}

// waitForKey executes Fx0A. With no key pressed the program counter is
// rewound by one instruction so the opcode re-executes on the next step,
// turning the wait into a busy loop that keeps the host tick responsive.
// Once keys are pressed the lowest key value is stored in Vx.
func (c *Chip8) waitForKey(x byte) {
	pressed := false
	for key := range byte(keypadKeys) {
		if c.keys[key] {
			c.registers[x] = key
			pressed = true
			break
		}
	}
	c.pc.DecrementIf(!pressed)
}

// setFlag writes a carry, borrow or collision result into the flag
// register VF.
func (c *Chip8) setFlag(flag bool) {
	if flag {
		c.registers[flagRegister] = 1
	} else {
		c.registers[flagRegister] = 0
	}
}

// unknownInstruction reports an instruction that matches no defined
// sub-code of its family. The condition is recoverable: execution continues
// at the already advanced program counter with all other state untouched.
func (c *Chip8) unknownInstruction(ins Instruction) {
	c.logger.Warn("unknown instruction",
		log.Uint8("family", ins.FirstNibble()),
		log.Hex("opcode", ins.Raw()),
		log.Hex("pc", c.pc.Value()))
}
