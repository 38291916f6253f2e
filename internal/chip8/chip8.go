// Package chip8 implements the CHIP-8 virtual machine core.
// CHIP-8 is an interpreted programming language from the 1970s designed for
// simple games, executed by a virtual machine with 4KB of memory, 16
// general-purpose 8-bit registers, a monochrome 64x32 display and a 16-key
// hexadecimal keypad.
// The machine executes one instruction per Step call and performs no I/O,
// timing or rendering itself; a host drives it through the exported state
// and stepping operations.
package chip8

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
//
// CHIP-8 memory map (4KB total):
//
//	0x000-0x1FF: Interpreter and font data (512 bytes)
//	0x200-0xFFF: User program space (3584 bytes)
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the memory address where programs begin execution.
	ProgramStart = 0x200

	// MaxProgramSize is the number of bytes available to a loaded program.
	MaxProgramSize = MemorySize - ProgramStart
)

const (
	registerCount = 16
	keypadKeys    = 16

	// flagRegister is the index of VF, which the arithmetic, shift and draw
	// opcodes overwrite as a side effect to report carry, borrow or
	// collision.
	flagRegister = 0xF
)

// Program loading and execution errors.
var (
	ErrNoProgram         = errors.New("program is empty")
	ErrProgramTooLarge   = errors.New("program exceeds available memory")
	ErrAddressOutOfRange = errors.New("program counter out of memory range")
)

// Options configures a machine at construction time.
type Options struct {
	// Chip48Mode switches the shift and jump-with-offset opcodes to the
	// CHIP-48 interpretation for the lifetime of the machine.
	Chip48Mode bool
}

// Chip8 owns the complete mutable interpreter state: memory, registers,
// address register, program counter, call stack, display, timers and the
// pressed-key set. It is not safe for concurrent use; a host that runs
// multiple steps per tick must drive it from a single goroutine.
type Chip8 struct {
	logger *log.Logger

	memory          [MemorySize]byte
	registers       [registerCount]byte
	addressRegister uint16
	pc              ProgramCounter
	stack           []uint16

	display Display

	delayTimer byte
	soundTimer byte

	keys [keypadKeys]bool

	chip48Mode bool
	rand       *rand.Rand
}

// New creates a machine with the built-in font glyphs loaded and the
// program counter pointing at the program start address.
func New(logger *log.Logger, options Options) *Chip8 {
	c := &Chip8{
		logger:     logger,
		pc:         newProgramCounter(),
		chip48Mode: options.Chip48Mode,
		rand:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	copy(c.memory[fontOffset:], font[:])
	return c
}

// LoadProgram copies a program image verbatim into memory at the program
// start address. The image is raw bytes without any header or magic number.
func (c *Chip8) LoadProgram(program []byte) error {
	if len(program) == 0 {
		return ErrNoProgram
	}
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes loaded, %d available",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	copy(c.memory[ProgramStart:], program)
	return nil
}

// Step executes a single instruction: fetch two bytes at the program
// counter, decode them, advance the counter and dispatch on the opcode
// family. The executed instruction is returned for hosts that trace
// execution. Step returns an error when the program counter points outside
// of memory; all other failure conditions are recoverable and logged.
func (c *Chip8) Step() (Instruction, error) {
	address := c.pc.Value()
	if address > MemorySize-2 {
		return Instruction{}, fmt.Errorf("%w: %04X", ErrAddressOutOfRange, address)
	}

	ins := DecodeInstruction(c.memory[address], c.memory[address+1])
	c.pc.Increment()
	opcodeHandlers[ins.FirstNibble()](c, ins)
	return ins, nil
}

// TickTimers decrements the delay and sound timers if they are non-zero.
// Hosts call this exactly once per tick, independent of how many
// instructions execute in that tick; the instruction stream itself never
// decrements the timers.
func (c *Chip8) TickTimers() {
	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
}

// SetPressedKeys replaces the pressed-key set. Hosts rebuild the set once
// per tick from their key-state source; key order and duplicates are
// irrelevant and values outside the 16-key keypad are ignored.
func (c *Chip8) SetPressedKeys(keys []byte) {
	c.keys = [keypadKeys]bool{}
	for _, key := range keys {
		if key < keypadKeys {
			c.keys[key] = true
		}
	}
}

// Display returns the display grid for rendering. Consumers treat it as
// read-only.
func (c *Chip8) Display() *Display {
	return &c.display
}

// ProgramCounter returns the current program counter value.
func (c *Chip8) ProgramCounter() uint16 {
	return c.pc.Value()
}

// AddressRegister returns the current value of the address register I.
func (c *Chip8) AddressRegister() uint16 {
	return c.addressRegister
}

// Register returns the value of register V0-VF.
func (c *Chip8) Register(index byte) byte {
	return c.registers[index&0x0F]
}

// DelayTimer returns the current delay timer value.
func (c *Chip8) DelayTimer() byte {
	return c.delayTimer
}

// SoundTimer returns the current sound timer value. Hosts play a tone while
// it is non-zero.
func (c *Chip8) SoundTimer() byte {
	return c.soundTimer
}

// StackDepth returns the number of pending subroutine return addresses.
func (c *Chip8) StackDepth() int {
	return len(c.stack)
}

// DumpState returns a single line summary of the program counter, address
// register, timers, stack depth and register file for debugging.
func (c *Chip8) DumpState() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "PC:%04X I:%04X DT:%02X ST:%02X SP:%d",
		c.pc.Value(), c.addressRegister, c.delayTimer, c.soundTimer, len(c.stack))
	for i, value := range c.registers {
		fmt.Fprintf(&sb, " V%X:%02X", i, value)
	}
	return sb.String()
}

// readMemory returns the byte at the given address. The address register is
// architecturally a 12-bit pointer, so computed addresses wrap modulo the
// memory size instead of faulting.
func (c *Chip8) readMemory(address uint16) byte {
	return c.memory[address&(MemorySize-1)]
}

// writeMemory stores a byte at the given address, wrapping like readMemory.
func (c *Chip8) writeMemory(address uint16, value byte) {
	c.memory[address&(MemorySize-1)] = value
}
