package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNewLoadsFontAndResetsProgramCounter(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})

	assert.Equal(t, uint16(ProgramStart), c.ProgramCounter())

	// first row of glyph 0 and last row of glyph F
	assert.Equal(t, byte(0xF0), c.memory[fontOffset])
	assert.Equal(t, byte(0x80), c.memory[fontOffset+len(font)-1])
}

func TestLoadProgram(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})

	err := c.LoadProgram([]byte{0x60, 0x05, 0x12, 0x00})
	assert.NoError(t, err)

	assert.Equal(t, byte(0x60), c.memory[ProgramStart])
	assert.Equal(t, byte(0x05), c.memory[ProgramStart+1])
	assert.Equal(t, byte(0x12), c.memory[ProgramStart+2])
	assert.Equal(t, byte(0x00), c.memory[ProgramStart+3])
}

func TestLoadProgramValidation(t *testing.T) {
	tests := []struct {
		name     string
		program  []byte
		expected error
	}{
		{"empty program", nil, ErrNoProgram},
		{"maximum size", make([]byte, MaxProgramSize), nil},
		{"one byte too large", make([]byte, MaxProgramSize+1), ErrProgramTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(log.NewTestLogger(t), Options{})
			err := c.LoadProgram(tt.program)

			if tt.expected == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.expected))
		})
	}
}

func TestStepFaultsOutsideMemory(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})

	c.pc.SetTo(MemorySize - 1) // a full instruction no longer fits
	_, err := c.Step()
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))

	c.pc.SetTo(0xFFFE)
	_, err = c.Step()
	assert.True(t, errors.Is(err, ErrAddressOutOfRange))
}

func TestStepAtLastValidAddress(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})

	c.pc.SetTo(MemorySize - 2)
	ins, err := c.Step()
	assert.NoError(t, err)
	assert.Equal(t, uint16(0), ins.Raw())
	assert.Equal(t, uint16(MemorySize), c.ProgramCounter())
}

// TestRunSkipProgram executes a small program end to end: the conditional
// skip suppresses the final register write, leaving the addition result.
func TestRunSkipProgram(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})

	program := []byte{
		0x60, 0x05, // set V0 to 5
		0x70, 0x03, // add 3 to V0
		0x30, 0x08, // skip the next instruction if V0 equals 8
		0x60, 0x63, // set V0 to 99, skipped over
	}
	assert.NoError(t, c.LoadProgram(program))

	for range 4 {
		_, err := c.Step()
		assert.NoError(t, err)
	}

	assert.Equal(t, byte(8), c.Register(0))
}

func TestTickTimers(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})
	c.delayTimer = 2
	c.soundTimer = 1

	c.TickTimers()
	assert.Equal(t, byte(1), c.DelayTimer())
	assert.Equal(t, byte(0), c.SoundTimer())

	c.TickTimers()
	c.TickTimers()
	assert.Equal(t, byte(0), c.DelayTimer())
	assert.Equal(t, byte(0), c.SoundTimer())
}

func TestSetPressedKeys(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})

	c.SetPressedKeys([]byte{0x1, 0xF, 0x1, 0x20}) // duplicate and out of range values
	assert.True(t, c.keys[0x1])
	assert.True(t, c.keys[0xF])
	assert.False(t, c.keys[0x0])

	c.SetPressedKeys(nil) // the set is rebuilt each tick
	assert.False(t, c.keys[0x1])
	assert.False(t, c.keys[0xF])
}

func TestRegisterAccessorMasksIndex(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})
	c.registers[0xA] = 0x42

	assert.Equal(t, byte(0x42), c.Register(0xA))
	assert.Equal(t, byte(0x42), c.Register(0x1A))
}

func TestMemoryAccessWraps(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})

	c.writeMemory(MemorySize, 0x12) // wraps to address 0
	assert.Equal(t, byte(0x12), c.memory[0])
	assert.Equal(t, byte(0x12), c.readMemory(MemorySize))
}

func TestDumpState(t *testing.T) {
	c := New(log.NewTestLogger(t), Options{})
	c.registers[0xA] = 0x42
	c.addressRegister = 0x123

	state := c.DumpState()
	assert.Contains(t, state, "PC:0200")
	assert.Contains(t, state, "I:0123")
	assert.Contains(t, state, "VA:42")
}
