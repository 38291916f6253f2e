package video

import (
	"image/color"
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
)

func newTestTerminal(t *testing.T, program []byte, options Options) *Terminal {
	t.Helper()

	logger := log.NewTestLogger(t)
	machine := chip8.New(logger, chip8.Options{})
	assert.NoError(t, machine.LoadProgram(program))
	em := emulator.New(logger, machine, nil, emulator.Options{})

	frontend := NewTerminal(logger, em, options)
	frontend.out = &strings.Builder{}
	return frontend
}

func TestTerminalInput(t *testing.T) {
	frontend := newTestTerminal(t, []byte{0x00, 0xE0}, Options{Debug: true})

	assert.False(t, frontend.handleInput('1'))
	assert.Equal(t, keyHoldTicks, frontend.keyHold[0x1])

	assert.False(t, frontend.handleInput(' '))
	assert.True(t, frontend.paused)

	assert.False(t, frontend.handleInput('n'))
	assert.True(t, frontend.step)

	assert.True(t, frontend.handleInput(keyCtrlC))
	assert.True(t, frontend.handleInput(keyEscape))
}

func TestTerminalTickHoldsAndDecaysKeys(t *testing.T) {
	frontend := newTestTerminal(t, []byte{
		0x61, 0x01, // V1 = 1
		0xE1, 0x9E, // skip if key V1 pressed
	}, Options{})

	frontend.handleInput('1')
	assert.NoError(t, frontend.tick())
	assert.NoError(t, frontend.tick())

	machine := frontend.emulator.Machine()
	assert.Equal(t, uint16(chip8.ProgramStart+6), machine.ProgramCounter())
	assert.Equal(t, keyHoldTicks-2, frontend.keyHold[0x1])
}

func TestTerminalTickSkipsWhilePaused(t *testing.T) {
	frontend := newTestTerminal(t, []byte{0x6A, 0x02}, Options{Debug: true})
	frontend.handleInput(' ')

	assert.NoError(t, frontend.tick())
	assert.Equal(t, uint16(chip8.ProgramStart), frontend.emulator.Machine().ProgramCounter())

	frontend.handleInput('n')
	assert.NoError(t, frontend.tick())
	assert.Equal(t, uint16(chip8.ProgramStart+2), frontend.emulator.Machine().ProgramCounter())
	assert.NoError(t, frontend.tick())
	assert.Equal(t, uint16(chip8.ProgramStart+2), frontend.emulator.Machine().ProgramCounter())
}

func TestTerminalTickRendersOnRefresh(t *testing.T) {
	frontend := newTestTerminal(t, []byte{0x00, 0xE0}, Options{})
	out := &strings.Builder{}
	frontend.out = out

	assert.NoError(t, frontend.tick())
	assert.True(t, strings.HasPrefix(out.String(), cursorHome))

	// no change, no redraw
	out.Reset()
	assert.NoError(t, frontend.tick())
	assert.Equal(t, 0, out.Len())
}

func TestRenderFrame(t *testing.T) {
	logger := log.NewTestLogger(t)
	machine := chip8.New(logger, chip8.Options{})
	assert.NoError(t, machine.LoadProgram([]byte{
		0xA2, 0x06, // I = 0x206
		0x60, 0x00, // V0 = 0
		0xD0, 0x01, // draw one row at (V0, V0)
		0x80, // sprite with a single lit cell
	}))
	for range 3 {
		_, err := machine.Step()
		assert.NoError(t, err)
	}

	foreground := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	background := color.RGBA{A: 255}
	frame := renderFrame(machine.Display(), foreground, background)

	// top left glyph has a lit upper cell and an unlit lower cell
	assert.True(t, strings.HasPrefix(frame,
		cursorHome+"\x1b[38;2;255;255;255m\x1b[48;2;0;0;0m▀"))
	assert.Equal(t, chip8.DisplayHeight/2, strings.Count(frame, "\r\n"))
}
