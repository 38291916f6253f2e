// Package emulator drives a CHIP-8 machine at the fixed host tick rate and
// connects it to its audio and input collaborators. Rendering stays with
// the frontends; the emulator only runs the per-tick work.
package emulator

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/trace"
)

// TickRate is the fixed host tick frequency in Hz. Timers decrement at
// this rate and frontends redraw with it.
const TickRate = 60

// Beeper is the audio sink of the emulator: a tone plays between Play and
// Pause calls. Both calls are idempotent.
type Beeper interface {
	Play()
	Pause()
}

// Options configures an emulator.
type Options struct {
	// InstructionsPerTick is the number of machine instructions executed
	// per host tick. Values below 1 are raised to 1.
	InstructionsPerTick int

	// Trace logs every executed instruction in disassembled form.
	Trace bool
}

// Emulator implements the host tick contract: once per tick it advances the
// machine timers, keeps the beeper in sync with the sound timer, refreshes
// the pressed-key set and executes a batch of instructions. It is driven
// from a single goroutine by a frontend.
type Emulator struct {
	logger  *log.Logger
	machine *chip8.Chip8
	beeper  Beeper

	instructionsPerTick int
	trace               bool
}

// New creates an emulator driving the given machine. A nil beeper disables
// audio control.
func New(logger *log.Logger, machine *chip8.Chip8, beeper Beeper, options Options) *Emulator {
	instructionsPerTick := options.InstructionsPerTick
	if instructionsPerTick < 1 {
		instructionsPerTick = 1
	}

	return &Emulator{
		logger:              logger,
		machine:             machine,
		beeper:              beeper,
		instructionsPerTick: instructionsPerTick,
		trace:               options.Trace,
	}
}

// Machine returns the driven machine for rendering and state display.
func (e *Emulator) Machine() *chip8.Chip8 {
	return e.machine
}

// Tick runs one host tick. The pressed keys are the keypad symbols
// currently held according to the frontend; order and duplicates are
// irrelevant. Instructions execute strictly in program order within the
// tick. Tick returns an error when the machine faults, which stops the
// program.
func (e *Emulator) Tick(pressedKeys []byte) error {
	e.machine.TickTimers()
	e.updateBeeper()
	e.machine.SetPressedKeys(pressedKeys)

	for range e.instructionsPerTick {
		pc := e.machine.ProgramCounter()
		ins, err := e.machine.Step()
		if err != nil {
			return fmt.Errorf("executing instruction: %w", err)
		}

		if e.trace {
			e.logger.Debug("executed",
				log.Hex("pc", pc),
				log.String("instruction", trace.Disassemble(ins.Raw())))
		}
	}
	return nil
}

// DumpState logs the machine state at info level, bound to the state dump
// key of the frontends.
func (e *Emulator) DumpState() {
	e.logger.Info(e.machine.DumpState())
}

// updateBeeper starts the tone when the sound timer is running and stops
// it once the timer reaches zero.
func (e *Emulator) updateBeeper() {
	if e.beeper == nil {
		return
	}
	if e.machine.SoundTimer() > 0 {
		e.beeper.Play()
	} else {
		e.beeper.Pause()
	}
}
