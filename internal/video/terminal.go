package video

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"os"
	"strings"
	"time"

	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
)

// Terminal control sequences.
const (
	hideCursor  = "\x1b[?25l"
	showCursor  = "\x1b[?25h"
	clearScreen = "\x1b[2J"
	cursorHome  = "\x1b[H"
	resetColors = "\x1b[0m"
)

// Control bytes in raw mode.
const (
	keyCtrlC  = 0x03
	keyEscape = 0x1b
)

// keyHoldTicks is how long a key read from stdin stays pressed. Terminals
// deliver key presses but no releases, so each press is held for a short
// window instead.
const keyHoldTicks = 6

// Terminal renders the display with ANSI half-block glyphs to stdout, for
// running without a window system. Each glyph covers two vertically stacked
// cells colored with 24-bit escape codes.
type Terminal struct {
	logger   *log.Logger
	emulator *emulator.Emulator

	foreground color.RGBA
	background color.RGBA
	debug      bool

	in  *os.File
	out io.Writer

	keyHold [16]int
	keys    []byte
	paused  bool
	step    bool
}

// NewTerminal creates a terminal frontend for the given emulator.
func NewTerminal(logger *log.Logger, em *emulator.Emulator, options Options) *Terminal {
	return &Terminal{
		logger:     logger,
		emulator:   em,
		foreground: options.Foreground,
		background: options.Background,
		debug:      options.Debug,
		in:         os.Stdin,
		out:        os.Stdout,
		keys:       make([]byte, 0, 16),
	}
}

// Run switches the terminal into raw mode and drives the emulator at the
// tick rate until the user quits, the context gets canceled or the emulator
// faults.
func (t *Terminal) Run(ctx context.Context) error {
	fd := int(t.in.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("switching terminal to raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, state)
		fmt.Fprint(t.out, resetColors+showCursor+"\r\n")
	}()

	if width, height, err := term.GetSize(fd); err == nil &&
		(width < chip8.DisplayWidth || height < chip8.DisplayHeight/2) {

		t.logger.Warn("terminal is smaller than the display",
			log.Int("width", width),
			log.Int("height", height))
	}

	fmt.Fprint(t.out, clearScreen+hideCursor)

	input := make(chan byte)
	go t.readInput(ctx, input)

	ticker := time.NewTicker(time.Second / emulator.TickRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case key := <-input:
			if quit := t.handleInput(key); quit {
				return nil
			}

		case <-ticker.C:
			if err := t.tick(); err != nil {
				return err
			}
		}
	}
}

// readInput forwards stdin bytes to the main loop. It exits when stdin
// closes or the context gets canceled.
func (t *Terminal) readInput(ctx context.Context, input chan<- byte) {
	buf := make([]byte, 1)
	for {
		n, err := t.in.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}

		select {
		case input <- buf[0]:
		case <-ctx.Done():
			return
		}
	}
}

// handleInput processes a single input byte and reports whether the user
// quit. In debug mode space pauses, n executes a single tick while paused
// and p dumps the machine state to the log.
func (t *Terminal) handleInput(key byte) bool {
	switch key {
	case keyCtrlC, keyEscape:
		return true
	}

	if t.debug {
		switch key {
		case ' ':
			t.paused = !t.paused
			return false
		case 'n':
			t.step = t.paused
			return false
		case 'p':
			t.emulator.DumpState()
			return false
		}
	}

	if symbol, ok := terminalKeypad[key]; ok {
		t.keyHold[symbol] = keyHoldTicks
	}
	return false
}

// tick advances the emulator and redraws the frame if the display changed.
func (t *Terminal) tick() error {
	if t.paused && !t.step {
		return nil
	}
	t.step = false

	t.keys = t.keys[:0]
	for symbol := range t.keyHold {
		if t.keyHold[symbol] > 0 {
			t.keyHold[symbol]--
			t.keys = append(t.keys, byte(symbol))
		}
	}

	if err := t.emulator.Tick(t.keys); err != nil {
		return fmt.Errorf("advancing emulation: %w", err)
	}

	if t.emulator.Machine().Display().ConsumeRefresh() {
		frame := renderFrame(t.emulator.Machine().Display(), t.foreground, t.background)
		if _, err := io.WriteString(t.out, frame); err != nil {
			return fmt.Errorf("writing frame: %w", err)
		}
	}
	return nil
}

// renderFrame converts the display grid into a single ANSI frame, two cell
// rows per text line.
func renderFrame(display *chip8.Display, foreground, background color.RGBA) string {
	var sb strings.Builder
	sb.Grow(chip8.DisplayWidth * chip8.DisplayHeight / 2 * 48)
	sb.WriteString(cursorHome)

	for y := 0; y < chip8.DisplayHeight; y += 2 {
		for x := range chip8.DisplayWidth {
			upper := background
			if display.Lit(x, y) {
				upper = foreground
			}
			lower := background
			if display.Lit(x, y+1) {
				lower = foreground
			}

			fmt.Fprintf(&sb, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				upper.R, upper.G, upper.B, lower.R, lower.G, lower.B)
		}
		sb.WriteString(resetColors + "\r\n")
	}

	return sb.String()
}
