package video

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/emulator"
)

var _ ebiten.Game = &Window{}

// Window renders the display in a desktop window and feeds the keyboard
// state into the emulator once per tick.
type Window struct {
	ctx      context.Context
	emulator *emulator.Emulator

	title      string
	scale      int
	foreground color.RGBA
	background color.RGBA
	debug      bool

	frame  *ebiten.Image
	pixels []byte
	keys   []byte
	paused bool
}

// NewWindow creates a window frontend for the given emulator.
func NewWindow(em *emulator.Emulator, options Options) *Window {
	return &Window{
		emulator:   em,
		title:      options.Title,
		scale:      options.Scale,
		foreground: options.Foreground,
		background: options.Background,
		debug:      options.Debug,
		pixels:     make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
		keys:       make([]byte, 0, 16),
	}
}

// Run opens the window and blocks until the user quits, the context gets
// canceled or the emulator faults. It has to be called from the main
// goroutine.
func (w *Window) Run(ctx context.Context) error {
	w.ctx = ctx

	ebiten.SetWindowSize(chip8.DisplayWidth*w.scale, chip8.DisplayHeight*w.scale)
	ebiten.SetWindowTitle(w.title)
	ebiten.SetTPS(emulator.TickRate)

	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("running window: %w", err)
	}
	return nil
}

// Update advances the emulator by one tick. Ebitengine calls it at the
// configured ticks per second. In debug mode space pauses, N executes a
// single tick while paused and P dumps the machine state to the log.
func (w *Window) Update() error {
	if w.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	step := false
	if w.debug {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeySpace):
			w.paused = !w.paused
		case inpututil.IsKeyJustPressed(ebiten.KeyN):
			step = w.paused
		case inpututil.IsKeyJustPressed(ebiten.KeyP):
			w.emulator.DumpState()
		}
	}
	if w.paused && !step {
		return nil
	}

	w.keys = w.keys[:0]
	for key, symbol := range windowKeypad {
		if ebiten.IsKeyPressed(key) {
			w.keys = append(w.keys, symbol)
		}
	}

	if err := w.emulator.Tick(w.keys); err != nil {
		return fmt.Errorf("advancing emulation: %w", err)
	}
	return nil
}

// Draw renders the current frame. The pixel buffer is only rebuilt when the
// display changed since the last draw.
func (w *Window) Draw(screen *ebiten.Image) {
	refresh := w.emulator.Machine().Display().ConsumeRefresh()
	if w.frame == nil {
		w.frame = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
		refresh = true
	}
	if refresh {
		w.fillPixels()
		w.frame.WritePixels(w.pixels)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.frame, op)

	if w.debug {
		w.drawOverlay(screen)
	}
}

// Layout reports the screen dimensions in pixels.
func (w *Window) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth * w.scale, chip8.DisplayHeight * w.scale
}

// fillPixels rebuilds the RGBA pixel buffer from the display grid.
func (w *Window) fillPixels() {
	display := w.emulator.Machine().Display()

	for y := range chip8.DisplayHeight {
		for x := range chip8.DisplayWidth {
			cell := w.background
			if display.Lit(x, y) {
				cell = w.foreground
			}

			offset := (y*chip8.DisplayWidth + x) * 4
			w.pixels[offset] = cell.R
			w.pixels[offset+1] = cell.G
			w.pixels[offset+2] = cell.B
			w.pixels[offset+3] = cell.A
		}
	}
}

// drawOverlay renders the machine state at the bottom of the window.
func (w *Window) drawOverlay(screen *ebiten.Image) {
	machine := w.emulator.Machine()

	status := "running"
	if w.paused {
		status = "paused"
	}
	lines := []string{
		fmt.Sprintf("%s  PC:%04X I:%04X DT:%02X ST:%02X SP:%d", status,
			machine.ProgramCounter(), machine.AddressRegister(),
			machine.DelayTimer(), machine.SoundTimer(), machine.StackDepth()),
	}

	var row strings.Builder
	for i := range byte(16) {
		fmt.Fprintf(&row, "V%X:%02X ", i, machine.Register(i))
		if i == 7 {
			lines = append(lines, row.String())
			row.Reset()
		}
	}
	lines = append(lines, row.String())

	face := basicfont.Face7x13
	height := len(lines)*face.Height + 4
	top := chip8.DisplayHeight*w.scale - height
	ebitenutil.DrawRect(screen, 0, float64(top),
		float64(chip8.DisplayWidth*w.scale), float64(height), color.RGBA{A: 0xb4})

	for i, line := range lines {
		text.Draw(screen, line, face, 4, top+i*face.Height+face.Ascent,
			color.RGBA{R: 0xdc, G: 0xdc, B: 0xdc, A: 0xff})
	}
}
