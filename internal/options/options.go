// Package options contains the program options.
package options

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/emulator"
)

// Screen size presets as display scale factors.
const (
	scaleSmall  = 10
	scaleMedium = 12
	scaleLarge  = 16
)

// Interpreter frequency bounds in Hz.
const (
	MinFrequency     = 200
	MaxFrequency     = 1000
	DefaultFrequency = 500
)

// Default display colors.
var (
	DefaultForeground = color.RGBA{G: 255, B: 102, A: 255}
	DefaultBackground = color.RGBA{A: 255}
)

// Program options of the emulator.
type Program struct {
	ROM string

	Scale      int
	Foreground color.RGBA
	Background color.RGBA
	Frequency  int

	Chip48Mode bool
	Terminal   bool
	Mute       bool
	Debug      bool
	Quiet      bool
}

// InstructionsPerTick derives how many instructions execute per host tick
// from the interpreter frequency, assuming two cycles per instruction.
func (p Program) InstructionsPerTick() int {
	perTick := p.Frequency / emulator.TickRate / 2
	if perTick < 1 {
		perTick = 1
	}
	return perTick
}

// ParseScale converts a screen size preset into a display scale factor.
func ParseScale(preset string) (int, error) {
	switch strings.ToLower(preset) {
	case "small":
		return scaleSmall, nil
	case "medium":
		return scaleMedium, nil
	case "large":
		return scaleLarge, nil
	default:
		return 0, fmt.Errorf("unsupported screen size %s, valid presets: small, medium, large", preset)
	}
}

// ParseColor converts an R,G,B triple with 0-255 components into a color.
func ParseColor(value string) (color.RGBA, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("invalid color %s, valid format: R,G,B", value)
	}

	var channels [3]uint8
	for i, part := range parts {
		channel, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parsing color channel %s: %w", part, err)
		}
		channels[i] = uint8(channel)
	}

	return color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: 255}, nil
}

// ValidateFrequency checks the interpreter frequency bounds.
func ValidateFrequency(frequency int) error {
	if frequency < MinFrequency || frequency > MaxFrequency {
		return fmt.Errorf("invalid interpreter frequency %d, must be in range %d - %d Hz",
			frequency, MinFrequency, MaxFrequency)
	}
	return nil
}
