package cli

import (
	"errors"
	"image/color"
	"os"
	"testing"

	"github.com/retroenv/retrogolib/assert"

	"github.com/retroenv/retrochip8/internal/options"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Program
	}{
		{
			name: "defaults",
			args: []string{"prog", "test.ch8"},
			want: options.Program{
				ROM:        "test.ch8",
				Scale:      10,
				Frequency:  500,
				Foreground: options.DefaultForeground,
				Background: options.DefaultBackground,
			},
		},
		{
			name: "all flags",
			args: []string{"prog", "-scale", "large", "-freq", "1000",
				"-fg", "255,176,0", "-bg", "16,16,16",
				"-chip48", "-terminal", "-mute", "-debug", "-q", "test.ch8"},
			want: options.Program{
				ROM:        "test.ch8",
				Scale:      16,
				Frequency:  1000,
				Foreground: color.RGBA{R: 255, G: 176, A: 255},
				Background: color.RGBA{R: 16, G: 16, B: 16, A: 255},
				Chip48Mode: true,
				Terminal:   true,
				Mute:       true,
				Debug:      true,
				Quiet:      true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		usage bool
	}{
		{
			name:  "missing ROM file",
			args:  []string{"prog"},
			usage: true,
		},
		{
			name:  "flag after ROM file",
			args:  []string{"prog", "test.ch8", "-debug"},
			usage: true,
		},
		{
			name:  "two ROM files",
			args:  []string{"prog", "a.ch8", "b.ch8"},
			usage: true,
		},
		{
			name: "invalid scale",
			args: []string{"prog", "-scale", "huge", "test.ch8"},
		},
		{
			name: "frequency too low",
			args: []string{"prog", "-freq", "100", "test.ch8"},
		},
		{
			name: "frequency too high",
			args: []string{"prog", "-freq", "2000", "test.ch8"},
		},
		{
			name: "invalid foreground color",
			args: []string{"prog", "-fg", "300,0,0", "test.ch8"},
		},
		{
			name: "invalid background color",
			args: []string{"prog", "-bg", "0,0", "test.ch8"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			_, err := ParseFlags()
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usage, errors.As(err, &usageErr))
		})
	}
}
