// Package cli handles command line interface logic.
package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrochip8/internal/options"
)

const keypadHelp = `The keypad is mapped to the left side of the keyboard:

  |1|2|3|4|
  |Q|W|E|R|
  |A|S|D|F|
  |Z|X|C|V|

In debug mode, space pauses and resumes the emulation, N executes a single
tick while paused and P dumps the machine state to the log.`

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)

	var opts options.Program
	var scale, foreground, background string
	readOptionFlags(flags, &opts, &scale, &foreground, &background)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || len(args) == 0 {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	opts.ROM = args[0]

	if err := normalizeOptions(&opts, scale, foreground, background); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the command line usage with all available flags and the
// keypad layout.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
	fmt.Println(keypadHelp)
}

// validateArgs checks that the ROM file is the only positional argument.
func validateArgs(args []string) error {
	if len(args) == 1 {
		return nil
	}

	if args[1][0] == '-' {
		return &UsageError{
			msg: fmt.Sprintf("potential flag %s found after the ROM file, pass flags before the ROM file", args[1]),
		}
	}
	return &UsageError{
		msg: fmt.Sprintf("unexpected argument %s, pass a single ROM file", args[1]),
	}
}

// normalizeOptions resolves the preset and color flags and validates the
// option values.
func normalizeOptions(opts *options.Program, scale, foreground, background string) error {
	parsedScale, err := options.ParseScale(scale)
	if err != nil {
		return err
	}
	opts.Scale = parsedScale

	if err := options.ValidateFrequency(opts.Frequency); err != nil {
		return err
	}

	opts.Foreground = options.DefaultForeground
	if foreground != "" {
		if opts.Foreground, err = options.ParseColor(foreground); err != nil {
			return fmt.Errorf("invalid foreground color: %w", err)
		}
	}

	opts.Background = options.DefaultBackground
	if background != "" {
		if opts.Background, err = options.ParseColor(background); err != nil {
			return fmt.Errorf("invalid background color: %w", err)
		}
	}

	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program,
	scale, foreground, background *string) {

	flags.StringVar(scale, "scale", "small",
		"screen size: small (640x320), medium (768x384) or large (1024x512)")
	flags.IntVar(&opts.Frequency, "freq", options.DefaultFrequency,
		"interpreter frequency in Hz, valid range 200 - 1000")
	flags.StringVar(foreground, "fg", "", "foreground color as R,G,B with 0-255 components")
	flags.StringVar(background, "bg", "", "background color as R,G,B with 0-255 components")
	flags.BoolVar(&opts.Chip48Mode, "chip48", false,
		"execute shift and jump instructions in a CHIP-48 compatible mode, required for some programs")
	flags.BoolVar(&opts.Terminal, "terminal", false, "render to the terminal instead of opening a window")
	flags.BoolVar(&opts.Mute, "mute", false, "disable audio output")
	flags.BoolVar(&opts.Debug, "debug", false,
		"enable debug mode: verbose logging, instruction tracing and pause/step keys")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
