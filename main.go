// Package main implements a CHIP-8 emulator with a desktop window and an
// ANSI terminal frontend.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/retrochip8/internal/audio"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/emulator"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/video"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// frontend runs the emulation loop until the user quits, the context gets
// canceled or the emulator faults.
type frontend interface {
	Run(ctx context.Context) error
}

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			printBanner(logger, opts)
			usageErr.ShowUsage()
			os.Exit(1)
		}
		logger.Fatal(err.Error())
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	printBanner(logger, opts)

	if err := run(ctx, logger, opts); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info("Emulation cancelled")
			return
		}
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func printBanner(logger *log.Logger, opts options.Program) {
	if opts.Quiet {
		return
	}
	logger.Info("retrochip8",
		log.String("version", buildinfo.Version(version, commit, date)))
}

func run(ctx context.Context, logger *log.Logger, opts options.Program) error {
	program, err := loader.Load(logger, opts.ROM)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	machine := chip8.New(logger, chip8.Options{Chip48Mode: opts.Chip48Mode})
	if err := machine.LoadProgram(program); err != nil {
		return fmt.Errorf("loading program into memory: %w", err)
	}

	var beeper emulator.Beeper
	if !opts.Mute {
		b, err := audio.NewBeeper()
		if err != nil {
			logger.Warn("Audio not available, continuing muted", log.Err(err))
		} else {
			defer func() { _ = b.Close() }()
			beeper = b
		}
	}

	em := emulator.New(logger, machine, beeper, emulator.Options{
		InstructionsPerTick: opts.InstructionsPerTick(),
		Trace:               opts.Debug,
	})

	frontendOptions := video.Options{
		Title:      filepath.Base(opts.ROM),
		Scale:      opts.Scale,
		Foreground: opts.Foreground,
		Background: opts.Background,
		Debug:      opts.Debug,
	}
	var front frontend
	if opts.Terminal {
		front = video.NewTerminal(logger, em, frontendOptions)
	} else {
		front = video.NewWindow(em, frontendOptions)
	}

	logger.Debug("starting emulation",
		log.String("rom", opts.ROM),
		log.Int("instructions_per_tick", opts.InstructionsPerTick()))

	return front.Run(ctx)
}
