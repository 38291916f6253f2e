// Package loader reads program ROM files from disk.
package loader

import (
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/log"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Load reads a ROM file and validates that it fits into machine memory.
func Load(logger *log.Logger, path string) ([]byte, error) {
	program, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ROM file %s: %w", path, err)
	}

	if len(program) == 0 {
		return nil, fmt.Errorf("ROM file %s: %w", path, chip8.ErrNoProgram)
	}
	if len(program) > chip8.MaxProgramSize {
		return nil, fmt.Errorf("ROM file %s has %d bytes but at most %d fit into memory: %w",
			path, len(program), chip8.MaxProgramSize, chip8.ErrProgramTooLarge)
	}

	logger.Debug("loaded ROM",
		log.String("file", path),
		log.Int("size", len(program)))

	return program, nil
}
