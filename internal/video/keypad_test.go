package video

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKeypadTablesCoverAllSymbols(t *testing.T) {
	window := map[byte]bool{}
	for _, symbol := range windowKeypad {
		window[symbol] = true
	}
	terminal := map[byte]bool{}
	for _, symbol := range terminalKeypad {
		terminal[symbol] = true
	}

	for symbol := range byte(16) {
		assert.True(t, window[symbol])
		assert.True(t, terminal[symbol])
	}
}
