// Package video contains the display frontends: a desktop window rendered
// with Ebitengine and an ANSI terminal renderer for running without a
// window system. Both drive the emulator at the fixed tick rate and map the
// keyboard onto the 16-key keypad.
package video

import "image/color"

// Options configures a frontend.
type Options struct {
	Title      string
	Scale      int
	Foreground color.RGBA
	Background color.RGBA
	Debug      bool
}
