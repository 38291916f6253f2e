// Package audio generates the beeper tone driven by the sound timer.
package audio

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/ebitengine/oto/v3"
)

const (
	sampleRate   = 44100
	channelCount = 2
	toneHz       = 440
	amplitude    = 0.25
)

var _ io.Reader = &squareWave{}

// squareWave streams an endless square wave as little endian float32 frames.
type squareWave struct {
	period   int // frames per full wave cycle
	position int // current frame within the cycle
}

func newSquareWave() *squareWave {
	return &squareWave{period: sampleRate / toneHz}
}

func (w *squareWave) Read(p []byte) (int, error) {
	const frameSize = channelCount * 4
	frames := len(p) / frameSize

	for frame := range frames {
		sample := float32(amplitude)
		if w.position >= w.period/2 {
			sample = -amplitude
		}

		bits := math.Float32bits(sample)
		for channel := range channelCount {
			binary.LittleEndian.PutUint32(p[frame*frameSize+channel*4:], bits)
		}

		w.position++
		if w.position == w.period {
			w.position = 0
		}
	}

	return frames * frameSize, nil
}

// Beeper plays a continuous tone while the sound timer runs.
type Beeper struct {
	player *oto.Player
}

// NewBeeper initializes the audio device and prepares the tone player.
// The tone starts paused.
func NewBeeper() (*Beeper, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channelCount,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing audio context: %w", err)
	}
	<-ready

	return &Beeper{
		player: ctx.NewPlayer(newSquareWave()),
	}, nil
}

// Play starts the tone, it keeps playing until paused.
func (b *Beeper) Play() {
	if !b.player.IsPlaying() {
		b.player.Play()
	}
}

// Pause silences the tone.
func (b *Beeper) Pause() {
	if b.player.IsPlaying() {
		b.player.Pause()
	}
}

// Close releases the audio player.
func (b *Beeper) Close() error {
	if err := b.player.Close(); err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
