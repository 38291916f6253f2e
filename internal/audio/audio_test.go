package audio

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSquareWaveShape(t *testing.T) {
	const frameSize = channelCount * 4

	wave := newSquareWave()
	buf := make([]byte, wave.period*frameSize)

	n, err := wave.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, len(buf), n)

	for frame := range wave.period {
		offset := frame * frameSize
		left := math.Float32frombits(binary.LittleEndian.Uint32(buf[offset:]))
		right := math.Float32frombits(binary.LittleEndian.Uint32(buf[offset+4:]))
		assert.Equal(t, left, right)

		expected := float32(amplitude)
		if frame >= wave.period/2 {
			expected = -amplitude
		}
		assert.Equal(t, expected, left)
	}
}

func TestSquareWaveWrapsAtPeriod(t *testing.T) {
	const frameSize = channelCount * 4

	wave := newSquareWave()
	buf := make([]byte, wave.period*frameSize)

	_, err := wave.Read(buf)
	assert.NoError(t, err)
	assert.Equal(t, 0, wave.position)

	// a partial frame at the end is not written
	n, err := wave.Read(make([]byte, frameSize+1))
	assert.NoError(t, err)
	assert.Equal(t, frameSize, n)
}
