package trace

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected string
	}{
		{0x00E0, "cls"},
		{0x00EE, "ret"},
		{0x1ABC, "jp $ABC"},
		{0x2300, "call $300"},
		{0x3407, "se V4, $07"},
		{0x4407, "sne V4, $07"},
		{0x5120, "se V1, V2"},
		{0x6A02, "ld VA, $02"},
		{0x7201, "add V2, $01"},
		{0x8120, "ld V1, V2"},
		{0x8121, "or V1, V2"},
		{0x8122, "and V1, V2"},
		{0x8123, "xor V1, V2"},
		{0x8124, "add V1, V2"},
		{0x8125, "sub V1, V2"},
		{0x8126, "shr V1"},
		{0x8127, "subn V1, V2"},
		{0x812E, "shl V1"},
		{0x9120, "sne V1, V2"},
		{0xA123, "ld I, $123"},
		{0xB456, "jp V0, $456"},
		{0xC50F, "rnd V5, $0F"},
		{0xD795, "drw V7, V9, $5"},
		{0xE39E, "skp V3"},
		{0xE3A1, "sknp V3"},
		{0xF607, "ld V6, DT"},
		{0xF60A, "ld V6, K"},
		{0xF615, "ld DT, V6"},
		{0xF618, "ld ST, V6"},
		{0xF61E, "add I, V6"},
		{0xF629, "ld F, V6"},
		{0xF633, "ld B, V6"},
		{0xF655, "ld [I], V6"},
		{0xF665, "ld V6, [I]"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Disassemble(tt.opcode))
		})
	}
}

func TestDisassembleUnknownWord(t *testing.T) {
	assert.Equal(t, ".dw $00FF", Disassemble(0x00FF))
}
