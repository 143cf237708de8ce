package chip8

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDisassemble(t *testing.T) {
	tests := []struct {
		word uint16
		want string
	}{
		{0x00E0, "0200 - CLS"},
		{0x00EE, "0200 - RET"},
		{0x1234, "0200 - JP     #0234"},
		{0x2456, "0200 - CALL   #0456"},
		{0x3A02, "0200 - SE     VA, #02"},
		{0x6A02, "0200 - LD     VA, #02"},
		{0x8124, "0200 - ADD    V1, V2"},
		{0x8126, "0200 - SHR    V1"},
		{0xA300, "0200 - LD     I, #0300"},
		{0xD015, "0200 - DRW    V0, V1, 5"},
		{0xE19E, "0200 - SKP    V1"},
		{0xF50A, "0200 - LD     V5, K"},
		{0xF255, "0200 - LD     [I], V2"},
	}

	for _, tt := range tests {
		m, _ := newMachine(t, byte(tt.word>>8), byte(tt.word))
		assert.Equal(t, tt.want, m.Disassemble(ProgramStart))
	}
}

func TestDisassembleData(t *testing.T) {
	m, _ := newMachine(t, 0x00, 0x00, 0x5A, 0xB1)

	// zero words mark the end of program memory
	assert.Equal(t, "0200 -", m.Disassemble(ProgramStart))

	// words matching no instruction disassemble as data
	assert.Equal(t, "0202 - .word #5AB1", m.Disassemble(ProgramStart+2))
}
