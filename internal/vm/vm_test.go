package vm

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestNew(t *testing.T) {
	m := New()

	assert.NotNil(t, m)
	assert.Equal(t, glyphs[:], m.memory[GlyphAddress:GlyphAddress+len(glyphs)])
	assert.Equal(t, uint8(0), m.memory[GlyphAddress-1])
	assert.Equal(t, uint8(0), m.memory[GlyphAddress+len(glyphs)])
	assert.Equal(t, [RegisterCount]uint8{}, m.Registers())
	assert.Equal(t, [DisplaySize]uint8{}, m.Display())
	assert.Equal(t, [KeyCount]uint8{}, m.Keys())
	assert.Equal(t, 0, m.SP())
	assert.Equal(t, uint16(0), m.Index())
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty", 0, false},
		{"small", 4, false},
		{"exactly fits", MaxProgramSize, false},
		{"one byte too large", MaxProgramSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = byte(i) | 1
			}

			m := New()
			err := m.Load(program)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrProgramTooLarge))
				assert.Equal(t, uint16(0), m.PC())
				assert.Equal(t, uint8(0), m.memory[ProgramStart])
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, uint16(ProgramStart), m.PC())
			assert.Equal(t, program, m.memory[ProgramStart:ProgramStart+tt.size])
		})
	}
}

func TestStep_FetchAtMemoryEnd(t *testing.T) {
	m := newTestVM(t, 0x1FFF)

	step(t, m, 1)
	assert.Equal(t, uint16(0xFFF), m.PC())

	err := m.Step()
	assert.True(t, errors.Is(err, ErrMemoryAccess))
	assert.ErrorContains(t, err, "fetching instruction at $0FFF")
}

func TestStep_FetchAdvancesByTwo(t *testing.T) {
	m := newTestVM(t, 0x0000, 0x0000, 0x0000)

	step(t, m, 3)
	assert.Equal(t, uint16(ProgramStart+6), m.PC())
}

func TestTickTimers(t *testing.T) {
	m := New()
	m.delayTimer = 2
	m.soundTimer = 1

	m.TickTimers()
	assert.Equal(t, uint8(1), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())

	m.TickTimers()
	m.TickTimers()
	assert.Equal(t, uint8(0), m.DelayTimer())
	assert.Equal(t, uint8(0), m.SoundTimer())
}

func TestSetKey(t *testing.T) {
	m := New()

	m.SetKey(0x3, true)
	m.SetKey(0xF, true)
	m.SetKey(0x10, true)

	keys := m.Keys()
	assert.Equal(t, uint8(1), keys[0x3])
	assert.Equal(t, uint8(1), keys[0xF])
	assert.Equal(t, uint8(0), keys[0x0])

	m.SetKey(0x3, false)
	assert.Equal(t, uint8(0), m.Keys()[0x3])
}

func TestDisplay_ReturnsCopy(t *testing.T) {
	m := New()
	display := m.Display()
	display[0] = 1

	assert.False(t, m.Pixel(0, 0))
	assert.False(t, m.Pixel(-1, 0))
	assert.False(t, m.Pixel(DisplayWidth, 0))
}

func TestMemory(t *testing.T) {
	m := New()

	b, err := m.Memory(GlyphAddress)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xF0), b)

	_, err = m.Memory(MemorySize)
	assert.True(t, errors.Is(err, ErrMemoryAccess))
}
