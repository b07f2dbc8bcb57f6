package vm

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// newTestVM returns a machine with the given instruction words loaded.
func newTestVM(t *testing.T, words ...uint16) *VM {
	t.Helper()

	program := make([]byte, 0, len(words)*opcodeSize)
	for _, w := range words {
		program = append(program, byte(w>>8), byte(w))
	}

	m := New(WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, m.Load(program))
	return m
}

// step executes count instructions and fails the test on any error.
func step(t *testing.T, m *VM, count int) {
	t.Helper()
	for range count {
		assert.NoError(t, m.Step())
	}
}

func TestExecute_AddImmediateWraps(t *testing.T) {
	m := newTestVM(t, 0x7AFF, 0x7AFF)
	m.v[0xA] = 2
	m.v[FlagRegister] = 0x55

	step(t, m, 1)
	assert.Equal(t, uint8(1), m.v[0xA])

	step(t, m, 1)
	assert.Equal(t, uint8(0), m.v[0xA])
	assert.Equal(t, uint8(0x55), m.v[FlagRegister])
}

func TestExecute_Add(t *testing.T) {
	tests := []struct {
		name      string
		a, b      uint8
		want      uint8
		wantCarry uint8
	}{
		{"no carry", 0x10, 0x20, 0x30, 0},
		{"exactly 255", 0xF0, 0x0F, 0xFF, 0},
		{"carry", 0xFF, 0x02, 0x01, 1},
		{"carry to zero", 0x80, 0x80, 0x00, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestVM(t, 0x8124)
			m.v[1] = tt.a
			m.v[2] = tt.b
			m.v[FlagRegister] = 0xAA

			step(t, m, 1)
			assert.Equal(t, tt.want, m.v[1])
			assert.Equal(t, tt.wantCarry, m.v[FlagRegister])
		})
	}
}

func TestExecute_Subtract(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		x, y     uint8
		want     uint8
		wantFlag uint8
	}{
		{"ab no borrow", 0x8125, 5, 3, 2, 1},
		{"ab borrow", 0x8125, 3, 5, 254, 0},
		{"ab equal", 0x8125, 7, 7, 0, 1},
		{"ba no borrow", 0x8127, 3, 5, 2, 1},
		{"ba borrow", 0x8127, 5, 3, 254, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestVM(t, tt.word)
			m.v[1] = tt.x
			m.v[2] = tt.y

			step(t, m, 1)
			assert.Equal(t, tt.want, m.v[1])
			assert.Equal(t, tt.wantFlag, m.v[FlagRegister])
		})
	}
}

func TestExecute_FlagWrittenAfterResult(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		vf, v1   uint8
		wantFlag uint8
	}{
		{"add with carry into VF", 0x8F14, 0xFF, 0x01, 1},
		{"subtract into VF", 0x8F15, 0x01, 0x02, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestVM(t, tt.word)
			m.v[FlagRegister] = tt.vf
			m.v[1] = tt.v1

			step(t, m, 1)
			assert.Equal(t, tt.wantFlag, m.v[FlagRegister])
		})
	}
}

// Shifts write the shifted out bit before the result, with X = F the
// shifted value remains in VF.
func TestExecute_ShiftResultWrittenAfterFlag(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		vf   uint8
		want uint8
	}{
		{"shift right VF", 0x8F06, 0x81, 0x40},
		{"shift left VF", 0x8F0E, 0x81, 0x02},
		{"shift right VF without carry", 0x8F06, 0x02, 0x01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestVM(t, tt.word)
			m.v[FlagRegister] = tt.vf

			step(t, m, 1)
			assert.Equal(t, tt.want, m.v[FlagRegister])
		})
	}
}

func TestExecute_Shift(t *testing.T) {
	m := newTestVM(t, 0x8306, 0x840E)
	m.v[3] = 0b00000011
	m.v[4] = 0b10000001

	step(t, m, 1)
	assert.Equal(t, uint8(1), m.v[3])
	assert.Equal(t, uint8(1), m.v[FlagRegister])

	step(t, m, 1)
	assert.Equal(t, uint8(0b00000010), m.v[4])
	assert.Equal(t, uint8(1), m.v[FlagRegister])
}

func TestExecute_ShiftIgnoresY(t *testing.T) {
	m := newTestVM(t, 0x8356)
	m.v[3] = 0b00000100
	m.v[5] = 0xFF

	step(t, m, 1)
	assert.Equal(t, uint8(0b00000010), m.v[3])
	assert.Equal(t, uint8(0), m.v[FlagRegister])
	assert.Equal(t, uint8(0xFF), m.v[5])
}

func TestExecute_Logic(t *testing.T) {
	tests := []struct {
		name string
		word uint16
		want uint8
	}{
		{"set", 0x8120, 0b0101},
		{"or", 0x8121, 0b1111},
		{"and", 0x8122, 0b0000},
		{"xor", 0x8123, 0b1111},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestVM(t, tt.word)
			m.v[1] = 0b1010
			m.v[2] = 0b0101

			step(t, m, 1)
			assert.Equal(t, tt.want, m.v[1])
		})
	}
}

func TestExecute_Skips(t *testing.T) {
	tests := []struct {
		name   string
		word   uint16
		v1, v2 uint8
		skip   bool
	}{
		{"equal immediate taken", 0x3142, 0x42, 0, true},
		{"equal immediate not taken", 0x3142, 0x41, 0, false},
		{"not equal immediate taken", 0x4142, 0x41, 0, true},
		{"not equal immediate not taken", 0x4142, 0x42, 0, false},
		{"registers equal taken", 0x5120, 9, 9, true},
		{"registers equal not taken", 0x5120, 9, 8, false},
		{"registers not equal taken", 0x9120, 9, 8, true},
		{"registers not equal not taken", 0x9120, 9, 9, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestVM(t, tt.word)
			m.v[1] = tt.v1
			m.v[2] = tt.v2

			step(t, m, 1)
			want := uint16(ProgramStart + 2)
			if tt.skip {
				want += 2
			}
			assert.Equal(t, want, m.pc)
		})
	}
}

func TestExecute_KeySkips(t *testing.T) {
	m := newTestVM(t, 0xE19E, 0x0000, 0xE1A1)
	m.v[1] = 0x1C // only the low nibble selects the key
	m.SetKey(0xC, true)

	step(t, m, 1)
	assert.Equal(t, uint16(0x204), m.pc)

	step(t, m, 1)
	assert.Equal(t, uint16(0x206), m.pc)

	m.SetKey(0xC, false)
	m.pc = 0x200
	step(t, m, 1)
	assert.Equal(t, uint16(0x202), m.pc)
}

func TestExecute_CallReturn(t *testing.T) {
	m := newTestVM(t, 0x2206, 0x0000, 0x0000, 0x00EE)

	step(t, m, 1)
	assert.Equal(t, uint16(0x206), m.pc)
	assert.Equal(t, 1, m.sp)
	assert.Equal(t, uint16(0x202), m.stack[0])

	step(t, m, 1)
	assert.Equal(t, uint16(0x202), m.pc)
	assert.Equal(t, 0, m.sp)
}

func TestExecute_Jumps(t *testing.T) {
	m := newTestVM(t, 0x1204)
	step(t, m, 1)
	assert.Equal(t, uint16(0x204), m.pc)

	m = newTestVM(t, 0xB300)
	m.v[0] = 0x10
	step(t, m, 1)
	assert.Equal(t, uint16(0x310), m.pc)
}

func TestExecute_Timers(t *testing.T) {
	m := newTestVM(t, 0xF115, 0xF218, 0xF307)
	m.v[1] = 10
	m.v[2] = 20

	step(t, m, 2)
	assert.Equal(t, uint8(10), m.DelayTimer())
	assert.Equal(t, uint8(20), m.SoundTimer())

	m.TickTimers()
	step(t, m, 1)
	assert.Equal(t, uint8(9), m.v[3])
}

func TestExecute_Index(t *testing.T) {
	m := newTestVM(t, 0xA123, 0xF11E)
	m.v[1] = 0x10
	m.v[FlagRegister] = 0

	step(t, m, 2)
	assert.Equal(t, uint16(0x133), m.i)
	assert.Equal(t, uint8(0), m.v[FlagRegister])
}

func TestExecute_AddToIndexOverflow(t *testing.T) {
	m := newTestVM(t, 0xAFFF, 0xF11E, 0xF21E)
	m.v[1] = 0x01
	m.v[2] = 0x00

	step(t, m, 2)
	assert.Equal(t, uint16(0x1000), m.i)
	assert.Equal(t, uint8(1), m.v[FlagRegister])

	// the flag is only ever set, never cleared
	step(t, m, 1)
	assert.Equal(t, uint8(1), m.v[FlagRegister])
}

func TestExecute_Glyph(t *testing.T) {
	m := newTestVM(t, 0xF129)
	m.v[1] = 0xFA

	step(t, m, 1)
	assert.Equal(t, uint16(GlyphAddress+0xA*GlyphSize), m.i)

	b, err := m.Memory(m.i)
	assert.NoError(t, err)
	assert.Equal(t, uint8(0xF0), b)
}

func TestExecute_StoreBCD(t *testing.T) {
	m := newTestVM(t, 0xA300, 0xF133)
	m.v[1] = 234

	step(t, m, 2)
	assert.Equal(t, uint8(2), m.memory[0x300])
	assert.Equal(t, uint8(3), m.memory[0x301])
	assert.Equal(t, uint8(4), m.memory[0x302])
}

func TestExecute_StoreLoadRegisters(t *testing.T) {
	m := newTestVM(t, 0xA400, 0xF355, 0xF365)
	values := []uint8{0x11, 0x22, 0x33, 0x44, 0x55}
	copy(m.v[:], values)

	step(t, m, 2)
	assert.Equal(t, values[:4], m.memory[0x400:0x404])
	assert.Equal(t, uint8(0), m.memory[0x404])

	m.v = [RegisterCount]uint8{}
	step(t, m, 1)
	assert.Equal(t, values[:4], m.v[:4])
	assert.Equal(t, uint8(0), m.v[4])
	assert.Equal(t, uint16(0x400), m.i)
}

func TestExecute_Random(t *testing.T) {
	const mask = 0x3C

	m := New(WithRandom(rand.NewPCG(1, 2)))
	assert.NoError(t, m.Load([]byte{0xC5, mask}))
	step(t, m, 1)

	expected := uint8(rand.New(rand.NewPCG(1, 2)).UintN(256)) & mask
	assert.Equal(t, expected, m.v[5])
	assert.Equal(t, uint8(0), m.v[5]&^mask)
}

func TestExecute_GetKey(t *testing.T) {
	m := newTestVM(t, 0xF50A)

	step(t, m, 1)
	assert.Equal(t, uint16(ProgramStart), m.pc)
	step(t, m, 1)
	assert.Equal(t, uint16(ProgramStart), m.pc)

	m.SetKey(0xB, true)
	m.SetKey(0x7, true)
	step(t, m, 1)
	assert.Equal(t, uint16(ProgramStart+2), m.pc)
	assert.Equal(t, uint8(0x7), m.v[5])
}

func TestExecute_ClearScreen(t *testing.T) {
	m := newTestVM(t, 0x00E0)
	m.display[0] = 1
	m.display[DisplaySize-1] = 1

	step(t, m, 1)
	assert.Equal(t, [DisplaySize]uint8{}, m.Display())
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name  string
		words []uint16
		setup func(m *VM)
		err   error
	}{
		{"unrecognized", []uint16{0x0123}, nil, ErrUnknownInstruction},
		{"return on empty stack", []uint16{0x00EE}, nil, ErrStackUnderflow},
		{"call on full stack", []uint16{0x2200}, func(m *VM) { m.sp = StackSize }, ErrStackOverflow},
		{"bcd past memory end", []uint16{0xAFFE, 0xF033}, nil, ErrMemoryAccess},
		{"store past memory end", []uint16{0xAFFF, 0xF155}, nil, ErrMemoryAccess},
		{"load past memory end", []uint16{0xAFFF, 0xF165}, nil, ErrMemoryAccess},
		{"jump past memory end", []uint16{0xBFFF}, func(m *VM) { m.v[0] = 0x10 }, ErrMemoryAccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestVM(t, tt.words...)
			if tt.setup != nil {
				tt.setup(m)
			}

			var err error
			for range len(tt.words) + 1 {
				if err = m.Step(); err != nil {
					break
				}
			}

			assert.Error(t, err)
			assert.True(t, errors.Is(err, tt.err))

			var execErr *ExecutionError
			assert.True(t, errors.As(err, &execErr))
		})
	}
}

func TestExecute_UnrecognizedReportsAddressAndBytes(t *testing.T) {
	m := newTestVM(t, 0x0000, 0x8128)

	step(t, m, 1)
	err := m.Step()

	var execErr *ExecutionError
	assert.True(t, errors.As(err, &execErr))
	assert.Equal(t, uint16(0x202), execErr.Address)
	assert.Equal(t, [2]byte{0x81, 0x28}, execErr.Raw)
	assert.ErrorContains(t, err, "$8128")
	assert.ErrorContains(t, err, "$0202")
}

func TestExecute_StackDepth(t *testing.T) {
	// a subroutine at $200 that calls itself
	m := newTestVM(t, 0x2200)

	step(t, m, StackSize)
	assert.Equal(t, StackSize, m.sp)

	err := m.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
}
