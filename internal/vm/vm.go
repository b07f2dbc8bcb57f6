package vm

import (
	"fmt"
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

// VM is a CHIP-8 virtual machine instance.
type VM struct {
	memory [MemorySize]uint8
	v      [RegisterCount]uint8 // general purpose registers V0-VF
	i      uint16               // index register
	pc     uint16               // program counter

	stack [StackSize]uint16
	sp    int // number of used stack entries

	delayTimer uint8
	soundTimer uint8

	display [DisplaySize]uint8
	keys    [KeyCount]uint8

	rnd    *rand.Rand
	logger *log.Logger // optional, enables the instruction trace
}

// Option configures a VM.
type Option func(*VM)

// WithLogger enables a debug level trace of every executed instruction.
func WithLogger(logger *log.Logger) Option {
	return func(m *VM) {
		m.logger = logger
	}
}

// WithRandom sets the source of the random instruction.
func WithRandom(src rand.Source) Option {
	return func(m *VM) {
		m.rnd = rand.New(src)
	}
}

// New returns a new machine with cleared state and the glyph table loaded.
func New(opts ...Option) *VM {
	m := &VM{}
	copy(m.memory[GlyphAddress:], glyphs[:])

	for _, opt := range opts {
		opt(m)
	}
	if m.rnd == nil {
		m.rnd = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return m
}

// Load copies the program to ProgramStart and points the program counter to it.
func (m *VM) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, %d bytes available",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	copy(m.memory[ProgramStart:], program)
	m.pc = ProgramStart
	return nil
}

// Step executes a single instruction. A returned error is an *ExecutionError
// and leaves the machine in an undefined state.
func (m *VM) Step() error {
	address := m.pc
	raw, err := m.fetch()
	if err != nil {
		return &ExecutionError{Address: address, Err: err}
	}

	ins := Decode(raw[0], raw[1])
	if m.logger != nil {
		m.logger.Debug("Executing instruction",
			log.Hex("address", address),
			log.String("instruction", ins.String()))
	}

	if err := m.execute(ins); err != nil {
		return &ExecutionError{
			Address:     address,
			Raw:         raw,
			Instruction: ins,
			Err:         err,
		}
	}
	return nil
}

// TickTimers decrements the delay and sound timers if they are not zero.
// It is meant to be called at 60 Hz by the host.
func (m *VM) TickTimers() {
	if m.delayTimer > 0 {
		m.delayTimer--
	}
	if m.soundTimer > 0 {
		m.soundTimer--
	}
}

// DelayTimer returns the value of the delay timer.
func (m *VM) DelayTimer() uint8 {
	return m.delayTimer
}

// SoundTimer returns the value of the sound timer. A tone should be played
// as long as it is not zero.
func (m *VM) SoundTimer() uint8 {
	return m.soundTimer
}

// SetKey sets the state of one of the 16 hexadecimal keys.
// Keys outside of 0x0-0xF are ignored.
func (m *VM) SetKey(key uint8, pressed bool) {
	if int(key) >= KeyCount {
		return
	}
	if pressed {
		m.keys[key] = 1
	} else {
		m.keys[key] = 0
	}
}

// Keys returns a copy of the key state vector.
func (m *VM) Keys() [KeyCount]uint8 {
	return m.keys
}

// Display returns a copy of the framebuffer, row-major, one byte per pixel.
func (m *VM) Display() [DisplaySize]uint8 {
	return m.display
}

// Pixel returns whether the pixel at x, y is set.
// Coordinates outside of the display are reported as not set.
func (m *VM) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return m.display[y*DisplayWidth+x] != 0
}

// PC returns the program counter.
func (m *VM) PC() uint16 {
	return m.pc
}

// Index returns the index register.
func (m *VM) Index() uint16 {
	return m.i
}

// Registers returns a copy of the general purpose registers.
func (m *VM) Registers() [RegisterCount]uint8 {
	return m.v
}

// SP returns the number of return addresses on the call stack.
func (m *VM) SP() int {
	return m.sp
}

// Memory returns the byte at the given address.
func (m *VM) Memory(address uint16) (uint8, error) {
	return m.read(address)
}

// fetch reads the instruction word at the program counter and advances it.
func (m *VM) fetch() ([2]byte, error) {
	if int(m.pc)+opcodeSize > MemorySize {
		return [2]byte{}, fmt.Errorf("fetching at $%04X: %w", m.pc, ErrMemoryAccess)
	}
	raw := [2]byte{m.memory[m.pc], m.memory[m.pc+1]}
	m.pc += opcodeSize
	return raw, nil
}

func (m *VM) read(address uint16) (uint8, error) {
	if int(address) >= MemorySize {
		return 0, fmt.Errorf("reading $%04X: %w", address, ErrMemoryAccess)
	}
	return m.memory[address], nil
}

// block returns the memory slice of size bytes starting at address.
func (m *VM) block(address uint16, size int) ([]uint8, error) {
	end := int(address) + size
	if end > MemorySize {
		return nil, fmt.Errorf("accessing %d bytes at $%04X: %w", size, address, ErrMemoryAccess)
	}
	return m.memory[address:end], nil
}
