package vm

// Memory layout.
const (
	// MemorySize is the size of the addressable memory.
	MemorySize = 0x1000

	// ProgramStart is the address that programs are loaded to and started at.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// GlyphAddress is the address of the built-in hexadecimal glyph table.
	GlyphAddress = 0x050

	// GlyphSize is the number of bytes (rows) of a single glyph.
	GlyphSize = 5
)

// Register file, stack and input.
const (
	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16

	// FlagRegister is the index of VF, written by carry, borrow, shift and
	// collision producing instructions.
	FlagRegister = 0xF

	// StackSize is the number of return addresses the call stack can hold.
	StackSize = 48

	// KeyCount is the number of keys on the hexadecimal keypad.
	KeyCount = 16
)

// Display dimensions.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight
)

// opcodeSize is the size of an instruction word in bytes.
const opcodeSize = 2

// addressMask limits the index register to its architecturally meaningful bits.
const addressMask = 0x0FFF

// spriteWidth is the width of a sprite row in pixels.
const spriteWidth = 8
