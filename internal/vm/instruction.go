package vm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Mnemonics of encodings that the CHIP-8 instruction table does not name.
const (
	nopName  = "nop"
	byteName = ".byte"
)

// Instruction is a decoded CHIP-8 instruction. The set of implementations is
// closed, Step dispatches on the concrete type.
type Instruction interface {
	fmt.Stringer

	// Name returns the assembler mnemonic of the instruction.
	Name() string

	isInstruction()
}

// ClearScreen clears the framebuffer (00E0).
type ClearScreen struct{}

// Return pops the program counter from the call stack (00EE).
type Return struct{}

// NoOp has no effect (0000).
type NoOp struct{}

// Unrecognized carries an instruction word that matches no known encoding.
// Executing it is fatal.
type Unrecognized struct {
	Raw [2]byte
}

// Jump sets the program counter to Address (1nnn).
type Jump struct {
	Address uint16
}

// Call pushes the program counter and jumps to Address (2nnn).
type Call struct {
	Address uint16
}

// SkipIfEqualImmediate skips the next instruction if VX equals Value (3xnn).
type SkipIfEqualImmediate struct {
	X     uint8
	Value uint8
}

// SkipIfNotEqualImmediate skips the next instruction if VX differs from Value (4xnn).
type SkipIfNotEqualImmediate struct {
	X     uint8
	Value uint8
}

// SkipIfRegistersEqual skips the next instruction if VX equals VY (5xy0).
type SkipIfRegistersEqual struct {
	X, Y uint8
}

// SkipIfRegistersNotEqual skips the next instruction if VX differs from VY (9xy0).
type SkipIfRegistersNotEqual struct {
	X, Y uint8
}

// SetImmediate sets VX to Value (6xnn).
type SetImmediate struct {
	X     uint8
	Value uint8
}

// AddImmediate adds Value to VX, wrapping without touching the flag (7xnn).
type AddImmediate struct {
	X     uint8
	Value uint8
}

// SetRegister copies VY to VX (8xy0).
type SetRegister struct {
	X, Y uint8
}

// Or sets VX to VX | VY (8xy1).
type Or struct {
	X, Y uint8
}

// And sets VX to VX & VY (8xy2).
type And struct {
	X, Y uint8
}

// Xor sets VX to VX ^ VY (8xy3).
type Xor struct {
	X, Y uint8
}

// Add sets VX to VX + VY, VF is the carry (8xy4).
type Add struct {
	X, Y uint8
}

// SubtractAB sets VX to VX - VY, VF is 1 when no borrow occurred (8xy5).
type SubtractAB struct {
	X, Y uint8
}

// ShiftRight shifts VX right by one, VF is the shifted out bit (8xy6).
// Y is decoded but not used.
type ShiftRight struct {
	X, Y uint8
}

// SubtractBA sets VX to VY - VX, VF is 1 when no borrow occurred (8xy7).
type SubtractBA struct {
	X, Y uint8
}

// ShiftLeft shifts VX left by one, VF is the shifted out bit (8xyE).
// Y is decoded but not used.
type ShiftLeft struct {
	X, Y uint8
}

// SetIndex sets the index register to Address (Annn).
type SetIndex struct {
	Address uint16
}

// JumpWithOffset sets the program counter to V0 + Address (Bnnn).
type JumpWithOffset struct {
	Address uint16
}

// Random sets VX to a random byte masked with Mask (Cxnn).
type Random struct {
	X    uint8
	Mask uint8
}

// Draw XORs a Height rows sprite read from the index register onto the
// framebuffer at (VX, VY), VF is the collision flag (Dxyn).
type Draw struct {
	X, Y   uint8
	Height uint8
}

// SkipIfKeyPressed skips the next instruction if the key VX is pressed (Ex9E).
type SkipIfKeyPressed struct {
	X uint8
}

// SkipIfKeyNotPressed skips the next instruction if the key VX is not pressed (ExA1).
type SkipIfKeyNotPressed struct {
	X uint8
}

// ReadDelay sets VX to the delay timer (Fx07).
type ReadDelay struct {
	X uint8
}

// GetKey waits for a key press and stores the key in VX (Fx0A).
type GetKey struct {
	X uint8
}

// WriteDelay sets the delay timer to VX (Fx15).
type WriteDelay struct {
	X uint8
}

// WriteSound sets the sound timer to VX (Fx18).
type WriteSound struct {
	X uint8
}

// AddToIndex adds VX to the index register, VF is set on overflow past 0xFFF (Fx1E).
type AddToIndex struct {
	X uint8
}

// SetIndexToGlyph points the index register to the glyph of the digit VX (Fx29).
type SetIndexToGlyph struct {
	X uint8
}

// StoreBCD writes the decimal digits of VX to memory at the index register (Fx33).
type StoreBCD struct {
	X uint8
}

// StoreRegisters writes V0 through VX to memory at the index register (Fx55).
type StoreRegisters struct {
	X uint8
}

// LoadRegisters reads V0 through VX from memory at the index register (Fx65).
type LoadRegisters struct {
	X uint8
}

func (ClearScreen) Name() string             { return chip8.Cls.Name }
func (Return) Name() string                  { return chip8.Ret.Name }
func (NoOp) Name() string                    { return nopName }
func (Unrecognized) Name() string            { return byteName }
func (Jump) Name() string                    { return chip8.Jp.Name }
func (Call) Name() string                    { return chip8.Call.Name }
func (SkipIfEqualImmediate) Name() string    { return chip8.Se.Name }
func (SkipIfNotEqualImmediate) Name() string { return chip8.Sne.Name }
func (SkipIfRegistersEqual) Name() string    { return chip8.Se.Name }
func (SkipIfRegistersNotEqual) Name() string { return chip8.Sne.Name }
func (SetImmediate) Name() string            { return chip8.Ld.Name }
func (AddImmediate) Name() string            { return chip8.Add.Name }
func (SetRegister) Name() string             { return chip8.Ld.Name }
func (Or) Name() string                      { return chip8.Or.Name }
func (And) Name() string                     { return chip8.And.Name }
func (Xor) Name() string                     { return chip8.Xor.Name }
func (Add) Name() string                     { return chip8.Add.Name }
func (SubtractAB) Name() string              { return chip8.Sub.Name }
func (ShiftRight) Name() string              { return chip8.Shr.Name }
func (SubtractBA) Name() string              { return chip8.Subn.Name }
func (ShiftLeft) Name() string               { return chip8.Shl.Name }
func (SetIndex) Name() string                { return chip8.Ld.Name }
func (JumpWithOffset) Name() string          { return chip8.Jp.Name }
func (Random) Name() string                  { return chip8.Rnd.Name }
func (Draw) Name() string                    { return chip8.Drw.Name }
func (SkipIfKeyPressed) Name() string        { return chip8.Skp.Name }
func (SkipIfKeyNotPressed) Name() string     { return chip8.Sknp.Name }
func (ReadDelay) Name() string               { return chip8.Ld.Name }
func (GetKey) Name() string                  { return chip8.Ld.Name }
func (WriteDelay) Name() string              { return chip8.Ld.Name }
func (WriteSound) Name() string              { return chip8.Ld.Name }
func (AddToIndex) Name() string              { return chip8.Add.Name }
func (SetIndexToGlyph) Name() string         { return chip8.Ld.Name }
func (StoreBCD) Name() string                { return chip8.Ld.Name }
func (StoreRegisters) Name() string          { return chip8.Ld.Name }
func (LoadRegisters) Name() string           { return chip8.Ld.Name }

func (i ClearScreen) String() string { return i.Name() }
func (i Return) String() string      { return i.Name() }
func (i NoOp) String() string        { return i.Name() }

func (i Unrecognized) String() string {
	return fmt.Sprintf("%s $%02X, $%02X", i.Name(), i.Raw[0], i.Raw[1])
}

func (i Jump) String() string { return formatAddress(i.Name(), i.Address) }
func (i Call) String() string { return formatAddress(i.Name(), i.Address) }

func (i SkipIfEqualImmediate) String() string    { return formatImmediate(i.Name(), i.X, i.Value) }
func (i SkipIfNotEqualImmediate) String() string { return formatImmediate(i.Name(), i.X, i.Value) }
func (i SetImmediate) String() string            { return formatImmediate(i.Name(), i.X, i.Value) }
func (i AddImmediate) String() string            { return formatImmediate(i.Name(), i.X, i.Value) }
func (i Random) String() string                  { return formatImmediate(i.Name(), i.X, i.Mask) }

func (i SkipIfRegistersEqual) String() string    { return formatRegisters(i.Name(), i.X, i.Y) }
func (i SkipIfRegistersNotEqual) String() string { return formatRegisters(i.Name(), i.X, i.Y) }
func (i SetRegister) String() string             { return formatRegisters(i.Name(), i.X, i.Y) }
func (i Or) String() string                      { return formatRegisters(i.Name(), i.X, i.Y) }
func (i And) String() string                     { return formatRegisters(i.Name(), i.X, i.Y) }
func (i Xor) String() string                     { return formatRegisters(i.Name(), i.X, i.Y) }
func (i Add) String() string                     { return formatRegisters(i.Name(), i.X, i.Y) }
func (i SubtractAB) String() string              { return formatRegisters(i.Name(), i.X, i.Y) }
func (i SubtractBA) String() string              { return formatRegisters(i.Name(), i.X, i.Y) }

func (i ShiftRight) String() string          { return formatRegister(i.Name(), i.X) }
func (i ShiftLeft) String() string           { return formatRegister(i.Name(), i.X) }
func (i SkipIfKeyPressed) String() string    { return formatRegister(i.Name(), i.X) }
func (i SkipIfKeyNotPressed) String() string { return formatRegister(i.Name(), i.X) }

func (i SetIndex) String() string {
	return fmt.Sprintf("%s I, $%03X", i.Name(), i.Address)
}

func (i JumpWithOffset) String() string {
	return fmt.Sprintf("%s V0, $%03X", i.Name(), i.Address)
}

func (i Draw) String() string {
	return fmt.Sprintf("%s V%X, V%X, $%X", i.Name(), i.X, i.Y, i.Height)
}

func (i ReadDelay) String() string       { return fmt.Sprintf("%s V%X, DT", i.Name(), i.X) }
func (i GetKey) String() string          { return fmt.Sprintf("%s V%X, K", i.Name(), i.X) }
func (i WriteDelay) String() string      { return fmt.Sprintf("%s DT, V%X", i.Name(), i.X) }
func (i WriteSound) String() string      { return fmt.Sprintf("%s ST, V%X", i.Name(), i.X) }
func (i AddToIndex) String() string      { return fmt.Sprintf("%s I, V%X", i.Name(), i.X) }
func (i SetIndexToGlyph) String() string { return fmt.Sprintf("%s F, V%X", i.Name(), i.X) }
func (i StoreBCD) String() string        { return fmt.Sprintf("%s B, V%X", i.Name(), i.X) }
func (i StoreRegisters) String() string  { return fmt.Sprintf("%s [I], V%X", i.Name(), i.X) }
func (i LoadRegisters) String() string   { return fmt.Sprintf("%s V%X, [I]", i.Name(), i.X) }

func formatAddress(name string, address uint16) string {
	return fmt.Sprintf("%s $%03X", name, address)
}

func formatImmediate(name string, x, value uint8) string {
	return fmt.Sprintf("%s V%X, $%02X", name, x, value)
}

func formatRegisters(name string, x, y uint8) string {
	return fmt.Sprintf("%s V%X, V%X", name, x, y)
}

func formatRegister(name string, x uint8) string {
	return fmt.Sprintf("%s V%X", name, x)
}

func (ClearScreen) isInstruction()             {}
func (Return) isInstruction()                  {}
func (NoOp) isInstruction()                    {}
func (Unrecognized) isInstruction()            {}
func (Jump) isInstruction()                    {}
func (Call) isInstruction()                    {}
func (SkipIfEqualImmediate) isInstruction()    {}
func (SkipIfNotEqualImmediate) isInstruction() {}
func (SkipIfRegistersEqual) isInstruction()    {}
func (SkipIfRegistersNotEqual) isInstruction() {}
func (SetImmediate) isInstruction()            {}
func (AddImmediate) isInstruction()            {}
func (SetRegister) isInstruction()             {}
func (Or) isInstruction()                      {}
func (And) isInstruction()                     {}
func (Xor) isInstruction()                     {}
func (Add) isInstruction()                     {}
func (SubtractAB) isInstruction()              {}
func (ShiftRight) isInstruction()              {}
func (SubtractBA) isInstruction()              {}
func (ShiftLeft) isInstruction()               {}
func (SetIndex) isInstruction()                {}
func (JumpWithOffset) isInstruction()          {}
func (Random) isInstruction()                  {}
func (Draw) isInstruction()                    {}
func (SkipIfKeyPressed) isInstruction()        {}
func (SkipIfKeyNotPressed) isInstruction()     {}
func (ReadDelay) isInstruction()               {}
func (GetKey) isInstruction()                  {}
func (WriteDelay) isInstruction()              {}
func (WriteSound) isInstruction()              {}
func (AddToIndex) isInstruction()              {}
func (SetIndexToGlyph) isInstruction()         {}
func (StoreBCD) isInstruction()                {}
func (StoreRegisters) isInstruction()          {}
func (LoadRegisters) isInstruction()           {}
