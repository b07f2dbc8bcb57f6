// Package vm implements the CHIP-8 virtual machine core.
//
// # Machine State
//
// A VM owns all of its state:
//   - 4KB of memory with the hexadecimal glyph table at GlyphAddress (0x050-0x09F)
//     and the loaded program at ProgramStart (0x200)
//   - 16 general purpose 8-bit registers V0-VF, VF doubling as the flag register
//   - the 16-bit index register I
//   - the program counter and a 48 entry call stack
//   - the delay and sound timers
//   - a 64x32 monochrome framebuffer, one byte (0 or 1) per pixel, row-major
//   - a 16 entry key state vector, one per hexadecimal key
//
// # Execution
//
// Step executes exactly one fetch-decode-execute cycle: two bytes are read at
// the program counter, the counter advances by 2, the word is decoded into an
// Instruction and applied to the machine state. There is no implicit loop,
// pacing is left to the caller. The caller also drives the timers by calling
// TickTimers at its own cadence (60 Hz on the COSMAC VIP).
//
// The key wait instruction (Fx0A) does not block. When no key is pressed it
// rewinds the program counter so that the next Step fetches it again.
//
// # Errors
//
// Conditions that would corrupt the machine state are fatal: executing an
// unrecognized instruction, call stack over- or underflow and memory access
// outside of the 4KB address space. Step reports them as an *ExecutionError
// wrapping one of the sentinel errors; the machine must not be stepped again.
//
// # Concurrency
//
// A VM is not safe for concurrent use. It is meant to be owned by a single
// stepping goroutine. Display and Keys return copies that can be handed to
// other goroutines.
package vm
