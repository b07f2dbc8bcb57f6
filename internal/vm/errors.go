package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownInstruction is returned when an instruction word that does not
	// match any known encoding reaches execution.
	ErrUnknownInstruction = errors.New("unknown instruction")

	// ErrStackOverflow is returned when a call exceeds the call stack capacity.
	ErrStackOverflow = errors.New("stack overflow")

	// ErrStackUnderflow is returned when a return is executed on an empty call stack.
	ErrStackUnderflow = errors.New("stack underflow")

	// ErrMemoryAccess is returned when the program counter or the index
	// register points outside of the addressable memory.
	ErrMemoryAccess = errors.New("memory access out of range")

	// ErrProgramTooLarge is returned when a program does not fit into memory.
	ErrProgramTooLarge = errors.New("program too large")
)

// ExecutionError describes a fatal condition hit by Step. The machine state is
// undefined afterwards.
type ExecutionError struct {
	Address     uint16      // address the instruction was fetched from
	Raw         [2]byte     // raw instruction bytes, zero if the fetch failed
	Instruction Instruction // decoded instruction, nil if the fetch failed
	Err         error
}

func (e *ExecutionError) Error() string {
	if e.Instruction == nil {
		return fmt.Sprintf("fetching instruction at $%04X: %v", e.Address, e.Err)
	}
	return fmt.Sprintf("executing '%s' ($%02X%02X) at $%04X: %v",
		e.Instruction, e.Raw[0], e.Raw[1], e.Address, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
