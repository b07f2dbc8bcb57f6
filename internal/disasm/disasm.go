// Package disasm creates instruction listings of CHIP-8 programs.
package disasm

import (
	"fmt"
	"io"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/set"
)

const labelNaming = "_label_%04x"

// Line is a single decoded instruction of a listing.
type Line struct {
	Address     uint16
	Raw         [2]byte
	Instruction vm.Instruction
}

// Disasm decodes a program loaded at vm.ProgramStart.
type Disasm struct {
	program []byte

	lines              []Line
	branchDestinations set.Set[uint16] // set of all addresses that are jumped to or called
	trailing           []byte          // odd byte at the end of the program
}

// New decodes the given program. Zero words are treated as padding and are
// not part of the listing.
func New(program []byte) *Disasm {
	dis := &Disasm{
		program:            program,
		branchDestinations: set.New[uint16](),
	}
	dis.decode()
	return dis
}

// Lines returns the decoded instructions in address order.
func (dis *Disasm) Lines() []Line {
	return dis.lines
}

// IsBranchDestination returns whether the address is the target of a jump
// or call inside the program.
func (dis *Disasm) IsBranchDestination(address uint16) bool {
	return dis.branchDestinations.Contains(address)
}

// Write outputs the listing with one instruction per line and a label in
// front of every branch destination.
func (dis *Disasm) Write(w io.Writer) error {
	for _, line := range dis.lines {
		if dis.IsBranchDestination(line.Address) {
			if _, err := fmt.Fprintf(w, "%s:\n", labelName(line.Address)); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if _, err := fmt.Fprintf(w, "$%04X  %02X%02X  %s\n",
			line.Address, line.Raw[0], line.Raw[1], line.Instruction); err != nil {
			return fmt.Errorf("writing instruction: %w", err)
		}
	}

	if len(dis.trailing) > 0 {
		address := vm.ProgramStart + len(dis.program) - 1
		if _, err := fmt.Fprintf(w, "$%04X  %02X    .byte $%02X\n",
			address, dis.trailing[0], dis.trailing[0]); err != nil {
			return fmt.Errorf("writing trailing byte: %w", err)
		}
	}
	return nil
}

// List writes the listing of the program to w.
func List(w io.Writer, program []byte) error {
	return New(program).Write(w)
}

func (dis *Disasm) decode() {
	end := vm.ProgramStart + len(dis.program)

	for offset := 0; offset+1 < len(dis.program); offset += 2 {
		raw := [2]byte{dis.program[offset], dis.program[offset+1]}
		ins := vm.Decode(raw[0], raw[1])
		if _, ok := ins.(vm.NoOp); ok {
			continue
		}

		dis.lines = append(dis.lines, Line{
			Address:     uint16(vm.ProgramStart + offset),
			Raw:         raw,
			Instruction: ins,
		})

		if target, ok := branchTarget(ins); ok && int(target) >= vm.ProgramStart && int(target) < end {
			dis.branchDestinations.Add(target)
		}
	}

	if len(dis.program)%2 == 1 {
		dis.trailing = dis.program[len(dis.program)-1:]
	}
}

// branchTarget returns the absolute destination of a jump or call.
// Jumps relative to V0 can not be resolved statically.
func branchTarget(ins vm.Instruction) (uint16, bool) {
	switch ins := ins.(type) {
	case vm.Jump:
		return ins.Address, true
	case vm.Call:
		return ins.Address, true
	default:
		return 0, false
	}
}

func labelName(address uint16) string {
	return fmt.Sprintf(labelNaming, address)
}
