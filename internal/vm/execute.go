package vm

import "fmt"

// execute applies a decoded instruction to the machine state. The program
// counter already points to the following instruction.
//
//nolint:funlen,cyclop,gocyclo // one case per instruction
func (m *VM) execute(ins Instruction) error {
	switch ins := ins.(type) {
	case NoOp:

	case ClearScreen:
		m.display = [DisplaySize]uint8{}

	case Return:
		if m.sp == 0 {
			return ErrStackUnderflow
		}
		m.sp--
		m.pc = m.stack[m.sp]

	case Jump:
		m.pc = ins.Address

	case Call:
		if m.sp >= StackSize {
			return ErrStackOverflow
		}
		m.stack[m.sp] = m.pc
		m.sp++
		m.pc = ins.Address

	case SkipIfEqualImmediate:
		m.skipIf(m.v[ins.X] == ins.Value)

	case SkipIfNotEqualImmediate:
		m.skipIf(m.v[ins.X] != ins.Value)

	case SkipIfRegistersEqual:
		m.skipIf(m.v[ins.X] == m.v[ins.Y])

	case SkipIfRegistersNotEqual:
		m.skipIf(m.v[ins.X] != m.v[ins.Y])

	case SetImmediate:
		m.v[ins.X] = ins.Value

	case AddImmediate:
		sum := uint16(m.v[ins.X]) + uint16(ins.Value)
		m.v[ins.X] = uint8(sum & 0xFF)

	case SetRegister:
		m.v[ins.X] = m.v[ins.Y]

	case Or:
		m.v[ins.X] |= m.v[ins.Y]

	case And:
		m.v[ins.X] &= m.v[ins.Y]

	case Xor:
		m.v[ins.X] ^= m.v[ins.Y]

	case Add:
		m.add(ins.X, m.v[ins.X], m.v[ins.Y])

	case SubtractAB:
		m.subtract(ins.X, m.v[ins.X], m.v[ins.Y])

	case SubtractBA:
		m.subtract(ins.X, m.v[ins.Y], m.v[ins.X])

	case ShiftRight:
		value := m.v[ins.X]
		m.setFlag(value&0x01 != 0)
		m.v[ins.X] = value >> 1

	case ShiftLeft:
		value := m.v[ins.X]
		m.setFlag(value&0x80 != 0)
		m.v[ins.X] = value << 1

	case SetIndex:
		m.i = ins.Address

	case JumpWithOffset:
		m.pc = uint16(m.v[0]) + ins.Address

	case Random:
		m.v[ins.X] = uint8(m.rnd.UintN(256)) & ins.Mask

	case Draw:
		return m.draw(ins)

	case SkipIfKeyPressed:
		m.skipIf(m.keys[m.v[ins.X]&0x0F] != 0)

	case SkipIfKeyNotPressed:
		m.skipIf(m.keys[m.v[ins.X]&0x0F] == 0)

	case ReadDelay:
		m.v[ins.X] = m.delayTimer

	case WriteDelay:
		m.delayTimer = m.v[ins.X]

	case WriteSound:
		m.soundTimer = m.v[ins.X]

	case AddToIndex:
		m.i += uint16(m.v[ins.X])
		if m.i > addressMask {
			m.v[FlagRegister] = 1
		}

	case GetKey:
		m.waitForKey(ins.X)

	case SetIndexToGlyph:
		m.i = glyphAddress(m.v[ins.X])

	case StoreBCD:
		return m.storeBCD(m.v[ins.X])

	case StoreRegisters:
		mem, err := m.block(m.i, int(ins.X)+1)
		if err != nil {
			return err
		}
		copy(mem, m.v[:ins.X+1])

	case LoadRegisters:
		mem, err := m.block(m.i, int(ins.X)+1)
		if err != nil {
			return err
		}
		copy(m.v[:ins.X+1], mem)

	case Unrecognized:
		return ErrUnknownInstruction

	default:
		return fmt.Errorf("unsupported instruction type %T: %w", ins, ErrUnknownInstruction)
	}

	return nil
}

// skipIf skips the next instruction if the condition is met.
func (m *VM) skipIf(condition bool) {
	if condition {
		m.pc += opcodeSize
	}
}

// setFlag writes the boolean to VF as 0 or 1.
func (m *VM) setFlag(set bool) {
	if set {
		m.v[FlagRegister] = 1
	} else {
		m.v[FlagRegister] = 0
	}
}

// add stores a + b in register x. The flag is written last as x may be VF.
func (m *VM) add(x, a, b uint8) {
	sum := uint16(a) + uint16(b)
	carry := sum > 0xFF
	if carry {
		sum -= 0x100
	}
	m.v[x] = uint8(sum)
	m.setFlag(carry)
}

// subtract stores a - b in register x, the flag is 1 if no borrow occurred.
// The flag is written last as x may be VF.
func (m *VM) subtract(x, a, b uint8) {
	diff := int16(a) - int16(b)
	noBorrow := diff >= 0
	if !noBorrow {
		diff += 0x100
	}
	m.v[x] = uint8(diff)
	m.setFlag(noBorrow)
}

// waitForKey stores the lowest pressed key in register x. Without a pressed
// key the program counter is rewound so the instruction is fetched again.
func (m *VM) waitForKey(x uint8) {
	for key, state := range m.keys {
		if state != 0 {
			m.v[x] = uint8(key)
			return
		}
	}
	m.pc -= opcodeSize
}

// storeBCD writes the hundreds, tens and ones digit of value to memory at I.
func (m *VM) storeBCD(value uint8) error {
	mem, err := m.block(m.i, 3)
	if err != nil {
		return err
	}
	mem[0] = value / 100
	mem[1] = value / 10 % 10
	mem[2] = value % 10
	return nil
}
