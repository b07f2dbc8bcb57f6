package vm

// Decode translates a big-endian instruction word into an Instruction.
// Words that match no known encoding decode to Unrecognized, Decode never fails.
func Decode(b0, b1 byte) Instruction {
	x := b0 & 0x0F
	y := b1 >> 4
	n := b1 & 0x0F
	nnn := uint16(x)<<8 | uint16(b1)

	switch b0 >> 4 {
	case 0x0:
		return decodeSystem(b0, b1)
	case 0x1:
		return Jump{Address: nnn}
	case 0x2:
		return Call{Address: nnn}
	case 0x3:
		return SkipIfEqualImmediate{X: x, Value: b1}
	case 0x4:
		return SkipIfNotEqualImmediate{X: x, Value: b1}
	case 0x5:
		return SkipIfRegistersEqual{X: x, Y: y}
	case 0x6:
		return SetImmediate{X: x, Value: b1}
	case 0x7:
		return AddImmediate{X: x, Value: b1}
	case 0x8:
		return decodeArithmetic(b0, b1)
	case 0x9:
		return SkipIfRegistersNotEqual{X: x, Y: y}
	case 0xA:
		return SetIndex{Address: nnn}
	case 0xB:
		return JumpWithOffset{Address: nnn}
	case 0xC:
		return Random{X: x, Mask: b1}
	case 0xD:
		return Draw{X: x, Y: y, Height: n}
	case 0xE:
		return decodeKey(b0, b1)
	default:
		return decodeMisc(b0, b1)
	}
}

// decodeSystem decodes the 0x0 family, only the fixed words are known.
func decodeSystem(b0, b1 byte) Instruction {
	if b0 == 0x00 {
		switch b1 {
		case 0xE0:
			return ClearScreen{}
		case 0xEE:
			return Return{}
		case 0x00:
			return NoOp{}
		}
	}
	return Unrecognized{Raw: [2]byte{b0, b1}}
}

// decodeArithmetic decodes the 0x8 family by its low nibble.
func decodeArithmetic(b0, b1 byte) Instruction {
	x := b0 & 0x0F
	y := b1 >> 4

	switch b1 & 0x0F {
	case 0x0:
		return SetRegister{X: x, Y: y}
	case 0x1:
		return Or{X: x, Y: y}
	case 0x2:
		return And{X: x, Y: y}
	case 0x3:
		return Xor{X: x, Y: y}
	case 0x4:
		return Add{X: x, Y: y}
	case 0x5:
		return SubtractAB{X: x, Y: y}
	case 0x6:
		return ShiftRight{X: x, Y: y}
	case 0x7:
		return SubtractBA{X: x, Y: y}
	case 0xE:
		return ShiftLeft{X: x, Y: y}
	default:
		return Unrecognized{Raw: [2]byte{b0, b1}}
	}
}

// decodeKey decodes the 0xE family by its low byte.
func decodeKey(b0, b1 byte) Instruction {
	x := b0 & 0x0F

	switch b1 {
	case 0x9E:
		return SkipIfKeyPressed{X: x}
	case 0xA1:
		return SkipIfKeyNotPressed{X: x}
	default:
		return Unrecognized{Raw: [2]byte{b0, b1}}
	}
}

// decodeMisc decodes the 0xF family by its low byte. The block transfer
// instructions are both keyed off the X register field.
func decodeMisc(b0, b1 byte) Instruction {
	x := b0 & 0x0F

	switch b1 {
	case 0x07:
		return ReadDelay{X: x}
	case 0x0A:
		return GetKey{X: x}
	case 0x15:
		return WriteDelay{X: x}
	case 0x18:
		return WriteSound{X: x}
	case 0x1E:
		return AddToIndex{X: x}
	case 0x29:
		return SetIndexToGlyph{X: x}
	case 0x33:
		return StoreBCD{X: x}
	case 0x55:
		return StoreRegisters{X: x}
	case 0x65:
		return LoadRegisters{X: x}
	default:
		return Unrecognized{Raw: [2]byte{b0, b1}}
	}
}
