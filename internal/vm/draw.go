package vm

// draw XORs a sprite onto the framebuffer. The start position wraps around the
// display, the sprite itself is clipped at the right and bottom edges.
// VF is cleared before drawing and set if any set pixel got cleared.
func (m *VM) draw(ins Draw) error {
	startX := int(m.v[ins.X]) % DisplayWidth
	startY := int(m.v[ins.Y]) % DisplayHeight
	m.v[FlagRegister] = 0

	for row := range int(ins.Height) {
		y := startY + row
		if y >= DisplayHeight {
			break
		}

		bits, err := m.read(m.i + uint16(row))
		if err != nil {
			return err
		}

		for col := range spriteWidth {
			x := startX + col
			if x >= DisplayWidth {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}

			pixel := &m.display[y*DisplayWidth+x]
			if *pixel == 1 {
				m.v[FlagRegister] = 1
				*pixel = 0
			} else {
				*pixel = 1
			}
		}
	}
	return nil
}
