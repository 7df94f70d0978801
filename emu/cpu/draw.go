package cpu

// draw XORs an n-row sprite read from I onto the display at (vx, vy).
// The origin wraps around the display, the sprite itself is clipped at the
// right and bottom edges. VF reports whether any lit pixel was turned off.
func (emu *EMU) draw(vx, vy, n uint8, addr uint16) error {
	sprite, err := emu.ReadMemory(emu.I, int(n))
	if err != nil {
		return emu.opCodeError(emu.opcode, addr, err)
	}

	originX := int(vx) % DisplayWidth
	originY := int(vy) % DisplayHeight
	emu.V[flag] = 0

	for row, bits := range sprite {
		py := originY + row
		if py >= DisplayHeight {
			break
		}
		for col := 0; col < 8; col++ {
			px := originX + col
			if px >= DisplayWidth {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}
			idx := py*DisplayWidth + px
			if emu.display[idx] == 1 {
				emu.V[flag] = 1
			}
			emu.display[idx] ^= 1
		}
	}

	emu.updateScreen = true
	return nil
}
