package cpu

// instruction holds the fields of a decoded opcode.
type instruction struct {
	op  uint16 // full opcode
	cat uint8  // top nibble
	x   uint8
	y   uint8
	n   uint8
	nn  uint8
	nnn uint16
}

func decode(opcode uint16) instruction {
	return instruction{
		op:  opcode,
		cat: uint8(opcode >> 12),
		x:   uint8(opcode>>8) & 0x0F,
		y:   uint8(opcode>>4) & 0x0F,
		n:   uint8(opcode) & 0x0F,
		nn:  uint8(opcode),
		nnn: opcode & 0x0FFF,
	}
}

// opCodeParser executes in, which was fetched from addr. The program counter
// already points at the following instruction.
func (emu *EMU) opCodeParser(in instruction, addr uint16) error {
	x, y := in.x, in.y

	switch in.cat {
	case 0x0:
		switch in.op {
		case 0x00E0:
			emu.display = [DisplaySize]uint8{}
			emu.updateScreen = true
		case 0x00EE:
			if emu.sp == 0 {
				return emu.opCodeError(in.op, addr, ErrStackUnderflow)
			}
			emu.sp--
			emu.pc = emu.stack[emu.sp]
		default:
			// 0NNN machine code routines are not supported
			return emu.opCodeError(in.op, addr, ErrInvalidOpcode)
		}
	case 0x1:
		emu.pc = in.nnn
	case 0x2:
		if emu.sp >= StackDepth {
			return emu.opCodeError(in.op, addr, ErrStackOverflow)
		}
		emu.stack[emu.sp] = emu.pc
		emu.sp++
		emu.pc = in.nnn
	case 0x3:
		emu.skipIf(emu.V[x] == in.nn)
	case 0x4:
		emu.skipIf(emu.V[x] != in.nn)
	case 0x5:
		if in.n != 0 {
			return emu.opCodeError(in.op, addr, ErrInvalidOpcode)
		}
		emu.skipIf(emu.V[x] == emu.V[y])
	case 0x6:
		emu.V[x] = in.nn
	case 0x7:
		emu.V[x] += in.nn
	case 0x8:
		return emu.arithmetic(in, addr)
	case 0x9:
		if in.n != 0 {
			return emu.opCodeError(in.op, addr, ErrInvalidOpcode)
		}
		emu.skipIf(emu.V[x] != emu.V[y])
	case 0xA:
		emu.I = in.nnn
	case 0xB:
		base := emu.V[0]
		if emu.quirks.JumpUsesVX {
			base = emu.V[x]
		}
		emu.pc = in.nnn + uint16(base)
	case 0xC:
		emu.V[x] = uint8(emu.rand.Intn(256)) & in.nn
	case 0xD:
		return emu.draw(emu.V[x], emu.V[y], in.n, addr)
	case 0xE:
		switch in.nn {
		case 0x9E:
			emu.skipIf(emu.KeyHeld(emu.V[x] & 0x0F))
		case 0xA1:
			emu.skipIf(!emu.KeyHeld(emu.V[x] & 0x0F))
		default:
			return emu.opCodeError(in.op, addr, ErrInvalidOpcode)
		}
	case 0xF:
		return emu.misc(in, addr)
	}
	return nil
}

func (emu *EMU) skipIf(cond bool) {
	if cond {
		emu.pc += 2
	}
}

// arithmetic runs the 8XYN register-to-register family. VF is written after
// the result so the flag wins when x is F.
func (emu *EMU) arithmetic(in instruction, addr uint16) error {
	x, y := in.x, in.y
	vx, vy := emu.V[x], emu.V[y]

	switch in.n {
	case 0x0:
		emu.V[x] = vy
	case 0x1:
		emu.V[x] = vx | vy
	case 0x2:
		emu.V[x] = vx & vy
	case 0x3:
		emu.V[x] = vx ^ vy
	case 0x4:
		sum := uint16(vx) + uint16(vy)
		emu.V[x] = uint8(sum)
		emu.V[flag] = boolToFlag(sum > 0xFF)
	case 0x5:
		emu.V[x] = vx - vy
		emu.V[flag] = boolToFlag(vx >= vy)
	case 0x6:
		src := vy
		if emu.quirks.ShiftUsesVX {
			src = vx
		}
		emu.V[x] = src >> 1
		emu.V[flag] = src & 0x01
	case 0x7:
		emu.V[x] = vy - vx
		emu.V[flag] = boolToFlag(vy >= vx)
	case 0xE:
		src := vy
		if emu.quirks.ShiftUsesVX {
			src = vx
		}
		emu.V[x] = src << 1
		emu.V[flag] = src >> 7
	default:
		return emu.opCodeError(in.op, addr, ErrInvalidOpcode)
	}
	return nil
}

// misc runs the FXNN family.
func (emu *EMU) misc(in instruction, addr uint16) error {
	x := in.x

	switch in.nn {
	case 0x07:
		emu.V[x] = emu.delayTimer
	case 0x0A:
		emu.waitReg = x
		emu.waiting = true
		emu.pc -= 2
		emu.pollKeyWait()
	case 0x15:
		emu.delayTimer = emu.V[x]
	case 0x18:
		emu.soundTimer = emu.V[x]
	case 0x1E:
		old := emu.I
		emu.I += uint16(emu.V[x])
		emu.V[flag] = boolToFlag(old < MemorySize && emu.I >= MemorySize)
	case 0x29:
		emu.I = FontBase + uint16(emu.V[x])*FontGlyphSize
	case 0x33:
		if err := checkRange(emu.I, 3); err != nil {
			return emu.opCodeError(in.op, addr, err)
		}
		v := emu.V[x]
		emu.memory[emu.I] = v / 100
		emu.memory[emu.I+1] = v / 10 % 10
		emu.memory[emu.I+2] = v % 10
	case 0x55:
		count := int(x) + 1
		if err := checkRange(emu.I, count); err != nil {
			return emu.opCodeError(in.op, addr, err)
		}
		copy(emu.memory[emu.I:], emu.V[:count])
		emu.advanceI(count)
	case 0x65:
		count := int(x) + 1
		if err := checkRange(emu.I, count); err != nil {
			return emu.opCodeError(in.op, addr, err)
		}
		copy(emu.V[:count], emu.memory[emu.I:])
		emu.advanceI(count)
	default:
		return emu.opCodeError(in.op, addr, ErrInvalidOpcode)
	}
	return nil
}

func (emu *EMU) advanceI(count int) {
	if !emu.quirks.LoadStoreKeepsI {
		emu.I += uint16(count)
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
