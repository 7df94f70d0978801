package cpu

import "fmt"

// ReadMemory8 returns the byte at addr.
func (emu *EMU) ReadMemory8(addr uint16) (uint8, error) {
	if err := checkRange(addr, 1); err != nil {
		return 0, err
	}
	return emu.memory[addr], nil
}

// WriteMemory8 stores value at addr.
func (emu *EMU) WriteMemory8(addr uint16, value uint8) error {
	if err := checkRange(addr, 1); err != nil {
		return err
	}
	emu.memory[addr] = value
	return nil
}

// ReadMemory returns a copy of size bytes starting at addr.
func (emu *EMU) ReadMemory(addr uint16, size int) ([]uint8, error) {
	if err := checkRange(addr, size); err != nil {
		return nil, err
	}
	block := make([]uint8, size)
	copy(block, emu.memory[addr:int(addr)+size])
	return block, nil
}

// WriteMemory copies data to addr. len(data) has to equal size, nothing is
// written otherwise.
func (emu *EMU) WriteMemory(addr uint16, size int, data []uint8) error {
	if err := checkRange(addr, size); err != nil {
		return err
	}
	if len(data) != size {
		return fmt.Errorf("%w: data %d size %d", ErrSizeMismatch, len(data), size)
	}
	copy(emu.memory[addr:], data)
	return nil
}

// Memory returns a copy of the whole memory image.
func (emu *EMU) Memory() [MemorySize]uint8 {
	return emu.memory
}

// ReplaceMemory overwrites the whole memory image.
func (emu *EMU) ReplaceMemory(image [MemorySize]uint8) {
	emu.memory = image
}

// LoadProgram writes a program image at offset, conventionally ProgramStart.
func (emu *EMU) LoadProgram(program []uint8, offset uint16) error {
	return emu.WriteMemory(offset, len(program), program)
}
