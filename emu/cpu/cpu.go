// Package cpu implements the CHIP-8 virtual machine: memory, registers, call
// stack, display bitmap, keypad state and timers, advanced one instruction at
// a time by Step.
package cpu

import (
	"math/rand"
)

const (
	MemorySize   = 0x1000
	ProgramStart = 0x200
	StackDepth   = 16
	NumRegisters = 16
	NumKeys      = 16

	DisplayWidth  = 64
	DisplayHeight = 32
	DisplaySize   = DisplayWidth * DisplayHeight

	// MaxRomSize is the room left between ProgramStart and the end of memory.
	MaxRomSize = MemorySize - ProgramStart

	flag = 0xF
)

// Rand is the source of random bytes for CXNN.
// *rand.Rand satisfies it, so tests can seed one for reproducible runs.
type Rand interface {
	Intn(n int) int
}

// Config holds the per-instance settings of an EMU.
type Config struct {
	Quirks Quirks
	Rand   Rand
}

type EMU struct {
	opcode     uint16
	memory     [MemorySize]uint8
	V          [NumRegisters]uint8
	I          uint16 //address register
	pc         uint16
	display    [DisplaySize]uint8
	delayTimer uint8 //counts down at 60Hz
	soundTimer uint8 //same as above
	stack      [StackDepth]uint16
	sp         uint16
	keyHeld    [NumKeys]bool //tells whether key is pressed or not
	keyRelease [NumKeys]bool //key went up since the host last polled

	updateScreen bool //to draw or not
	waiting      bool //FX0A is waiting for a key release
	waitReg      uint8

	quirks Quirks
	rand   Rand
}

// NewEMU returns a zeroed machine with the program counter at ProgramStart.
// A nil cfg.Rand gets a generator seeded with 0.
func NewEMU(cfg Config) *EMU {
	emu := &EMU{
		quirks: cfg.Quirks,
		rand:   cfg.Rand,
	}
	if emu.rand == nil {
		emu.rand = rand.New(rand.NewSource(0))
	}
	emu.Reset()
	return emu
}

// Reset restores the power-on state in place. Quirks and the random source are kept.
func (emu *EMU) Reset() {
	emu.opcode = 0
	emu.memory = [MemorySize]uint8{}
	emu.V = [NumRegisters]uint8{}
	emu.I = 0
	emu.pc = ProgramStart
	emu.display = [DisplaySize]uint8{}
	emu.delayTimer = 0
	emu.soundTimer = 0
	emu.stack = [StackDepth]uint16{}
	emu.sp = 0
	emu.keyHeld = [NumKeys]bool{}
	emu.keyRelease = [NumKeys]bool{}
	emu.updateScreen = false
	emu.waiting = false
	emu.waitReg = 0
}

// Quirks returns the quirk configuration in effect.
func (emu *EMU) Quirks() Quirks {
	return emu.quirks
}

// SetQuirks changes the quirk configuration; it takes effect on the next Step.
func (emu *EMU) SetQuirks(q Quirks) {
	emu.quirks = q
}

// Step performs exactly one fetch-decode-execute cycle.
//
// While an FX0A wait is pending nothing is fetched; the step only checks the
// released keys. Errors leave the machine consistent: the program counter has
// moved past the offending instruction and nothing else has changed.
func (emu *EMU) Step() error {
	emu.updateScreen = false

	if emu.waiting {
		emu.pollKeyWait()
		return nil
	}

	pc := emu.pc
	if err := checkRange(pc, 2); err != nil {
		return err
	}
	emu.opcode = uint16(emu.memory[pc])<<8 | uint16(emu.memory[pc+1])
	emu.pc += 2

	return emu.opCodeParser(decode(emu.opcode), pc)
}

// PC returns the program counter.
func (emu *EMU) PC() uint16 {
	return emu.pc
}

// SP returns the stack pointer, the number of return addresses pushed.
func (emu *EMU) SP() uint16 {
	return emu.sp
}

// Opcode returns the last fetched instruction.
func (emu *EMU) Opcode() uint16 {
	return emu.opcode
}

// Waiting reports whether an FX0A key wait is pending.
func (emu *EMU) Waiting() bool {
	return emu.waiting
}

// Display returns a copy of the display bitmap, row major, one byte per pixel.
func (emu *EMU) Display() [DisplaySize]uint8 {
	return emu.display
}

// Pixel returns the pixel at x, y; coordinates outside the display read as 0.
func (emu *EMU) Pixel(x, y int) uint8 {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return 0
	}
	return emu.display[y*DisplayWidth+x]
}

// ScreenUpdated reports whether the last Step changed the display.
func (emu *EMU) ScreenUpdated() bool {
	return emu.updateScreen
}

// Snapshot is a copy of the register file, used for debug output.
type Snapshot struct {
	V      [NumRegisters]uint8
	I      uint16
	PC     uint16
	SP     uint16
	Stack  [StackDepth]uint16
	Delay  uint8
	Sound  uint8
	Opcode uint16
}

func (emu *EMU) Snapshot() Snapshot {
	return Snapshot{
		V:      emu.V,
		I:      emu.I,
		PC:     emu.pc,
		SP:     emu.sp,
		Stack:  emu.stack,
		Delay:  emu.delayTimer,
		Sound:  emu.soundTimer,
		Opcode: emu.opcode,
	}
}
