package cpu

import "fmt"

func checkKey(key uint8) error {
	if key >= NumKeys {
		return fmt.Errorf("%w: %#x", ErrInvalidKey, key)
	}
	return nil
}

// SetKeyHeld records whether key is currently down.
func (emu *EMU) SetKeyHeld(key uint8, held bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	emu.keyHeld[key] = held
	return nil
}

// SetKeyReleased records whether key went up since the host last polled.
func (emu *EMU) SetKeyReleased(key uint8, released bool) error {
	if err := checkKey(key); err != nil {
		return err
	}
	emu.keyRelease[key] = released
	return nil
}

// SetKeys replaces both keypad signals at once.
func (emu *EMU) SetKeys(held, released [NumKeys]bool) {
	emu.keyHeld = held
	emu.keyRelease = released
}

// KeyHeld reports the level signal of key; keys out of range read as up.
func (emu *EMU) KeyHeld(key uint8) bool {
	return key < NumKeys && emu.keyHeld[key]
}

// pollKeyWait finishes a pending FX0A once any key has been released.
func (emu *EMU) pollKeyWait() {
	for k := uint8(0); k < NumKeys; k++ {
		if emu.keyRelease[k] {
			emu.V[emu.waitReg] = k
			emu.waiting = false
			emu.pc += 2
			return
		}
	}
}

// DecrementTimers counts both timers down by one, stopping at zero.
func (emu *EMU) DecrementTimers() {
	emu.delayTimerHandler()
	emu.soundTimerHandler()
}

func (emu *EMU) delayTimerHandler() {
	if emu.delayTimer > 0 {
		emu.delayTimer--
	}
}

func (emu *EMU) soundTimerHandler() {
	if emu.soundTimer > 0 {
		emu.soundTimer--
	}
}

func (emu *EMU) DelayTimer() uint8 {
	return emu.delayTimer
}

func (emu *EMU) SoundTimer() uint8 {
	return emu.soundTimer
}

// Sounding reports whether the sound timer is running.
func (emu *EMU) Sounding() bool {
	return emu.soundTimer > 0
}
