package cpu

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestSetKeys(t *testing.T) {
	emu := NewEMU(Config{})

	assert.NoError(t, emu.SetKeyHeld(0xF, true))
	assert.True(t, emu.KeyHeld(0xF))
	assert.NoError(t, emu.SetKeyHeld(0xF, false))
	assert.False(t, emu.KeyHeld(0xF))
	assert.False(t, emu.KeyHeld(0x10))

	assert.True(t, errors.Is(emu.SetKeyHeld(16, true), ErrInvalidKey))
	assert.True(t, errors.Is(emu.SetKeyReleased(16, true), ErrInvalidKey))

	var held, released [NumKeys]bool
	held[2], released[9] = true, true
	emu.SetKeys(held, released)
	assert.True(t, emu.KeyHeld(2))
	assert.Equal(t, released, emu.keyRelease)
}

func TestKeypadNotMutatedByStep(t *testing.T) {
	emu := newTestEMU(t, QuirksOriginal(), 0xF00A, 0xE09E)
	var held, released [NumKeys]bool
	held[3], released[3] = true, true
	emu.SetKeys(held, released)

	stepN(t, emu, 2)

	assert.Equal(t, held, emu.keyHeld)
	assert.Equal(t, released, emu.keyRelease)
}

func TestDecrementTimers(t *testing.T) {
	emu := NewEMU(Config{})
	emu.delayTimer, emu.soundTimer = 2, 1

	emu.DecrementTimers()
	assert.Equal(t, uint8(1), emu.DelayTimer())
	assert.Equal(t, uint8(0), emu.SoundTimer())
	assert.False(t, emu.Sounding())

	emu.DecrementTimers()
	emu.DecrementTimers()
	assert.Equal(t, uint8(0), emu.DelayTimer())
	assert.Equal(t, uint8(0), emu.SoundTimer())
}

func TestTimersIndependentOfStep(t *testing.T) {
	emu := newTestEMU(t, QuirksOriginal(), 0xF015, 0x1202)
	emu.V[0] = 10

	stepN(t, emu, 20)

	assert.Equal(t, uint8(10), emu.DelayTimer())
}

func TestQuirksString(t *testing.T) {
	assert.Equal(t, "original", QuirksOriginal().String())
	assert.Equal(t, "modern", QuirksModern().String())
	assert.Equal(t, "custom", Quirks{JumpUsesVX: true}.String())
}
