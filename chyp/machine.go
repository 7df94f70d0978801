// Package chyp drives a cpu.EMU from the host side: loading ROMs, forwarding
// key state, pacing instructions and timers, and handing frames to a frontend.
package chyp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/beanboi7/chyp8/emu/cpu"
)

// Frontend is the window or terminal the machine renders into.
type Frontend interface {
	Closed() bool
	// Keys returns the held keys and the keys released since the previous call.
	Keys() (held, released [cpu.NumKeys]bool)
	Draw(display [cpu.DisplaySize]uint8, sound bool)
}

type Config struct {
	RefreshRate int // timer and frame rate in Hz
	ClockSpeed  int // instructions per second
	SkipInvalid bool
}

// DefaultConfig returns the conventional 60Hz timers at 700 instructions per second.
func DefaultConfig() Config {
	return Config{
		RefreshRate: 60,
		ClockSpeed:  700,
	}
}

type Machine struct {
	emu      *cpu.EMU
	frontend Frontend
	cfg      Config
	logger   *slog.Logger

	stepsPerTick int
	stepsCarry   int // leftover ClockSpeed%RefreshRate, paid out one step at a time
	dirty        bool
	drawnSound   bool
}

func New(emu *cpu.EMU, frontend Frontend, cfg Config, logger *slog.Logger) (*Machine, error) {
	if cfg.RefreshRate <= 0 {
		return nil, fmt.Errorf("invalid refresh rate %d", cfg.RefreshRate)
	}
	if cfg.ClockSpeed < cfg.RefreshRate {
		return nil, fmt.Errorf("clock speed %d below refresh rate %d", cfg.ClockSpeed, cfg.RefreshRate)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	return &Machine{
		emu:          emu,
		frontend:     frontend,
		cfg:          cfg,
		logger:       logger,
		stepsPerTick: cfg.ClockSpeed / cfg.RefreshRate,
		dirty:        true,
	}, nil
}

func (m *Machine) EMU() *cpu.EMU {
	return m.emu
}

// LoadGame reads a ROM file and loads it through LoadROM.
func (m *Machine) LoadGame(filename string) error {
	rom, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("reading ROM: %w", err)
	}
	if err := m.LoadROM(rom); err != nil {
		return fmt.Errorf("loading %s: %w", filename, err)
	}
	m.logger.Info("ROM loaded",
		slog.String("file", filename),
		slog.Int("size", len(rom)),
		slog.String("quirks", m.emu.Quirks().String()),
	)
	return nil
}

var (
	ErrEmptyROM    = errors.New("ROM is empty")
	ErrROMTooLarge = errors.New("ROM too big")
)

// LoadROM resets the machine, loads the font at cpu.FontBase and rom at
// cpu.ProgramStart.
func (m *Machine) LoadROM(rom []uint8) error {
	switch {
	case len(rom) == 0:
		return ErrEmptyROM
	case len(rom) > cpu.MaxRomSize:
		return fmt.Errorf("%w: %d bytes, can't cross %d", ErrROMTooLarge, len(rom), cpu.MaxRomSize)
	}

	m.emu.Reset()
	m.emu.LoadFont()
	m.dirty = true
	return m.emu.LoadProgram(rom, cpu.ProgramStart)
}

// Tick runs one host tick: forward keys, count the timers down, execute
// ClockSpeed/RefreshRate instructions and draw if the display or the sound
// state changed. Over RefreshRate ticks exactly ClockSpeed instructions run.
func (m *Machine) Tick() error {
	held, released := m.frontend.Keys()
	m.emu.SetKeys(held, released)
	m.emu.DecrementTimers()

	steps := m.stepsPerTick
	m.stepsCarry += m.cfg.ClockSpeed % m.cfg.RefreshRate
	if m.stepsCarry >= m.cfg.RefreshRate {
		m.stepsCarry -= m.cfg.RefreshRate
		steps++
	}

	for i := 0; i < steps; i++ {
		err := m.EmulateCycle()
		if err == nil {
			continue
		}
		if m.cfg.SkipInvalid && errors.Is(err, cpu.ErrInvalidOpcode) {
			m.logger.Warn("skipping invalid opcode", slog.Any("error", err))
			continue
		}
		return err
	}

	sound := m.emu.Sounding()
	if m.dirty || sound != m.drawnSound {
		m.frontend.Draw(m.emu.Display(), sound)
		m.dirty = false
		m.drawnSound = sound
	}
	return nil
}

// EmulateCycle executes a single instruction.
func (m *Machine) EmulateCycle() error {
	pc := m.emu.PC()
	err := m.emu.Step()
	if m.emu.ScreenUpdated() {
		m.dirty = true
	}
	if m.logger.Enabled(context.Background(), slog.LevelDebug) {
		s := m.emu.Snapshot()
		m.logger.Debug("step",
			slog.String("pc", fmt.Sprintf("%03X", pc)),
			slog.String("opcode", fmt.Sprintf("%04X", s.Opcode)),
			slog.String("i", fmt.Sprintf("%03X", s.I)),
			slog.Int("sp", int(s.SP)),
			slog.Bool("waiting", m.emu.Waiting()),
		)
	}
	if err != nil {
		return fmt.Errorf("executing at %03X: %w", pc, err)
	}
	return nil
}

// Run ticks at RefreshRate until the frontend closes, ctx is done or an
// instruction fails.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(m.cfg.RefreshRate))
	defer ticker.Stop()

	for !m.frontend.Closed() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := m.Tick(); err != nil {
			m.logger.Error("machine halted", slog.Any("error", err))
			return err
		}
	}
	return nil
}
