package cmd

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/beanboi7/chyp8/chyp"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("refresh", 60)
	viper.SetDefault("clock", 700)
	viper.SetDefault("quirks", "original")
	viper.SetDefault("scale", 10)
	viper.SetDefault("seed", 0)
}

func quirksFromConfig() (cpu.Quirks, error) {
	switch name := viper.GetString("quirks"); name {
	case "original", "":
		return cpu.QuirksOriginal(), nil
	case "modern":
		return cpu.QuirksModern(), nil
	default:
		return cpu.Quirks{}, fmt.Errorf("unknown quirks mode %q, use original or modern", name)
	}
}

// newEMU builds a machine from the quirks and seed settings.
func newEMU() (*cpu.EMU, error) {
	quirks, err := quirksFromConfig()
	if err != nil {
		return nil, err
	}

	seed := viper.GetInt64("seed")
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return cpu.NewEMU(cpu.Config{
		Quirks: quirks,
		Rand:   rand.New(rand.NewSource(seed)),
	}), nil
}

func machineConfig() chyp.Config {
	return chyp.Config{
		RefreshRate: viper.GetInt("refresh"),
		ClockSpeed:  viper.GetInt("clock"),
		SkipInvalid: viper.GetBool("skip-invalid"),
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if viper.GetBool("debug") {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
