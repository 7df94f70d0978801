package cmd

import (
	"fmt"
	"os"

	"github.com/beanboi7/chyp8/chyp"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/spf13/cobra"
)

var (
	dumpDecimal bool
	dumpAll     bool
)

var dumpCmd = &cobra.Command{
	Use:   "dump `path/ROM`",
	Short: "print the memory image of a loaded ROM",
	Args:  cobra.ExactArgs(1),
	RunE:  Dump,
}

// chyp8 dump 'path/to/ROM' --dec
func Dump(cmd *cobra.Command, args []string) error {
	emu, err := newEMU()
	if err != nil {
		return err
	}
	machine, err := chyp.New(emu, nil, machineConfig(), newLogger())
	if err != nil {
		return err
	}

	rom, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	if err := machine.LoadROM(rom); err != nil {
		return err
	}

	start, size := cpu.ProgramStart, len(rom)
	if dumpAll {
		start, size = 0, cpu.MemorySize
	}
	mem, err := emu.ReadMemory(uint16(start), size)
	if err != nil {
		return err
	}

	format := chyp.DumpHex
	if dumpDecimal {
		format = chyp.DumpDec
	}
	if err := chyp.Dump(cmd.OutOrStdout(), mem, start, format); err != nil {
		return fmt.Errorf("writing dump: %w", err)
	}
	return nil
}

func init() {
	dumpCmd.Flags().BoolVarP(&dumpDecimal, "dec", "d", false, "print bytes in decimal")
	dumpCmd.Flags().BoolVarP(&dumpAll, "all", "a", false, "dump all 4K of memory including the font")
}
