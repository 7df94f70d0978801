package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/beanboi7/chyp8/chyp"
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/beanboi7/chyp8/emu/screen"
	"github.com/beanboi7/chyp8/emu/term"
	"github.com/faiface/pixel/pixelgl"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runOnMainThread hands the window loop to pixelgl, which needs the main
// OS thread and a working GLFW. Only the window frontend goes through it.
var runOnMainThread = pixelgl.Run

var startCmd = &cobra.Command{
	Use:   "start `path/ROM`",
	Short: "load and start the Emulator",
	Args:  cobra.ExactArgs(1),
	RunE:  Start,
}

// chyp8 start 'path/to/ROM' -r 60 -c 700
func Start(cmd *cobra.Command, args []string) error {
	emu, err := newEMU()
	if err != nil {
		return err
	}

	if viper.GetBool("headless") {
		t := term.New(os.Stdin, os.Stdout)
		if err := t.Start(); err != nil {
			return err
		}
		defer t.Stop()
		return run(emu, t, args[0])
	}

	runOnMainThread(func() {
		var win *screen.Window
		win, err = screen.NewWindow(viper.GetInt("scale"), true)
		if err != nil {
			return
		}
		defer win.Destroy()
		err = run(emu, win, args[0])
	})
	return err
}

func run(emu *cpu.EMU, frontend chyp.Frontend, romPath string) error {
	machine, err := chyp.New(emu, frontend, machineConfig(), newLogger())
	if err != nil {
		return err
	}
	if err := machine.LoadGame(romPath); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := machine.Run(ctx); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

func init() {
	flags := startCmd.Flags()
	flags.IntP("refresh", "r", 60, "sets the refresh rate of the display and timers in Hz")
	flags.IntP("clock", "c", 700, "instructions executed per second")
	flags.Int("scale", 10, "window pixels per Chip-8 pixel")
	flags.Int64("seed", 0, "random seed for CXNN, 0 picks one from the clock")
	flags.Bool("headless", false, "render in the terminal instead of a window")
	flags.Bool("skip-invalid", false, "continue after an invalid opcode instead of halting")

	for _, name := range []string{"refresh", "clock", "scale", "seed", "headless", "skip-invalid"} {
		cobra.CheckErr(viper.BindPFlag(name, flags.Lookup(name)))
	}
}
