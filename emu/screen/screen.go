// Package screen is the pixelgl window frontend.
package screen

import (
	"fmt"
	"image/color"

	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
	"golang.org/x/image/colornames"
)

const title = "Chyp8"

// surface is the part of *pixelgl.Window the frontend draws on and reads
// keys from.
type surface interface {
	pixel.Target
	UpdateInput()
	Pressed(pixelgl.Button) bool
	JustReleased(pixelgl.Button) bool
	Clear(color.Color)
	SwapBuffers()
	SetTitle(string)
}

type Window struct {
	win    *pixelgl.Window
	out    surface
	KeyMap [cpu.NumKeys]pixelgl.Button
	scale  float64
	imd    *imdraw.IMDraw
	beep   bool
}

// NewWindow opens a window of 64x32 cells, each scale pixels wide.
// It has to be called from inside pixelgl.Run.
func NewWindow(scale int, vsync bool) (*Window, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("invalid scale %d", scale)
	}

	cfg := pixelgl.WindowConfig{
		Title:     title,
		Bounds:    pixel.R(0, 0, float64(cpu.DisplayWidth*scale), float64(cpu.DisplayHeight*scale)),
		Resizable: false,
		VSync:     vsync,
	}
	win, err := pixelgl.NewWindow(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	w := newWindow(win, scale)
	w.win = win
	return w, nil
}

func newWindow(out surface, scale int) *Window {
	return &Window{
		out:    out,
		KeyMap: DefaultKeyMap,
		scale:  float64(scale),
		imd:    imdraw.New(nil),
	}
}

// Closed reports whether the user asked to close the window.
func (w *Window) Closed() bool {
	return w.win.Closed()
}

// Destroy closes the window and frees its resources.
func (w *Window) Destroy() {
	w.win.Destroy()
}

// Keys polls window events; held is the level signal, released the keys
// that went up since the last poll. It is the only place input is polled.
func (w *Window) Keys() (held, released [cpu.NumKeys]bool) {
	w.out.UpdateInput()
	for k, btn := range w.KeyMap {
		held[k] = w.out.Pressed(btn)
		released[k] = w.out.JustReleased(btn)
	}
	return held, released
}

// Draw renders the display bitmap. The title shows a note while the sound
// timer runs. It swaps buffers without polling input so release edges are
// left for Keys.
func (w *Window) Draw(display [cpu.DisplaySize]uint8, sound bool) {
	if sound != w.beep {
		w.beep = sound
		if sound {
			w.out.SetTitle(title + " ♪")
		} else {
			w.out.SetTitle(title)
		}
	}

	w.imd.Clear()
	w.imd.Color = colornames.White
	top := float64(cpu.DisplayHeight) * w.scale
	for y := 0; y < cpu.DisplayHeight; y++ {
		for x := 0; x < cpu.DisplayWidth; x++ {
			if display[y*cpu.DisplayWidth+x] == 0 {
				continue
			}
			// pixel's origin is the bottom left corner
			x0, y0 := float64(x)*w.scale, top-float64(y+1)*w.scale
			w.imd.Push(pixel.V(x0, y0), pixel.V(x0+w.scale, y0+w.scale))
			w.imd.Rectangle(0)
		}
	}

	w.out.Clear(colornames.Black)
	w.imd.Draw(w.out)
	w.out.SwapBuffers()
}
