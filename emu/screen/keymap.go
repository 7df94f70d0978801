package screen

import (
	"github.com/beanboi7/chyp8/emu/cpu"
	"github.com/faiface/pixel/pixelgl"
)

// DefaultKeyMap lays the hex keypad over the left side of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var DefaultKeyMap = [cpu.NumKeys]pixelgl.Button{
	0x0: pixelgl.KeyX,
	0x1: pixelgl.Key1,
	0x2: pixelgl.Key2,
	0x3: pixelgl.Key3,
	0x4: pixelgl.KeyQ,
	0x5: pixelgl.KeyW,
	0x6: pixelgl.KeyE,
	0x7: pixelgl.KeyA,
	0x8: pixelgl.KeyS,
	0x9: pixelgl.KeyD,
	0xA: pixelgl.KeyZ,
	0xB: pixelgl.KeyC,
	0xC: pixelgl.Key4,
	0xD: pixelgl.KeyR,
	0xE: pixelgl.KeyF,
	0xF: pixelgl.KeyV,
}
