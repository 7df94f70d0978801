// Package term is a terminal frontend: the bitmap is drawn with half block
// characters and the keypad is read from raw stdin.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/beanboi7/chyp8/emu/cpu"
	"golang.org/x/term"
)

// KeyLayout maps keypad index to the QWERTY key that drives it, see
// screen.DefaultKeyMap.
const KeyLayout = "x123qweasdzc4rfv"

const escape = 0x1b

var ErrTerminalTooSmall = errors.New("terminal too small")

type Terminal struct {
	in  *os.File
	out io.Writer

	oldState *term.State
	keys     chan byte
	done     chan struct{}
	stopOnce sync.Once

	mu     sync.Mutex
	closed bool

	held [cpu.NumKeys]bool
}

func New(in *os.File, out io.Writer) *Terminal {
	return &Terminal{
		in:   in,
		out:  out,
		keys: make(chan byte, 64),
		done: make(chan struct{}),
	}
}

// Start switches stdin to raw mode, checks the terminal can fit the display
// and starts reading keys. Stop restores the terminal.
func (t *Terminal) Start() error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}

	width, height, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("getting terminal size: %w", err)
	}
	if width < cpu.DisplayWidth || height < cpu.DisplayHeight/2+1 {
		return fmt.Errorf("%w: %dx%d, need %dx%d", ErrTerminalTooSmall,
			width, height, cpu.DisplayWidth, cpu.DisplayHeight/2+1)
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("setting raw mode: %w", err)
	}
	t.oldState = state

	fmt.Fprint(t.out, "\x1b[?25l\x1b[2J")
	go t.readKeys()
	return nil
}

func (t *Terminal) readKeys() {
	r := bufio.NewReader(t.in)
	for {
		b, err := r.ReadByte()
		if err != nil {
			t.setClosed()
			return
		}
		// escape or ctrl-c quits
		if b == escape || b == 0x03 {
			t.setClosed()
			return
		}
		select {
		case t.keys <- b:
		case <-t.done:
			return
		}
	}
}

func (t *Terminal) setClosed() {
	t.mu.Lock()
	t.closed = true
	t.mu.Unlock()
}

// Stop restores the terminal state.
func (t *Terminal) Stop() {
	t.stopOnce.Do(func() {
		close(t.done)
		fmt.Fprint(t.out, "\x1b[?25h\r\n")
		if t.oldState != nil {
			_ = term.Restore(int(t.in.Fd()), t.oldState)
			t.oldState = nil
		}
	})
}

func (t *Terminal) Closed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.closed
}

// Keys drains the bytes typed since the last call. Terminals report no key up
// events, so a key counts as held for the tick its byte arrives and as
// released on the tick after that.
func (t *Terminal) Keys() (held, released [cpu.NumKeys]bool) {
drain:
	for {
		select {
		case b := <-t.keys:
			if k, ok := keyIndex(b); ok {
				held[k] = true
			}
		default:
			break drain
		}
	}

	for k := range held {
		released[k] = t.held[k] && !held[k]
	}
	t.held = held
	return held, released
}

func keyIndex(b byte) (int, bool) {
	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	i := strings.IndexByte(KeyLayout, b)
	return i, i >= 0
}

// Draw prints two display rows per text line.
func (t *Terminal) Draw(display [cpu.DisplaySize]uint8, sound bool) {
	fmt.Fprint(t.out, Render(display, sound))
}

// Render returns the escape sequence and text that paint display at the top
// left of the terminal.
func Render(display [cpu.DisplaySize]uint8, sound bool) string {
	var sb strings.Builder
	sb.WriteString("\x1b[H")
	for y := 0; y < cpu.DisplayHeight; y += 2 {
		for x := 0; x < cpu.DisplayWidth; x++ {
			top := display[y*cpu.DisplayWidth+x] != 0
			bottom := display[(y+1)*cpu.DisplayWidth+x] != 0
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\r\n")
	}
	if sound {
		sb.WriteString("♪")
	} else {
		sb.WriteByte(' ')
	}
	return sb.String()
}
