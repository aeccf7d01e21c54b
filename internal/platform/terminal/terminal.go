// Package terminal implements an ANSI terminal frontend with a raw mode
// keyboard.
package terminal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

// DefaultHoldTime is how long a key counts as held after the terminal
// reported it. Terminals only report key presses and repeats, never
// releases.
const DefaultHoldTime = 150 * time.Millisecond

const (
	keyCtrlC  = 0x03
	keyEscape = 0x1B
)

// keyMap maps the left side of a QWERTY keyboard to the hex keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keyMap = map[byte]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// Terminal renders frames to the terminal and reads the keypad from it.
type Terminal struct {
	logger *log.Logger
	in     io.Reader
	out    io.Writer
	quit   func()
	now    func() time.Time

	holdTime time.Duration

	mu       sync.Mutex
	lastSeen [vm.KeyCount]time.Time
	pending  []uint8

	fd       int
	oldState *term.State
}

// New returns a terminal frontend using stdin and stdout. The quit function
// is called when escape or Ctrl+C is pressed.
func New(logger *log.Logger, quit func()) *Terminal {
	return &Terminal{
		logger:   logger,
		in:       os.Stdin,
		out:      os.Stdout,
		quit:     quit,
		now:      time.Now,
		holdTime: DefaultHoldTime,
		fd:       int(os.Stdin.Fd()),
	}
}

// Start switches the terminal into raw mode and starts reading keys.
func (t *Terminal) Start() error {
	if !term.IsTerminal(t.fd) {
		return errors.New("stdin is not a terminal")
	}

	oldState, err := term.MakeRaw(t.fd)
	if err != nil {
		return fmt.Errorf("setting terminal raw mode: %w", err)
	}
	t.oldState = oldState

	// clear screen and hide cursor
	_, _ = io.WriteString(t.out, "\x1b[2J\x1b[?25l")

	go t.readInput()
	return nil
}

// Stop restores the terminal state.
func (t *Terminal) Stop() {
	_, _ = io.WriteString(t.out, "\x1b[?25h\r\n")
	if t.oldState == nil {
		return
	}
	if err := term.Restore(t.fd, t.oldState); err != nil {
		t.logger.Error("Restoring terminal state failed", log.Err(err))
	}
	t.oldState = nil
}

func (t *Terminal) readInput() {
	reader := bufio.NewReader(t.in)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.logger.Error("Reading terminal input failed", log.Err(err))
			}
			return
		}
		t.handleInput(b)
	}
}

// handleInput processes a single byte of terminal input.
func (t *Terminal) handleInput(b byte) {
	if b == keyCtrlC || b == keyEscape {
		if t.quit != nil {
			t.quit()
		}
		return
	}

	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}
	key, ok := keyMap[b]
	if !ok {
		return
	}

	t.mu.Lock()
	t.lastSeen[key] = t.now()
	t.pending = append(t.pending, key)
	t.mu.Unlock()
}

// IsPressed returns whether the key was reported within the hold time.
func (t *Terminal) IsPressed(key uint8) bool {
	if int(key) >= vm.KeyCount {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	seen := t.lastSeen[key]
	return !seen.IsZero() && t.now().Sub(seen) < t.holdTime
}

// PressedKey returns the oldest key press that was not consumed yet.
func (t *Terminal) PressedKey() (uint8, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.pending) == 0 {
		return 0, false
	}
	key := t.pending[0]
	t.pending = t.pending[1:]
	return key, true
}

// Render draws the frame, every pixel as two characters to keep the aspect
// ratio.
func (t *Terminal) Render(frame vm.Frame) {
	buf := make([]byte, 0, vm.Height*(vm.Width*2*3+2)+8)
	buf = append(buf, "\x1b[H"...)
	for row := range vm.Height {
		for col := range vm.Width {
			if frame[row][col] {
				buf = append(buf, "██"...)
			} else {
				buf = append(buf, "  "...)
			}
		}
		buf = append(buf, '\r', '\n')
	}

	if _, err := t.out.Write(buf); err != nil {
		t.logger.Error("Rendering frame failed", log.Err(err))
	}
}
