// Package headless provides video and keyboard collaborators without any
// user facing device, for automated runs and tests.
package headless

import (
	"sync"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/set"
)

// Video keeps the last rendered frame in memory.
type Video struct {
	mu      sync.Mutex
	frame   vm.Frame
	renders int
}

// NewVideo returns a new headless video sink.
func NewVideo() *Video {
	return &Video{}
}

// Render stores the frame.
func (v *Video) Render(frame vm.Frame) {
	v.mu.Lock()
	v.frame = frame
	v.renders++
	v.mu.Unlock()
}

// Frame returns the last rendered frame.
func (v *Video) Frame() vm.Frame {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.frame
}

// Renders returns the number of rendered frames.
func (v *Video) Renders() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.renders
}

// String returns the last rendered frame as ASCII art.
func (v *Video) String() string {
	frame := v.Frame()
	return frame.String()
}

// Keyboard is a scripted keyboard. Pressed keys are held until released and
// every press is queued for key wait instructions.
type Keyboard struct {
	mu      sync.Mutex
	held    set.Set[uint8]
	pending []uint8
}

// NewKeyboard returns a new keyboard without any pressed keys.
func NewKeyboard() *Keyboard {
	return &Keyboard{
		held: set.New[uint8](),
	}
}

// Press presses and holds the given keys.
func (k *Keyboard) Press(keys ...uint8) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, key := range keys {
		key &= 0x0F
		k.held.Add(key)
		k.pending = append(k.pending, key)
	}
}

// Release releases the given keys.
func (k *Keyboard) Release(keys ...uint8) {
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, key := range keys {
		k.held.Remove(key & 0x0F)
	}
}

// IsPressed returns whether the key is currently held.
func (k *Keyboard) IsPressed(key uint8) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.held.Contains(key)
}

// PressedKey returns the oldest press that was not consumed yet.
func (k *Keyboard) PressedKey() (uint8, bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if len(k.pending) == 0 {
		return 0, false
	}
	key := k.pending[0]
	k.pending = k.pending[1:]
	return key, true
}
