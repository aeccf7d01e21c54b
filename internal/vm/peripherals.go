package vm

import "time"

// Keyboard provides the state of the hexadecimal keypad.
type Keyboard interface {
	// IsPressed returns whether the key 0x0-0xF is currently held down.
	IsPressed(key uint8) bool
	// PressedKey returns a key that was pressed since the last call, if any.
	// It must not block, the engine suspends the waiting instruction and
	// polls again on the next step.
	PressedKey() (uint8, bool)
}

// Random provides random bytes. Uniformity is not required.
type Random interface {
	RandomByte() uint8
}

// Timer is notified once for every crossed timer period.
type Timer interface {
	Tick(period time.Duration)
}

// Sound is asked once per executed instruction to play a tone for the given
// duration. A zero duration means silence for this step.
type Sound interface {
	PlaySound(duration time.Duration)
}

// Video receives a copy of the framebuffer after every screen clear and
// sprite draw.
type Video interface {
	Render(frame Frame)
}

// Peripherals groups the external collaborators of an Engine.
// Nil members are replaced by implementations that ignore all calls.
type Peripherals struct {
	Keyboard Keyboard
	Random   Random
	Timer    Timer
	Sound    Sound
	Video    Video
}

func (p Peripherals) withDefaults() Peripherals {
	if p.Keyboard == nil {
		p.Keyboard = nullKeyboard{}
	}
	if p.Random == nil {
		p.Random = nullRandom{}
	}
	if p.Timer == nil {
		p.Timer = nullTimer{}
	}
	if p.Sound == nil {
		p.Sound = nullSound{}
	}
	if p.Video == nil {
		p.Video = nullVideo{}
	}
	return p
}

type nullKeyboard struct{}

func (nullKeyboard) IsPressed(uint8) bool      { return false }
func (nullKeyboard) PressedKey() (uint8, bool) { return 0, false }

type nullRandom struct{}

func (nullRandom) RandomByte() uint8 { return 0 }

type nullTimer struct{}

func (nullTimer) Tick(time.Duration) {}

type nullSound struct{}

func (nullSound) PlaySound(time.Duration) {}

type nullVideo struct{}

func (nullVideo) Render(Frame) {}
