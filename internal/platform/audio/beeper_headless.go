//go:build headless

package audio

import "time"

// Beeper discards sound in builds without audio device support.
type Beeper struct{}

// NewBeeper returns a beeper that does not play anything.
func NewBeeper(int) (*Beeper, error) {
	return &Beeper{}, nil
}

// PlaySound does nothing.
func (b *Beeper) PlaySound(time.Duration) {}

// Close does nothing.
func (b *Beeper) Close() error {
	return nil
}
