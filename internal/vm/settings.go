package vm

import (
	"errors"
	"time"
)

// Default timing values.
const (
	// DefaultInstructionDuration results in 500 instructions per second.
	DefaultInstructionDuration = 2 * time.Millisecond
	// DefaultTimerPeriod is one 60 Hz timer tick.
	DefaultTimerPeriod = 16666667 * time.Nanosecond
)

// Settings configures an Engine.
type Settings struct {
	Dialect Dialect
	Quirks  Quirks

	// InstructionDuration is the emulated time one instruction takes.
	InstructionDuration time.Duration
	// TimerPeriod is the emulated time between two timer decrements.
	TimerPeriod time.Duration

	// Trace logs every executed instruction at debug level.
	Trace bool
}

// DefaultSettings returns the default settings for the given dialect.
func DefaultSettings(d Dialect) Settings {
	return Settings{
		Dialect:             d,
		Quirks:              DefaultQuirks(d),
		InstructionDuration: DefaultInstructionDuration,
		TimerPeriod:         DefaultTimerPeriod,
	}
}

// Validate validates the settings.
// Returns an error when the settings aren't valid.
func (s Settings) Validate() error {
	if s.InstructionDuration <= 0 {
		return errors.New("instruction duration must be positive")
	}
	if s.TimerPeriod <= 0 {
		return errors.New("timer period must be positive")
	}
	if _, ok := dialectNames[s.Dialect]; !ok {
		return errors.New("unsupported dialect")
	}
	return nil
}

// RateDuration converts an instruction rate in Hz into the duration of a
// single instruction. Returns the default duration for a non-positive rate.
func RateDuration(rate int) time.Duration {
	if rate <= 0 {
		return DefaultInstructionDuration
	}
	return time.Second / time.Duration(rate)
}
