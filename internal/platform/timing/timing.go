// Package timing provides timer collaborators that control how emulated
// time relates to wall clock time.
package timing

import (
	"sync/atomic"
	"time"
)

// MaxLag is the lag behind the wall clock after which a realtime timer
// stops catching up and continues from the current time.
const MaxLag = 100 * time.Millisecond

// Realtime blocks on every tick until the wall clock reached the end of the
// period, so that emulation runs at the speed of the emulated hardware.
type Realtime struct {
	now   func() time.Time
	sleep func(time.Duration)

	deadline time.Time
}

// NewRealtime returns a new realtime timer.
func NewRealtime() *Realtime {
	return &Realtime{
		now:   time.Now,
		sleep: time.Sleep,
	}
}

// Tick waits until the period that started with the previous tick is over.
func (r *Realtime) Tick(period time.Duration) {
	now := r.now()
	if r.deadline.IsZero() {
		r.deadline = now
	}

	r.deadline = r.deadline.Add(period)
	wait := r.deadline.Sub(now)
	switch {
	case wait > 0:
		r.sleep(wait)
	case -wait > MaxLag:
		r.deadline = now
	}
}

// Instant does not wait at all and only counts the ticks.
type Instant struct {
	ticks atomic.Uint64
}

// Tick counts the tick.
func (i *Instant) Tick(time.Duration) {
	i.ticks.Add(1)
}

// Ticks returns the number of ticks.
func (i *Instant) Ticks() uint64 {
	return i.ticks.Load()
}
