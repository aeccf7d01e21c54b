package vm

import "time"

// pacer converts emulated time into 60 Hz timer periods.
type pacer struct {
	period      time.Duration
	accumulated time.Duration // emulated time not yet converted into periods

	timer Timer
	sound Sound
}

func newPacer(period time.Duration, timer Timer, sound Sound) *pacer {
	return &pacer{
		period: period,
		timer:  timer,
		sound:  sound,
	}
}

// advance adds the elapsed emulated time and processes every crossed timer
// period: the delay and sound timers are decremented without wrapping and
// the timer collaborator is notified once per period. The sound collaborator
// is asked to play for the time of all crossed periods that started with a
// running sound timer. Returns the number of crossed periods.
func (p *pacer) advance(s *state, elapsed time.Duration) int {
	p.accumulated += elapsed

	var ticks int
	var sound time.Duration
	for p.accumulated >= p.period {
		p.accumulated -= p.period
		ticks++

		if s.ST > 0 {
			sound += p.period
			s.ST--
		}
		if s.DT > 0 {
			s.DT--
		}
		p.timer.Tick(p.period)
	}

	p.sound.PlaySound(sound)
	return ticks
}
