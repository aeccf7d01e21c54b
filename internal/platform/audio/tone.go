// Package audio provides sound collaborators.
package audio

import (
	"encoding/binary"
	"math"
	"sync"
	"time"
)

// Default tone settings.
const (
	DefaultSampleRate = 44100
	DefaultFrequency  = 440
	DefaultVolume     = 0.25
)

// Tone is a square wave generator that plays for the requested durations.
// It implements io.Reader and produces mono float32 little endian samples.
type Tone struct {
	sampleRate int
	frequency  int
	volume     float32

	mu        sync.Mutex
	remaining int // samples left to play
	phase     int // sample position inside the current wave period
}

// NewTone returns a new square wave generator.
func NewTone(sampleRate, frequency int, volume float32) *Tone {
	return &Tone{
		sampleRate: sampleRate,
		frequency:  frequency,
		volume:     volume,
	}
}

// PlaySound extends the playback by the given duration.
func (t *Tone) PlaySound(duration time.Duration) {
	if duration <= 0 {
		return
	}
	samples := int(int64(duration) * int64(t.sampleRate) / int64(time.Second))

	t.mu.Lock()
	t.remaining += samples
	t.mu.Unlock()
}

// Remaining returns the duration that is left to play.
func (t *Tone) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return time.Duration(t.remaining) * time.Second / time.Duration(t.sampleRate)
}

// Read fills p with samples. It outputs silence when nothing is left to
// play and never returns an error.
func (t *Tone) Read(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	period := max(t.sampleRate/t.frequency, 2)
	n := len(p) / 4
	for i := range n {
		var sample float32
		if t.remaining > 0 {
			sample = t.volume
			if t.phase >= period/2 {
				sample = -t.volume
			}
			t.phase = (t.phase + 1) % period
			t.remaining--
		}
		binary.LittleEndian.PutUint32(p[i*4:], math.Float32bits(sample))
	}
	return n * 4, nil
}

// Silent is a sound collaborator that discards all sound.
type Silent struct{}

// PlaySound does nothing.
func (Silent) PlaySound(time.Duration) {}
