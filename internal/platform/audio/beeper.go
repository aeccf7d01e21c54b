//go:build !headless

package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a square wave tone on the default audio device.
type Beeper struct {
	tone   *Tone
	ctx    *oto.Context
	player *oto.Player
	once   sync.Once
}

// NewBeeper opens the audio device and starts the playback of the tone
// generator, which is silent until sound is requested.
func NewBeeper(sampleRate int) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   20 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &Beeper{
		tone: NewTone(sampleRate, DefaultFrequency, DefaultVolume),
		ctx:  ctx,
	}
	b.player = ctx.NewPlayer(b.tone)
	b.player.Play()
	return b, nil
}

// PlaySound plays the tone for the given duration.
func (b *Beeper) PlaySound(duration time.Duration) {
	b.tone.PlaySound(duration)
}

// Close stops the playback.
func (b *Beeper) Close() error {
	var err error
	b.once.Do(func() {
		err = b.player.Close()
	})
	return err
}
