package sound

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/vburojevic/hiit/internal/domain"
	"go.uber.org/zap"
)

// Sink renders a tone on some output
type Sink interface {
	Play(Tone) error
}

// Device subscribes to cues and plays them unless muted. Delayed tones
// (the fanfare tail) are scheduled on the clock and check the mute flag when
// they fire, not when they are scheduled.
type Device struct {
	sink Sink
	clk  clock.Clock
	log  *zap.Logger

	mu      sync.Mutex
	muted   bool
	pending map[*clock.Timer]struct{}
	wg      sync.WaitGroup
}

// NewDevice creates a device playing on sink. A nil logger disables logging.
func NewDevice(sink Sink, clk clock.Clock, log *zap.Logger) *Device {
	if log == nil {
		log = zap.NewNop()
	}
	return &Device{
		sink:    sink,
		clk:     clk,
		log:     log,
		pending: make(map[*clock.Timer]struct{}),
	}
}

// Handle plays cue events and ignores everything else
func (d *Device) Handle(ev domain.Event) error {
	cue, ok := ev.(domain.Cue)
	if !ok {
		return nil
	}
	for _, tone := range Tones(cue) {
		d.schedule(tone)
	}
	return nil
}

func (d *Device) schedule(tone Tone) {
	if tone.Offset <= 0 {
		d.play(tone)
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	d.wg.Add(1)
	var timer *clock.Timer
	timer = d.clk.AfterFunc(tone.Offset, func() {
		defer d.wg.Done()
		d.mu.Lock()
		delete(d.pending, timer)
		d.mu.Unlock()
		d.play(tone)
	})
	d.pending[timer] = struct{}{}
}

func (d *Device) play(tone Tone) {
	if d.Muted() {
		d.log.Debug("tone dropped (muted)", zap.Float64("hz", tone.Frequency))
		return
	}
	if err := d.sink.Play(tone); err != nil {
		d.log.Warn("tone failed", zap.Float64("hz", tone.Frequency), zap.Error(err))
	}
}

// Stop cancels tones that have not fired yet
func (d *Device) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for timer := range d.pending {
		if timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, timer)
	}
}

// Drain waits for scheduled tones to finish or ctx to end
func (d *Device) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Device) SetMuted(muted bool) {
	d.mu.Lock()
	d.muted = muted
	d.mu.Unlock()
}

// ToggleMute flips the mute flag and returns the new value
func (d *Device) ToggleMute() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.muted = !d.muted
	return d.muted
}

func (d *Device) Muted() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.muted
}
