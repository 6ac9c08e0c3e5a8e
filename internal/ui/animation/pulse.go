package animation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains pulse timing values.
type Config struct {
	FrameDuration Range
}

// DefaultConfig returns a slow, slightly irregular pulse.
func DefaultConfig() Config {
	return Config{
		FrameDuration: Range{
			Min: 450 * time.Millisecond,
			Max: 650 * time.Millisecond,
		},
	}
}

// Pulse cycles through icon frames until stopped, then restores a rest
// icon.
type Pulse struct {
	mu         sync.Mutex
	config     Config
	updateIcon func(fyne.Resource)
	cancel     context.CancelFunc
	done       chan struct{}
	rng        *rand.Rand
}

// New creates a pulse that reports frames through updateIcon.
func New(config Config, updateIcon func(fyne.Resource)) *Pulse {
	return &Pulse{
		config:     config,
		updateIcon: updateIcon,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Start begins cycling frames, replacing any running pulse.
func (pulse *Pulse) Start(ctx context.Context, frames ...fyne.Resource) {
	if len(frames) == 0 {
		return
	}
	pulse.Stop()

	pulse.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	pulse.cancel = cancel
	pulse.done = done
	pulse.mu.Unlock()

	go func() {
		defer close(done)
		for index := 0; ; index++ {
			pulse.updateIcon(frames[index%len(frames)])
			if !sleepWithContext(runCtx, pulse.frameDuration()) {
				return
			}
		}
	}()
}

// Stop terminates the pulse and waits until no further frame is reported.
// If rest is non-nil it is shown afterwards.
func (pulse *Pulse) Stop(rest ...fyne.Resource) {
	pulse.mu.Lock()
	cancel := pulse.cancel
	done := pulse.done
	pulse.cancel = nil
	pulse.done = nil
	pulse.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	if len(rest) > 0 && rest[0] != nil {
		pulse.updateIcon(rest[0])
	}
}

// Running reports whether a pulse is active.
func (pulse *Pulse) Running() bool {
	pulse.mu.Lock()
	defer pulse.mu.Unlock()
	return pulse.cancel != nil
}

func (pulse *Pulse) frameDuration() time.Duration {
	pulse.mu.Lock()
	defer pulse.mu.Unlock()
	return pulse.config.FrameDuration.Random(pulse.rng)
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
