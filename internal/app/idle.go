package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"focusbell/internal/core/scheduler"
	"focusbell/internal/platform"

	"github.com/rs/zerolog"
)

const defaultIdlePollInterval = 5 * time.Second

// PauseTarget is the part of the Controller the IdleMonitor drives.
type PauseTarget interface {
	Phase() scheduler.Phase
	Pause() bool
	Resume()
}

// IdleMonitor pauses a running cycle once the user has been idle for the
// threshold and resumes it when input returns. It only resumes cycles it
// paused itself.
type IdleMonitor struct {
	mu        sync.Mutex
	provider  platform.IdleProvider
	target    PauseTarget
	enabled   bool
	threshold time.Duration
	interval  time.Duration
	autoPause bool
	log       zerolog.Logger
}

// NewIdleMonitor creates a disabled monitor. Interval defaults to five
// seconds.
func NewIdleMonitor(provider platform.IdleProvider, target PauseTarget, interval time.Duration, logger zerolog.Logger) *IdleMonitor {
	if interval <= 0 {
		interval = defaultIdlePollInterval
	}
	return &IdleMonitor{
		provider: provider,
		target:   target,
		interval: interval,
		log:      logger.With().Str("component", "idle").Logger(),
	}
}

// SetEnabled switches idle pausing on or off and updates the threshold.
func (monitor *IdleMonitor) SetEnabled(enabled bool, threshold time.Duration) {
	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	monitor.enabled = enabled && threshold > 0
	monitor.threshold = threshold
	if !monitor.enabled {
		monitor.autoPause = false
	}
}

// Run polls the idle provider until ctx is done. It returns nil when idle
// detection is unsupported.
func (monitor *IdleMonitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(monitor.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := monitor.check(); err != nil {
			if errors.Is(err, platform.ErrIdleUnsupported) {
				monitor.log.Info().Msg("idle detection unsupported; idle pause disabled")
				return nil
			}
			monitor.log.Debug().Err(err).Msg("idle check failed")
		}
	}
}

func (monitor *IdleMonitor) check() error {
	monitor.mu.Lock()
	enabled := monitor.enabled
	threshold := monitor.threshold
	monitor.mu.Unlock()
	if !enabled {
		return nil
	}

	idle, err := monitor.provider.IdleDuration()
	if err != nil {
		return err
	}

	monitor.mu.Lock()
	defer monitor.mu.Unlock()
	phase := monitor.target.Phase()
	switch {
	case idle >= threshold && phase == scheduler.PhaseRunning:
		// A manual pause landing after the phase read makes Pause a no-op.
		if monitor.target.Pause() {
			monitor.autoPause = true
			monitor.log.Info().Dur("idle", idle).Msg("paused after inactivity")
		}
	case idle < threshold && monitor.autoPause:
		monitor.autoPause = false
		if phase == scheduler.PhasePaused {
			monitor.target.Resume()
			monitor.log.Info().Msg("resumed after activity")
		}
	}
	return nil
}
