package scheduler

import (
	"errors"
	"sync"
	"time"

	"focusbell/internal/core/model"

	"github.com/rs/zerolog"
)

// ErrShutdownTimeout indicates the tick loop did not exit within StopTimeout
// and was abandoned.
var ErrShutdownTimeout = errors.New("tick loop did not exit before stop timeout")

const (
	defaultTickInterval      = time.Second
	defaultPausePollInterval = 100 * time.Millisecond
	defaultStopTimeout       = 1500 * time.Millisecond
	defaultEventBuffer       = 16
)

// Options contains runtime options for FocusScheduler.
type Options struct {
	TickInterval      time.Duration
	PausePollInterval time.Duration
	StopTimeout       time.Duration
	EventBuffer       int
	Intervals         IntervalSource
	Logger            *zerolog.Logger
}

type run struct {
	config model.SchedulerConfig
	state  *runState
	stop   chan struct{}
	done   chan struct{}
}

// FocusScheduler tracks focus time, fires randomized reminders and runs
// short rests between them. All counters are advanced by a single
// background loop; the host only drives it through Configure, Start, Pause,
// Resume and Stop and observes it through Events.
type FocusScheduler struct {
	mu      sync.Mutex
	config  model.SchedulerConfig
	options Options
	phase   Phase
	current *run
	box     *outbox
	closed  bool
	log     zerolog.Logger
}

// New creates an idle FocusScheduler with the default config.
func New(options Options) *FocusScheduler {
	if options.TickInterval <= 0 {
		options.TickInterval = defaultTickInterval
	}
	if options.PausePollInterval <= 0 {
		options.PausePollInterval = defaultPausePollInterval
	}
	if options.StopTimeout <= 0 {
		options.StopTimeout = defaultStopTimeout
	}
	if options.EventBuffer <= 0 {
		options.EventBuffer = defaultEventBuffer
	}
	if options.Intervals == nil {
		options.Intervals = defaultIntervals()
	}
	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = *options.Logger
	}

	return &FocusScheduler{
		config:  model.DefaultSchedulerConfig(),
		options: options,
		phase:   PhaseIdle,
		box:     newOutbox(options.EventBuffer),
		log:     logger.With().Str("component", "scheduler").Logger(),
	}
}

// Events returns the ordered notification channel. It is closed by Close.
func (scheduler *FocusScheduler) Events() <-chan Event {
	return scheduler.box.out
}

// Configure validates and stores the config used by the next Start.
func (scheduler *FocusScheduler) Configure(config model.SchedulerConfig) error {
	normalized, err := config.Normalize()
	if err != nil {
		return err
	}

	scheduler.mu.Lock()
	scheduler.config = normalized
	scheduler.mu.Unlock()

	scheduler.log.Debug().
		Int("focus_minutes", normalized.FocusDurationMinutes).
		Int("min_interval", normalized.MinIntervalSeconds).
		Int("max_interval", normalized.MaxIntervalSeconds).
		Int("rest_seconds", normalized.RestDurationSeconds).
		Msg("configured")
	return nil
}

// Config returns the stored config.
func (scheduler *FocusScheduler) Config() model.SchedulerConfig {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.config
}

// Start begins a new focus cycle from Idle or Stopped, or resumes from Paused.
func (scheduler *FocusScheduler) Start() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()

	switch scheduler.phase {
	case PhasePaused:
		scheduler.setPausedLocked(false)
		scheduler.log.Debug().Msg("resumed")
		return
	case PhaseIdle, PhaseStopped:
	default:
		return
	}
	if scheduler.closed {
		return
	}

	current := &run{
		config: scheduler.config,
		state:  &runState{},
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	scheduler.current = current
	scheduler.box.push(Event{Type: EventStateReset, At: time.Now()})
	current.state.reschedule(current.config, scheduler.options.Intervals)
	scheduler.phase = PhaseRunning

	scheduler.log.Debug().
		Int("reminder_interval", current.state.currentReminderInterval).
		Msg("started")

	go scheduler.loop(current)
}

// Pause freezes all counters. It has no effect unless running, and reports
// whether it paused the cycle.
func (scheduler *FocusScheduler) Pause() bool {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.phase != PhaseRunning {
		return false
	}
	scheduler.setPausedLocked(true)
	scheduler.log.Debug().Msg("paused")
	return true
}

// Resume continues a paused cycle. It has no effect unless paused.
func (scheduler *FocusScheduler) Resume() {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.phase != PhasePaused {
		return
	}
	scheduler.setPausedLocked(false)
	scheduler.log.Debug().Msg("resumed")
}

// setPausedLocked switches between Running and Paused. The caller holds mu.
func (scheduler *FocusScheduler) setPausedLocked(paused bool) {
	if paused {
		scheduler.phase = PhasePaused
	} else {
		scheduler.phase = PhaseRunning
	}
	if scheduler.current != nil {
		scheduler.current.state.paused.Store(paused)
	}
}

// Stop ends the current cycle. It blocks until the tick loop has exited, or
// until StopTimeout, in which case the loop is abandoned and an
// EventShutdownTimeout is emitted. The StateReset notification is emitted
// only after the loop can no longer mutate state.
func (scheduler *FocusScheduler) Stop() {
	scheduler.mu.Lock()
	if scheduler.phase != PhaseRunning && scheduler.phase != PhasePaused {
		scheduler.mu.Unlock()
		return
	}
	scheduler.phase = PhaseStopping
	current := scheduler.current
	close(current.stop)
	scheduler.mu.Unlock()

	if err := scheduler.awaitExit(current); err != nil {
		scheduler.log.Warn().
			Err(err).
			Dur("timeout", scheduler.options.StopTimeout).
			Msg("forced tick loop termination")
	}

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	scheduler.current = nil
	scheduler.box.push(Event{Type: EventStateReset, At: time.Now()})
	scheduler.phase = PhaseStopped
	scheduler.log.Debug().Msg("stopped")
}

// Close stops the scheduler and closes the Events channel once every
// pending notification has been delivered.
func (scheduler *FocusScheduler) Close() {
	scheduler.Stop()

	scheduler.mu.Lock()
	scheduler.closed = true
	scheduler.mu.Unlock()
	scheduler.box.close()
}

// Phase returns the current lifecycle phase.
func (scheduler *FocusScheduler) Phase() Phase {
	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	return scheduler.phase
}

// Snapshot returns a copy of the live state.
func (scheduler *FocusScheduler) Snapshot() Snapshot {
	scheduler.mu.Lock()
	phase := scheduler.phase
	current := scheduler.current
	scheduler.mu.Unlock()

	if current == nil {
		return Snapshot{Phase: phase}
	}
	return current.state.snapshot(phase)
}

// CurrentReminderInterval returns the interval being counted down, in
// seconds, or 0 when nothing has been scheduled.
func (scheduler *FocusScheduler) CurrentReminderInterval() int {
	return scheduler.Snapshot().CurrentReminderInterval
}

func (scheduler *FocusScheduler) loop(current *run) {
	defer close(current.done)

	for {
		select {
		case <-current.stop:
			return
		default:
		}

		paused := scheduler.Phase() == PhasePaused
		wait := scheduler.options.TickInterval
		if paused {
			wait = scheduler.options.PausePollInterval
		}
		if !sleepUntilStop(current.stop, wait) {
			return
		}
		if paused {
			continue
		}
		if exit := scheduler.tick(current); exit {
			return
		}
	}
}

// tick advances the run by one second. It reports whether the loop owning
// the run should exit.
func (scheduler *FocusScheduler) tick(current *run) bool {
	scheduler.mu.Lock()
	owned := scheduler.current == current
	running := scheduler.phase == PhaseRunning
	scheduler.mu.Unlock()
	if !owned {
		return true
	}
	if !running {
		return false
	}

	events, completed := current.state.advance(current.config, scheduler.options.Intervals, time.Now())

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.current != current {
		return true
	}
	scheduler.box.push(events...)
	if completed {
		if scheduler.phase != PhaseStopping {
			scheduler.phase = PhaseStopped
		}
		scheduler.log.Info().
			Int("focus_minutes", current.config.FocusDurationMinutes).
			Msg("focus cycle complete")
	}
	return completed
}

func (scheduler *FocusScheduler) awaitExit(current *run) error {
	timer := time.NewTimer(scheduler.options.StopTimeout)
	defer timer.Stop()

	select {
	case <-current.done:
		return nil
	case <-timer.C:
	}

	scheduler.mu.Lock()
	defer scheduler.mu.Unlock()
	if scheduler.current == current {
		scheduler.current = nil
	}
	scheduler.box.push(Event{
		Type:    EventShutdownTimeout,
		Message: ErrShutdownTimeout.Error(),
		At:      time.Now(),
	})
	return ErrShutdownTimeout
}

func sleepUntilStop(stop <-chan struct{}, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}
