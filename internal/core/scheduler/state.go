package scheduler

import (
	"sync"
	"sync/atomic"
	"time"

	"focusbell/internal/core/model"
)

// runState holds the counters of one focus cycle. It is created by Start
// and only mutated by the loop that owns it.
type runState struct {
	mu                       sync.Mutex
	resting                  bool
	elapsedFocusSeconds      int
	secondsSinceLastReminder int
	currentReminderInterval  int
	restElapsedSeconds       int

	// paused is set by the scheduler while it holds its own lock and read
	// by advance under mu, so a tick already past the phase check still
	// sees a pause.
	paused atomic.Bool
}

func (state *runState) snapshot(phase Phase) Snapshot {
	if state == nil {
		return Snapshot{Phase: phase}
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	return Snapshot{
		Phase:                    phase,
		Resting:                  state.resting,
		ElapsedFocusSeconds:      state.elapsedFocusSeconds,
		SecondsSinceLastReminder: state.secondsSinceLastReminder,
		CurrentReminderInterval:  state.currentReminderInterval,
		RestElapsedSeconds:       state.restElapsedSeconds,
	}
}

func (state *runState) reschedule(config model.SchedulerConfig, intervals IntervalSource) {
	next := intervals.Next(config.MinIntervalSeconds, config.MaxIntervalSeconds)
	if next < config.MinIntervalSeconds {
		next = config.MinIntervalSeconds
	}
	if next > config.MaxIntervalSeconds {
		next = config.MaxIntervalSeconds
	}
	state.currentReminderInterval = next
	state.secondsSinceLastReminder = 0
}

// advance runs one tick and returns its notifications in emission order.
// completed is true once the focus cycle is over.
func (state *runState) advance(config model.SchedulerConfig, intervals IntervalSource, now time.Time) (events []Event, completed bool) {
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.paused.Load() {
		return nil, false
	}

	state.elapsedFocusSeconds++
	elapsedMinutes := state.elapsedFocusSeconds / 60
	if state.elapsedFocusSeconds%60 == 0 {
		events = append(events, Event{Type: EventFocusProgress, ElapsedMinutes: elapsedMinutes, At: now})
	}

	// Completion wins over a reminder or rest end landing on the same tick.
	if elapsedMinutes >= config.FocusDurationMinutes {
		events = append(events, Event{Type: EventBreakTimeReached, At: now})
		return events, true
	}

	if state.resting {
		state.restElapsedSeconds++
		events = append(events, Event{
			Type:    EventBreakProgress,
			Current: state.restElapsedSeconds,
			Total:   config.RestDurationSeconds,
			At:      now,
		})
		if state.restElapsedSeconds >= config.RestDurationSeconds {
			state.resting = false
			state.restElapsedSeconds = 0
			events = append(events, Event{Type: EventPlayRestEndSound, At: now})
			state.reschedule(config, intervals)
		}
		return events, false
	}

	state.secondsSinceLastReminder++
	if state.currentReminderInterval > 0 {
		events = append(events, Event{
			Type:    EventReminderProgress,
			Current: state.secondsSinceLastReminder,
			Total:   state.currentReminderInterval,
			At:      now,
		})
	}
	if state.secondsSinceLastReminder >= state.currentReminderInterval {
		events = append(events, Event{Type: EventPlayReminderSound, At: now})
		state.resting = true
		state.restElapsedSeconds = 0
		state.secondsSinceLastReminder = 0
	}
	return events, false
}
