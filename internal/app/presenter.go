package app

import (
	"time"

	"focusbell/internal/core/model"
	"focusbell/internal/core/scheduler"
)

// Decision is the user's answer when a focus cycle completes.
type Decision int

const (
	DecisionRest Decision = iota
	DecisionRestart
)

func (decision Decision) String() string {
	switch decision {
	case DecisionRest:
		return "rest"
	case DecisionRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// Presenter is the UI and audio capability driven by the Controller.
// Methods may be called from any goroutine.
type Presenter interface {
	ResetProgress(focusMinutes, restSeconds int)
	SetFocusProgress(elapsedMinutes, totalMinutes int)
	SetReminderProgress(current, total int)
	SetBreakProgress(current, total int)
	SetResting(resting bool)
	SetPhase(phase scheduler.Phase)
	SetStatus(status string)
	PlayAlert(sound model.Sound)
	// SetConfigLocked disables timing settings while a cycle owns them.
	SetConfigLocked(locked bool)

	// AskLongBreak presents the long break choice and reports it through
	// decide, which may be called from any goroutine.
	AskLongBreak(focusMinutes int, decide func(Decision))
	ShowLongBreak(total time.Duration)
	SetLongBreakRemaining(remaining, total time.Duration)
	HideLongBreak()
}
