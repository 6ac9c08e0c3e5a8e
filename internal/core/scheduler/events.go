package scheduler

import "time"

// Phase represents the FocusScheduler lifecycle.
type Phase string

const (
	PhaseIdle     Phase = "idle"
	PhaseRunning  Phase = "running"
	PhasePaused   Phase = "paused"
	PhaseStopping Phase = "stopping"
	PhaseStopped  Phase = "stopped"
)

// EventType defines the type of scheduler notification.
type EventType string

const (
	EventStateReset        EventType = "state_reset"
	EventFocusProgress     EventType = "focus_progress"
	EventReminderProgress  EventType = "reminder_progress"
	EventBreakProgress     EventType = "break_progress"
	EventPlayReminderSound EventType = "play_reminder_sound"
	EventPlayRestEndSound  EventType = "play_rest_end_sound"
	EventBreakTimeReached  EventType = "break_time_reached"
	EventShutdownTimeout   EventType = "shutdown_timeout"
)

// Event is a single notification from the scheduler.
//
// ElapsedMinutes is set for EventFocusProgress. Current and Total are set
// for EventReminderProgress and EventBreakProgress, in seconds.
type Event struct {
	Type           EventType
	ElapsedMinutes int
	Current        int
	Total          int
	Message        string
	At             time.Time
}

// Snapshot is a read-only copy of the scheduler state.
type Snapshot struct {
	Phase                    Phase
	Resting                  bool
	ElapsedFocusSeconds      int
	SecondsSinceLastReminder int
	CurrentReminderInterval  int
	RestElapsedSeconds       int
}

// ElapsedFocusMinutes returns the whole minutes of focus time.
func (snapshot Snapshot) ElapsedFocusMinutes() int {
	return snapshot.ElapsedFocusSeconds / 60
}
