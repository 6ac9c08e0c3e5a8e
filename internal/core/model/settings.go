package model

import "time"

// Sound selects which alert the host plays for reminders.
type Sound string

const (
	SoundShort Sound = "short"
	SoundLong  Sound = "long"
)

// Valid reports whether the sound is a known alert.
func (sound Sound) Valid() bool {
	return sound == SoundShort || sound == SoundLong
}

// Settings defines editable user preferences.
type Settings struct {
	FocusDuration     time.Duration
	MinInterval       time.Duration
	MaxInterval       time.Duration
	RestDuration      time.Duration
	LongBreakDuration time.Duration
	AlertSound        Sound

	IdlePauseEnabled bool
	IdlePauseAfter   time.Duration
	LaunchAtLogin    bool
}

// DefaultSettings returns default settings for FocusBell.
func DefaultSettings() Settings {
	return Settings{
		FocusDuration:     90 * time.Minute,
		MinInterval:       180 * time.Second,
		MaxInterval:       300 * time.Second,
		RestDuration:      10 * time.Second,
		LongBreakDuration: 20 * time.Minute,
		AlertSound:        SoundShort,
		IdlePauseEnabled:  false,
		IdlePauseAfter:    5 * time.Minute,
	}
}

// DebugSettings returns a one minute cycle for trying the app out.
func DebugSettings() Settings {
	settings := DefaultSettings()
	settings.FocusDuration = time.Minute
	settings.MinInterval = 5 * time.Second
	settings.MaxInterval = 8 * time.Second
	settings.RestDuration = 3 * time.Second
	settings.LongBreakDuration = 10 * time.Second
	return settings
}

// SchedulerConfig converts settings to a SchedulerConfig.
func (settings Settings) SchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		FocusDurationMinutes: int(settings.FocusDuration / time.Minute),
		MinIntervalSeconds:   int(settings.MinInterval / time.Second),
		MaxIntervalSeconds:   int(settings.MaxInterval / time.Second),
		RestDurationSeconds:  int(settings.RestDuration / time.Second),
	}
}
