package app

import (
	"context"
	"time"
)

// Countdown counts Total down in one second steps, one step per Interval.
type Countdown struct {
	Total    time.Duration
	Interval time.Duration
	OnTick   func(remaining time.Duration)
	OnDone   func()
}

// Run blocks until the countdown reaches zero or ctx is done. It reports
// whether zero was reached.
func (countdown Countdown) Run(ctx context.Context) bool {
	interval := countdown.Interval
	if interval <= 0 {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	remaining := countdown.Total
	for remaining > 0 {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
		}

		remaining -= time.Second
		if remaining > 0 && countdown.OnTick != nil {
			countdown.OnTick(remaining)
		}
	}

	if countdown.OnDone != nil {
		countdown.OnDone()
	}
	return true
}
