package scheduler

import (
	"math/rand"
	"sync"
	"time"
)

// IntervalSource draws a reminder interval in [min, max] seconds.
type IntervalSource interface {
	Next(min, max int) int
}

type randomIntervals struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomIntervals returns a uniform IntervalSource safe for concurrent use.
func NewRandomIntervals(seed int64) IntervalSource {
	return &randomIntervals{rng: rand.New(rand.NewSource(seed))}
}

func (source *randomIntervals) Next(min, max int) int {
	if max <= min {
		return min
	}
	source.mu.Lock()
	defer source.mu.Unlock()
	return min + source.rng.Intn(max-min+1)
}

func defaultIntervals() IntervalSource {
	return NewRandomIntervals(time.Now().UnixNano())
}
