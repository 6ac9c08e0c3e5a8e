package animation

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type frameRecorder struct {
	mu     sync.Mutex
	frames []string
}

func (recorder *frameRecorder) update(resource fyne.Resource) {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	recorder.frames = append(recorder.frames, resource.Name())
}

func (recorder *frameRecorder) snapshot() []string {
	recorder.mu.Lock()
	defer recorder.mu.Unlock()
	return append([]string(nil), recorder.frames...)
}

func TestRangeRandomStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	value := Range{Min: time.Second, Max: 2 * time.Second}
	for i := 0; i < 100; i++ {
		sample := value.Random(rng)
		assert.GreaterOrEqual(t, sample, time.Second)
		assert.Less(t, sample, 2*time.Second)
	}
	assert.Equal(t, time.Second, Range{Min: time.Second, Max: time.Second}.Random(rng))
}

func TestPulseAlternatesFrames(t *testing.T) {
	recorder := &frameRecorder{}
	pulse := New(Config{FrameDuration: Range{Min: time.Millisecond}}, recorder.update)

	bright := fyne.NewStaticResource("bright", nil)
	dim := fyne.NewStaticResource("dim", nil)
	rest := fyne.NewStaticResource("focus", nil)

	pulse.Start(context.Background(), bright, dim)
	require.Eventually(t, func() bool {
		return len(recorder.snapshot()) >= 4
	}, 2*time.Second, time.Millisecond)
	assert.True(t, pulse.Running())

	pulse.Stop(rest)
	assert.False(t, pulse.Running())

	frames := recorder.snapshot()
	assert.Equal(t, []string{"bright", "dim", "bright", "dim"}, frames[:4])
	assert.Equal(t, "focus", frames[len(frames)-1])

	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, len(frames), len(recorder.snapshot()), "no frames after stop")
}

func TestPulseStopWithoutStart(t *testing.T) {
	pulse := New(DefaultConfig(), func(fyne.Resource) {})
	assert.NotPanics(t, func() { pulse.Stop() })
	pulse.Start(context.Background())
	assert.False(t, pulse.Running())
}
