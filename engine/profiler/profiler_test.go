package profiler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestTickReportsAtInterval(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(
		WithLogger(zap.New(core).Sugar()),
		WithInterval(time.Second),
		withClock(clock.now),
	)

	for i := 0; i < 29; i++ {
		clock.advance(time.Second / 60)
		assert.False(t, p.Tick())
	}
	p.Skip()
	p.Skip()
	clock.advance(600 * time.Millisecond)
	require.True(t, p.Tick())

	elapsed := 29*(time.Second/60) + 600*time.Millisecond
	stats := p.Last()
	assert.InDelta(t, 30/elapsed.Seconds(), stats.FPS, 1e-6)
	assert.Equal(t, 2, stats.Skipped)
	assert.Greater(t, stats.SysMB, 0.0)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "frame stats", entry.Message)
	assert.EqualValues(t, 2, entry.ContextMap()["skipped"])

	clock.advance(time.Second / 60)
	assert.False(t, p.Tick())
	clock.advance(time.Second)
	require.True(t, p.Tick())
	assert.Zero(t, p.Last().Skipped)
}

func TestResetDiscardsPendingCounts(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	clock := &fakeClock{t: time.Unix(0, 0)}
	p := NewProfiler(
		WithLogger(zap.New(core).Sugar()),
		WithInterval(time.Second),
		withClock(clock.now),
	)

	// Time and skips accumulated while nobody ticks.
	p.Skip()
	p.Skip()
	p.Skip()
	clock.advance(10 * time.Second)
	assert.Equal(t, 3, p.Skipped())

	p.Reset()
	assert.Zero(t, p.Skipped())
	clock.advance(time.Second / 2)
	assert.False(t, p.Tick())
	assert.Zero(t, logs.Len())

	p.Skip()
	clock.advance(time.Second / 2)
	require.True(t, p.Tick())
	assert.Equal(t, 1, p.Last().Skipped)
	assert.InDelta(t, 2.0, p.Last().FPS, 1e-9)
	assert.Zero(t, p.Skipped())
}

func TestProfilerOptionDefaults(t *testing.T) {
	p := NewProfiler(WithLogger(nil), WithInterval(-time.Second))

	assert.NotNil(t, p.logger)
	assert.Equal(t, time.Second, p.updateInterval)
	assert.Equal(t, Stats{}, p.Last())
}
