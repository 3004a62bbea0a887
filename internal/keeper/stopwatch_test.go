package keeper

import (
	"chronos/internal/clock"
	"chronos/internal/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClock() *clock.Manual {
	return clock.NewManual(time.UnixMilli(1_700_000_000_000))
}

func TestStopwatch_DefaultState(t *testing.T) {
	sw := NewStopwatch(newClock())
	assert.NotEmpty(t, sw.ID())
	assert.Equal(t, "Stopwatch", sw.Title())
	assert.Equal(t, Paused, sw.State())
	assert.False(t, sw.IsRunning())
	assert.Equal(t, int64(0), sw.Elapsed())
}

func TestStopwatch_StartPauseScenario(t *testing.T) {
	c := newClock()
	sw := NewStopwatch(c)

	require.True(t, sw.Start())
	c.Advance(1500 * time.Millisecond)
	require.True(t, sw.Pause())

	assert.Equal(t, int64(1500), sw.Elapsed())
	assert.Equal(t, "00:00:01.50", sw.View().Display.String())
	assert.Equal(t, int64(1500), sw.Snapshot().ElapsedTime)
}

func TestStopwatch_StartAndPauseAreIdempotent(t *testing.T) {
	c := newClock()
	sw := NewStopwatch(c)

	assert.False(t, sw.Pause())
	assert.True(t, sw.Start())
	c.Advance(time.Second)
	assert.False(t, sw.Start())
	c.Advance(time.Second)
	assert.True(t, sw.Pause())
	assert.False(t, sw.Pause())
	assert.Equal(t, int64(2000), sw.Elapsed())
}

func TestStopwatch_ElapsedIsSumOfRunningIntervals(t *testing.T) {
	c := newClock()
	sw := NewStopwatch(c)

	intervals := []struct {
		run, gap time.Duration
		ticks    int
	}{
		{run: 300 * time.Millisecond, gap: 10 * time.Second, ticks: 0},
		{run: 2 * time.Second, gap: time.Hour, ticks: 120},
		{run: 45 * time.Millisecond, gap: 0, ticks: 1},
		{run: 26 * time.Hour, gap: 5 * time.Minute, ticks: 3},
	}

	var want time.Duration
	for _, iv := range intervals {
		require.True(t, sw.Start())
		step := iv.run
		if iv.ticks > 0 {
			step = iv.run / time.Duration(iv.ticks)
		}
		var spent time.Duration
		for i := 0; i < iv.ticks; i++ {
			c.Advance(step)
			spent += step
			assert.Equal(t, TickContinue, sw.Tick())
		}
		c.Advance(iv.run - spent)
		require.True(t, sw.Pause())
		want += iv.run

		c.Advance(iv.gap)
		assert.Equal(t, want.Milliseconds(), sw.Elapsed(), "paused time must not count")
	}
}

func TestStopwatch_Reset(t *testing.T) {
	c := newClock()
	sw := NewStopwatch(c)
	sw.Start()
	c.Advance(5 * time.Second)

	sw.Reset()

	assert.False(t, sw.IsRunning())
	snap := sw.Snapshot()
	assert.Equal(t, int64(0), snap.ElapsedTime)
	assert.Equal(t, int64(0), snap.StartTime)
	assert.Equal(t, TickStop, sw.Tick())
}

func TestStopwatch_RehydrateRunningCountsGap(t *testing.T) {
	c := newClock()
	sw := NewStopwatch(c)
	sw.Start()
	c.Advance(3 * time.Second)
	snap := sw.Snapshot()

	// process is gone for a minute
	c.Advance(time.Minute)

	restored, err := FromSnapshot(snap, c)
	require.NoError(t, err)
	assert.True(t, restored.IsRunning())
	assert.Equal(t, sw.ID(), restored.ID())
	assert.Equal(t, int64(63_000), restored.(*Stopwatch).Elapsed())
	assert.Equal(t, TickContinue, restored.Tick())
}

func TestStopwatch_RoundTripMatchesAtSameInstant(t *testing.T) {
	c := newClock()
	sw := NewStopwatch(c)
	sw.SetTitle("laps")
	sw.Start()
	c.Advance(7*time.Second + 230*time.Millisecond)

	restored, err := FromSnapshot(sw.Snapshot(), c)
	require.NoError(t, err)
	assert.Equal(t, sw.View(), restored.View())

	sw.Pause()
	restored, err = FromSnapshot(sw.Snapshot(), c)
	require.NoError(t, err)
	c.Advance(time.Hour)
	assert.Equal(t, sw.View(), restored.View())
	assert.Equal(t, "laps", restored.Title())
}

func TestFromSnapshot_Errors(t *testing.T) {
	_, err := FromSnapshot(models.Snapshot{Kind: models.KindStopwatch}, newClock())
	assert.ErrorIs(t, err, ErrEmptyID)

	_, err = FromSnapshot(models.Snapshot{ID: "x", Kind: "hourglass"}, newClock())
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestFromSnapshot_EmptyTitleGetsDefault(t *testing.T) {
	k, err := FromSnapshot(models.Snapshot{ID: "x", Kind: models.KindTimer}, newClock())
	require.NoError(t, err)
	assert.Equal(t, "Timer", k.Title())
}

func TestNew(t *testing.T) {
	k, err := New(models.KindTimer, newClock())
	require.NoError(t, err)
	assert.Equal(t, models.KindTimer, k.Kind())

	_, err = New("", newClock())
	assert.ErrorIs(t, err, ErrUnknownKind)
}
