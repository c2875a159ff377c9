package timer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineControls(t *testing.T) {
	e := NewEngine(NewSession(nil), nil)
	defer e.Close()

	e.Start()
	snap := e.Snapshot()
	assert.True(t, snap.Running)
	assert.Equal(t, PhaseWork, snap.Phase)

	e.Pause()
	assert.False(t, e.Snapshot().Running)

	e.Start()
	e.Stop()
	snap = e.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, 25*60, snap.TimeLeft)

	e.SelectPhase(PhaseLongBreak)
	snap = e.Snapshot()
	assert.Equal(t, PhaseLongBreak, snap.Phase)
	assert.False(t, snap.Running)
	assert.Equal(t, 15*60, snap.TimeLeft)

	e.Reset()
	snap = e.Snapshot()
	assert.Equal(t, PhaseWork, snap.Phase)
	assert.Equal(t, 0, snap.CompletedWorkSessions)
}

func TestEngineStartIdempotent(t *testing.T) {
	// Repeated starts must supersede the previous tick loop instead of
	// stacking countdowns; over ~2.5s the remaining time can only have
	// moved by wall-clock seconds, never double-counted.
	e := NewEngine(NewSession(nil), nil)
	defer e.Close()

	e.Start()
	e.Start()
	e.Start()

	time.Sleep(2500 * time.Millisecond)

	elapsed := 25*60 - e.Snapshot().TimeLeft
	require.GreaterOrEqual(t, elapsed, 1)
	assert.LessOrEqual(t, elapsed, 3)
}

func TestEngineNoTicksAfterStop(t *testing.T) {
	e := NewEngine(NewSession(nil), nil)
	defer e.Close()

	e.Start()
	time.Sleep(1200 * time.Millisecond)
	e.Stop()
	left := e.Snapshot().TimeLeft
	require.Equal(t, 25*60, left, "stop reseeds")

	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, left, e.Snapshot().TimeLeft, "no tick fires after stop")
}

func TestEngineOnTickCallback(t *testing.T) {
	ticks := make(chan Snapshot, 8)
	s := NewSession(nil)
	e := NewEngine(s, func(snap Snapshot) { ticks <- snap })
	defer e.Close()

	e.Session(func(s *Session) {
		s.SetOverride(Durations{WorkDuration: 1, ShortBreak: 1, LongBreak: 1})
	})
	e.Stop() // reseed from the override
	e.Start()

	select {
	case snap := <-ticks:
		assert.Equal(t, PhaseWork, snap.Phase)
		assert.Less(t, snap.TimeLeft, 60)
	case <-time.After(3 * time.Second):
		t.Fatal("no tick observed")
	}
}

func TestEngineClosedStartIsNoop(t *testing.T) {
	e := NewEngine(NewSession(nil), nil)
	e.Close()
	e.Start()
	assert.False(t, e.Snapshot().Running)
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds  int
		expected string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{60, "01:00"},
		{25 * 60, "25:00"},
		{3599, "59:59"},
		{-5, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatTime(tt.seconds))
	}
}
