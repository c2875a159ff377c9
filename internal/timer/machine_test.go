package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedConfig(cfg Config) func() Config {
	return func() Config { return cfg }
}

// runPhase ticks a running machine through the remainder of its phase.
func runPhase(m *Machine) {
	m.Start()
	for left := m.TimeLeft(); left > 0; left-- {
		m.Tick()
	}
}

func TestMachineInitialState(t *testing.T) {
	m := NewMachine(fixedConfig(Defaults()), nil)

	assert.Equal(t, PhaseWork, m.Phase())
	assert.False(t, m.Running())
	assert.Equal(t, 25*60, m.TimeLeft())
	assert.Equal(t, 0, m.CompletedWorkSessions())
}

func TestMachineStartPauseStop(t *testing.T) {
	m := NewMachine(fixedConfig(Defaults()), nil)

	m.Start()
	assert.True(t, m.Running())

	// Start is idempotent
	m.Start()
	assert.True(t, m.Running())

	m.Tick()
	m.Tick()
	m.Pause()
	assert.False(t, m.Running())
	assert.Equal(t, 25*60-2, m.TimeLeft(), "pause retains remaining time")

	m.Start()
	m.Tick()
	m.Stop()
	assert.False(t, m.Running())
	assert.Equal(t, 25*60, m.TimeLeft(), "stop reseeds the current phase")
	assert.Equal(t, 0, m.CompletedWorkSessions(), "stop leaves the counter alone")
}

func TestMachineTickIgnoredWhilePaused(t *testing.T) {
	m := NewMachine(fixedConfig(Defaults()), nil)

	m.Tick()
	assert.Equal(t, 25*60, m.TimeLeft())
}

func TestMachineWorkCompletionRoutesBreaks(t *testing.T) {
	cfg := Defaults()
	cfg.WorkDuration = 1
	cfg.ShortBreak = 1
	cfg.LongBreak = 1
	cfg.AutoStartBreaks = false
	cfg.AutoStartPomodoros = false
	m := NewMachine(fixedConfig(cfg), nil)

	// With interval 4: completions 1,2,3 -> short break, 4 -> long break,
	// 5 -> short break again.
	wantPhases := []Phase{PhaseShortBreak, PhaseShortBreak, PhaseShortBreak, PhaseLongBreak, PhaseShortBreak}
	for i, want := range wantPhases {
		runPhase(m) // work phase
		assert.Equal(t, i+1, m.CompletedWorkSessions())
		assert.Equal(t, want, m.Phase(), "after work completion %d", i+1)
		assert.False(t, m.Running(), "auto-start breaks disabled")

		runPhase(m) // break phase
		assert.Equal(t, PhaseWork, m.Phase())
		assert.Equal(t, i+1, m.CompletedWorkSessions(), "break completion leaves the counter alone")
	}
}

func TestMachineAutoStartConsumed(t *testing.T) {
	cfg := Defaults()
	cfg.WorkDuration = 1
	cfg.ShortBreak = 1
	cfg.AutoStartBreaks = true
	cfg.AutoStartPomodoros = true
	m := NewMachine(fixedConfig(cfg), nil)

	runPhase(m)
	assert.Equal(t, PhaseShortBreak, m.Phase())
	assert.True(t, m.Running(), "break auto-started")
	assert.Equal(t, 60, m.TimeLeft(), "new phase seeded to full duration")

	for m.Phase() == PhaseShortBreak {
		m.Tick()
	}
	assert.Equal(t, PhaseWork, m.Phase())
	assert.True(t, m.Running(), "work auto-started")
}

func TestMachineNoAutoStartStaysPaused(t *testing.T) {
	cfg := Defaults()
	cfg.WorkDuration = 1
	cfg.AutoStartBreaks = false
	m := NewMachine(fixedConfig(cfg), nil)

	runPhase(m)
	assert.Equal(t, PhaseShortBreak, m.Phase())
	assert.False(t, m.Running())
	assert.Equal(t, cfg.ShortBreak*60, m.TimeLeft())
}

func TestMachineReset(t *testing.T) {
	cfg := Defaults()
	cfg.WorkDuration = 1
	cfg.AutoStartBreaks = true
	m := NewMachine(fixedConfig(cfg), nil)

	runPhase(m)
	require.Equal(t, PhaseShortBreak, m.Phase())
	require.Equal(t, 1, m.CompletedWorkSessions())

	m.Reset()
	assert.Equal(t, PhaseWork, m.Phase())
	assert.False(t, m.Running())
	assert.Equal(t, cfg.WorkDuration*60, m.TimeLeft())
	assert.Equal(t, 0, m.CompletedWorkSessions())
}

func TestMachineSelectPhase(t *testing.T) {
	m := NewMachine(fixedConfig(Defaults()), nil)
	m.Start()
	m.Tick()

	m.SelectPhase(PhaseLongBreak)
	assert.Equal(t, PhaseLongBreak, m.Phase())
	assert.False(t, m.Running(), "manual selection always pauses")
	assert.Equal(t, 15*60, m.TimeLeft())

	m.SelectPhase(PhaseWork)
	assert.Equal(t, 25*60, m.TimeLeft())
	assert.Equal(t, 0, m.CompletedWorkSessions(), "manual selection ignores the counter")
}

func TestMachineChime(t *testing.T) {
	t.Run("fires when sound enabled", func(t *testing.T) {
		cfg := Defaults()
		cfg.WorkDuration = 1
		chimed := 0
		m := NewMachine(fixedConfig(cfg), func() { chimed++ })

		runPhase(m)
		assert.Equal(t, 1, chimed)
	})

	t.Run("silent when sound disabled", func(t *testing.T) {
		cfg := Defaults()
		cfg.WorkDuration = 1
		cfg.SoundEnabled = false
		chimed := 0
		m := NewMachine(fixedConfig(cfg), func() { chimed++ })

		runPhase(m)
		assert.Equal(t, 0, chimed)
		assert.Equal(t, PhaseShortBreak, m.Phase(), "phase advances regardless of the cue")
	})
}

func TestMachineProgress(t *testing.T) {
	cfg := Defaults()
	cfg.WorkDuration = 2
	current := cfg
	m := NewMachine(func() Config { return current }, nil)

	assert.InDelta(t, 0.0, m.Progress(), 1e-9)

	m.Start()
	for i := 0; i < 60; i++ {
		m.Tick()
	}
	assert.InDelta(t, 0.5, m.Progress(), 1e-9)

	// A live preference change shifts the denominator without rescaling the
	// countdown value.
	current.WorkDuration = 1
	assert.Equal(t, 60, m.TimeLeft())
	assert.InDelta(t, 0.0, m.Progress(), 1e-9)

	current.WorkDuration = 4
	assert.InDelta(t, 0.75, m.Progress(), 1e-9)

	// Shrinking below the remaining time clamps instead of going negative.
	m2 := NewMachine(func() Config { return current }, nil)
	current.WorkDuration = 10
	m2.Start()
	m2.Tick()
	current.WorkDuration = 1
	assert.GreaterOrEqual(t, m2.Progress(), 0.0)
	assert.LessOrEqual(t, m2.Progress(), 1.0)
}

func TestMachineDegenerateDurationCompletesOnNextTick(t *testing.T) {
	cfg := Defaults()
	cfg.WorkDuration = 0
	m := NewMachine(fixedConfig(cfg), nil)

	require.Equal(t, 0, m.TimeLeft())

	m.Start()
	m.Tick()
	assert.Equal(t, PhaseShortBreak, m.Phase())
	assert.Equal(t, 1, m.CompletedWorkSessions())
}
