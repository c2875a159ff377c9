package timer

// Phase is one of the three stages in the pomodoro cycle.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseShortBreak
	PhaseLongBreak
)

func (p Phase) String() string {
	switch p {
	case PhaseWork:
		return "Work"
	case PhaseShortBreak:
		return "Short Break"
	case PhaseLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak reports whether the phase is one of the two break phases.
func (p Phase) IsBreak() bool {
	return p == PhaseShortBreak || p == PhaseLongBreak
}

// Machine is the countdown state machine: a phase crossed with a
// running/paused flag and a completed-work-session counter. The configuration
// is re-read through the provider on every use, so live preference changes
// affect full durations without rescaling a countdown already in flight.
//
// Machine is not safe for concurrent use; Engine adds the locking and the
// tick source.
type Machine struct {
	config                func() Config
	chime                 func()
	phase                 Phase
	running               bool
	timeLeft              int // seconds
	completedWorkSessions int
}

// NewMachine creates a machine in the initial Work/Paused state, seeded to
// the full work duration. config must not be nil. chime is the optional
// completion cue; it is invoked fire-and-forget and must not block.
func NewMachine(config func() Config, chime func()) *Machine {
	m := &Machine{
		config: config,
		chime:  chime,
		phase:  PhaseWork,
	}
	m.timeLeft = m.FullSeconds(m.phase)
	return m
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Running reports whether the countdown is active.
func (m *Machine) Running() bool { return m.running }

// TimeLeft returns the remaining seconds in the current phase.
func (m *Machine) TimeLeft() int { return m.timeLeft }

// CompletedWorkSessions returns the number of work phases completed since the
// last reset.
func (m *Machine) CompletedWorkSessions() int { return m.completedWorkSessions }

// FullSeconds returns the current full duration of a phase in seconds, read
// live from the configuration provider.
func (m *Machine) FullSeconds(p Phase) int {
	cfg := m.config()
	minutes := cfg.WorkDuration
	switch p {
	case PhaseShortBreak:
		minutes = cfg.ShortBreak
	case PhaseLongBreak:
		minutes = cfg.LongBreak
	}
	return minutes * 60
}

// Start begins the countdown. Starting an already running machine is a no-op.
func (m *Machine) Start() {
	m.running = true
}

// Pause halts the countdown, retaining the remaining time.
func (m *Machine) Pause() {
	m.running = false
}

// Stop halts the countdown and resets the remaining time to the full duration
// of the current phase. Progress in the current phase is discarded; the
// session counter is untouched.
func (m *Machine) Stop() {
	m.running = false
	m.timeLeft = m.FullSeconds(m.phase)
}

// Reset returns the machine to Work/Paused with a full work duration and a
// zeroed session counter.
func (m *Machine) Reset() {
	m.running = false
	m.phase = PhaseWork
	m.completedWorkSessions = 0
	m.timeLeft = m.FullSeconds(m.phase)
}

// SelectPhase switches to a phase directly. The machine always lands Paused
// with the phase's full duration, regardless of the session counter.
func (m *Machine) SelectPhase(p Phase) {
	m.phase = p
	m.running = false
	m.timeLeft = m.FullSeconds(p)
}

// Tick advances the countdown by one second while running. Reaching zero
// completes the phase; a non-positive remaining time (possible when a phase
// was seeded from a degenerate duration) completes immediately.
func (m *Machine) Tick() {
	if !m.running {
		return
	}
	if m.timeLeft > 0 {
		m.timeLeft--
	}
	if m.timeLeft <= 0 {
		m.complete()
	}
}

// complete advances to the next phase. A finished work phase increments the
// session counter and routes to a long break every LongBreakInterval-th
// completion; a finished break routes back to work. The auto-start flag for
// the new phase is consumed here: the machine either transitions straight to
// Running or stays Paused.
func (m *Machine) complete() {
	m.running = false

	cfg := m.config()
	if cfg.SoundEnabled && m.chime != nil {
		m.chime()
	}

	autoStart := false
	if m.phase == PhaseWork {
		m.completedWorkSessions++
		interval := cfg.LongBreakInterval
		if interval < 1 {
			interval = 1
		}
		if m.completedWorkSessions%interval == 0 {
			m.phase = PhaseLongBreak
		} else {
			m.phase = PhaseShortBreak
		}
		autoStart = cfg.AutoStartBreaks
	} else {
		m.phase = PhaseWork
		autoStart = cfg.AutoStartPomodoros
	}

	m.timeLeft = m.FullSeconds(m.phase)
	m.running = autoStart
}

// Progress returns the completed fraction of the current phase in [0,1]. The
// denominator is the live full duration, so a preference change mid-countdown
// shifts the fraction without touching the remaining time.
func (m *Machine) Progress() float64 {
	full := m.FullSeconds(m.phase)
	if full <= 0 {
		return 1
	}
	progress := float64(full-m.timeLeft) / float64(full)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
