package timer

import (
	"fmt"
	"sync"
	"time"
)

// Snapshot is a consistent view of the timer state, safe to hand to a
// renderer outside the engine lock.
type Snapshot struct {
	Phase                 Phase
	Running               bool
	TimeLeft              int
	Progress              float64
	CompletedWorkSessions int
}

// FormatTime renders seconds as MM:SS for display.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// Engine drives a Session with a real one-second tick. All state access goes
// through a single mutex, and each start supersedes the previous tick loop
// through a generation counter, so ticks are strictly sequential, a control
// operation always takes effect before the next tick, and a tick already in
// flight when the loop is superseded is discarded instead of firing late.
type Engine struct {
	mu      sync.Mutex
	session *Session
	onTick  func(Snapshot)
	gen     int
	stop    chan struct{}
	closed  bool
}

// NewEngine wraps a session. onTick, if set, is invoked after every applied
// tick with a snapshot taken under the lock.
func NewEngine(session *Session, onTick func(Snapshot)) *Engine {
	return &Engine{session: session, onTick: onTick}
}

// Start begins (or resumes) the countdown. Any previously scheduled tick loop
// is cancelled first, so calling Start twice never produces duplicate
// concurrent countdowns.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}

	e.cancelLoopLocked()
	e.session.Machine().Start()

	e.stop = make(chan struct{})
	go e.loop(e.gen, e.stop)
}

// Pause halts the countdown, retaining the remaining time.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLoopLocked()
	e.session.Machine().Pause()
}

// Stop halts the countdown and reseeds the current phase.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLoopLocked()
	e.session.Machine().Stop()
}

// Reset returns the timer to Work/Paused and clears the ephemeral override.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLoopLocked()
	e.session.Reset()
}

// SelectPhase switches the phase manually, always landing Paused.
func (e *Engine) SelectPhase(p Phase) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLoopLocked()
	e.session.Machine().SelectPhase(p)
}

// Session runs fn under the engine lock with the underlying session, for
// configuration changes that must not race a tick.
func (e *Engine) Session(fn func(*Session)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	fn(e.session)
}

// Snapshot returns the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Close cancels the tick loop permanently.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLoopLocked()
	e.closed = true
}

// cancelLoopLocked invalidates the active tick loop. The generation bump
// guarantees a tick that already fired but has not yet taken the lock is
// dropped rather than applied after the cancel.
func (e *Engine) cancelLoopLocked() {
	e.gen++
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
}

func (e *Engine) loop(gen int, stop chan struct{}) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !e.applyTick(gen) {
				return
			}
		}
	}
}

func (e *Engine) applyTick(gen int) bool {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return false
	}

	machine := e.session.Machine()
	machine.Tick()

	// Auto-advance may leave the machine paused; the loop keeps ticking
	// only while the countdown is live.
	if !machine.Running() {
		e.cancelLoopLocked()
	}

	snap := e.snapshotLocked()
	onTick := e.onTick
	e.mu.Unlock()

	if onTick != nil {
		onTick(snap)
	}
	return snap.Running
}

func (e *Engine) snapshotLocked() Snapshot {
	m := e.session.Machine()
	return Snapshot{
		Phase:                 m.Phase(),
		Running:               m.Running(),
		TimeLeft:              m.TimeLeft(),
		Progress:              m.Progress(),
		CompletedWorkSessions: m.CompletedWorkSessions(),
	}
}
