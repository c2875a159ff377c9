package timer

// Session ties a machine to its configuration layers: the stored preference
// snapshot, an optionally selected preset and an ephemeral override. The
// override is session-only and never persisted. Selecting a preset and
// setting an override are mutually exclusive; activating one deactivates the
// other, since both occupy the same duration slot in the effective
// configuration.
type Session struct {
	stored   *Config
	preset   *Durations
	override *Durations
	machine  *Machine
}

// NewSession creates a session seeded from defaults. chime may be nil.
func NewSession(chime func()) *Session {
	s := &Session{}
	s.machine = NewMachine(s.Effective, chime)
	return s
}

// Machine exposes the underlying state machine.
func (s *Session) Machine() *Machine { return s.machine }

// Effective resolves the configuration currently driving the timer.
func (s *Session) Effective() Config {
	return Resolve(s.stored, s.preset, s.override)
}

// SetStored replaces the stored preference snapshot. A nil snapshot falls
// back to defaults (unauthenticated or preferences not yet loaded). The
// running countdown is never reseeded by a snapshot change.
func (s *Session) SetStored(cfg *Config) {
	s.stored = cfg
}

// SelectPreset activates a preset's durations, dropping any active override.
func (s *Session) SelectPreset(d Durations) {
	s.preset = &d
	s.override = nil
}

// ClearPreset deactivates the selected preset. An active override, if any,
// is left alone.
func (s *Session) ClearPreset() {
	s.preset = nil
}

// SetOverride activates an ephemeral duration override, dropping any selected
// preset.
func (s *Session) SetOverride(d Durations) {
	s.override = &d
	s.preset = nil
}

// ClearOverride discards the ephemeral override. A selected preset, if any,
// is left alone.
func (s *Session) ClearOverride() {
	s.override = nil
}

// HasOverride reports whether an ephemeral override is active.
func (s *Session) HasOverride() bool { return s.override != nil }

// Reset returns the machine to its initial state and discards the ephemeral
// override. The stored snapshot and preset selection survive a reset.
func (s *Session) Reset() {
	s.override = nil
	s.machine.Reset()
}
