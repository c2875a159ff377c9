// Package timer implements the countdown cycle: resolving the effective
// configuration from its layered sources and advancing the work/break state
// machine. The package is pure logic with no I/O; persistence and transport
// live behind the API layer.
package timer

import "pomodo/internal/models"

// Durations is the three-duration bundle a preset or an ephemeral override
// supplies, in minutes.
type Durations struct {
	WorkDuration int `json:"workDuration"`
	ShortBreak   int `json:"shortBreak"`
	LongBreak    int `json:"longBreak"`
}

// Config is the fully resolved configuration driving a running timer.
type Config struct {
	Durations
	AutoStartBreaks    bool `json:"autoStartBreaks"`
	AutoStartPomodoros bool `json:"autoStartPomodoros"`
	LongBreakInterval  int  `json:"longBreakInterval"`
	SoundEnabled       bool `json:"soundEnabled"`
}

// Defaults returns the hardcoded configuration used when no preferences are
// loaded, matching the server-side preference defaults.
func Defaults() Config {
	return Config{
		Durations: Durations{
			WorkDuration: models.DefaultWorkDuration,
			ShortBreak:   models.DefaultShortBreak,
			LongBreak:    models.DefaultLongBreak,
		},
		AutoStartBreaks:    true,
		AutoStartPomodoros: false,
		LongBreakInterval:  models.DefaultLongBreakInterval,
		SoundEnabled:       true,
	}
}

// FromPreference converts a stored preference row into a Config.
func FromPreference(p *models.Preference) Config {
	return Config{
		Durations: Durations{
			WorkDuration: p.WorkDuration,
			ShortBreak:   p.ShortBreak,
			LongBreak:    p.LongBreak,
		},
		AutoStartBreaks:    p.AutoStartBreaks,
		AutoStartPomodoros: p.AutoStartPomodoros,
		LongBreakInterval:  p.LongBreakInterval,
		SoundEnabled:       p.SoundEnabled,
	}
}

// Resolve computes the effective configuration from its layered inputs,
// highest precedence first: ephemeral override, selected preset, stored
// preference, hardcoded defaults. Override and preset layers replace only the
// three durations; the auto-start flags, interval and sound always come from
// the stored preference (or defaults when none is loaded). Each layer is
// applied whole or not at all, and absent layers simply fall through, so
// Resolve never fails.
func Resolve(stored *Config, preset *Durations, override *Durations) Config {
	effective := Defaults()
	if stored != nil {
		effective = *stored
	}

	switch {
	case override != nil:
		effective.Durations = *override
	case preset != nil:
		effective.Durations = *preset
	}

	return effective
}
