package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Preference default values. Durations are minutes.
const (
	DefaultWorkDuration      = 25
	DefaultShortBreak        = 5
	DefaultLongBreak         = 15
	DefaultLongBreakInterval = 4
)

// Preference valid ranges, enforced at the API boundary before any write.
const (
	MinDuration          = 1
	MaxWorkDuration      = 60
	MaxShortBreak        = 30
	MaxLongBreak         = 60
	MinLongBreakInterval = 1
)

// Preference holds a user's persisted timer configuration. Exactly one row
// exists per user; it is created lazily with defaults on first read or write.
type Preference struct {
	BaseUUIDModel
	UserID             uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_preferences_user" json:"userId"`
	WorkDuration       int       `gorm:"type:int;not null;default:25"                        json:"workDuration"`
	ShortBreak         int       `gorm:"type:int;not null;default:5"                         json:"shortBreak"`
	LongBreak          int       `gorm:"type:int;not null;default:15"                        json:"longBreak"`
	AutoStartBreaks    bool      `gorm:"type:bool;not null;default:true"                     json:"autoStartBreaks"`
	AutoStartPomodoros bool      `gorm:"type:bool;not null;default:false"                    json:"autoStartPomodoros"`
	LongBreakInterval  int       `gorm:"type:int;not null;default:4"                         json:"longBreakInterval"`
	SoundEnabled       bool      `gorm:"type:bool;not null;default:true"                     json:"soundEnabled"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// DefaultPreference returns a fully populated preference row for a user.
func DefaultPreference(userID uuid.UUID) *Preference {
	return &Preference{
		UserID:             userID,
		WorkDuration:       DefaultWorkDuration,
		ShortBreak:         DefaultShortBreak,
		LongBreak:          DefaultLongBreak,
		AutoStartBreaks:    true,
		AutoStartPomodoros: false,
		LongBreakInterval:  DefaultLongBreakInterval,
		SoundEnabled:       true,
	}
}

func (p *Preference) BeforeCreate(tx *gorm.DB) error {
	if p.UserID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return nil
}

func (p *Preference) BeforeUpdate(tx *gorm.DB) error {
	if p.UserID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return nil
}
