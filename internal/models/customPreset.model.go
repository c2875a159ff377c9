package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Custom preset limits. Preset durations allow wider ranges than the stored
// preference fields.
const (
	MaxPresetsPerUser      = 3
	MaxPresetNameLength    = 50
	MaxPresetWorkDuration  = 120
	MaxPresetShortBreak    = 60
	MaxPresetLongBreak     = 120
)

// CustomPreset is a named bundle of the three durations a user can select to
// override their effective timer configuration. A user owns at most
// MaxPresetsPerUser presets and names are unique per owner.
type CustomPreset struct {
	BaseUUIDModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_custom_presets_user_name" json:"userId"`
	Name         string    `gorm:"type:text;not null;uniqueIndex:idx_custom_presets_user_name" json:"name"`
	WorkDuration int       `gorm:"type:int;not null" json:"workDuration"`
	ShortBreak   int       `gorm:"type:int;not null" json:"shortBreak"`
	LongBreak    int       `gorm:"type:int;not null" json:"longBreak"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (cp *CustomPreset) BeforeCreate(tx *gorm.DB) error {
	if cp.UserID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	return nil
}
