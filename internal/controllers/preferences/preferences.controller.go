package preferencesController

import (
	"context"
	"errors"
	"fmt"

	"pomodo/internal/apperrors"
	"pomodo/internal/logger"
	"pomodo/internal/models"
	"pomodo/internal/repositories"

	"gorm.io/gorm"
)

// UpdatePreferencesRequest carries a partial update: nil fields are left
// unchanged on an existing row, and filled with defaults when the row is
// created on first write.
type UpdatePreferencesRequest struct {
	WorkDuration       *int  `json:"workDuration"`
	ShortBreak         *int  `json:"shortBreak"`
	LongBreak          *int  `json:"longBreak"`
	AutoStartBreaks    *bool `json:"autoStartBreaks"`
	AutoStartPomodoros *bool `json:"autoStartPomodoros"`
	LongBreakInterval  *int  `json:"longBreakInterval"`
	SoundEnabled       *bool `json:"soundEnabled"`
}

type PreferencesControllerInterface interface {
	Get(ctx context.Context, user *models.User) (*models.Preference, error)
	Update(ctx context.Context, user *models.User, req UpdatePreferencesRequest) (*models.Preference, error)
}

type PreferencesController struct {
	preferenceRepo repositories.PreferenceRepository
	log            logger.Logger
}

func New(repos repositories.Repository) PreferencesControllerInterface {
	return &PreferencesController{
		preferenceRepo: repos.Preference,
		log:            logger.New("preferencesController"),
	}
}

// Get returns the user's preferences, lazily creating the row with defaults.
// It is idempotent and never fails for a valid authenticated user short of
// the store being down.
func (c *PreferencesController) Get(ctx context.Context, user *models.User) (*models.Preference, error) {
	return c.preferenceRepo.GetOrCreate(ctx, user.ID)
}

// Update applies a validated partial update. Validation runs up front over
// every supplied field and nothing is written when any of them fails.
func (c *PreferencesController) Update(
	ctx context.Context,
	user *models.User,
	req UpdatePreferencesRequest,
) (*models.Preference, error) {
	log := c.log.Function("Update")

	if err := validateUpdate(req); err != nil {
		return nil, err
	}

	preference, err := c.preferenceRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, log.Err("failed to load preferences", err, "userID", user.ID)
		}
		// First write: start from defaults and overlay the supplied fields
		preference = models.DefaultPreference(user.ID)
	}

	applyUpdate(preference, req)

	if err := c.preferenceRepo.Save(ctx, preference); err != nil {
		return nil, log.Err("failed to save preferences", err, "userID", user.ID)
	}

	log.Info("Preferences updated", "userID", user.ID)
	return preference, nil
}

func validateUpdate(req UpdatePreferencesRequest) error {
	validation := &apperrors.ValidationError{}

	checkRange(validation, "workDuration", req.WorkDuration, models.MinDuration, models.MaxWorkDuration)
	checkRange(validation, "shortBreak", req.ShortBreak, models.MinDuration, models.MaxShortBreak)
	checkRange(validation, "longBreak", req.LongBreak, models.MinDuration, models.MaxLongBreak)
	if req.LongBreakInterval != nil && *req.LongBreakInterval < models.MinLongBreakInterval {
		validation.Add("longBreakInterval", fmt.Sprintf("must be at least %d", models.MinLongBreakInterval))
	}

	if validation.HasErrors() {
		return validation
	}
	return nil
}

func checkRange(validation *apperrors.ValidationError, field string, value *int, min, max int) {
	if value == nil {
		return
	}
	if *value < min || *value > max {
		validation.Add(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
}

func applyUpdate(preference *models.Preference, req UpdatePreferencesRequest) {
	if req.WorkDuration != nil {
		preference.WorkDuration = *req.WorkDuration
	}
	if req.ShortBreak != nil {
		preference.ShortBreak = *req.ShortBreak
	}
	if req.LongBreak != nil {
		preference.LongBreak = *req.LongBreak
	}
	if req.AutoStartBreaks != nil {
		preference.AutoStartBreaks = *req.AutoStartBreaks
	}
	if req.AutoStartPomodoros != nil {
		preference.AutoStartPomodoros = *req.AutoStartPomodoros
	}
	if req.LongBreakInterval != nil {
		preference.LongBreakInterval = *req.LongBreakInterval
	}
	if req.SoundEnabled != nil {
		preference.SoundEnabled = *req.SoundEnabled
	}
}
