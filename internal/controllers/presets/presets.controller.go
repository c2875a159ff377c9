package presetsController

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"pomodo/internal/apperrors"
	"pomodo/internal/database"
	"pomodo/internal/logger"
	"pomodo/internal/models"
	"pomodo/internal/repositories"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreatePresetRequest struct {
	Name         string `json:"name"`
	WorkDuration int    `json:"workDuration"`
	ShortBreak   int    `json:"shortBreak"`
	LongBreak    int    `json:"longBreak"`
}

type UpdatePresetRequest struct {
	Name         *string `json:"name"`
	WorkDuration *int    `json:"workDuration"`
	ShortBreak   *int    `json:"shortBreak"`
	LongBreak    *int    `json:"longBreak"`
}

type PresetsControllerInterface interface {
	List(ctx context.Context, user *models.User) ([]models.CustomPreset, error)
	Create(ctx context.Context, user *models.User, req CreatePresetRequest) (*models.CustomPreset, error)
	Update(ctx context.Context, user *models.User, presetID string, req UpdatePresetRequest) (*models.CustomPreset, error)
	Delete(ctx context.Context, user *models.User, presetID string) error
}

// transactor is the slice of database.DB the controller needs, so tests can
// substitute an in-memory store.
type transactor interface {
	SQLWithContext(ctx context.Context) *gorm.DB
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type PresetsController struct {
	presetRepo repositories.PresetRepository
	db         transactor
	log        logger.Logger
}

func New(repos repositories.Repository, db database.DB) PresetsControllerInterface {
	return &PresetsController{
		presetRepo: repos.Preset,
		db:         &db,
		log:        logger.New("presetsController"),
	}
}

// List returns the caller's presets, ascending by creation time.
func (c *PresetsController) List(ctx context.Context, user *models.User) ([]models.CustomPreset, error) {
	return c.presetRepo.ListByUser(ctx, user.ID)
}

// Create inserts a preset after enforcing the per-user quota and name
// uniqueness. Both checks run inside one transaction with the insert, and the
// composite unique index on (user_id, name) backstops concurrent creates, so
// a failed request leaves the store untouched.
func (c *PresetsController) Create(
	ctx context.Context,
	user *models.User,
	req CreatePresetRequest,
) (*models.CustomPreset, error) {
	log := c.log.Function("Create")

	name := strings.TrimSpace(req.Name)
	if err := validateFields(&name, &req.WorkDuration, &req.ShortBreak, &req.LongBreak); err != nil {
		return nil, err
	}

	preset := &models.CustomPreset{
		UserID:       user.ID,
		Name:         name,
		WorkDuration: req.WorkDuration,
		ShortBreak:   req.ShortBreak,
		LongBreak:    req.LongBreak,
	}

	err := c.db.Transaction(ctx, func(tx *gorm.DB) error {
		count, err := c.presetRepo.CountByUser(tx, user.ID)
		if err != nil {
			return err
		}
		if count >= models.MaxPresetsPerUser {
			return apperrors.ErrQuotaExceeded
		}

		exists, err := c.presetRepo.NameExists(tx, user.ID, name, uuid.Nil)
		if err != nil {
			return err
		}
		if exists {
			return apperrors.ErrDuplicateName
		}

		return c.presetRepo.Create(tx, preset)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrQuotaExceeded) || errors.Is(err, apperrors.ErrDuplicateName) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, log.Err("failed to create preset", err, "userID", user.ID)
	}

	log.Info("Preset created", "userID", user.ID, "presetID", preset.ID)
	return preset, nil
}

// Update applies a partial update to a preset the caller owns. A preset that
// does not exist and a preset owned by someone else produce the same
// NotFound. A rename re-checks uniqueness against the caller's other presets.
func (c *PresetsController) Update(
	ctx context.Context,
	user *models.User,
	presetID string,
	req UpdatePresetRequest,
) (*models.CustomPreset, error) {
	log := c.log.Function("Update")

	id, err := uuid.Parse(presetID)
	if err != nil {
		return nil, apperrors.ErrNotFound
	}

	var name *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		name = &trimmed
	}
	if err := validateFields(name, req.WorkDuration, req.ShortBreak, req.LongBreak); err != nil {
		return nil, err
	}

	var preset *models.CustomPreset
	err = c.db.Transaction(ctx, func(tx *gorm.DB) error {
		preset, err = c.presetRepo.GetOwned(tx, id, user.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if name != nil && *name != preset.Name {
			exists, err := c.presetRepo.NameExists(tx, user.ID, *name, preset.ID)
			if err != nil {
				return err
			}
			if exists {
				return apperrors.ErrDuplicateName
			}
			preset.Name = *name
		}
		if req.WorkDuration != nil {
			preset.WorkDuration = *req.WorkDuration
		}
		if req.ShortBreak != nil {
			preset.ShortBreak = *req.ShortBreak
		}
		if req.LongBreak != nil {
			preset.LongBreak = *req.LongBreak
		}

		return c.presetRepo.Save(tx, preset)
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, apperrors.ErrDuplicateName) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicateName
		}
		return nil, log.Err("failed to update preset", err, "presetID", id, "userID", user.ID)
	}

	log.Info("Preset updated", "userID", user.ID, "presetID", preset.ID)
	return preset, nil
}

// Delete removes a preset the caller owns under the same NotFound rule as
// Update. Removal is permanent.
func (c *PresetsController) Delete(ctx context.Context, user *models.User, presetID string) error {
	log := c.log.Function("Delete")

	id, err := uuid.Parse(presetID)
	if err != nil {
		return apperrors.ErrNotFound
	}

	preset, err := c.presetRepo.GetOwned(c.db.SQLWithContext(ctx), id, user.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotFound
		}
		return log.Err("failed to load preset", err, "presetID", id, "userID", user.ID)
	}

	if err := c.presetRepo.Delete(ctx, preset); err != nil {
		return log.Err("failed to delete preset", err, "presetID", id, "userID", user.ID)
	}

	log.Info("Preset deleted", "userID", user.ID, "presetID", id)
	return nil
}

// validateFields checks whichever fields are present; nil means "not
// supplied" for partial updates.
func validateFields(name *string, work, short, long *int) error {
	validation := &apperrors.ValidationError{}

	if name != nil {
		if length := utf8.RuneCountInString(*name); length < 1 || length > models.MaxPresetNameLength {
			validation.Add("name", fmt.Sprintf("must be between 1 and %d characters", models.MaxPresetNameLength))
		}
	}
	checkRange(validation, "workDuration", work, models.MinDuration, models.MaxPresetWorkDuration)
	checkRange(validation, "shortBreak", short, models.MinDuration, models.MaxPresetShortBreak)
	checkRange(validation, "longBreak", long, models.MinDuration, models.MaxPresetLongBreak)

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

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
