package repositories

import (
	"context"
	"errors"

	"pomodo/internal/database"
	"pomodo/internal/logger"
	. "pomodo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PreferenceRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Preference, error)
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*Preference, error)
	Create(tx *gorm.DB, preference *Preference) error
	Save(ctx context.Context, preference *Preference) error
}

type preferenceRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPreferenceRepository(db database.DB) PreferenceRepository {
	return &preferenceRepository{
		db:  db,
		log: logger.New("preferenceRepository"),
	}
}

func (r *preferenceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*Preference, error) {
	log := r.log.Function("GetByUserID")

	var preference Preference
	if err := r.db.SQLWithContext(ctx).Where("user_id = ?", userID).First(&preference).Error; err != nil {
		return nil, log.Err("failed to get preference", err, "userID", userID)
	}

	return &preference, nil
}

// GetOrCreate returns the user's preference row, creating it with defaults on
// first access. The unique index on user_id means two concurrent first reads
// cannot both insert; the loser of that race re-reads the winner's row.
func (r *preferenceRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*Preference, error) {
	log := r.log.Function("GetOrCreate")

	var preference Preference
	err := r.db.SQLWithContext(ctx).Where("user_id = ?", userID).First(&preference).Error
	if err == nil {
		return &preference, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to get preference", err, "userID", userID)
	}

	created := DefaultPreference(userID)
	if err := r.db.SQLWithContext(ctx).Create(created).Error; err != nil {
		// Concurrent first access: the unique index on user_id means the
		// row now exists, so fall back to reading it.
		var existing Preference
		if readErr := r.db.SQLWithContext(ctx).Where("user_id = ?", userID).First(&existing).Error; readErr == nil {
			return &existing, nil
		}
		return nil, log.Err("failed to create default preference", err, "userID", userID)
	}

	return created, nil
}

// Create inserts a preference row within the caller's transaction.
func (r *preferenceRepository) Create(tx *gorm.DB, preference *Preference) error {
	log := r.log.Function("Create")

	if err := tx.Create(preference).Error; err != nil {
		return log.Err("failed to create preference", err, "userID", preference.UserID)
	}

	return nil
}

func (r *preferenceRepository) Save(ctx context.Context, preference *Preference) error {
	log := r.log.Function("Save")

	if err := r.db.SQLWithContext(ctx).Save(preference).Error; err != nil {
		return log.Err("failed to save preference", err, "userID", preference.UserID)
	}

	return nil
}
