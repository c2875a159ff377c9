package repositories

import (
	"context"

	"pomodo/internal/database"
	"pomodo/internal/logger"
	. "pomodo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PresetRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]CustomPreset, error)
	GetOwned(tx *gorm.DB, id, userID uuid.UUID) (*CustomPreset, error)
	CountByUser(tx *gorm.DB, userID uuid.UUID) (int64, error)
	NameExists(tx *gorm.DB, userID uuid.UUID, name string, excludeID uuid.UUID) (bool, error)
	Create(tx *gorm.DB, preset *CustomPreset) error
	Save(tx *gorm.DB, preset *CustomPreset) error
	Delete(ctx context.Context, preset *CustomPreset) error
}

type presetRepository struct {
	db  database.DB
	log logger.Logger
}

func NewPresetRepository(db database.DB) PresetRepository {
	return &presetRepository{
		db:  db,
		log: logger.New("presetRepository"),
	}
}

// ListByUser returns the caller's presets in stable creation order.
func (r *presetRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]CustomPreset, error) {
	log := r.log.Function("ListByUser")

	presets := make([]CustomPreset, 0, MaxPresetsPerUser)
	if err := r.db.SQLWithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&presets).Error; err != nil {
		return nil, log.Err("failed to list presets", err, "userID", userID)
	}

	return presets, nil
}

// GetOwned fetches a preset only if it belongs to the user. A missing row and
// a row owned by someone else both surface as gorm.ErrRecordNotFound, so the
// API layer cannot leak existence across owners.
func (r *presetRepository) GetOwned(tx *gorm.DB, id, userID uuid.UUID) (*CustomPreset, error) {
	log := r.log.Function("GetOwned")

	var preset CustomPreset
	if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&preset).Error; err != nil {
		return nil, log.Err("failed to get preset", err, "presetID", id, "userID", userID)
	}

	return &preset, nil
}

func (r *presetRepository) CountByUser(tx *gorm.DB, userID uuid.UUID) (int64, error) {
	log := r.log.Function("CountByUser")

	var count int64
	if err := tx.Model(&CustomPreset{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, log.Err("failed to count presets", err, "userID", userID)
	}

	return count, nil
}

// NameExists checks per-user name uniqueness, optionally excluding the row
// being renamed. Matching is case-sensitive and exact.
func (r *presetRepository) NameExists(
	tx *gorm.DB,
	userID uuid.UUID,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	log := r.log.Function("NameExists")

	query := tx.Model(&CustomPreset{}).Where("user_id = ? AND name = ?", userID, name)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, log.Err("failed to check preset name", err, "userID", userID)
	}

	return count > 0, nil
}

func (r *presetRepository) Create(tx *gorm.DB, preset *CustomPreset) error {
	log := r.log.Function("Create")

	if err := tx.Create(preset).Error; err != nil {
		return log.Err("failed to create preset", err, "userID", preset.UserID)
	}

	return nil
}

func (r *presetRepository) Save(tx *gorm.DB, preset *CustomPreset) error {
	log := r.log.Function("Save")

	if err := tx.Save(preset).Error; err != nil {
		return log.Err("failed to save preset", err, "presetID", preset.ID)
	}

	return nil
}

// Delete removes a preset permanently. Presets are never soft-deleted, which
// also keeps the (user_id, name) unique index honest.
func (r *presetRepository) Delete(ctx context.Context, preset *CustomPreset) error {
	log := r.log.Function("Delete")

	if err := r.db.SQLWithContext(ctx).Unscoped().Delete(preset).Error; err != nil {
		return log.Err("failed to delete preset", err, "presetID", preset.ID)
	}

	return nil
}
