package repositories

import (
	"context"
	"time"

	"pomodo/internal/database"
	"pomodo/internal/logger"
	. "pomodo/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	USER_CACHE_EXPIRY = 7 * 24 * time.Hour // matches token lifetime
	USER_CACHE_PREFIX = "user:"
)

type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(tx *gorm.DB, user *User) error
}

type userRepository struct {
	db  database.DB
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return &userRepository{
		db:  db,
		log: logger.New("userRepository"),
	}
}

// GetByID is the hot path: the auth middleware resolves every authenticated
// request through it, so user rows are fronted by the valkey cache.
func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	log := r.log.Function("GetByID")

	var user User
	if found := r.getCacheByID(ctx, id, &user); found {
		return &user, nil
	}

	if err := r.db.SQLWithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get user by id", err, "id", id)
	}

	if err := r.addUserToCache(ctx, &user); err != nil {
		log.Warn("failed to add user to cache", "userID", id, "error", err)
	}

	return &user, nil
}

// GetByEmail looks a user up by canonical email. Callers normalize first.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	log := r.log.Function("GetByEmail")

	var user User
	if err := r.db.SQLWithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, log.Err("failed to get user by email", err)
	}

	return &user, nil
}

// Create inserts a user within the caller's transaction so registration can
// create the default preference row atomically alongside it.
func (r *userRepository) Create(tx *gorm.DB, user *User) error {
	log := r.log.Function("Create")

	if err := tx.Create(user).Error; err != nil {
		return log.Err("failed to create user", err)
	}

	return nil
}

func (r *userRepository) getCacheByID(ctx context.Context, userID uuid.UUID, user *User) bool {
	cacheKey := USER_CACHE_PREFIX + userID.String()
	found, err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).WithContext(ctx).Get(user)
	if err != nil {
		r.log.Function("getCacheByID").
			Warn("failed to get user from cache", "userID", userID, "error", err)
		return false
	}

	return found
}

func (r *userRepository) addUserToCache(ctx context.Context, user *User) error {
	cacheKey := USER_CACHE_PREFIX + user.ID.String()
	if err := database.NewCacheBuilder(r.db.Cache.User, cacheKey).
		WithStruct(user).
		WithTTL(USER_CACHE_EXPIRY).
		WithContext(ctx).
		Set(); err != nil {
		return r.log.Function("addUserToCache").
			Err("failed to add user to cache", err, "userID", user.ID)
	}
	return nil
}
