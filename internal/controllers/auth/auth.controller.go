package authController

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"pomodo/internal/apperrors"
	"pomodo/internal/database"
	"pomodo/internal/logger"
	"pomodo/internal/models"
	"pomodo/internal/repositories"
	"pomodo/internal/services"
	"pomodo/internal/utils"

	"gorm.io/gorm"
)

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type RegisterRequest struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Name     *string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is what a successful register or login hands back to the client.
type AuthResult struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

type AuthControllerInterface interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResult, error)
}

// transactor is the slice of database.DB the controller needs, so tests can
// substitute an in-memory store.
type transactor interface {
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type AuthController struct {
	userRepo       repositories.UserRepository
	preferenceRepo repositories.PreferenceRepository
	tokenService   *services.TokenService
	db             transactor
	log            logger.Logger
}

func New(
	repos repositories.Repository,
	tokenService *services.TokenService,
	db database.DB,
) AuthControllerInterface {
	return &AuthController{
		userRepo:       repos.User,
		preferenceRepo: repos.Preference,
		tokenService:   tokenService,
		db:             &db,
		log:            logger.New("authController"),
	}
}

// Register creates a user and their default preference row in a single
// transaction, then issues a token.
func (c *AuthController) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	log := c.log.Function("Register")

	email := models.NormalizeEmail(req.Email)

	validation := &apperrors.ValidationError{}
	if !emailPattern.MatchString(email) {
		validation.Add("email", "must be a valid email address")
	}
	if len(req.Password) < minPasswordLength {
		validation.Add("password", "must be at least 6 characters")
	}
	if validation.HasErrors() {
		return nil, validation
	}

	if _, err := c.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, log.Err("failed to check for existing user", err)
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, log.Err("failed to hash password", err)
	}

	var name *string
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		if trimmed != "" {
			name = &trimmed
		}
	}

	user := &models.User{
		Email:    email,
		Password: hashed,
		Name:     name,
	}

	err = c.db.Transaction(ctx, func(tx *gorm.DB) error {
		if err := c.userRepo.Create(tx, user); err != nil {
			return err
		}
		return c.preferenceRepo.Create(tx, models.DefaultPreference(user.ID))
	})
	if err != nil {
		// The unique email index closes the races the pre-check misses
		if isUniqueViolation(err) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, log.Err("failed to create user", err)
	}

	token, err := c.tokenService.Issue(user.ID)
	if err != nil {
		return nil, log.Err("failed to issue token", err)
	}

	log.Info("User registered", "userID", user.ID)
	return &AuthResult{Token: token, User: user.ToProfile()}, nil
}

// Login verifies credentials and issues a token. Unknown emails and wrong
// passwords are indistinguishable to the caller.
func (c *AuthController) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	log := c.log.Function("Login")

	email := models.NormalizeEmail(req.Email)

	user, err := c.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, log.Err("failed to look up user", err)
	}

	if !utils.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := c.tokenService.Issue(user.ID)
	if err != nil {
		return nil, log.Err("failed to issue token", err)
	}

	log.Info("User logged in", "userID", user.ID)
	return &AuthResult{Token: token, User: user.ToProfile()}, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "duplicate key")
}
