package middleware

import (
	"pomodo/config"
	"pomodo/internal/database"
	"pomodo/internal/repositories"
	"pomodo/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type Middleware struct {
	DB           database.DB
	userRepo     repositories.UserRepository
	tokenService *services.TokenService
	Config       config.Config
	log          logger.Logger
}

func New(
	db database.DB,
	tokenService *services.TokenService,
	config config.Config,
	repos repositories.Repository,
) Middleware {
	log := logger.New("middleware")

	return Middleware{
		DB:           db,
		userRepo:     repos.User,
		tokenService: tokenService,
		Config:       config,
		log:          log,
	}
}
