package app

import (
	"context"

	"pomodo/config"
	"pomodo/internal/database"
	"pomodo/internal/handlers/middleware"
	"pomodo/internal/jobs"
	"pomodo/internal/logger"
	"pomodo/internal/repositories"
	"pomodo/internal/services"

	authController "pomodo/internal/controllers/auth"
	preferencesController "pomodo/internal/controllers/preferences"
	presetsController "pomodo/internal/controllers/presets"
)

type App struct {
	Database   database.DB
	Middleware middleware.Middleware
	Config     config.Config

	// Services
	TokenService     *services.TokenService
	SchedulerService *services.SchedulerService

	// Repositories
	Repos repositories.Repository

	// Controllers
	AuthController        authController.AuthControllerInterface
	PreferencesController preferencesController.PreferencesControllerInterface
	PresetsController     presetsController.PresetsControllerInterface
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	tokenService, err := services.NewTokenService(config)
	if err != nil {
		return &App{}, log.Err("failed to create token service", err)
	}
	schedulerService := services.NewSchedulerService()

	repos := repositories.New(db)

	middleware := middleware.New(db, tokenService, config, repos)
	authController := authController.New(repos, tokenService, db)
	preferencesController := preferencesController.New(repos)
	presetsController := presetsController.New(repos, db)

	if config.SchedulerEnabled {
		usageReportJob := jobs.NewUsageReportJob(db, services.Daily)
		if err := schedulerService.AddJob(usageReportJob); err != nil {
			return &App{}, log.Err("failed to register usage report job", err)
		}
		log.Info("Registered usage report job with scheduler")
	}

	app := &App{
		Database:              db,
		Config:                config,
		Middleware:            middleware,
		TokenService:          tokenService,
		SchedulerService:      schedulerService,
		Repos:                 repos,
		AuthController:        authController,
		PreferencesController: preferencesController,
		PresetsController:     presetsController,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.TokenService,
		a.SchedulerService,
		a.AuthController,
		a.PreferencesController,
		a.PresetsController,
		a.Repos.User,
		a.Repos.Preference,
		a.Repos.Preset,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.SchedulerService != nil {
		if closeErr := a.SchedulerService.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
