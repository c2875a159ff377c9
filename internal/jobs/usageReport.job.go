package jobs

import (
	"context"

	"pomodo/internal/database"
	"pomodo/internal/models"
	"pomodo/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// UsageReportJob logs daily row counts so operators can watch adoption
// without a metrics stack.
type UsageReportJob struct {
	db       database.DB
	log      logger.Logger
	schedule services.Schedule
}

func NewUsageReportJob(db database.DB, schedule services.Schedule) *UsageReportJob {
	log := logger.New("usageReportJob")
	log.Info("Creating new usage report job", "schedule", schedule)

	return &UsageReportJob{
		db:       db,
		log:      log,
		schedule: schedule,
	}
}

func (j *UsageReportJob) Name() string {
	return "DailyUsageReport"
}

func (j *UsageReportJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	var users, preferences, presets int64
	tx := j.db.SQLWithContext(ctx)

	if err := tx.Model(&models.User{}).Count(&users).Error; err != nil {
		return log.Err("failed to count users", err)
	}
	if err := tx.Model(&models.Preference{}).Count(&preferences).Error; err != nil {
		return log.Err("failed to count preferences", err)
	}
	if err := tx.Model(&models.CustomPreset{}).Count(&presets).Error; err != nil {
		return log.Err("failed to count presets", err)
	}

	log.Info(
		"Daily usage report",
		"users", users,
		"preferences", preferences,
		"customPresets", presets,
	)
	return nil
}

func (j *UsageReportJob) Schedule() services.Schedule {
	return j.schedule
}
