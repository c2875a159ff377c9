package repositories

import (
	"pomodo/internal/database"
)

type Repository struct {
	User       UserRepository
	Preference PreferenceRepository
	Preset     PresetRepository
}

func New(db database.DB) Repository {
	return Repository{
		User:       NewUserRepository(db), // User repo fronts lookups with the valkey cache
		Preference: NewPreferenceRepository(db),
		Preset:     NewPresetRepository(db),
	}
}
