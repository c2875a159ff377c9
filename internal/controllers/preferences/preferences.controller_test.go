package preferencesController

import (
	"context"
	"testing"

	"pomodo/internal/apperrors"
	"pomodo/internal/logger"
	"pomodo/internal/models"
	"pomodo/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestValidateUpdate(t *testing.T) {
	testCases := []struct {
		name      string
		req       UpdatePreferencesRequest
		wantField string
	}{
		{"empty update is valid", UpdatePreferencesRequest{}, ""},
		{"work duration in range", UpdatePreferencesRequest{WorkDuration: intPtr(60)}, ""},
		{"work duration too high", UpdatePreferencesRequest{WorkDuration: intPtr(61)}, "workDuration"},
		{"work duration zero", UpdatePreferencesRequest{WorkDuration: intPtr(0)}, "workDuration"},
		{"short break too high", UpdatePreferencesRequest{ShortBreak: intPtr(31)}, "shortBreak"},
		{"short break at limit", UpdatePreferencesRequest{ShortBreak: intPtr(30)}, ""},
		{"long break too high", UpdatePreferencesRequest{LongBreak: intPtr(61)}, "longBreak"},
		{"interval zero", UpdatePreferencesRequest{LongBreakInterval: intPtr(0)}, "longBreakInterval"},
		{"interval one", UpdatePreferencesRequest{LongBreakInterval: intPtr(1)}, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateUpdate(tc.req)
			if tc.wantField == "" {
				assert.NoError(t, err)
				return
			}

			validation, ok := apperrors.AsValidation(err)
			require.True(t, ok)
			require.NotNil(t, validation)
			require.Len(t, validation.Errors, 1)
			assert.Equal(t, tc.wantField, validation.Errors[0].Field)
		})
	}
}

func TestValidateUpdateCollectsAllFailures(t *testing.T) {
	err := validateUpdate(UpdatePreferencesRequest{
		WorkDuration: intPtr(0),
		ShortBreak:   intPtr(99),
		LongBreak:    intPtr(-1),
	})

	validation, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	require.NotNil(t, validation)
	assert.Len(t, validation.Errors, 3)
}

func TestApplyUpdatePartial(t *testing.T) {
	preference := models.DefaultPreference(uuid.New())

	applyUpdate(preference, UpdatePreferencesRequest{WorkDuration: intPtr(45)})

	assert.Equal(t, 45, preference.WorkDuration)
	assert.Equal(t, models.DefaultShortBreak, preference.ShortBreak)
	assert.Equal(t, models.DefaultLongBreak, preference.LongBreak)
	assert.Equal(t, models.DefaultLongBreakInterval, preference.LongBreakInterval)
	assert.True(t, preference.AutoStartBreaks)
	assert.False(t, preference.AutoStartPomodoros)
	assert.True(t, preference.SoundEnabled)
}

func TestApplyUpdateBooleans(t *testing.T) {
	// false is a deliberate value, not an omitted field
	preference := models.DefaultPreference(uuid.New())

	applyUpdate(preference, UpdatePreferencesRequest{
		AutoStartBreaks: boolPtr(false),
		SoundEnabled:    boolPtr(false),
	})

	assert.False(t, preference.AutoStartBreaks)
	assert.False(t, preference.SoundEnabled)
	assert.False(t, preference.AutoStartPomodoros)
}

func TestApplyUpdateAllFields(t *testing.T) {
	preference := models.DefaultPreference(uuid.New())

	applyUpdate(preference, UpdatePreferencesRequest{
		WorkDuration:       intPtr(50),
		ShortBreak:         intPtr(10),
		LongBreak:          intPtr(30),
		AutoStartBreaks:    boolPtr(false),
		AutoStartPomodoros: boolPtr(true),
		LongBreakInterval:  intPtr(2),
		SoundEnabled:       boolPtr(false),
	})

	assert.Equal(t, 50, preference.WorkDuration)
	assert.Equal(t, 10, preference.ShortBreak)
	assert.Equal(t, 30, preference.LongBreak)
	assert.False(t, preference.AutoStartBreaks)
	assert.True(t, preference.AutoStartPomodoros)
	assert.Equal(t, 2, preference.LongBreakInterval)
	assert.False(t, preference.SoundEnabled)
}

// fakePreferenceRepo is an in-memory PreferenceRepository for exercising the
// lazy-create and partial-update paths.
type fakePreferenceRepo struct {
	prefs map[uuid.UUID]*models.Preference
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{prefs: make(map[uuid.UUID]*models.Preference)}
}

func (f *fakePreferenceRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Preference, error) {
	p, ok := f.prefs[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePreferenceRepo) GetOrCreate(ctx context.Context, userID uuid.UUID) (*models.Preference, error) {
	if p, ok := f.prefs[userID]; ok {
		copied := *p
		return &copied, nil
	}
	pref := models.DefaultPreference(userID)
	return pref, f.Create(nil, pref)
}

func (f *fakePreferenceRepo) Create(tx *gorm.DB, preference *models.Preference) error {
	preference.ID = uuid.New()
	copied := *preference
	f.prefs[preference.UserID] = &copied
	return nil
}

func (f *fakePreferenceRepo) Save(ctx context.Context, preference *models.Preference) error {
	copied := *preference
	f.prefs[preference.UserID] = &copied
	return nil
}

var _ repositories.PreferenceRepository = (*fakePreferenceRepo)(nil)

func newTestController(repo *fakePreferenceRepo) *PreferencesController {
	return &PreferencesController{
		preferenceRepo: repo,
		log:            logger.New("preferencesController"),
	}
}

func TestUpdateFirstWriteStartsFromDefaults(t *testing.T) {
	repo := newFakePreferenceRepo()
	controller := newTestController(repo)
	user := &models.User{BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()}}
	ctx := context.Background()

	// No row exists yet; the single supplied field overlays the defaults
	updated, err := controller.Update(ctx, user, UpdatePreferencesRequest{
		WorkDuration: intPtr(45),
	})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.WorkDuration)
	assert.Equal(t, models.DefaultShortBreak, updated.ShortBreak)
	assert.Equal(t, models.DefaultLongBreak, updated.LongBreak)
	assert.Equal(t, models.DefaultLongBreakInterval, updated.LongBreakInterval)

	stored, err := repo.GetByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 45, stored.WorkDuration)
	assert.Equal(t, models.DefaultShortBreak, stored.ShortBreak)
}

func TestUpdateExistingRowPartial(t *testing.T) {
	repo := newFakePreferenceRepo()
	controller := newTestController(repo)
	user := &models.User{BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()}}
	ctx := context.Background()

	_, err := controller.Update(ctx, user, UpdatePreferencesRequest{WorkDuration: intPtr(45)})
	require.NoError(t, err)

	updated, err := controller.Update(ctx, user, UpdatePreferencesRequest{ShortBreak: intPtr(10)})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.WorkDuration)
	assert.Equal(t, 10, updated.ShortBreak)
}

func TestUpdateInvalidWritesNothing(t *testing.T) {
	repo := newFakePreferenceRepo()
	controller := newTestController(repo)
	user := &models.User{BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()}}
	ctx := context.Background()

	_, err := controller.Update(ctx, user, UpdatePreferencesRequest{
		WorkDuration: intPtr(45),
		ShortBreak:   intPtr(99),
	})
	validation, ok := apperrors.AsValidation(err)
	require.True(t, ok)
	require.NotNil(t, validation)

	_, err = repo.GetByUserID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
