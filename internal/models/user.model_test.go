package models

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"already canonical", "user@example.com", "user@example.com"},
		{"mixed case", "User@Example.COM", "user@example.com"},
		{"surrounding whitespace", "  user@example.com\t", "user@example.com"},
		{"empty", "", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeEmail(tc.input))
		})
	}
}

func TestToProfileStripsCredential(t *testing.T) {
	name := "Ada"
	user := &User{
		BaseUUIDModel: BaseUUIDModel{ID: uuid.New()},
		Email:         "ada@example.com",
		Password:      "$2a$10$hash",
		Name:          &name,
	}

	profile := user.ToProfile()
	assert.Equal(t, user.ID.String(), profile.ID)
	assert.Equal(t, "ada@example.com", profile.Email)
	require.NotNil(t, profile.Name)
	assert.Equal(t, "Ada", *profile.Name)

	serialized, err := json.Marshal(profile)
	require.NoError(t, err)
	assert.NotContains(t, string(serialized), "hash")
}

func TestUserJSONOmitsPassword(t *testing.T) {
	user := &User{Email: "ada@example.com", Password: "$2a$10$hash"}

	serialized, err := json.Marshal(user)
	require.NoError(t, err)
	assert.NotContains(t, string(serialized), "password")
	assert.NotContains(t, string(serialized), "hash")
}

func TestDefaultPreference(t *testing.T) {
	userID := uuid.New()
	preference := DefaultPreference(userID)

	assert.Equal(t, userID, preference.UserID)
	assert.Equal(t, DefaultWorkDuration, preference.WorkDuration)
	assert.Equal(t, DefaultShortBreak, preference.ShortBreak)
	assert.Equal(t, DefaultLongBreak, preference.LongBreak)
	assert.Equal(t, DefaultLongBreakInterval, preference.LongBreakInterval)
	assert.True(t, preference.AutoStartBreaks)
	assert.False(t, preference.AutoStartPomodoros)
	assert.True(t, preference.SoundEnabled)
}
