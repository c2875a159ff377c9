package services

import (
	"testing"

	"pomodo/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	service, err := NewTokenService(config.Config{JWTSecret: secret})
	require.NoError(t, err)
	return service
}

func TestNewTokenServiceRequiresSecret(t *testing.T) {
	_, err := NewTokenService(config.Config{})
	assert.Error(t, err)
}

func TestIssueAndValidate(t *testing.T) {
	service := newTestTokenService(t, "test-secret")
	userID := uuid.New()

	token, err := service.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := service.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret-one")
	verifier := newTestTokenService(t, "secret-two")

	token, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.Error(t, err)
}

func TestValidateRejectsGarbage(t *testing.T) {
	service := newTestTokenService(t, "test-secret")

	_, err := service.Validate("not-a-token")
	assert.Error(t, err)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	service := newTestTokenService(t, "test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, identityClaims{
		UserID: uuid.New().String(),
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.Validate(token)
	assert.Error(t, err)
}
