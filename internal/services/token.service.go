package services

import (
	"fmt"
	"time"

	"pomodo/config"
	"pomodo/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token lifetime matches the session length the clients expect.
const tokenExpiry = 7 * 24 * time.Hour

// TokenService issues and validates the bearer identity tokens guarding the
// API. Tokens are HS256 JWTs carrying only the user id; everything else is
// looked up per request.
type TokenService struct {
	secret []byte
	log    logger.Logger
}

type identityClaims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

func NewTokenService(config config.Config) (*TokenService, error) {
	log := logger.New("tokenService")

	if config.JWTSecret == "" {
		return nil, log.ErrMsg("JWT secret is not configured")
	}

	return &TokenService{
		secret: []byte(config.JWTSecret),
		log:    log,
	}, nil
}

// Issue creates a signed token for a user id.
func (s *TokenService) Issue(userID uuid.UUID) (string, error) {
	log := s.log.Function("Issue")

	now := time.Now()
	claims := identityClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", log.Err("failed to sign token", err)
	}

	return signed, nil
}

// Validate parses a bearer token and returns the user id it carries.
func (s *TokenService) Validate(tokenString string) (uuid.UUID, error) {
	log := s.log.Function("Validate")

	token, err := jwt.ParseWithClaims(
		tokenString,
		&identityClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
	)
	if err != nil {
		return uuid.Nil, log.Err("failed to parse token", err)
	}

	claims, ok := token.Claims.(*identityClaims)
	if !ok || !token.Valid {
		return uuid.Nil, log.ErrMsg("invalid token claims")
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, log.Err("token carries a malformed user id", err)
	}

	return userID, nil
}
