package utils

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is bcrypt.DefaultCost, pinned so a library upgrade cannot
// silently change the work factor.
const bcryptCost = 10

// HashPassword derives a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether a plaintext password matches a stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
