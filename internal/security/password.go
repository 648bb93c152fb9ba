package security

import (
	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the 10-round cost the rest of the system was built with
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt. The salt is embedded
// in the returned digest.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a plaintext password against a bcrypt digest.
// bcrypt's comparison is constant-time.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
