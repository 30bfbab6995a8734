// Package crypto hashes and verifies account passwords with bcrypt.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordLength is the longest input bcrypt accepts, in bytes.
const maxPasswordLength = 72

// HashPassword returns the salted bcrypt digest of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// VerifyPassword reports whether password matches the stored digest.
// A malformed digest never matches.
func VerifyPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// IsPasswordTooLong reports whether bcrypt would reject the password.
func IsPasswordTooLong(password string) bool {
	return len(password) > maxPasswordLength
}
