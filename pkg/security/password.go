package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches hash. Any failure, including a
// malformed hash, is reported as a mismatch.
func CheckPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// dummyHash is compared against when a login does not exist so both paths cost one bcrypt round.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("internview-dummy-password"), bcrypt.DefaultCost)

// EqualizeTiming burns one bcrypt comparison.
func EqualizeTiming(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// ValidatePassword rejects inputs bcrypt cannot hash.
func ValidatePassword(password string) error {
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}
