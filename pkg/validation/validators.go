package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Allow letters, numbers, spaces, and common punctuation: . ' - / & ( ) ,
var nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

// Login: letters, digits and . _ - @
var loginRegex = regexp.MustCompile(`^[A-Za-z0-9._@-]+$`)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_login", ValidLogin)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("user_role", UserRole)
	_ = v.RegisterValidation("app_status", AppStatus)
	_ = v.RegisterValidation("not_blank", NotBlank)
}

// ValidName validates that a string contains only valid name characters
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

func ValidLogin(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return loginRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		// Supplementary planes are mostly emoji/symbols
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// UserRole accepts the two account roles.
func UserRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "intern", "recruiter":
		return true
	}
	return false
}

// AppStatus accepts any known application status.
func AppStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "pending", "reviewed", "accepted", "rejected", "cancelled":
		return true
	}
	return false
}

// NotBlank rejects whitespace-only strings while allowing empty (omitted) ones.
func NotBlank(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return val == "" || strings.TrimSpace(val) != ""
}
