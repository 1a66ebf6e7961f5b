package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Name":            "Name",
	"Login":           "Login",
	"Password":        "Password",
	"Role":            "Role",
	"Description":     "Description",
	"Title":           "Title",
	"Requirements":    "Requirements",
	"SalaryRange":     "Salary range",
	"Location":        "Location",
	"WorkMode":        "Work mode",
	"ExperienceLevel": "Experience level",
	"ExpiresAt":       "Expiry date",
	"VacancyID":       "Vacancy",
	"CVID":            "CV",
	"CoverLetter":     "Cover letter",
	"ResumeURL":       "Resume URL",
	"Status":          "Status",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// Message joins FormatValidationErrors into one line.
func Message(err error) string {
	return strings.Join(FormatValidationErrors(err), "; ")
}

func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at least %s items", label, e.Param())
		}
		return fmt.Sprintf("%s must be at least %s characters", label, e.Param())
	case "max":
		if e.Kind().String() == "slice" {
			return fmt.Sprintf("%s must contain at most %s items", label, e.Param())
		}
		return fmt.Sprintf("%s must be at most %s characters", label, e.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s must be a valid URL", label)
	case "uuid", "uuid4":
		return fmt.Sprintf("%s must be a valid id", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(e.Param(), " ", ", "))
	case "user_role":
		return fmt.Sprintf("%s must be intern or recruiter", label)
	case "app_status":
		return fmt.Sprintf("%s is not a valid application status", label)
	case "valid_name":
		return fmt.Sprintf("%s contains invalid characters", label)
	case "valid_login":
		return fmt.Sprintf("%s may only contain letters, digits and . _ - @", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji", label)
	case "not_blank":
		return fmt.Sprintf("%s must not be blank", label)
	case "dive":
		return fmt.Sprintf("%s contains an invalid item", label)
	default:
		return fmt.Sprintf("%s is invalid", label)
	}
}

func getFieldLabel(field string) string {
	if label, ok := FieldLabels[field]; ok {
		return label
	}
	return field
}
