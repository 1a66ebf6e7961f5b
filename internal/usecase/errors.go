package usecase

import (
	"errors"
	"strings"

	"internview-backend/internal/domain"
	"internview-backend/pkg/apperror"
)

// storeErr maps repository errors to client-facing errors. Anything that is
// not a known sentinel becomes a 500 with the cause attached for logging.
func storeErr(err error, notFound string) error {
	var appErr *apperror.AppError
	switch {
	case errors.As(err, &appErr):
		return appErr
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	}
	return apperror.Internal(err)
}

// trimmedPtr returns nil for nil or blank input.
func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
