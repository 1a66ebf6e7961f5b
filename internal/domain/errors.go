package domain

import "errors"

// Store-level sentinel errors. Repositories wrap these; usecases map them to apperror values.
var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("resource already exists")
)
