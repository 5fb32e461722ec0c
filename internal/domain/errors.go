package domain

import (
	"errors"
	"strings"
)

var (
	ErrUnauthorized       = errors.New("unauthorized")
	ErrEmptyBody          = errors.New("request body is empty")
	ErrMissingFile        = errors.New("no file uploaded")
	ErrValidation         = errors.New("file validation failed")
	ErrUploadFailed       = errors.New("upload to storage failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// ValidationError carries every constraint violation found for a file, in
// rule order.
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Reasons, ", ")
}

// Is lets errors.Is(err, ErrValidation) match any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
