package apperror

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrUnknownPreference = errors.New("unknown preference key")
	ErrInvalidSession    = errors.New("invalid session token")
)
