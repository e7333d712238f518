package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrQuotaExceeded      = errors.New("quota exceeded")
	ErrBackendUnavailable = errors.New("backend unavailable")
	ErrUnknownCategory    = errors.New("unknown category")
)
