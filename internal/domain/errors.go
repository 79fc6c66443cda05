package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrNoDraft           = errors.New("no booking in progress")
	ErrInvalidTransition = errors.New("invalid booking transition")
	ErrUnderage          = errors.New("driver does not meet the minimum age")
	ErrUnavailable       = errors.New("item is not available")
	ErrInvalidInput      = errors.New("invalid input")
)
