package interaction

import "errors"

// Sentinel errors for the interaction service layer.
var (
	ErrNotFound     = errors.New("interaction not found")
	ErrInvalidInput = errors.New("invalid interaction input")
)
