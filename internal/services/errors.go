package services

import "errors"

// Shared service-level errors. Domain-specific sentinels live next to the
// service that owns them.
var (
	ErrValidation = errors.New("validation failed")
)
