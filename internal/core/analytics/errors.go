package analytics

import "errors"

var (
	// ErrAccessDenied is returned when the caller's scope cannot be resolved to an ownership constraint
	ErrAccessDenied = errors.New("access denied")

	// ErrResourceExhausted is returned when the raw projection would exceed the configured row limit
	ErrResourceExhausted = errors.New("filtered result too large to project")

	// ErrInvalidFilter is returned for malformed filter requests
	ErrInvalidFilter = errors.New("invalid filter")
)
