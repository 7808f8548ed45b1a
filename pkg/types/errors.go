package types

import "errors"

// Store and lookup errors.
var (
	ErrNotFound    = errors.New("prompt not found")
	ErrInvalidID   = errors.New("invalid prompt ID")
	ErrStoreClosed = errors.New("store is closed")
)

// Validation errors raised at the user-input boundary. ErrValidation is the
// umbrella every field-level error matches.
var (
	ErrValidation        = errors.New("validation failed")
	ErrInvalidTitle      = errors.New("title must not be empty")
	ErrInvalidPromptType = errors.New("invalid prompt type")
	ErrUnknownCategory   = errors.New("unknown tag category")
	ErrInvalidTagValue   = errors.New("tag value must not be empty")
	ErrInvalidSortMode   = errors.New("invalid sort mode")
)

// Configuration errors.
var (
	ErrInvalidConfig = errors.New("invalid configuration")
)
