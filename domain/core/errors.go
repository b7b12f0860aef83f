package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Workbook loading errors
	ErrEmptyFile     = errors.New("empty file")
	ErrInvalidFormat = errors.New("invalid workbook format")
	ErrEncrypted     = errors.New("workbook is password-protected")

	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrParseRunNotFound = fmt.Errorf("%w: parse run", ErrNotFound)
	ErrSheetNotFound    = fmt.Errorf("%w: sheet", ErrNotFound)

	// Repository errors
	ErrRepositoryUnavailable = errors.New("repository unavailable")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewLoadError(reason string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrInvalidFormat, reason)
	}
	return fmt.Errorf("load workbook: %s: %w", reason, err)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsLoadError(err error) bool {
	return errors.Is(err, ErrEmptyFile) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrEncrypted)
}
