package nametab

import "errors"

var (
	// ErrInvalidInput is returned when a name is not pure ASCII or is too
	// long. These are contract violations, not data-dependent conditions.
	ErrInvalidInput = errors.New("nametab: invalid input")

	// ErrDuplicate is returned by Add when the content is already
	// registered. Use FindOrAdd when that is a possibility.
	ErrDuplicate = errors.New("nametab: name already registered")

	// ErrNotFound is returned by Find when the content was never
	// registered.
	ErrNotFound = errors.New("nametab: name not found")

	// ErrExhausted is returned when the configured arena limit is reached
	// or the Allocator cannot supply a page.
	ErrExhausted = errors.New("nametab: arena storage exhausted")
)
