package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate resource.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidArgument signals a malformed request parameter.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrMalformedDocument signals a descriptor that cannot be read or parsed.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrUnsupportedFormat signals an unrecognized document format tag.
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrInvalidDocument signals a caller contract violation (e.g. empty physical structure).
	ErrInvalidDocument = errors.New("invalid document")
	// ErrPageNotFound signals a page reference that does not resolve.
	ErrPageNotFound = errors.New("page not found")
	// ErrNoMedia signals that no configured file group has a file for the page.
	ErrNoMedia = errors.New("no media for page")

	// ErrCoreCreation signals that the search engine refused to create a core.
	ErrCoreCreation = errors.New("core creation failed")
	// ErrSearchEngineUnavailable signals a connection or timeout failure towards the search engine.
	ErrSearchEngineUnavailable = errors.New("search engine unavailable")
	// ErrStorageUnavailable signals a failure of the relational store.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// CoreCreationError wraps ErrCoreCreation with the requested core name.
type CoreCreationError struct {
	Name string
	Err  error
}

func (e *CoreCreationError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCoreCreation.Error(), e.Name, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is.
func (e *CoreCreationError) Unwrap() []error { return []error{ErrCoreCreation, e.Err} }

// NewCoreCreationError creates a core creation error for name.
func NewCoreCreationError(name string, cause error) error {
	return &CoreCreationError{Name: name, Err: cause}
}
