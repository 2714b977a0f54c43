package dlfindex

import (
	"errors"

	"github.com/kailas-cloud/dlfindex/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrNotFound                = domain.ErrNotFound
	ErrAlreadyExists           = domain.ErrAlreadyExists
	ErrInvalidArgument         = domain.ErrInvalidArgument
	ErrMalformedDocument       = domain.ErrMalformedDocument
	ErrUnsupportedFormat       = domain.ErrUnsupportedFormat
	ErrInvalidDocument         = domain.ErrInvalidDocument
	ErrPageNotFound            = domain.ErrPageNotFound
	ErrNoMedia                 = domain.ErrNoMedia
	ErrCoreCreation            = domain.ErrCoreCreation
	ErrSearchEngineUnavailable = domain.ErrSearchEngineUnavailable
	ErrStorageUnavailable      = domain.ErrStorageUnavailable
)

var errUnhealthy = errors.New("dlfindex: unhealthy")
