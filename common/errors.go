package common

import (
	"errors"
)

// Common error constants
var (
	// ErrInvalidConfig is returned when an invalid configuration is provided
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUpstreamUnavailable is returned when the country metadata source cannot be fetched
	ErrUpstreamUnavailable = errors.New("country source unavailable")

	// ErrNotFound is returned when no country matches the requested name
	ErrNotFound = errors.New("country not found")

	// ErrStorage is returned when the catalog store rejects a read or write
	ErrStorage = errors.New("catalog storage failure")
)
