// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrMissingSeparator   = errors.New("place text has no name/address separator")
	ErrEmptyPlaceName     = errors.New("place name or address is empty")
	ErrCityNotSet         = errors.New("default city is not set")
	ErrAddressNotResolved = errors.New("address could not be resolved")
	ErrNoPlaces           = errors.New("no geocoded places")
	ErrStorage            = errors.New("storage failure")
)

// IsError reports whether err matches target anywhere in its chain.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
