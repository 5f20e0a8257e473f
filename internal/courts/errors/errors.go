package errors

import "errors"

var (
	ErrNotFound = errors.New("court not found")

	ErrInvalidID = errors.New("invalid court ID format")

	ErrVenueNotFound = errors.New("venue not found")

	ErrVenueInvalidID = errors.New("invalid venue ID format")
)
