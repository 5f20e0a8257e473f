package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	ErrCourtNotFound = errors.New("court not found")

	ErrVenueNotFound = errors.New("venue not found")

	ErrSlotConflict = errors.New("slot conflicts with an existing booking")
)
