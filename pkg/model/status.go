package model

import (
	"time"

	"quickcourt/pkg/timeslot"
)

// Booking lifecycle statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// transitions is the full lifecycle graph. Cancelled and completed are
// terminal.
var transitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
	StatusCancelled: {},
	StatusCompleted: {},
}

// CanTransition reports whether a booking may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsActiveStatus reports whether a status counts against availability.
func IsActiveStatus(status string) bool {
	return status == StatusPending || status == StatusConfirmed
}

// IsTerminalStatus reports whether no further transitions are permitted.
func IsTerminalStatus(status string) bool {
	return status == StatusCancelled || status == StatusCompleted
}

// EffectiveStatus derives the status as of now. A confirmed booking whose
// date and end time are in the past reads as completed; the completion is
// not persisted eagerly.
func (b *Booking) EffectiveStatus(now time.Time) string {
	if b.Status != StatusConfirmed {
		return b.Status
	}
	day, err := timeslot.ParseDate(b.Date)
	if err != nil {
		return b.Status
	}
	endsAt := day.Add(time.Duration(b.EndMinute) * time.Minute)
	if now.After(endsAt) {
		return StatusCompleted
	}
	return b.Status
}
