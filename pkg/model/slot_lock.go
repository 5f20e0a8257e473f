package model

import "time"

// SlotLock is an advisory lock serializing concurrent booking attempts on
// the same (court, date, start) slot. The ID encodes the slot coordinates;
// a unique-index insert either acquires the lock or reports a conflict.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
