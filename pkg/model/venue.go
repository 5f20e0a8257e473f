package model

import "time"

// Venue groups courts under a single owner. Ownership drives the
// owner-or-admin authorization checks on court management and booking
// cancellation.
type Venue struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	Name      string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	City      string    `json:"city" bson:"city" validate:"required,min=2,max=50"`
	Address   string    `json:"address" bson:"address" validate:"required,min=2,max=200"`
	OwnerID   string    `json:"owner_id" bson:"owner_id" validate:"required,min=1,max=100"`
	CreatedAt time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
