package model

import (
	"time"
)

// Booking is a reservation of a court for a half-open [Start, End) time
// range on a calendar day. Start and End are HH:MM wall-clock strings;
// StartMinute and EndMinute carry the same values as minutes since
// midnight so overlap checks can run as range queries in the database.
type Booking struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	CourtID     string    `json:"court_id" bson:"court_id" validate:"required,mongodb"`
	UserID      string    `json:"user_id" bson:"user_id" validate:"required,min=1,max=100"`
	Date        string    `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	Start       string    `json:"start" bson:"start" validate:"required,clock_time"`
	End         string    `json:"end" bson:"end" validate:"required,clock_time"`
	StartMinute int       `json:"-" bson:"start_minute"`
	EndMinute   int       `json:"-" bson:"end_minute"`
	Status      string    `json:"status" bson:"status" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}
