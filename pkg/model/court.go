package model

import "time"

// Court is a bookable playing surface belonging to a venue. OpenTime and
// CloseTime are venue-local HH:MM wall-clock strings; closing must be
// strictly after opening.
type Court struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	VenueID      string    `json:"venue_id" bson:"venue_id" validate:"required,mongodb"`
	Name         string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Sport        string    `json:"sport" bson:"sport" validate:"required,min=2,max=50"`
	PricePerHour float64   `json:"price_per_hour" bson:"price_per_hour" validate:"required,gt=0"`
	OpenTime     string    `json:"open_time" bson:"open_time" validate:"required,clock_time"`
	CloseTime    string    `json:"close_time" bson:"close_time" validate:"required,clock_time"`
	Active       bool      `json:"active" bson:"active"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// CourtUpdate carries a partial court update. Nil or empty fields are left
// unchanged.
type CourtUpdate struct {
	Name         string   `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Sport        string   `json:"sport,omitempty" validate:"omitempty,min=2,max=50"`
	PricePerHour *float64 `json:"price_per_hour,omitempty" validate:"omitempty,gt=0"`
	OpenTime     string   `json:"open_time,omitempty" validate:"omitempty,clock_time"`
	CloseTime    string   `json:"close_time,omitempty" validate:"omitempty,clock_time"`
}

// ChangesOperatingHours reports whether the update touches the bookable
// window. Hour changes are rejected while active bookings exist.
func (u *CourtUpdate) ChangesOperatingHours() bool {
	return u.OpenTime != "" || u.CloseTime != ""
}
