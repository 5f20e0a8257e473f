package model

// Slot is a candidate bookable interval derived from a court's operating
// hours. Slots are never persisted; they are recomputed per availability
// query from the court and its active bookings.
type Slot struct {
	Start     string `json:"start"`
	End       string `json:"end"`
	Available bool   `json:"available"`
}
