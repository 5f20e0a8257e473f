package service

import (
	"context"
	"time"

	"quickcourt/pkg/kafka"
	"quickcourt/pkg/logger"
	"quickcourt/pkg/model"
)

const (
	TopicBookingEvents = "booking-events"

	EventBookingCreated   = "booking.created"
	EventBookingCancelled = "booking.cancelled"

	eventSchemaVersion = "1.0"
	publishTimeout     = 5 * time.Second
)

// EventPublisher abstracts the Kafka producer so services can be tested with
// a func-field fake. A nil publisher disables events entirely.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

// BookingEvent is the payload carried on booking-events. Consumers drive
// notifications and analytics from it; this service never reads it back.
type BookingEvent struct {
	BookingID string `json:"booking_id"`
	CourtID   string `json:"court_id"`
	UserID    string `json:"user_id"`
	Date      string `json:"date"`
	Start     string `json:"start"`
	End       string `json:"end"`
	Status    string `json:"status"`
}

// publishBookingEvent emits the event outside the transaction, fire-and-
// forget. Booking state is already durable; a lost event is logged, never
// surfaced to the caller.
func publishBookingEvent(publisher EventPublisher, log *logger.Logger, eventType string, booking *model.Booking) {
	if publisher == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(booking.CourtID).
		WithEventType(eventType).
		WithSchemaVersion(eventSchemaVersion).
		WithSource("bookings").
		WithValue(BookingEvent{
			BookingID: booking.ID,
			CourtID:   booking.CourtID,
			UserID:    booking.UserID,
			Date:      booking.Date,
			Start:     booking.Start,
			End:       booking.End,
			Status:    booking.Status,
		}).
		Build()
	msg.Topic = TopicBookingEvents

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := publisher.Publish(ctx, msg); err != nil {
			log.Warn("Failed to publish booking event",
				"event_type", eventType,
				"booking_id", booking.ID,
				"error", err,
			)
		}
	}()
}
