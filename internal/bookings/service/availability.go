package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quickcourt/internal/bookings/cache"
	bookingserrors "quickcourt/internal/bookings/errors"
	"quickcourt/internal/bookings/repository"
	"quickcourt/pkg/config"
	apperrors "quickcourt/pkg/errors"
	"quickcourt/pkg/model"
	"quickcourt/pkg/timeslot"
)

type AvailabilityService interface {
	GetDayAvailability(ctx context.Context, courtID string, date string, slotMinutes int) ([]model.Slot, error)
}

type availabilityService struct {
	repo    repository.BookingRepository
	catalog repository.CourtCatalog
	cache   *cache.AvailabilityCache
	cfg     *config.Config
}

func NewAvailabilityService(
	repo repository.BookingRepository,
	catalog repository.CourtCatalog,
	availabilityCache *cache.AvailabilityCache,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:    repo,
		catalog: catalog,
		cache:   availabilityCache,
		cfg:     cfg,
	}
}

// GetDayAvailability divides the court's operating window for a date into
// fixed-duration slots and marks each one available unless an active booking
// overlaps it. Slots entirely in the past read as unavailable. Results may
// come from a short-TTL cache; every create and cancel invalidates it.
func (s *availabilityService) GetDayAvailability(ctx context.Context, courtID string, date string, slotMinutes int) ([]model.Slot, error) {
	if courtID == "" || date == "" {
		return nil, apperrors.InvalidInput("court_id and date are required")
	}

	if slotMinutes == 0 {
		slotMinutes = s.cfg.DefaultSlotMinutes
	}
	if slotMinutes < s.cfg.MinSlotMinutes || slotMinutes > s.cfg.MaxSlotMinutes {
		return nil, apperrors.InvalidRange(fmt.Sprintf(
			"slot_minutes must be between %d and %d", s.cfg.MinSlotMinutes, s.cfg.MaxSlotMinutes,
		))
	}

	day, err := timeslot.ParseDate(date)
	if err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	if cached, ok := s.cache.Get(ctx, courtID, date, slotMinutes); ok {
		return cached, nil
	}

	court, err := s.catalog.FindCourtByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrCourtNotFound) {
			return nil, apperrors.NotFoundWithID("Court", courtID)
		}
		return nil, apperrors.Internal("Failed to load court", err)
	}

	hours, err := timeslot.ParseRange(court.OpenTime, court.CloseTime)
	if err != nil {
		return nil, apperrors.Internal("Court has invalid operating hours", err)
	}

	ranges, err := timeslot.Slots(hours.Start, hours.End, slotMinutes)
	if err != nil {
		return nil, apperrors.InvalidRange(err.Error())
	}

	booked, err := s.repo.FindOverlapping(ctx, courtID, date, hours)
	if err != nil {
		return nil, apperrors.Internal("Failed to load bookings", err)
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)
	nowMinute := now.Hour()*60 + now.Minute()

	slots := make([]model.Slot, 0, len(ranges))
	for _, rng := range ranges {
		available := court.Active

		if day.Before(today) {
			available = false
		}
		if day.Equal(today) && rng.End <= nowMinute {
			available = false
		}

		if available {
			for _, b := range booked {
				if rng.Overlaps(timeslot.Range{Start: b.StartMinute, End: b.EndMinute}) {
					available = false
					break
				}
			}
		}

		slots = append(slots, model.Slot{
			Start:     timeslot.FormatClock(rng.Start),
			End:       timeslot.FormatClock(rng.End),
			Available: available,
		})
	}

	s.cache.Set(ctx, courtID, date, slotMinutes, slots)

	s.cfg.Log.Debug("Availability computed",
		"court_id", courtID,
		"date", date,
		"slot_minutes", slotMinutes,
		"slots", len(slots),
	)
	return slots, nil
}
