package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"quickcourt/internal/bookings/cache"
	bookingserrors "quickcourt/internal/bookings/errors"
	"quickcourt/internal/bookings/repository"
	"quickcourt/internal/bookings/validator"
	"quickcourt/pkg/config"
	apperrors "quickcourt/pkg/errors"
	"quickcourt/pkg/model"
	"quickcourt/pkg/sanitizer"
	"quickcourt/pkg/timeslot"

	"go.mongodb.org/mongo-driver/mongo"
)

type BookingService interface {
	Create(ctx context.Context, actor model.Actor, booking *model.Booking) error
	Cancel(ctx context.Context, actor model.Actor, id string) (*model.Booking, error)
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	ListByCourtAndDate(ctx context.Context, courtID string, date string, limit int, offset int64) ([]*model.Booking, int64, error)
	ListByUser(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Booking, int64, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.SlotLockRepository
	catalog   repository.CourtCatalog
	validator *validator.BookingValidator
	cache     *cache.AvailabilityCache
	publisher EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	catalog repository.CourtCatalog,
	validator *validator.BookingValidator,
	availabilityCache *cache.AvailabilityCache,
	publisher EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		catalog:   catalog,
		validator: validator,
		cache:     availabilityCache,
		publisher: publisher,
		cfg:       cfg,
	}
}

// Create reserves a slot. The request is validated against the court's
// operating hours, then serialized through an advisory slot lock; inside the
// transaction the overlap check runs again so a conflicting booking that
// committed between validation and here is still caught.
func (s *bookingService) Create(ctx context.Context, actor model.Actor, booking *model.Booking) error {
	if actor.UserID == "" {
		return apperrors.Unauthorized("Authentication required to create a booking")
	}
	if booking.UserID == "" {
		booking.UserID = actor.UserID
	}
	if booking.UserID != actor.UserID && !actor.IsAdmin() {
		return apperrors.Forbidden("Cannot create a booking on behalf of another user")
	}

	s.sanitize(booking)
	s.applyDefaults(booking)

	rng, err := timeslot.ParseRange(booking.Start, booking.End)
	if err != nil {
		return apperrors.InvalidRange(err.Error())
	}
	booking.StartMinute = rng.Start
	booking.EndMinute = rng.End

	if err := s.validate(booking); err != nil {
		return err
	}

	if err := s.checkBookingWindow(booking.Date, rng); err != nil {
		return err
	}

	court, err := s.loadCourt(ctx, booking.CourtID)
	if err != nil {
		return err
	}
	if !court.Active {
		return apperrors.Conflict("Court is not accepting bookings")
	}

	hours, err := timeslot.ParseRange(court.OpenTime, court.CloseTime)
	if err != nil {
		return apperrors.Internal("Court has invalid operating hours", err)
	}
	if !hours.Contains(rng) {
		return apperrors.InvalidRange(fmt.Sprintf(
			"Requested time %s is outside court operating hours %s", rng, hours,
		))
	}

	// Acquire advisory lock to prevent race conditions
	lockID, err := s.acquireSlotLock(ctx, booking.CourtID, booking.Date)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoOverlap(sessCtx, booking, rng); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.cache.Invalidate(ctx, booking.CourtID, booking.Date)
	publishBookingEvent(s.publisher, s.cfg.Log, EventBookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"court_id", booking.CourtID,
		"date", booking.Date,
		"range", rng.String(),
	)
	return nil
}

// Cancel moves a booking to cancelled if its effective lifecycle state
// permits it. Cancelling an already-cancelled or completed booking is an
// invalid transition, not a silent no-op.
func (s *bookingService) Cancel(ctx context.Context, actor model.Actor, id string) (*model.Booking, error) {
	if actor.UserID == "" {
		return nil, apperrors.Unauthorized("Authentication required to cancel a booking")
	}

	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeCancel(ctx, actor, booking); err != nil {
		return nil, err
	}

	effective := booking.EffectiveStatus(time.Now().UTC())
	if !model.CanTransition(effective, model.StatusCancelled) {
		return nil, apperrors.InvalidState(fmt.Sprintf(
			"Cannot cancel a booking in status %q", effective,
		))
	}

	// The conditional write is the serialization point: of two racing
	// cancels only one matches an active status, so only one publishes
	// booking.cancelled.
	err = s.repo.UpdateStatus(ctx, id, model.StatusCancelled, []string{model.StatusPending, model.StatusConfirmed})
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			current, findErr := s.repo.FindByID(ctx, id)
			if findErr != nil {
				return nil, apperrors.NotFoundWithID("Booking", id)
			}
			return nil, apperrors.InvalidState(fmt.Sprintf(
				"Cannot cancel a booking in status %q", current.EffectiveStatus(time.Now().UTC()),
			))
		}
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}
	booking.Status = model.StatusCancelled

	s.cache.Invalidate(ctx, booking.CourtID, booking.Date)
	publishBookingEvent(s.publisher, s.cfg.Log, EventBookingCancelled, booking)

	s.cfg.Log.Info("Booking cancelled successfully",
		"id", id,
		"court_id", booking.CourtID,
		"date", booking.Date,
	)
	return booking, nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	booking.Status = booking.EffectiveStatus(time.Now().UTC())
	return booking, nil
}

func (s *bookingService) ListByCourtAndDate(ctx context.Context, courtID string, date string, limit int, offset int64) ([]*model.Booking, int64, error) {
	if courtID == "" || date == "" {
		return nil, 0, apperrors.InvalidInput("court_id and date are required")
	}
	if _, err := timeslot.ParseDate(date); err != nil {
		return nil, 0, apperrors.InvalidInput(err.Error())
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByCourtAndDate(ctx, courtID, date)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "court_id", courtID, "date", date, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByCourtAndDate(ctx, courtID, date, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "court_id", courtID, "date", date, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.deriveStatuses(bookings)
	return bookings, count, nil
}

func (s *bookingService) ListByUser(ctx context.Context, actor model.Actor, limit int, offset int64) ([]*model.Booking, int64, error) {
	if actor.UserID == "" {
		return nil, 0, apperrors.Unauthorized("Authentication required to list bookings")
	}

	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByUser(ctx, actor.UserID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count user bookings", "user_id", actor.UserID, "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindByUser(ctx, actor.UserID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list user bookings", "user_id", actor.UserID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	s.deriveStatuses(bookings)
	return bookings, count, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.CourtID = sanitizer.TrimAndNormalize(b.CourtID)
	b.UserID = sanitizer.TrimAndNormalize(b.UserID)
	b.Date = sanitizer.TrimAndNormalize(b.Date)
	b.Start = sanitizer.TrimAndNormalize(b.Start)
	b.End = sanitizer.TrimAndNormalize(b.End)
}

// applyDefaults confirms bookings immediately. There is no payment or
// approval step between request and reservation, so pending would only be a
// window in which the slot reads as taken without being committed.
func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusConfirmed
	}
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// checkBookingWindow rejects bookings in the past or beyond the advance
// booking horizon.
func (s *bookingService) checkBookingWindow(date string, rng timeslot.Range) error {
	day, err := timeslot.ParseDate(date)
	if err != nil {
		return apperrors.InvalidInput(err.Error())
	}

	now := time.Now().UTC()
	today := now.Truncate(24 * time.Hour)

	if day.Before(today) {
		return apperrors.InvalidRange("Cannot book a slot on a past date")
	}
	if day.Equal(today) {
		nowMinute := now.Hour()*60 + now.Minute()
		if rng.End <= nowMinute {
			return apperrors.InvalidRange("Cannot book a slot that has already ended")
		}
	}

	horizon := today.AddDate(0, 0, s.cfg.MaxAdvanceBookingDays)
	if day.After(horizon) {
		return apperrors.InvalidRange(fmt.Sprintf(
			"Bookings may be made at most %d days in advance", s.cfg.MaxAdvanceBookingDays,
		))
	}

	return nil
}

func (s *bookingService) loadCourt(ctx context.Context, courtID string) (*model.Court, error) {
	court, err := s.catalog.FindCourtByID(ctx, courtID)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrCourtNotFound) {
			return nil, apperrors.NotFoundWithID("Court", courtID)
		}
		return nil, apperrors.Internal("Failed to load court", err)
	}
	return court, nil
}

func (s *bookingService) verifyNoOverlap(ctx context.Context, booking *model.Booking, rng timeslot.Range) error {
	existing, err := s.repo.FindOverlapping(ctx, booking.CourtID, booking.Date, rng)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}

	for _, b := range existing {
		if b.ID == booking.ID {
			continue
		}
		return apperrors.Conflict(fmt.Sprintf(
			"Slot overlaps with an existing booking (%s-%s)", b.Start, b.End,
		))
	}
	return nil
}

// authorizeCancel permits the booking owner, a platform admin, or the owner
// of the venue the court belongs to.
func (s *bookingService) authorizeCancel(ctx context.Context, actor model.Actor, booking *model.Booking) error {
	if actor.IsAdmin() || booking.UserID == actor.UserID {
		return nil
	}

	if actor.Role == model.RoleOwner {
		court, err := s.loadCourt(ctx, booking.CourtID)
		if err != nil {
			return err
		}
		venue, err := s.catalog.FindVenueByID(ctx, court.VenueID)
		if err != nil {
			if errors.Is(err, bookingserrors.ErrVenueNotFound) {
				return apperrors.NotFoundWithID("Venue", court.VenueID)
			}
			return apperrors.Internal("Failed to load venue", err)
		}
		if venue.OwnerID == actor.UserID {
			return nil
		}
	}

	return apperrors.Forbidden("Not allowed to cancel this booking")
}

func (s *bookingService) deriveStatuses(bookings []*model.Booking) {
	now := time.Now().UTC()
	for _, b := range bookings {
		b.Status = b.EffectiveStatus(now)
	}
}

// acquireSlotLock creates an advisory lock serializing booking creation on
// the court and date. The lock covers the whole day, not a single start
// minute: ranges may span several slots, so two creates for [18:00,20:00)
// and [19:00,21:00) must contend on the same key — the overlap re-check
// inside the transaction reads a snapshot and cannot serialize two inserts
// of distinct documents on its own. Returns the lock ID if successful, or a
// conflict error if another request holds the lock.
func (s *bookingService) acquireSlotLock(ctx context.Context, courtID, date string) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s", courtID, date)

	lock := &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.SlotLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}

	return lockID, nil
}

// releaseSlotLock removes the advisory lock
func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
