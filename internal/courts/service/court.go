package service

import (
	"context"
	"errors"
	"sync"

	courtserrors "quickcourt/internal/courts/errors"
	"quickcourt/internal/courts/repository"
	"quickcourt/internal/courts/validator"
	"quickcourt/pkg/config"
	apperrors "quickcourt/pkg/errors"
	"quickcourt/pkg/model"
	"quickcourt/pkg/sanitizer"
)

type CourtService interface {
	Create(ctx context.Context, actor model.Actor, court *model.Court) error
	GetByID(ctx context.Context, id string) (*model.Court, error)
	GetByVenue(ctx context.Context, venueID string, limit int, offset int64) ([]*model.Court, int64, error)
	Update(ctx context.Context, actor model.Actor, id string, updates *model.CourtUpdate) (*model.Court, error)
	Deactivate(ctx context.Context, actor model.Actor, id string) error
}

type courtService struct {
	repo      repository.CourtRepository
	venueRepo repository.VenueRepository
	validator *validator.CourtValidator
	cfg       *config.Config
}

func NewCourtService(
	repo repository.CourtRepository,
	venueRepo repository.VenueRepository,
	validator *validator.CourtValidator,
	cfg *config.Config,
) CourtService {
	return &courtService{
		repo:      repo,
		venueRepo: venueRepo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *courtService) Create(ctx context.Context, actor model.Actor, court *model.Court) error {
	if actor.UserID == "" {
		return apperrors.Unauthorized("Authentication required to create a court")
	}

	venue, err := s.loadVenue(ctx, court.VenueID)
	if err != nil {
		return err
	}
	if !actor.CanManageVenue(venue) {
		return apperrors.Forbidden("Not allowed to manage this venue")
	}

	s.sanitize(court)
	s.applyDefaults(court)

	if err := s.validate(court); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, court); err != nil {
		s.cfg.Log.Error("Failed to create court", "error", err)
		return apperrors.Internal("Failed to create court", err)
	}

	s.cfg.Log.Info("Court created successfully",
		"id", court.ID,
		"venue_id", court.VenueID,
		"sport", court.Sport,
	)
	return nil
}

func (s *courtService) GetByID(ctx context.Context, id string) (*model.Court, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Court ID cannot be empty")
	}

	court, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, courtserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Court", id)
		}
		if errors.Is(err, courtserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid court ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve court", err)
	}

	return court, nil
}

func (s *courtService) GetByVenue(ctx context.Context, venueID string, limit int, offset int64) ([]*model.Court, int64, error) {
	if venueID == "" {
		return nil, 0, apperrors.InvalidInput("venue_id is required")
	}

	var count int64
	var courts []*model.Court
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountByVenue(ctx, venueID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count courts", "venue_id", venueID, "error", errCount)
			errCount = apperrors.Internal("Failed to count courts", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		courts, errFind = s.repo.FindByVenue(ctx, venueID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list courts", "venue_id", venueID, "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve courts", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return courts, count, nil
}

// Update applies a partial court update. Operating-hours changes are refused
// while the court has active bookings: shrinking the window could leave an
// existing reservation outside it.
func (s *courtService) Update(ctx context.Context, actor model.Actor, id string, updates *model.CourtUpdate) (*model.Court, error) {
	if actor.UserID == "" {
		return nil, apperrors.Unauthorized("Authentication required to update a court")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	venue, err := s.loadVenue(ctx, existing.VenueID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManageVenue(venue) {
		return nil, apperrors.Forbidden("Not allowed to manage this venue")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Court update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	if updates.ChangesOperatingHours() {
		active, err := s.repo.CountActiveBookings(ctx, id)
		if err != nil {
			return nil, apperrors.Internal("Failed to check active bookings", err)
		}
		if active > 0 {
			return nil, apperrors.Conflict("Cannot change operating hours while the court has active bookings")
		}
	}

	merged := s.mergeCourtUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, merged); err != nil {
		if errors.Is(err, courtserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Court", id)
		}
		s.cfg.Log.Error("Failed to update court", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to update court", err)
	}

	s.cfg.Log.Info("Court updated successfully", "id", id)
	return merged, nil
}

func (s *courtService) Deactivate(ctx context.Context, actor model.Actor, id string) error {
	if actor.UserID == "" {
		return apperrors.Unauthorized("Authentication required to deactivate a court")
	}

	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	venue, err := s.loadVenue(ctx, existing.VenueID)
	if err != nil {
		return err
	}
	if !actor.CanManageVenue(venue) {
		return apperrors.Forbidden("Not allowed to manage this venue")
	}

	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, courtserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Court", id)
		}
		return apperrors.Internal("Failed to deactivate court", err)
	}

	s.cfg.Log.Info("Court deactivated", "id", id)
	return nil
}

// --- Helpers ---

func (s *courtService) sanitize(c *model.Court) {
	c.Name = sanitizer.NormalizeName(c.Name)
	c.Sport = sanitizer.NormalizeSport(c.Sport)
	c.OpenTime = sanitizer.TrimAndNormalize(c.OpenTime)
	c.CloseTime = sanitizer.TrimAndNormalize(c.CloseTime)
}

func (s *courtService) applyDefaults(c *model.Court) {
	if c.OpenTime == "" {
		c.OpenTime = s.cfg.DefaultOpenTime
	}
	if c.CloseTime == "" {
		c.CloseTime = s.cfg.DefaultCloseTime
	}
	c.Active = true
}

func (s *courtService) validate(court *model.Court) error {
	if err := s.validator.ValidateCourt(court); err != nil {
		s.cfg.Log.Warn("Court validation failed", "error", err)
		return apperrors.Validation("Court validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *courtService) mergeCourtUpdates(existing *model.Court, updates *model.CourtUpdate) *model.Court {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Sport != "" {
		merged.Sport = updates.Sport
	}
	if updates.PricePerHour != nil {
		merged.PricePerHour = *updates.PricePerHour
	}
	if updates.OpenTime != "" {
		merged.OpenTime = updates.OpenTime
	}
	if updates.CloseTime != "" {
		merged.CloseTime = updates.CloseTime
	}

	return &merged
}

func (s *courtService) loadVenue(ctx context.Context, venueID string) (*model.Venue, error) {
	venue, err := s.venueRepo.FindByID(ctx, venueID)
	if err != nil {
		if errors.Is(err, courtserrors.ErrVenueNotFound) {
			return nil, apperrors.NotFoundWithID("Venue", venueID)
		}
		if errors.Is(err, courtserrors.ErrVenueInvalidID) {
			return nil, apperrors.InvalidInput("Invalid venue ID format")
		}
		return nil, apperrors.Internal("Failed to load venue", err)
	}
	return venue, nil
}
