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

type VenueService interface {
	Create(ctx context.Context, actor model.Actor, venue *model.Venue) error
	GetByID(ctx context.Context, id string) (*model.Venue, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, int64, error)
}

type venueService struct {
	repo      repository.VenueRepository
	validator *validator.CourtValidator
	cfg       *config.Config
}

func NewVenueService(
	repo repository.VenueRepository,
	validator *validator.CourtValidator,
	cfg *config.Config,
) VenueService {
	return &venueService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *venueService) Create(ctx context.Context, actor model.Actor, venue *model.Venue) error {
	if actor.UserID == "" {
		return apperrors.Unauthorized("Authentication required to create a venue")
	}
	if actor.Role != model.RoleOwner && !actor.IsAdmin() {
		return apperrors.Forbidden("Only venue owners may create venues")
	}

	if venue.OwnerID == "" {
		venue.OwnerID = actor.UserID
	}
	if venue.OwnerID != actor.UserID && !actor.IsAdmin() {
		return apperrors.Forbidden("Cannot create a venue for another owner")
	}

	venue.Name = sanitizer.NormalizeName(venue.Name)
	venue.City = sanitizer.TrimAndNormalize(venue.City)
	venue.Address = sanitizer.TrimAndNormalize(venue.Address)

	if err := s.validator.ValidateVenue(venue); err != nil {
		s.cfg.Log.Warn("Venue validation failed", "error", err)
		return apperrors.Validation("Venue validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, venue); err != nil {
		s.cfg.Log.Error("Failed to create venue", "error", err)
		return apperrors.Internal("Failed to create venue", err)
	}

	s.cfg.Log.Info("Venue created successfully", "id", venue.ID, "owner_id", venue.OwnerID)
	return nil
}

func (s *venueService) GetByID(ctx context.Context, id string) (*model.Venue, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Venue ID cannot be empty")
	}

	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, courtserrors.ErrVenueNotFound) {
			return nil, apperrors.NotFoundWithID("Venue", id)
		}
		if errors.Is(err, courtserrors.ErrVenueInvalidID) {
			return nil, apperrors.InvalidInput("Invalid venue ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve venue", err)
	}

	return venue, nil
}

func (s *venueService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Venue, int64, error) {
	var count int64
	var venues []*model.Venue
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count venues", "error", errCount)
			errCount = apperrors.Internal("Failed to count venues", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		venues, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list venues", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve venues", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return venues, count, nil
}
