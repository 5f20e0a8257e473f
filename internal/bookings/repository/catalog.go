package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "quickcourt/internal/bookings/errors"
	"quickcourt/pkg/config"
	"quickcourt/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CourtCatalog is the bookings service's read-only view of the court and
// venue collections owned by the courts service.
type CourtCatalog interface {
	FindCourtByID(ctx context.Context, id string) (*model.Court, error)
	FindVenueByID(ctx context.Context, id string) (*model.Venue, error)
}

type mongoCourtCatalog struct {
	cfg    *config.Config
	courts *mongo.Collection
	venues *mongo.Collection
}

func NewCourtCatalog(cfg *config.Config) CourtCatalog {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCourtCatalog{
		cfg:    cfg,
		courts: db.Collection("Courts"),
		venues: db.Collection("Venues"),
	}
}

func (c *mongoCourtCatalog) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (c *mongoCourtCatalog) FindCourtByID(ctx context.Context, id string) (*model.Court, error) {
	ctx, cancel := c.withTimeout(ctx, c.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrCourtNotFound, id)
	}

	var court model.Court
	err = c.courts.FindOne(ctx, bson.M{"_id": objectID}).Decode(&court)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrCourtNotFound
		}
		return nil, fmt.Errorf("failed to find court: %w", err)
	}

	return &court, nil
}

func (c *mongoCourtCatalog) FindVenueByID(ctx context.Context, id string) (*model.Venue, error) {
	ctx, cancel := c.withTimeout(ctx, c.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrVenueNotFound, id)
	}

	var venue model.Venue
	err = c.venues.FindOne(ctx, bson.M{"_id": objectID}).Decode(&venue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrVenueNotFound
		}
		return nil, fmt.Errorf("failed to find venue: %w", err)
	}

	return &venue, nil
}
