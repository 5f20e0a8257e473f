package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	courtserrors "quickcourt/internal/courts/errors"
	"quickcourt/pkg/config"
	"quickcourt/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CourtCollectionName   = "Courts"
	BookingCollectionName = "Bookings"
)

type CourtRepository interface {
	Create(ctx context.Context, court *model.Court) error
	FindByID(ctx context.Context, id string) (*model.Court, error)
	FindByVenue(ctx context.Context, venueID string, limit int, offset int64) ([]*model.Court, error)
	CountByVenue(ctx context.Context, venueID string) (int64, error)
	Update(ctx context.Context, id string, court *model.Court) error
	Deactivate(ctx context.Context, id string) error
	CountActiveBookings(ctx context.Context, courtID string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoCourtRepository struct {
	cfg      *config.Config
	courts   *mongo.Collection
	bookings *mongo.Collection
}

func NewMongoCourtRepository(cfg *config.Config) CourtRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoCourtRepository{
		cfg:      cfg,
		courts:   db.Collection(CourtCollectionName),
		bookings: db.Collection(BookingCollectionName),
	}
}

func (r *mongoCourtRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoCourtRepository) Create(ctx context.Context, court *model.Court) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	court.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.courts.InsertOne(ctx, court)
	if err != nil {
		return fmt.Errorf("failed to create court: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		court.ID = oid.Hex()
	}
	return nil
}

func (r *mongoCourtRepository) FindByID(ctx context.Context, id string) (*model.Court, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", courtserrors.ErrInvalidID, id)
	}

	var court model.Court
	err = r.courts.FindOne(ctx, bson.M{"_id": objectID}).Decode(&court)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, courtserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find court: %w", err)
	}

	return &court, nil
}

func (r *mongoCourtRepository) FindByVenue(ctx context.Context, venueID string, limit int, offset int64) ([]*model.Court, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.courts.Find(ctx, bson.M{"venue_id": venueID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find courts: %w", err)
	}
	defer cursor.Close(ctx)

	var courts []*model.Court
	if err = cursor.All(ctx, &courts); err != nil {
		return nil, fmt.Errorf("failed to decode courts: %w", err)
	}

	return courts, nil
}

func (r *mongoCourtRepository) CountByVenue(ctx context.Context, venueID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.courts.CountDocuments(ctx, bson.M{"venue_id": venueID})
	if err != nil {
		return 0, fmt.Errorf("failed to count courts: %w", err)
	}
	return count, nil
}

func (r *mongoCourtRepository) Update(ctx context.Context, id string, court *model.Court) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", courtserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":           court.Name,
			"sport":          court.Sport,
			"price_per_hour": court.PricePerHour,
			"open_time":      court.OpenTime,
			"close_time":     court.CloseTime,
		},
	}

	result, err := r.courts.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update court: %w", err)
	}

	if result.MatchedCount == 0 {
		return courtserrors.ErrNotFound
	}

	return nil
}

// Deactivate soft-deletes a court. Existing bookings stay on record; the
// court simply stops accepting new ones.
func (r *mongoCourtRepository) Deactivate(ctx context.Context, id string) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", courtserrors.ErrInvalidID, id)
	}

	result, err := r.courts.UpdateOne(ctx, bson.M{"_id": objectID}, bson.M{
		"$set": bson.M{"active": false},
	})
	if err != nil {
		return fmt.Errorf("failed to deactivate court: %w", err)
	}

	if result.MatchedCount == 0 {
		return courtserrors.ErrNotFound
	}

	return nil
}

// CountActiveBookings reads the bookings collection owned by the bookings
// service. Operating-hours changes are refused while this is non-zero.
func (r *mongoCourtRepository) CountActiveBookings(ctx context.Context, courtID string) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.bookings.CountDocuments(ctx, bson.M{
		"court_id": courtID,
		"status":   bson.M{"$in": []string{model.StatusPending, model.StatusConfirmed}},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active bookings: %w", err)
	}
	return count, nil
}

func (r *mongoCourtRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.courts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "venue_id", Value: 1},
			{Key: "name", Value: 1},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create court indexes: %w", err)
	}
	return nil
}
