package repository

import (
	"context"
	"fmt"

	"lamsa/pkg/config"
	"lamsa/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const BookingsCollection = "Bookings"

// BookingRepository is the engine's read-only view of existing
// reservations. The commit path owns all writes.
type BookingRepository interface {
	Blocking(ctx context.Context, providerID, date string) ([]*model.Booking, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(BookingsCollection),
	}
}

// Blocking returns the bookings that still hold a slot on the given
// date, i.e. status pending or confirmed.
func (r *mongoBookingRepository) Blocking(ctx context.Context, providerID, date string) ([]*model.Booking, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"provider_id": providerID,
		"date":        date,
		"status":      bson.M{"$in": []model.BookingStatus{model.StatusPending, model.StatusConfirmed}},
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}
