package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	availerrors "lamsa/internal/availability/errors"
	"lamsa/pkg/config"
	"lamsa/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	SchedulesCollection    = "WorkingSchedules"
	TimeOffsCollection     = "TimeOffs"
	SpecialDatesCollection = "SpecialDates"
	RamadanCollection      = "RamadanSchedules"
	SettingsCollection     = "AvailabilitySettings"
	ServicesCollection     = "Services"
)

// ScheduleRepository is the engine's read-only view of the schedule and
// exception store. Empty collections are normal results, not errors.
type ScheduleRepository interface {
	WorkingSchedules(ctx context.Context, providerID string) ([]*model.WorkingSchedule, error)
	TimeOffsCovering(ctx context.Context, providerID, date string) ([]*model.TimeOff, error)
	SpecialDate(ctx context.Context, providerID, date string) (*model.SpecialDate, error)
	RamadanSchedule(ctx context.Context, providerID string, year int) (*model.RamadanSchedule, error)
	Settings(ctx context.Context, providerID string) (*model.AvailabilitySettings, error)
	Service(ctx context.Context, serviceID string) (*model.Service, error)
}

type mongoScheduleRepository struct {
	cfg *config.Config
	db  *mongo.Database
}

func NewMongoScheduleRepository(cfg *config.Config) ScheduleRepository {
	return &mongoScheduleRepository{
		cfg: cfg,
		db:  cfg.Client.Mongo.Database(cfg.MongoDatabaseName),
	}
}

// withTimeout wraps the context with a timeout if not already in a transaction.
// When inside a transaction (SessionContext), returns the original context
// unchanged with a no-op cancel function.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoScheduleRepository) WorkingSchedules(ctx context.Context, providerID string) ([]*model.WorkingSchedule, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "priority", Value: -1},
		{Key: "created_at", Value: -1},
	})

	cursor, err := r.db.Collection(SchedulesCollection).Find(ctx, bson.M{"provider_id": providerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query working schedules: %w", err)
	}
	defer cursor.Close(ctx)

	var schedules []*model.WorkingSchedule
	if err = cursor.All(ctx, &schedules); err != nil {
		return nil, fmt.Errorf("failed to decode working schedules: %w", err)
	}
	return schedules, nil
}

func (r *mongoScheduleRepository) TimeOffsCovering(ctx context.Context, providerID, date string) ([]*model.TimeOff, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	// Dates are YYYY-MM-DD strings, so range comparison works directly.
	filter := bson.M{
		"provider_id":     providerID,
		"start_date":      bson.M{"$lte": date},
		"end_date":        bson.M{"$gte": date},
		"blocks_bookings": true,
	}

	cursor, err := r.db.Collection(TimeOffsCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query time off: %w", err)
	}
	defer cursor.Close(ctx)

	var timeOffs []*model.TimeOff
	if err = cursor.All(ctx, &timeOffs); err != nil {
		return nil, fmt.Errorf("failed to decode time off: %w", err)
	}
	return timeOffs, nil
}

func (r *mongoScheduleRepository) SpecialDate(ctx context.Context, providerID, date string) (*model.SpecialDate, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var sd model.SpecialDate
	err := r.db.Collection(SpecialDatesCollection).
		FindOne(ctx, bson.M{"provider_id": providerID, "date": date}).
		Decode(&sd)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find special date: %w", err)
	}
	return &sd, nil
}

func (r *mongoScheduleRepository) RamadanSchedule(ctx context.Context, providerID string, year int) (*model.RamadanSchedule, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var rs model.RamadanSchedule
	err := r.db.Collection(RamadanCollection).
		FindOne(ctx, bson.M{"provider_id": providerID, "year": year}).
		Decode(&rs)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ramadan schedule: %w", err)
	}
	return &rs, nil
}

func (r *mongoScheduleRepository) Settings(ctx context.Context, providerID string) (*model.AvailabilitySettings, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var s model.AvailabilitySettings
	err := r.db.Collection(SettingsCollection).
		FindOne(ctx, bson.M{"provider_id": providerID}).
		Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find availability settings: %w", err)
	}
	return &s, nil
}

func (r *mongoScheduleRepository) Service(ctx context.Context, serviceID string) (*model.Service, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", availerrors.ErrInvalidID, serviceID)
	}

	var svc model.Service
	err = r.db.Collection(ServicesCollection).
		FindOne(ctx, bson.M{"_id": objectID}).
		Decode(&svc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", availerrors.ErrNotFound, serviceID)
		}
		return nil, fmt.Errorf("failed to find service: %w", err)
	}
	return &svc, nil
}
