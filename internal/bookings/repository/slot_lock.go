package repository

import (
	"context"
	"time"

	"lamsa/pkg/config"
	"lamsa/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const LocksCollection = "SlotLocks"

// SlotLockRepository holds short-lived advisory locks taken while a
// booking is re-validated and inserted. A TTL index on expires_at
// reaps abandoned locks.
type SlotLockRepository interface {
	Create(ctx context.Context, lock *model.SlotLock) error
	Delete(ctx context.Context, lockID string) error
}

type mongoSlotLockRepository struct {
	collection *mongo.Collection
}

func NewSlotLockRepository(cfg *config.Config) SlotLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSlotLockRepository{
		collection: db.Collection(LocksCollection),
	}
}

// Create returns a duplicate key error when the lock is already held.
func (r *mongoSlotLockRepository) Create(ctx context.Context, lock *model.SlotLock) error {
	lock.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, lock)
	return err
}

func (r *mongoSlotLockRepository) Delete(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
