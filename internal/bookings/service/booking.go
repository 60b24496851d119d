package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	availservice "lamsa/internal/availability/service"
	bookingserrors "lamsa/internal/bookings/errors"
	"lamsa/internal/bookings/repository"
	"lamsa/internal/bookings/validator"
	"lamsa/pkg/config"
	apperrors "lamsa/pkg/errors"
	"lamsa/pkg/interval"
	"lamsa/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingService is the commit path. It re-validates the slot through
// the availability engine, holds an advisory lock across the insert,
// and relies on the unique slot index as the final guarantee against
// double booking.
type BookingService interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Cancel(ctx context.Context, id string) error
}

type bookingService struct {
	repo         repository.BookingRepository
	lockRepo     repository.SlotLockRepository
	availability availservice.AvailabilityService
	validator    *validator.BookingValidator
	publisher    Publisher
	cfg          *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.SlotLockRepository,
	availability availservice.AvailabilityService,
	validator *validator.BookingValidator,
	publisher Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:         repo,
		lockRepo:     lockRepo,
		availability: availability,
		validator:    validator,
		publisher:    publisher,
		cfg:          cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, b *model.Booking) error {
	s.applyDefaults(b)

	if err := s.validator.Validate(b); err != nil {
		s.cfg.Log.Warn("Booking validation failed",
			"provider_id", b.ProviderID,
			"error", err,
		)
		return apperrors.Validation("Booking validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	slot, err := interval.ParseRange(b.StartTime, b.EndTime)
	if err != nil {
		return apperrors.InvalidInput("Booking times could not be interpreted")
	}

	// Re-validate through the engine: a slot shown available minutes
	// ago may be gone, the window may have closed, or the duration may
	// no longer fit.
	verdict, err := s.availability.CheckAvailability(ctx, &model.AvailabilityCheck{
		ProviderID:      b.ProviderID,
		ServiceID:       b.ServiceID,
		Date:            b.Date,
		Time:            b.StartTime,
		DurationMin:     slot.Duration(),
		RequesterGender: b.CustomerGender,
	})
	if err != nil {
		return err
	}
	if !verdict.Accepted {
		return availservice.RejectionError(verdict)
	}

	lockID, err := s.acquireSlotLock(ctx, b)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.lockRepo.Delete(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release slot lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.repo.Create(sessCtx, b); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return apperrors.SlotConflict("This slot has just been taken")
			}
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking",
			"provider_id", b.ProviderID,
			"date", b.Date,
			"start_time", b.StartTime,
			"error", err,
		)
		return err
	}

	s.publishEvent(ctx, EventBookingCreated, b)

	s.cfg.Log.Info("Booking created successfully",
		"id", b.ID,
		"provider_id", b.ProviderID,
		"date", b.Date,
		"start_time", b.StartTime,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}
	return b, nil
}

// Cancel releases the slot: the unique index only covers active
// bookings, so a cancelled slot becomes insertable again.
func (s *bookingService) Cancel(ctx context.Context, id string) error {
	b, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b.Status == model.StatusCancelled {
		return nil
	}
	if b.Status == model.StatusCompleted {
		return apperrors.Conflict("Completed bookings cannot be cancelled")
	}

	if err := s.repo.UpdateStatus(ctx, id, model.StatusCancelled); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to cancel booking", err)
	}

	b.Status = model.StatusCancelled
	s.publishEvent(ctx, EventBookingCancelled, b)

	s.cfg.Log.Info("Booking cancelled", "id", id, "provider_id", b.ProviderID)
	return nil
}

func (s *bookingService) applyDefaults(b *model.Booking) {
	if b.Status == "" {
		b.Status = model.StatusPending
	}
}

// acquireSlotLock narrows the window between re-validation and insert.
// The lock id is the slot's coordinates, so two writers for the same
// slot collide here before either reaches the unique index.
func (s *bookingService) acquireSlotLock(ctx context.Context, b *model.Booking) (string, error) {
	lockID := fmt.Sprintf("slot_lock_%s_%s_%s", b.ProviderID, b.Date, b.StartTime)

	err := s.lockRepo.Create(ctx, &model.SlotLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(10 * time.Second),
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.SlotConflict("This slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire slot lock", err)
	}
	return lockID, nil
}

// publishEvent is best effort: the booking is already committed, so a
// broker outage must not fail the request. The producer's DLQ handles
// retryable delivery.
func (s *bookingService) publishEvent(ctx context.Context, eventType string, b *model.Booking) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, bookingEventMessage(eventType, b)); err != nil {
		s.cfg.Log.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", b.ID,
			"error", err,
		)
	}
}
