package service

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"lamsa/internal/bookings/repository"
	"lamsa/internal/bookings/validator"
	"lamsa/pkg/config"
	mongotx "lamsa/pkg/db/mongo"
	apperrors "lamsa/pkg/errors"
	"lamsa/pkg/kafka"
	"lamsa/pkg/logger"
	"lamsa/pkg/model"

	"go.mongodb.org/mongo-driver/mongo"
)

type mockBookingRepo struct {
	create     func(ctx context.Context, b *model.Booking) error
	findByID   func(ctx context.Context, id string) (*model.Booking, error)
	updateStat func(ctx context.Context, id string, status model.BookingStatus) error
}

func (m *mockBookingRepo) Create(ctx context.Context, b *model.Booking) error {
	if m.create != nil {
		return m.create(ctx, b)
	}
	b.ID = "booking-1"
	return nil
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByID != nil {
		return m.findByID(ctx, id)
	}
	return nil, nil
}

func (m *mockBookingRepo) FindByProviderAndDate(ctx context.Context, providerID, date string) ([]*model.Booking, error) {
	return nil, nil
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) error {
	if m.updateStat != nil {
		return m.updateStat(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepo) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

var _ repository.BookingRepository = (*mockBookingRepo)(nil)

type mockLockRepo struct {
	created []string
	deleted []string
	err     error
}

func (m *mockLockRepo) Create(ctx context.Context, lock *model.SlotLock) error {
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, lock.ID)
	return nil
}

func (m *mockLockRepo) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockAvailability struct {
	verdict *model.Verdict
	err     error
}

func (m *mockAvailability) GetAvailableSlots(ctx context.Context, query *model.SlotQuery) (*model.DaySchedule, error) {
	return nil, nil
}

func (m *mockAvailability) CheckAvailability(ctx context.Context, req *model.AvailabilityCheck) (*model.Verdict, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.verdict != nil {
		return m.verdict, nil
	}
	return &model.Verdict{Accepted: true}, nil
}

type mockPublisher struct {
	published []kafka.Message
	err       error
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
		Log:          logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Output: io.Discard}),
	}
}

func validBooking() *model.Booking {
	return &model.Booking{
		ProviderID: "prov-1",
		CustomerID: "cust-1",
		Date:       "2026-09-06",
		StartTime:  "10:00",
		EndTime:    "10:30",
	}
}

func newService(repo *mockBookingRepo, locks *mockLockRepo, avail *mockAvailability, pub *mockPublisher) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, locks, avail, validator.NewBookingValidator(cfg.Log), pub, cfg)
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

func TestCreate_Success(t *testing.T) {
	locks := &mockLockRepo{}
	pub := &mockPublisher{}
	svc := newService(&mockBookingRepo{}, locks, &mockAvailability{}, pub)

	b := validBooking()
	if err := svc.Create(context.Background(), b); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if b.Status != model.StatusPending {
		t.Errorf("expected default status pending, got %s", b.Status)
	}
	if len(locks.created) != 1 || len(locks.deleted) != 1 {
		t.Errorf("expected lock taken and released, got created=%v deleted=%v", locks.created, locks.deleted)
	}
	wantLock := "slot_lock_prov-1_2026-09-06_10:00"
	if locks.created[0] != wantLock {
		t.Errorf("expected lock id %s, got %s", wantLock, locks.created[0])
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected one published event, got %d", len(pub.published))
	}
	msg := pub.published[0]
	if msg.Key != "prov-1" {
		t.Errorf("events must be keyed by provider id, got %s", msg.Key)
	}
	if msg.Headers[kafka.HeaderEventType] != EventBookingCreated {
		t.Errorf("expected event type %s, got %s", EventBookingCreated, msg.Headers[kafka.HeaderEventType])
	}
	var event BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		t.Fatalf("failed to decode event payload: %v", err)
	}
	if event.BookingID != "booking-1" || event.StartTime != "10:00" {
		t.Errorf("unexpected event payload: %+v", event)
	}
}

func TestCreate_RejectedVerdictAbortsCommit(t *testing.T) {
	tests := []struct {
		reasonCode string
		wantStatus int
	}{
		{apperrors.CodeOutOfBookingWindow, 422},
		{apperrors.CodeSlotNotFound, 404},
		{apperrors.CodeSlotUnavailable, 409},
		{apperrors.CodeInsufficientTime, 422},
	}

	for _, tt := range tests {
		t.Run(tt.reasonCode, func(t *testing.T) {
			locks := &mockLockRepo{}
			pub := &mockPublisher{}
			avail := &mockAvailability{verdict: &model.Verdict{
				Accepted: false, ReasonCode: tt.reasonCode, Message: "rejected",
			}}
			svc := newService(&mockBookingRepo{}, locks, avail, pub)

			err := svc.Create(context.Background(), validBooking())
			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != tt.reasonCode {
				t.Errorf("expected code %s, got %s", tt.reasonCode, appErr.Code)
			}
			if appErr.StatusCode() != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, appErr.StatusCode())
			}
			if len(locks.created) != 0 {
				t.Error("no lock should be taken for a rejected booking")
			}
			if len(pub.published) != 0 {
				t.Error("no event should be published for a rejected booking")
			}
		})
	}
}

func TestCreate_LockHeldIsSlotConflict(t *testing.T) {
	locks := &mockLockRepo{err: duplicateKeyError()}
	svc := newService(&mockBookingRepo{}, locks, &mockAvailability{}, &mockPublisher{})

	err := svc.Create(context.Background(), validBooking())
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.CodeSlotConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeSlotConflict, appErr.Code)
	}
}

func TestCreate_UniqueIndexViolationIsSlotConflict(t *testing.T) {
	repo := &mockBookingRepo{
		create: func(_ context.Context, _ *model.Booking) error {
			return duplicateKeyError()
		},
	}
	locks := &mockLockRepo{}
	pub := &mockPublisher{}
	svc := newService(repo, locks, &mockAvailability{}, pub)

	err := svc.Create(context.Background(), validBooking())
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.CodeSlotConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeSlotConflict, appErr.Code)
	}
	if len(locks.deleted) != 1 {
		t.Error("lock must be released even when the insert fails")
	}
	if len(pub.published) != 0 {
		t.Error("no event should be published for a failed insert")
	}
}

func TestCreate_ValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *model.Booking)
	}{
		{"missing provider", func(b *model.Booking) { b.ProviderID = "" }},
		{"bad date", func(b *model.Booking) { b.Date = "06/09/2026" }},
		{"bad clock", func(b *model.Booking) { b.StartTime = "25:00" }},
		{"end before start", func(b *model.Booking) { b.StartTime = "11:00"; b.EndTime = "10:00" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newService(&mockBookingRepo{}, &mockLockRepo{}, &mockAvailability{}, &mockPublisher{})
			b := validBooking()
			tt.mutate(b)

			err := svc.Create(context.Background(), b)
			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				t.Fatalf("expected AppError, got %v", err)
			}
			if appErr.Code != apperrors.CodeValidation {
				t.Errorf("expected code %s, got %s", apperrors.CodeValidation, appErr.Code)
			}
		})
	}
}

func TestCreate_PublishFailureDoesNotFailBooking(t *testing.T) {
	pub := &mockPublisher{err: fmt.Errorf("broker unreachable")}
	svc := newService(&mockBookingRepo{}, &mockLockRepo{}, &mockAvailability{}, pub)

	if err := svc.Create(context.Background(), validBooking()); err != nil {
		t.Fatalf("a committed booking must not fail on event publish, got %v", err)
	}
}

func TestCancel(t *testing.T) {
	stored := &model.Booking{
		ID: "booking-1", ProviderID: "prov-1", CustomerID: "cust-1",
		Date: "2026-09-06", StartTime: "10:00", EndTime: "10:30",
		Status: model.StatusConfirmed,
	}
	repo := &mockBookingRepo{
		findByID: func(_ context.Context, id string) (*model.Booking, error) {
			clone := *stored
			return &clone, nil
		},
	}
	pub := &mockPublisher{}
	svc := newService(repo, &mockLockRepo{}, &mockAvailability{}, pub)

	if err := svc.Cancel(context.Background(), "booking-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pub.published) != 1 {
		t.Fatalf("expected a cancellation event, got %d", len(pub.published))
	}
	if got := pub.published[0].Headers[kafka.HeaderEventType]; got != EventBookingCancelled {
		t.Errorf("expected event type %s, got %s", EventBookingCancelled, got)
	}
}

func TestCancel_CompletedBookingRejected(t *testing.T) {
	repo := &mockBookingRepo{
		findByID: func(_ context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.StatusCompleted}, nil
		},
	}
	svc := newService(repo, &mockLockRepo{}, &mockAvailability{}, &mockPublisher{})

	err := svc.Cancel(context.Background(), "booking-1")
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.CodeConflict {
		t.Errorf("expected code %s, got %s", apperrors.CodeConflict, appErr.Code)
	}
}

func TestCancel_AlreadyCancelledIsNoOp(t *testing.T) {
	repo := &mockBookingRepo{
		findByID: func(_ context.Context, id string) (*model.Booking, error) {
			return &model.Booking{ID: id, Status: model.StatusCancelled}, nil
		},
	}
	pub := &mockPublisher{}
	svc := newService(repo, &mockLockRepo{}, &mockAvailability{}, pub)

	if err := svc.Cancel(context.Background(), "booking-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(pub.published) != 0 {
		t.Error("no event for an already-cancelled booking")
	}
}
