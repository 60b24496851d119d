package model

import (
	"time"
)

type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// Booking is a reservation of one slot. The availability engine reads
// confirmed/pending bookings to mark slots unavailable and never mutates
// them; the write path owns the (provider, date, start time) uniqueness
// guarantee.
type Booking struct {
	ID         string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProviderID string        `json:"provider_id" bson:"provider_id" validate:"required"`
	CustomerID string        `json:"customer_id" bson:"customer_id" validate:"required"`
	// CustomerGender feeds women-only-hours gating on the commit path.
	CustomerGender string `json:"customer_gender,omitempty" bson:"customer_gender,omitempty" validate:"omitempty,oneof=female male"`
	ServiceID  string        `json:"service_id,omitempty" bson:"service_id,omitempty" validate:"omitempty"`
	Date       string        `json:"date" bson:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string        `json:"start_time" bson:"start_time" validate:"required,clock"`
	EndTime    string        `json:"end_time" bson:"end_time" validate:"required,clock"`
	Status     BookingStatus `json:"status" bson:"status" validate:"required,oneof=pending confirmed cancelled completed"`
	CreatedAt  time.Time     `json:"created_at" bson:"created_at" validate:"omitempty"`
}

// Blocks reports whether the booking still holds its slot.
func (b *Booking) Blocks() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// SlotLock is an advisory lock taken by the booking write path while it
// re-validates and inserts, to narrow the race window between "slot shown
// available" and "booking committed". The unique slot index remains the
// final guarantee.
type SlotLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Service is the bookable offering whose duration drives the contiguous-time
// check. Read-only input to the engine.
type Service struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ProviderID  string    `json:"provider_id" bson:"provider_id" validate:"required"`
	Name        string    `json:"name" bson:"name" validate:"required,min=2,max=100"`
	DurationMin int       `json:"duration_min" bson:"duration_min" validate:"required,min=5,max=480"`
	Price       float64   `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,min=0"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at" validate:"omitempty"`
}
