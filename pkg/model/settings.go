package model

import (
	"time"
)

// AvailabilitySettings carries per-provider knobs for slot generation and
// booking-window validation. Zero values fall back to service-wide defaults
// from configuration.
type AvailabilitySettings struct {
	ProviderID             string    `json:"provider_id" bson:"provider_id" validate:"required"`
	City                   string    `json:"city" bson:"city" validate:"required,min=2,max=50"`
	SlotDurationMin        int       `json:"slot_duration_min,omitempty" bson:"slot_duration_min,omitempty" validate:"omitempty,min=5,max=240"`
	MaxAdvanceBookingDays  int       `json:"max_advance_booking_days,omitempty" bson:"max_advance_booking_days,omitempty" validate:"omitempty,min=1,max=365"`
	MinAdvanceBookingHours int       `json:"min_advance_booking_hours,omitempty" bson:"min_advance_booking_hours,omitempty" validate:"omitempty,min=0,max=168"`
	WomenOnlyHoursEnabled  bool      `json:"women_only_hours_enabled" bson:"women_only_hours_enabled"`
	WomenOnlyStart         string    `json:"women_only_start,omitempty" bson:"women_only_start,omitempty" validate:"omitempty,clock"`
	WomenOnlyEnd           string    `json:"women_only_end,omitempty" bson:"women_only_end,omitempty" validate:"omitempty,clock"`
	UpdatedAt              time.Time `json:"updated_at" bson:"updated_at" validate:"omitempty"`
}
