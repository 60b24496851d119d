package validator

import (
	"io"
	"strings"
	"testing"

	"lamsa/pkg/logger"
	"lamsa/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{
		Level:  logger.ERROR,
		Format: logger.TEXT,
		Output: io.Discard,
	})
	return NewBookingValidator(log)
}

func validBooking() model.Booking {
	return model.Booking{
		ProviderID: "prov-1",
		CustomerID: "cust-1",
		Date:       "2026-09-06",
		StartTime:  "10:00",
		EndTime:    "10:30",
		Status:     model.StatusPending,
	}
}

func TestValidate(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		mutate    func(b *model.Booking)
		wantError string
	}{
		{
			name:   "valid booking",
			mutate: func(b *model.Booking) {},
		},
		{
			name:   "valid booking with gender",
			mutate: func(b *model.Booking) { b.CustomerGender = "female" },
		},
		{
			name:      "missing customer",
			mutate:    func(b *model.Booking) { b.CustomerID = "" },
			wantError: "CustomerID is required",
		},
		{
			name:      "date in wrong format",
			mutate:    func(b *model.Booking) { b.Date = "2026/09/06" },
			wantError: "Date must be a YYYY-MM-DD date",
		},
		{
			name:      "start time out of range",
			mutate:    func(b *model.Booking) { b.StartTime = "24:30" },
			wantError: "StartTime must be in HH:MM 24-hour format",
		},
		{
			name:      "unknown status",
			mutate:    func(b *model.Booking) { b.Status = "archived" },
			wantError: "Status must be one of",
		},
		{
			name:      "unknown gender",
			mutate:    func(b *model.Booking) { b.CustomerGender = "unknown" },
			wantError: "CustomerGender must be one of",
		},
		{
			name:      "end before start",
			mutate:    func(b *model.Booking) { b.StartTime = "11:00"; b.EndTime = "10:00" },
			wantError: "end_time must be after start_time",
		},
		{
			name:      "zero length slot",
			mutate:    func(b *model.Booking) { b.EndTime = b.StartTime },
			wantError: "end_time must be after start_time",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := validBooking()
			tt.mutate(&b)

			err := v.Validate(&b)
			if tt.wantError == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("expected error containing %q, got %q", tt.wantError, err.Error())
			}
		})
	}
}
