package validator

import (
	"io"
	"strings"
	"testing"

	"lamsa/pkg/logger"
	"lamsa/pkg/model"
)

func newTestValidator() *AvailabilityValidator {
	log := logger.New(logger.Config{
		Level:  logger.ERROR,
		Format: logger.TEXT,
		Output: io.Discard,
	})
	return NewAvailabilityValidator(log)
}

func TestValidateSlotQuery(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		query     model.SlotQuery
		wantError string
	}{
		{
			name:  "valid minimal query",
			query: model.SlotQuery{ProviderID: "prov-1", Date: "2026-09-06"},
		},
		{
			name: "valid full query",
			query: model.SlotQuery{
				ProviderID:      "prov-1",
				Date:            "2026-09-06",
				ServiceID:       "507f1f77bcf86cd799439011",
				GranularityMin:  30,
				RequesterGender: "female",
			},
		},
		{
			name:      "missing provider",
			query:     model.SlotQuery{Date: "2026-09-06"},
			wantError: "ProviderID is required",
		},
		{
			name:      "missing date",
			query:     model.SlotQuery{ProviderID: "prov-1"},
			wantError: "Date is required",
		},
		{
			name:      "date in wrong format",
			query:     model.SlotQuery{ProviderID: "prov-1", Date: "06/09/2026"},
			wantError: "Date must be a YYYY-MM-DD date",
		},
		{
			name:      "granularity below minimum",
			query:     model.SlotQuery{ProviderID: "prov-1", Date: "2026-09-06", GranularityMin: 2},
			wantError: "GranularityMin must be at least 5",
		},
		{
			name:      "granularity above maximum",
			query:     model.SlotQuery{ProviderID: "prov-1", Date: "2026-09-06", GranularityMin: 300},
			wantError: "GranularityMin must be at most 240",
		},
		{
			name:      "unknown gender value",
			query:     model.SlotQuery{ProviderID: "prov-1", Date: "2026-09-06", RequesterGender: "other"},
			wantError: "RequesterGender must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateSlotQuery(&tt.query)
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

func TestValidateCheck(t *testing.T) {
	v := newTestValidator()

	tests := []struct {
		name      string
		check     model.AvailabilityCheck
		wantError string
	}{
		{
			name: "valid check",
			check: model.AvailabilityCheck{
				ProviderID: "prov-1",
				Date:       "2026-09-06",
				Time:       "10:00",
			},
		},
		{
			name: "missing time",
			check: model.AvailabilityCheck{
				ProviderID: "prov-1",
				Date:       "2026-09-06",
			},
			wantError: "Time is required",
		},
		{
			name: "hour out of range",
			check: model.AvailabilityCheck{
				ProviderID: "prov-1",
				Date:       "2026-09-06",
				Time:       "25:00",
			},
			wantError: "Time must be in HH:MM 24-hour format",
		},
		{
			name: "minute out of range",
			check: model.AvailabilityCheck{
				ProviderID: "prov-1",
				Date:       "2026-09-06",
				Time:       "10:61",
			},
			wantError: "Time must be in HH:MM 24-hour format",
		},
		{
			name: "duration above maximum",
			check: model.AvailabilityCheck{
				ProviderID:  "prov-1",
				Date:        "2026-09-06",
				Time:        "10:00",
				DurationMin: 600,
			},
			wantError: "DurationMin must be at most 480",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateCheck(&tt.check)
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
