package prayer

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "lamsa/pkg/errors"
	"lamsa/pkg/logger"
	"lamsa/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.ERROR, Format: logger.TEXT, Output: io.Discard})
}

func TestClientTimes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/timingsByCity/15-06-2026" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("city"); got != "Amman" {
			t.Errorf("expected city Amman, got %s", got)
		}
		if got := r.URL.Query().Get("country"); got != "Jordan" {
			t.Errorf("expected country Jordan, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"code": 200,
			"data": {
				"timings": {
					"Fajr": "03:55",
					"Sunrise": "05:27",
					"Dhuhr": "12:36 (EEST)",
					"Asr": "16:17",
					"Maghrib": "19:45",
					"Isha": "21:15"
				}
			}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "Jordan", time.Second, testLogger())
	times, err := client.Times(context.Background(), "Amman", "2026-06-15")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	expected := map[model.PrayerName]int{
		model.PrayerFajr:    3*60 + 55,
		model.PrayerDhuhr:   12*60 + 36,
		model.PrayerAsr:     16*60 + 17,
		model.PrayerMaghrib: 19*60 + 45,
		model.PrayerIsha:    21*60 + 15,
	}
	for name, want := range expected {
		got, ok := times.Minute(name)
		if !ok {
			t.Fatalf("Minute(%s) not found", name)
		}
		if got != want {
			t.Errorf("Minute(%s) = %d, want %d", name, got, want)
		}
	}
	if _, ok := times.Minute(model.PrayerName("sunrise")); ok {
		t.Error("expected unknown prayer name to report !ok")
	}
}

func TestClientTimesUpstreamFailure(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "http 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code": 200, "data":`))
			},
		},
		{
			name: "missing timing",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code": 200, "data": {"timings": {"Fajr": "03:55"}}}`))
			},
		},
		{
			name: "error code in envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"code": 400, "data": {"timings": {}}}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			client := NewClient(server.URL, "Jordan", time.Second, testLogger())
			_, err := client.Times(context.Background(), "Amman", "2026-06-15")
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			appErr, ok := err.(*apperrors.AppError)
			if !ok {
				t.Fatalf("expected AppError, got %T", err)
			}
			if appErr.Code != apperrors.CodeUnavailable {
				t.Errorf("expected code %s, got %s", apperrors.CodeUnavailable, appErr.Code)
			}
		})
	}
}

func TestClientTimesRespectsTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := NewClient(server.URL, "Jordan", 20*time.Millisecond, testLogger())
	start := time.Now()
	_, err := client.Times(context.Background(), "Amman", "2026-06-15")
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 150*time.Millisecond {
		t.Errorf("request blocked for %s, expected prompt timeout", elapsed)
	}
}

func TestClientTimesInvalidDate(t *testing.T) {
	client := NewClient("http://localhost:0", "Jordan", time.Second, testLogger())
	_, err := client.Times(context.Background(), "Amman", "15/06/2026")
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("expected AppError, got %v", err)
	}
	if appErr.Code != apperrors.CodeInvalidInput {
		t.Errorf("expected code %s, got %s", apperrors.CodeInvalidInput, appErr.Code)
	}
}

func TestIsRamadan(t *testing.T) {
	tests := []struct {
		date string
		want bool
	}{
		{"2026-02-17", false},
		{"2026-02-18", true},
		{"2026-03-01", true},
		{"2026-03-19", true},
		{"2026-03-20", false},
		{"2025-03-15", true},
		{"2031-06-01", false},
		{"not-a-date", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsRamadan(tt.date); got != tt.want {
			t.Errorf("IsRamadan(%q) = %v, want %v", tt.date, got, tt.want)
		}
	}
}

func TestRamadanRange(t *testing.T) {
	start, end, ok := RamadanRange(2026)
	if !ok {
		t.Fatal("expected 2026 to be in the table")
	}
	if start != "2026-02-18" || end != "2026-03-19" {
		t.Errorf("unexpected range: %s..%s", start, end)
	}

	if _, _, ok := RamadanRange(1999); ok {
		t.Error("expected 1999 to be outside the table")
	}
}
