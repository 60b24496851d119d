package prayer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "lamsa/pkg/errors"
	"lamsa/pkg/interval"
	"lamsa/pkg/logger"
)

// Client calls an AlAdhan-compatible prayer times API.
type Client struct {
	baseURL string
	country string
	http    *http.Client
	log     *logger.Logger
}

func NewClient(baseURL, country string, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		country: country,
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type timingsResponse struct {
	Code int `json:"code"`
	Data struct {
		Timings map[string]string `json:"timings"`
	} `json:"data"`
}

// Times fetches the five daily prayer times for city on date
// (YYYY-MM-DD). The upstream endpoint keys dates as DD-MM-YYYY.
func (c *Client) Times(ctx context.Context, city, date string) (Times, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return Times{}, apperrors.InvalidInput(fmt.Sprintf("invalid date: %s", date))
	}

	endpoint := fmt.Sprintf("%s/timingsByCity/%s?city=%s&country=%s",
		c.baseURL, day.Format("02-01-2006"), url.QueryEscape(city), url.QueryEscape(c.country))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Times{}, apperrors.Internal("failed to build prayer times request", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Times{}, apperrors.Wrap(err, apperrors.CodeUnavailable, "prayer times API unreachable", http.StatusServiceUnavailable)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Error("Failed to close prayer API response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return Times{}, apperrors.New(apperrors.CodeUnavailable, fmt.Sprintf("prayer times API returned status %d", resp.StatusCode), http.StatusServiceUnavailable)
	}

	var payload timingsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Times{}, apperrors.Wrap(err, apperrors.CodeUnavailable, "failed to decode prayer times response", http.StatusServiceUnavailable)
	}
	if payload.Code != http.StatusOK {
		return Times{}, apperrors.New(apperrors.CodeUnavailable, fmt.Sprintf("prayer times API returned code %d", payload.Code), http.StatusServiceUnavailable)
	}

	t := Times{Date: date}
	for name, dst := range map[string]*int{
		"Fajr":    &t.Fajr,
		"Dhuhr":   &t.Dhuhr,
		"Asr":     &t.Asr,
		"Maghrib": &t.Maghrib,
		"Isha":    &t.Isha,
	} {
		raw, ok := payload.Data.Timings[name]
		if !ok {
			return Times{}, apperrors.New(apperrors.CodeUnavailable, fmt.Sprintf("prayer times response missing %s", name), http.StatusServiceUnavailable)
		}
		minute, err := parseTiming(raw)
		if err != nil {
			return Times{}, apperrors.Wrap(err, apperrors.CodeUnavailable, fmt.Sprintf("unparseable %s timing: %s", name, raw), http.StatusServiceUnavailable)
		}
		*dst = minute
	}

	return t, nil
}

// parseTiming handles values like "12:14" and "12:14 (EEST)".
func parseTiming(raw string) (int, error) {
	clock, _, _ := strings.Cut(strings.TrimSpace(raw), " ")
	return interval.ParseClock(clock)
}
