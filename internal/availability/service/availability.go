package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	availerrors "lamsa/internal/availability/errors"
	"lamsa/internal/availability/repository"
	"lamsa/internal/availability/validator"
	"lamsa/internal/prayer"
	"lamsa/pkg/config"
	apperrors "lamsa/pkg/errors"
	"lamsa/pkg/interval"
	"lamsa/pkg/model"
)

// AvailabilityService is the slot-generation and validation engine. It
// is a pure read path: identical inputs with no intervening schedule or
// booking change yield identical results.
type AvailabilityService interface {
	GetAvailableSlots(ctx context.Context, query *model.SlotQuery) (*model.DaySchedule, error)
	CheckAvailability(ctx context.Context, req *model.AvailabilityCheck) (*model.Verdict, error)
}

type availabilityService struct {
	repo      repository.ScheduleRepository
	bookings  repository.BookingRepository
	prayers   prayer.Provider
	validator *validator.AvailabilityValidator
	cfg       *config.Config
	now       func() time.Time
}

func NewAvailabilityService(
	repo repository.ScheduleRepository,
	bookings repository.BookingRepository,
	prayers prayer.Provider,
	validator *validator.AvailabilityValidator,
	cfg *config.Config,
) AvailabilityService {
	return &availabilityService{
		repo:      repo,
		bookings:  bookings,
		prayers:   prayers,
		validator: validator,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *availabilityService) GetAvailableSlots(ctx context.Context, query *model.SlotQuery) (*model.DaySchedule, error) {
	if err := s.validator.ValidateSlotQuery(query); err != nil {
		return nil, apperrors.Validation("Slot query validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	result, err := s.buildDay(ctx, buildParams{
		providerID:     query.ProviderID,
		date:           query.Date,
		serviceID:      query.ServiceID,
		granularityMin: query.GranularityMin,
		gender:         query.RequesterGender,
	})
	if err != nil {
		if errors.Is(err, availerrors.ErrNoEffectiveSchedule) {
			// Calendar views treat the day as fully closed rather than
			// an error.
			return &model.DaySchedule{
				ProviderID:     query.ProviderID,
				Date:           query.Date,
				Slots:          []model.Slot{},
				GranularityMin: s.cfg.DefaultSlotDurationMin,
				Warnings:       []string{"no effective working schedule for this date"},
			}, nil
		}
		return nil, err
	}

	return result.day, nil
}

func (s *availabilityService) CheckAvailability(ctx context.Context, req *model.AvailabilityCheck) (*model.Verdict, error) {
	if err := s.validator.ValidateCheck(req); err != nil {
		return nil, apperrors.Validation("Availability check validation failed", map[string]any{
			"error": err.Error(),
		})
	}

	settings, err := s.repo.Settings(ctx, req.ProviderID)
	if err != nil {
		s.cfg.Log.Error("Failed to load availability settings", "provider_id", req.ProviderID, "error", err)
		return nil, apperrors.Internal("Failed to load availability settings", err)
	}

	if verdict := s.checkBookingWindow(req.Date, req.Time, settings); verdict != nil {
		return verdict, nil
	}

	result, err := s.buildDay(ctx, buildParams{
		providerID:     req.ProviderID,
		date:           req.Date,
		serviceID:      req.ServiceID,
		granularityMin: 0,
		gender:         req.RequesterGender,
		settings:       settings,
	})
	if err != nil {
		if errors.Is(err, availerrors.ErrNoEffectiveSchedule) {
			return nil, apperrors.NoEffectiveSchedule(req.ProviderID, req.Date)
		}
		return nil, err
	}

	requested, err := interval.ParseClock(req.Time)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid requested time: %s", req.Time))
	}

	// Slots live on a fixed grid, so the requested time must match a
	// slot start exactly; containment is not enough.
	var slot *model.Slot
	for i := range result.day.Slots {
		if result.day.Slots[i].Minute == requested {
			slot = &result.day.Slots[i]
			break
		}
	}
	if slot == nil {
		return reject(apperrors.CodeSlotNotFound, "Requested time does not match any bookable slot"), nil
	}
	if !slot.Available {
		v := reject(apperrors.CodeSlotUnavailable, "Requested slot is not available")
		v.Slot = slot
		return v, nil
	}

	duration := req.DurationMin
	if duration == 0 {
		duration = result.serviceDurationMin
	}
	if duration == 0 {
		duration = result.day.GranularityMin
	}

	free := interval.Subtract(result.bookable, result.bookingIvs)
	span := interval.Interval{Start: requested, End: requested + duration}
	if !fitsWithin(span, free) {
		v := reject(apperrors.CodeInsufficientTime,
			fmt.Sprintf("Service duration of %d minutes does not fit in the remaining open time", duration))
		v.Slot = slot
		return v, nil
	}

	open := containingInterval(requested, result.open)
	return &model.Verdict{
		Accepted:     true,
		Slot:         slot,
		OpenInterval: open,
	}, nil
}

// RejectionError converts a rejected verdict into the matching
// application error, preserving its reason code and HTTP status. The
// booking commit path uses it to abort with the right response.
func RejectionError(v *model.Verdict) *apperrors.AppError {
	switch v.ReasonCode {
	case apperrors.CodeOutOfBookingWindow:
		return apperrors.OutOfBookingWindow(v.Message)
	case apperrors.CodeSlotNotFound:
		return apperrors.New(apperrors.CodeSlotNotFound, v.Message, http.StatusNotFound)
	case apperrors.CodeSlotUnavailable:
		return apperrors.New(apperrors.CodeSlotUnavailable, v.Message, http.StatusConflict)
	case apperrors.CodeInsufficientTime:
		return apperrors.New(apperrors.CodeInsufficientTime, v.Message, http.StatusUnprocessableEntity)
	default:
		return apperrors.Conflict(v.Message)
	}
}

func reject(code, message string) *model.Verdict {
	return &model.Verdict{
		Accepted:   false,
		ReasonCode: code,
		Message:    message,
	}
}

// checkBookingWindow rejects dates in the past, beyond the maximum
// advance window, or instants closer than the minimum advance notice.
// Returns nil when the request is inside the window.
func (s *availabilityService) checkBookingWindow(date, clock string, settings *model.AvailabilitySettings) *model.Verdict {
	loc := s.cfg.Location()
	now := s.now().In(loc)
	today := now.Format("2006-01-02")

	if date < today {
		return reject(apperrors.CodeOutOfBookingWindow, "Requested date is in the past")
	}

	maxDays := s.cfg.MaxAdvanceBookingDays
	minHours := s.cfg.MinAdvanceBookingHours
	if settings != nil {
		if settings.MaxAdvanceBookingDays > 0 {
			maxDays = settings.MaxAdvanceBookingDays
		}
		if settings.MinAdvanceBookingHours > 0 {
			minHours = settings.MinAdvanceBookingHours
		}
	}

	if latest := now.AddDate(0, 0, maxDays).Format("2006-01-02"); date > latest {
		return reject(apperrors.CodeOutOfBookingWindow,
			fmt.Sprintf("Requested date is more than %d days ahead", maxDays))
	}

	requested, err := time.ParseInLocation("2006-01-02 15:04", date+" "+clock, loc)
	if err != nil {
		return reject(apperrors.CodeOutOfBookingWindow, "Requested time could not be interpreted")
	}
	if requested.Before(now.Add(time.Duration(minHours) * time.Hour)) {
		return reject(apperrors.CodeOutOfBookingWindow,
			fmt.Sprintf("Bookings require at least %d hours notice", minHours))
	}
	return nil
}

type buildParams struct {
	providerID     string
	date           string
	serviceID      string
	granularityMin int
	gender         string
	settings       *model.AvailabilitySettings // pre-fetched when non-nil
}

type dayResult struct {
	day                *model.DaySchedule
	open               []interval.Interval // open hours before breaks
	bookable           []interval.Interval // open hours minus breaks
	bookingIvs         []interval.Interval
	serviceDurationMin int
}

// buildDay runs the full pipeline for one (provider, date) pair:
// resolve schedule, apply exception layers, materialize breaks,
// generate the annotated slot grid.
func (s *availabilityService) buildDay(ctx context.Context, p buildParams) (*dayResult, error) {
	weekday, err := weekdayOf(p.date)
	if err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("invalid date: %s", p.date))
	}
	inRamadan := prayer.IsRamadan(p.date)

	data, err := s.fetchDay(ctx, p, inRamadan)
	if err != nil {
		return nil, err
	}

	schedule, err := resolveSchedule(data.schedules, p.date, inRamadan)
	if err != nil {
		return nil, err
	}

	day := dayContext{
		date:      p.date,
		weekday:   weekday,
		schedule:  schedule,
		ramadan:   data.ramadan,
		special:   data.special,
		timeOffs:  data.timeOffs,
		inRamadan: inRamadan,
	}

	var warnings []string
	prayers := s.fetchPrayerTimes(ctx, day, data.settings, &warnings)

	open, iftar, w := openHours(day, prayers, s.cfg.DefaultIftarClockTime)
	warnings = append(warnings, w...)

	breaks, w := materializeBreaks(schedule, weekday, open, prayers,
		s.cfg.DefaultBreakFlexibilityMin, s.cfg.DefaultBreakDurationMin)
	warnings = append(warnings, w...)
	if !iftar.IsZero() {
		breaks = interval.Merge(append(breaks, interval.Intersect([]interval.Interval{iftar}, open)...))
	}

	granularity := s.resolveGranularity(p.granularityMin, data.service, data.settings)

	filter := slotFilter{
		bookings:  bookingIntervals(data.bookings),
		nowMinute: s.nowMinuteFor(p.date),
	}
	if data.settings != nil && data.settings.WomenOnlyHoursEnabled && p.gender != "female" {
		if iv, err := interval.ParseRange(data.settings.WomenOnlyStart, data.settings.WomenOnlyEnd); err == nil {
			filter.womenOnly = iv
		} else {
			warnings = append(warnings, "women-only hours misconfigured: "+err.Error())
		}
	}

	slots := generateSlots(open, breaks, granularity, filter)

	result := &dayResult{
		day: &model.DaySchedule{
			ProviderID:     p.providerID,
			Date:           p.date,
			OpenIntervals:  open,
			Breaks:         breaks,
			Slots:          slots,
			GranularityMin: granularity,
			Warnings:       warnings,
		},
		open:       open,
		bookable:   interval.Subtract(open, breaks),
		bookingIvs: filter.bookings,
	}
	if data.service != nil {
		result.serviceDurationMin = data.service.DurationMin
	}
	return result, nil
}

type dayData struct {
	schedules []*model.WorkingSchedule
	timeOffs  []*model.TimeOff
	special   *model.SpecialDate
	ramadan   *model.RamadanSchedule
	settings  *model.AvailabilitySettings
	service   *model.Service
	bookings  []*model.Booking
}

// fetchDay loads the day's inputs concurrently. The first store failure
// wins; empty collections are normal results.
func (s *availabilityService) fetchDay(ctx context.Context, p buildParams, inRamadan bool) (*dayData, error) {
	sharedCtx, cancel := context.WithTimeout(ctx, s.cfg.ReadTimeout)
	defer cancel()

	data := &dayData{settings: p.settings}
	errs := make([]error, 5)
	var wg sync.WaitGroup

	wg.Add(2)
	go func() {
		defer wg.Done()
		data.schedules, errs[0] = s.repo.WorkingSchedules(sharedCtx, p.providerID)
	}()
	go func() {
		defer wg.Done()
		data.timeOffs, errs[1] = s.repo.TimeOffsCovering(sharedCtx, p.providerID, p.date)
	}()

	wg.Add(2)
	go func() {
		defer wg.Done()
		data.special, errs[2] = s.repo.SpecialDate(sharedCtx, p.providerID, p.date)
	}()
	go func() {
		defer wg.Done()
		data.bookings, errs[3] = s.bookings.Blocking(sharedCtx, p.providerID, p.date)
	}()

	if inRamadan {
		if year, ok := prayer.RamadanYear(p.date); ok {
			wg.Add(1)
			go func() {
				defer wg.Done()
				data.ramadan, errs[4] = s.repo.RamadanSchedule(sharedCtx, p.providerID, year)
			}()
		}
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			s.cfg.Log.Error("Failed to load schedule data",
				"provider_id", p.providerID,
				"date", p.date,
				"error", err,
			)
			return nil, apperrors.Internal("Failed to load schedule data", err)
		}
	}

	if data.settings == nil {
		settings, err := s.repo.Settings(ctx, p.providerID)
		if err != nil {
			s.cfg.Log.Error("Failed to load availability settings", "provider_id", p.providerID, "error", err)
			return nil, apperrors.Internal("Failed to load availability settings", err)
		}
		data.settings = settings
	}

	if p.serviceID != "" {
		svc, err := s.repo.Service(ctx, p.serviceID)
		if err != nil {
			if errors.Is(err, availerrors.ErrNotFound) {
				return nil, apperrors.NotFoundWithID("Service", p.serviceID)
			}
			if errors.Is(err, availerrors.ErrInvalidID) {
				return nil, apperrors.InvalidInput("Invalid service ID format")
			}
			return nil, apperrors.Internal("Failed to load service", err)
		}
		data.service = svc
	}

	return data, nil
}

// fetchPrayerTimes calls the collaborator only when the day actually
// needs prayer anchors. Failures degrade to "no dynamic breaks" with a
// warning, never a hard error.
func (s *availabilityService) fetchPrayerTimes(ctx context.Context, day dayContext, settings *model.AvailabilitySettings, warnings *[]string) *prayer.Times {
	if !needsPrayerTimes(day) {
		return nil
	}

	city := ""
	if settings != nil {
		city = settings.City
	}
	if city == "" {
		*warnings = append(*warnings, "no city configured, dropping prayer-anchored breaks")
		return nil
	}

	prayerCtx, cancel := context.WithTimeout(ctx, s.cfg.PrayerAPITimeout)
	defer cancel()

	times, err := s.prayers.Times(prayerCtx, city, day.date)
	if err != nil {
		s.cfg.Log.Warn("Prayer time lookup failed, dropping dynamic breaks",
			"city", city,
			"date", day.date,
			"error", err,
		)
		*warnings = append(*warnings, "prayer times unavailable, dropping prayer-anchored breaks")
		return nil
	}
	return &times
}

func needsPrayerTimes(day dayContext) bool {
	if day.inRamadan && day.ramadan != nil && day.ramadan.AutoAdjustMaghrib && day.ramadan.IftarBreakMinutes > 0 {
		return true
	}
	for _, rule := range day.schedule.Breaks {
		if rule.DayOfWeek == day.weekday && rule.Kind == model.BreakDynamic {
			return true
		}
	}
	return false
}

// resolveGranularity: explicit request beats service duration beats
// provider settings beats the configured default.
func (s *availabilityService) resolveGranularity(explicit int, svc *model.Service, settings *model.AvailabilitySettings) int {
	if explicit > 0 {
		return explicit
	}
	if svc != nil && svc.DurationMin > 0 {
		return svc.DurationMin
	}
	if settings != nil && settings.SlotDurationMin > 0 {
		return settings.SlotDurationMin
	}
	return s.cfg.DefaultSlotDurationMin
}

// nowMinuteFor returns the current minute-of-day when date is today in
// the configured timezone, -1 otherwise.
func (s *availabilityService) nowMinuteFor(date string) int {
	now := s.now().In(s.cfg.Location())
	if now.Format("2006-01-02") != date {
		return -1
	}
	return now.Hour()*60 + now.Minute()
}

func fitsWithin(span interval.Interval, free []interval.Interval) bool {
	for _, iv := range free {
		if iv.Start <= span.Start && span.End <= iv.End {
			return true
		}
	}
	return false
}

func containingInterval(minute int, intervals []interval.Interval) *interval.Interval {
	for _, iv := range intervals {
		if iv.Contains(minute) {
			found := iv
			return &found
		}
	}
	return nil
}
