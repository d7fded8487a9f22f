package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// validateDayNumbers checks the day constraints exactly as the caller sent
// them. It must run before normalizeRequest: normalization keys days by
// number, which would silently merge duplicates and lose non-positive day
// numbers before validateRequest ever sees them.
func validateDayNumbers(days []types.DayConstraint) error {
	seen := make(map[int]bool, len(days))
	for _, dc := range days {
		if dc.DayNumber < 1 {
			return fmt.Errorf("%w: day numbers are 1-indexed, got %d", types.ErrInvalidConstraint, dc.DayNumber)
		}
		if seen[dc.DayNumber] {
			return fmt.Errorf("%w: duplicate day number %d", types.ErrInvalidConstraint, dc.DayNumber)
		}
		seen[dc.DayNumber] = true
	}
	return nil
}

// normalizeRequest fills defaults the way the request layer's callers expect:
// band, transport mode and pace default, and every day 1..NumDays gets a
// constraint even when the caller only pinned down some of them.
func normalizeRequest(req *types.PlanRequest, settings types.PlannerSettings) {
	if req.BudgetBand == "" {
		req.BudgetBand = types.BandStandard
	}
	if req.TransportMode == "" {
		req.TransportMode = types.ModeCab
	}

	maxDay := req.NumDays
	for _, dc := range req.Days {
		if dc.DayNumber > maxDay {
			maxDay = dc.DayNumber
		}
	}
	if maxDay < 1 {
		maxDay = 1
	}
	req.NumDays = maxDay

	byDay := make(map[int]types.DayConstraint, len(req.Days))
	for _, dc := range req.Days {
		byDay[dc.DayNumber] = dc
	}
	days := make([]types.DayConstraint, 0, req.NumDays)
	for n := 1; n <= req.NumDays; n++ {
		dc, ok := byDay[n]
		if !ok {
			dc = types.DayConstraint{DayNumber: n}
		}
		if dc.StartTime == "" {
			dc.StartTime = settings.DefaultStart
		}
		if dc.EndTime == "" {
			dc.EndTime = settings.DefaultEnd
		}
		if dc.Pace == "" {
			dc.Pace = types.PaceNormal
		}
		days = append(days, dc)
	}
	req.Days = days
}

// validateRequest is the engine's input boundary: anything wrong here is
// fatal for the whole request, reported before planning starts.
func validateRequest(req types.PlanRequest) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", types.ErrInvalidConstraint, fmt.Sprintf(format, args...))
	}

	if req.City == "" {
		return fail("city is required")
	}
	if req.HotelLat < -90 || req.HotelLat > 90 || req.HotelLon < -180 || req.HotelLon > 180 {
		return fail("hotel coordinates out of range: lat=%f lon=%f", req.HotelLat, req.HotelLon)
	}
	if !req.BudgetBand.Valid() {
		return fail("unknown budget band %q", req.BudgetBand)
	}
	if !req.TransportMode.Valid() {
		return fail("unknown transport mode %q", req.TransportMode)
	}
	if req.TotalBudget != nil && *req.TotalBudget < 0 {
		return fail("total budget must not be negative")
	}
	if req.MaxEntryFee != nil && *req.MaxEntryFee < 0 {
		return fail("max entry fee must not be negative")
	}

	for _, dc := range req.Days {
		start, err := parseClock(dc.StartTime)
		if err != nil {
			return fail("day %d: %v", dc.DayNumber, err)
		}
		end, err := parseClock(dc.EndTime)
		if err != nil {
			return fail("day %d: %v", dc.DayNumber, err)
		}
		if start >= end {
			return fail("day %d: start %s is not before end %s", dc.DayNumber, dc.StartTime, dc.EndTime)
		}
		if !dc.Pace.Valid() {
			return fail("day %d: unknown pace %q", dc.DayNumber, dc.Pace)
		}
		if dc.MaxBudget != nil && *dc.MaxBudget < 0 {
			return fail("day %d: budget must not be negative", dc.DayNumber)
		}
		if dc.TransportOverride != nil && !dc.TransportOverride.Valid() {
			return fail("day %d: unknown transport mode %q", dc.DayNumber, *dc.TransportOverride)
		}
	}
	return nil
}
