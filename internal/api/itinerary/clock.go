package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Day times are minutes since midnight. The engine plans a single day at a
// time, so wall-clock dates never enter the picture.

const endOfDay = 24 * 60

func parseClock(s string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

func fmtClock(mins int) string {
	if mins < 0 {
		mins = 0
	}
	if mins >= endOfDay {
		mins = endOfDay - 1
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// openWindow returns the POI's opening window in minutes. Missing hours fail
// open, matching how the store treats unparseable data.
func openWindow(p types.POI) (opens, closes int) {
	opens, closes = 0, endOfDay
	if p.OpensAt != "" {
		if v, err := parseClock(p.OpensAt); err == nil {
			opens = v
		}
	}
	if p.ClosesAt != "" {
		if v, err := parseClock(p.ClosesAt); err == nil {
			closes = v
		}
	}
	return opens, closes
}

// dwellMins is the time spent at a POI for a pace.
func dwellMins(p types.POI, pace types.Pace, settings types.PlannerSettings) int {
	mins := p.AvgVisitMins
	if mins <= 0 {
		mins = 60
	}
	factor := settings.Paces[pace].DwellFactor
	if factor <= 0 {
		factor = 1
	}
	return int(float64(mins) * factor)
}
