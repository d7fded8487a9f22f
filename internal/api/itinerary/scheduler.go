package itinerary

import (
	"github.com/FACorreiaa/go-trip-planner/internal/api/routing"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// schedule is the Time-Slot Scheduler's output for one day: concrete slots
// with arrival/departure clocks, plus what fell out along the way.
type schedule struct {
	slots      []types.DaySlot
	visited    []string
	dropped    []string
	infeasible bool
	totalMins  int
	freeMins   int
}

// buildSchedule converts an ordered visiting sequence into timed DaySlots.
// The clock advances from the day's start through travel legs and dwell
// times; arrivals before opening are clamped forward with the wait recorded
// as idle time. A POI whose departure would pass the day's end is dropped; a
// fixed POI in that position marks the day infeasible instead. The sequence
// always closes with a transit-only return leg to the hotel.
func buildSchedule(matrix *routing.TravelMatrix, ordered []types.POI, dc types.DayConstraint, mode types.TransportMode, settings types.PlannerSettings) schedule {
	var out schedule

	dayStart, err := parseClock(dc.StartTime)
	if err != nil {
		return out
	}
	dayEnd, err := parseClock(dc.EndTime)
	if err != nil {
		return out
	}

	fixed := make(map[string]bool, len(dc.FixedPOIs))
	for _, id := range dc.FixedPOIs {
		fixed[id] = true
	}

	clock, cur := dayStart, routing.OriginNodeID
	for _, p := range ordered {
		leg, ok := matrix.Leg(cur, p.ID, mode)
		if !ok {
			if fixed[p.ID] {
				out.infeasible = true
			} else {
				out.dropped = append(out.dropped, p.ID)
			}
			continue
		}
		travel := int(leg.Duration.Minutes())
		arrival := clock + travel
		opens, closes := openWindow(p)

		idle := 0
		if arrival < opens {
			idle = opens - arrival
			arrival = opens
		}
		dwell := dwellMins(p, dc.Pace, settings)
		departure := arrival + dwell

		if arrival > closes || departure > dayEnd {
			// clock stays where it was; the day is not consumed by a failed stop
			if fixed[p.ID] {
				out.infeasible = true
			} else {
				out.dropped = append(out.dropped, p.ID)
			}
			continue
		}

		out.slots = append(out.slots, types.DaySlot{
			POIID:           p.ID,
			Name:            p.Name,
			Arrival:         fmtClock(arrival),
			Departure:       fmtClock(departure),
			DwellMins:       dwell,
			TravelMins:      travel,
			IdleMins:        idle,
			Mode:            mode,
			TravelKm:        leg.DistanceKm,
			TravelEstimated: leg.Estimated,
			EntryFee:        p.EntryFee,
			ActivityExtras:  activityExtras(p, settings),
		})
		out.visited = append(out.visited, p.ID)
		out.totalMins += travel + idle + dwell
		clock, cur = departure, p.ID
	}

	// Closing leg back to the hotel. Transit-only: no POI, no dwell.
	if len(out.slots) > 0 {
		if leg, ok := matrix.Leg(cur, routing.OriginNodeID, mode); ok {
			travel := int(leg.Duration.Minutes())
			arrival := clock + travel
			out.slots = append(out.slots, types.DaySlot{
				Name:            "Return to hotel",
				Arrival:         fmtClock(arrival),
				Departure:       fmtClock(arrival),
				TravelMins:      travel,
				Mode:            mode,
				TravelKm:        leg.DistanceKm,
				TravelEstimated: leg.Estimated,
			})
			out.totalMins += travel
		}
	}

	if avail := dayEnd - dayStart; avail > out.totalMins {
		out.freeMins = avail - out.totalMins
	}
	return out
}
