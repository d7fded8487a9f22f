package itinerary

import (
	"github.com/FACorreiaa/go-trip-planner/internal/api/routing"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// routedDay is the Day Router's output: an ordered visiting sequence, a
// feasibility flag (false when a fixed POI could not be placed) and the
// candidates that were attempted but could not fit.
type routedDay struct {
	ordered   []types.POI
	feasible  bool
	discarded []string
}

// placement is one evaluated stop: where the clock would land if the POI were
// visited next from the current position.
type placement struct {
	travelMins int
	arrival    int // after waiting for opening, if needed
	departure  int
}

// routeDay chooses an ordered subset of the ranked candidates for one day.
// Greedy nearest-feasible construction: fixed POIs are forced in first in
// their required order, then the remaining candidates compete on travel time
// from the current position. A POI that cannot be placed, whether it missed
// its opening window or would overrun the day's end, is retried once later in
// the day before being discarded. One adjacent-swap improvement pass follows;
// the tour is deliberately not optimal.
func routeDay(matrix *routing.TravelMatrix, ranked []types.POI, dc types.DayConstraint, mode types.TransportMode, settings types.PlannerSettings) routedDay {
	out := routedDay{feasible: true}

	dayStart, err := parseClock(dc.StartTime)
	if err != nil {
		return out
	}
	dayEnd, err := parseClock(dc.EndTime)
	if err != nil {
		return out
	}

	maxStops := settings.Paces[dc.Pace].MaxStops
	if maxStops <= 0 {
		maxStops = 5
	}

	fixed := make(map[string]bool, len(dc.FixedPOIs))
	for _, id := range dc.FixedPOIs {
		fixed[id] = true
	}
	byID := make(map[string]types.POI, len(ranked))
	for _, p := range ranked {
		byID[p.ID] = p
	}

	clock, cur := dayStart, routing.OriginNodeID

	place := func(p types.POI) (placement, bool) {
		leg, ok := matrix.Leg(cur, p.ID, mode)
		if !ok {
			return placement{}, false
		}
		travel := int(leg.Duration.Minutes())
		arrival := clock + travel
		opens, closes := openWindow(p)
		if arrival < opens {
			arrival = opens // waiting for the doors is allowed
		}
		if arrival > closes {
			return placement{}, false
		}
		departure := arrival + dwellMins(p, dc.Pace, settings)
		if departure > dayEnd {
			return placement{}, false
		}
		return placement{travelMins: travel, arrival: arrival, departure: departure}, true
	}

	commit := func(p types.POI, pl placement) {
		out.ordered = append(out.ordered, p)
		clock = pl.departure
		cur = p.ID
	}

	// Fixed stops first, in the requested relative order. An unplaceable
	// fixed POI flips the feasibility flag instead of being dropped silently.
	for _, id := range dc.FixedPOIs {
		p, ok := byID[id]
		if !ok {
			out.feasible = false
			continue
		}
		pl, ok := place(p)
		if !ok {
			out.feasible = false
			continue
		}
		commit(p, pl)
	}

	// Greedy fill with the remaining candidates, rank order breaking travel
	// ties. One bounded retry for a missed placement: the same POI may fit
	// later in the day with a different arrival time. A candidate that failed
	// and never got placed is recorded as discarded, whether it ran out of
	// retries or the day ended first. Some can never fit this day at all, a
	// window past closing or an opening after the day's end both look the
	// same from here.
	used := make(map[string]bool, len(out.ordered))
	for _, p := range out.ordered {
		used[p.ID] = true
	}
	var remaining []types.POI
	for _, p := range ranked {
		if !fixed[p.ID] && !used[p.ID] {
			remaining = append(remaining, p)
		}
	}
	misses := make(map[string]int)

	for len(out.ordered) < maxStops && len(remaining) > 0 {
		bestIdx := -1
		var bestPl placement
		discard := map[int]bool{}

		for i, p := range remaining {
			if _, ok := matrix.Leg(cur, p.ID, mode); !ok {
				discard[i] = true
				continue
			}
			pl, ok := place(p)
			if !ok {
				misses[p.ID]++
				if misses[p.ID] > 1 {
					discard[i] = true
					out.discarded = append(out.discarded, p.ID)
				}
				continue
			}
			if bestIdx == -1 || pl.travelMins < bestPl.travelMins {
				bestIdx, bestPl = i, pl
			}
		}

		if bestIdx == -1 {
			// Nothing left fits. Everything that was tried and failed is a
			// discard even if it still had a retry pending.
			for i, p := range remaining {
				if !discard[i] && misses[p.ID] > 0 {
					out.discarded = append(out.discarded, p.ID)
				}
			}
			break
		}
		commit(remaining[bestIdx], bestPl)
		discard[bestIdx] = true

		next := remaining[:0]
		for i, p := range remaining {
			if !discard[i] {
				next = append(next, p)
			}
		}
		remaining = next
	}

	out.ordered = improveOnce(matrix, out.ordered, fixed, dc, mode, dayStart, dayEnd, settings)
	return out
}

// improveOnce is a single-pass 2-opt over adjacent non-fixed stops: a swap is
// kept when it shortens total travel without breaking opening hours or the
// day window. Not iterated to convergence.
func improveOnce(matrix *routing.TravelMatrix, ordered []types.POI, fixed map[string]bool, dc types.DayConstraint, mode types.TransportMode, dayStart, dayEnd int, settings types.PlannerSettings) []types.POI {
	if len(ordered) < 2 {
		return ordered
	}
	_, baseTravel, baseOK := simulate(matrix, ordered, dc, mode, dayStart, dayEnd, settings)
	if !baseOK {
		return ordered
	}

	for i := 0; i+1 < len(ordered); i++ {
		if fixed[ordered[i].ID] || fixed[ordered[i+1].ID] {
			continue
		}
		trial := make([]types.POI, len(ordered))
		copy(trial, ordered)
		trial[i], trial[i+1] = trial[i+1], trial[i]

		_, travel, ok := simulate(matrix, trial, dc, mode, dayStart, dayEnd, settings)
		if ok && travel < baseTravel {
			ordered, baseTravel = trial, travel
		}
	}
	return ordered
}

// simulate walks a candidate sequence against the day window and reports
// whether it schedules cleanly, plus its total travel minutes.
func simulate(matrix *routing.TravelMatrix, seq []types.POI, dc types.DayConstraint, mode types.TransportMode, dayStart, dayEnd int, settings types.PlannerSettings) (endClock, travelTotal int, ok bool) {
	clock, cur := dayStart, routing.OriginNodeID
	for _, p := range seq {
		leg, found := matrix.Leg(cur, p.ID, mode)
		if !found {
			return 0, 0, false
		}
		travel := int(leg.Duration.Minutes())
		arrival := clock + travel
		opens, closes := openWindow(p)
		if arrival < opens {
			arrival = opens
		}
		if arrival > closes {
			return 0, 0, false
		}
		departure := arrival + dwellMins(p, dc.Pace, settings)
		if departure > dayEnd {
			return 0, 0, false
		}
		travelTotal += travel
		clock, cur = departure, p.ID
	}
	return clock, travelTotal, true
}
