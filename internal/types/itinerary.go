package types

import "github.com/google/uuid"

// DaySlot is one entry in a day's schedule. POIID is empty for transit-only
// legs (the closing return to the hotel).
type DaySlot struct {
	POIID           string        `json:"poi_id,omitempty"`
	Name            string        `json:"name"`
	Arrival         string        `json:"arrival"`   // "HH:MM"
	Departure       string        `json:"departure"` // "HH:MM"
	DwellMins       int           `json:"dwell_mins"`
	TravelMins      int           `json:"travel_from_prev_mins"`
	IdleMins        int           `json:"idle_mins,omitempty"`
	Mode            TransportMode `json:"mode"`
	TravelKm        float64       `json:"travel_km"`
	TravelEstimated bool          `json:"travel_estimated,omitempty"`
	EntryFee        float64       `json:"entry_fee"`
	TransportCost   float64       `json:"transport_cost"`
	ActivityExtras  float64       `json:"activity_extras,omitempty"`
	SlotTotal       float64       `json:"slot_total"`
}

// CostBreakdown is the per-day money split. Total always equals the sum of
// the day's slot totals.
type CostBreakdown struct {
	Entry     float64  `json:"entry"`
	Transport float64  `json:"transport"`
	Extras    float64  `json:"extras"`
	Total     float64  `json:"total"`
	MaxBudget *float64 `json:"max_budget,omitempty"`
}

type Day struct {
	DayNumber    int           `json:"day_number"`
	Slots        []DaySlot     `json:"slots"`
	TotalMins    int           `json:"total_mins"`
	FreeMins     int           `json:"free_mins"`
	Cost         CostBreakdown `json:"cost_breakdown"`
	Feasible     bool          `json:"feasible"`
	OverBudget   bool          `json:"over_budget,omitempty"`
	NoCandidates bool          `json:"no_candidates,omitempty"`
}

// CostSummary is the trip-level money view.
type CostSummary struct {
	GrandTotal      float64       `json:"grand_total"`
	TotalBudget     float64       `json:"total_budget"`
	WithinBudget    bool          `json:"within_budget"`
	BudgetRemaining float64       `json:"budget_remaining"`
	PerDayAvg       float64       `json:"per_day_avg"`
	TransportMode   TransportMode `json:"transport_mode"`
	Warnings        []string      `json:"warnings,omitempty"`
}

// Itinerary is the full multi-day planning result.
type Itinerary struct {
	TripID        uuid.UUID     `json:"trip_id"`
	City          string        `json:"city"`
	NumDays       int           `json:"num_days"`
	TransportMode TransportMode `json:"transport_mode"`
	Days          []Day         `json:"days"`
	Dropped       []string      `json:"dropped_pois,omitempty"`
	CostSummary   CostSummary   `json:"cost_summary"`
	Request       PlanRequest   `json:"request"`
	Summary       string        `json:"llm_summary,omitempty"`
}
