package types

// TourPackage is a curated trip template: category and tag filters plus the
// per-day defaults a themed trip usually wants. Packages only supply defaults;
// anything the caller sets explicitly on the request is kept as-is.
type TourPackage struct {
	ID            string        `json:"package_id"`
	Name          string        `json:"name"`
	Theme         string        `json:"theme"`
	Description   string        `json:"description,omitempty"`
	Categories    []string      `json:"categories"`
	Tags          []string      `json:"tags,omitempty"`
	Activities    []string      `json:"activities,omitempty"`
	MaxEntryFee   float64       `json:"max_entry_fee"`
	MinRating     float64       `json:"min_rating"`
	TransportMode TransportMode `json:"transport_mode"`
	DailyBudget   float64       `json:"daily_budget"`
	Pace          Pace          `json:"pace"`
	StartTime     string        `json:"start_time"` // "HH:MM"
	EndTime       string        `json:"end_time"`   // "HH:MM"
}
