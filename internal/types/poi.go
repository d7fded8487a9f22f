package types

// POI is a visitable place as loaded from the store. Immutable for the
// lifetime of a planning run.
type POI struct {
	ID           string   `json:"id"`
	City         string   `json:"city"`
	Name         string   `json:"name"`
	Latitude     float64  `json:"latitude"`
	Longitude    float64  `json:"longitude"`
	Category     string   `json:"category"`
	EntryFee     float64  `json:"entry_fee"`
	Rating       float64  `json:"rating"`
	Tags         []string `json:"tags,omitempty"`
	OpensAt      string   `json:"opens_at,omitempty"`   // "HH:MM", empty means always open
	ClosesAt     string   `json:"closes_at,omitempty"`  // "HH:MM", empty means never closes
	Activities   []string `json:"activities,omitempty"` // priced via PlannerSettings.ActivityExtras
	AvgVisitMins int      `json:"avg_visit_mins"`
	Address      string   `json:"address,omitempty"`
	Repeatable   bool     `json:"repeatable,omitempty"`
}

// POIFilter narrows the candidate query against the store.
type POIFilter struct {
	City        string   `json:"city"`
	Categories  []string `json:"categories,omitempty"`
	MaxEntryFee *float64 `json:"max_entry_fee,omitempty"`
	MinRating   float64  `json:"min_rating,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Limit       int      `json:"limit,omitempty"`
}
