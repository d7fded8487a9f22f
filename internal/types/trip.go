package types

import (
	"errors"
	"time"
)

// ErrInvalidConstraint marks malformed planning input. It is the only fatal
// error class: everything else downstream degrades into result markers.
var ErrInvalidConstraint = errors.New("invalid constraint")

type TransportMode string

const (
	ModeWalk          TransportMode = "walk"
	ModeCab           TransportMode = "cab"
	ModePublicTransit TransportMode = "public_transit"
)

func (m TransportMode) Valid() bool {
	switch m {
	case ModeWalk, ModeCab, ModePublicTransit:
		return true
	}
	return false
}

type Pace string

const (
	PaceRelaxed Pace = "relaxed"
	PaceNormal  Pace = "normal"
	PacePacked  Pace = "packed"
)

func (p Pace) Valid() bool {
	switch p {
	case PaceRelaxed, PaceNormal, PacePacked:
		return true
	}
	return false
}

type BudgetBand string

const (
	BandEconomy  BudgetBand = "economy"
	BandStandard BudgetBand = "standard"
	BandPremium  BudgetBand = "premium"
)

func (b BudgetBand) Valid() bool {
	switch b {
	case BandEconomy, BandStandard, BandPremium:
		return true
	}
	return false
}

// DayConstraint describes one day of the trip. Day numbers are 1-indexed and
// unique per request.
type DayConstraint struct {
	DayNumber         int            `json:"day_number"`
	StartTime         string         `json:"start_time"` // "HH:MM"
	EndTime           string         `json:"end_time"`   // "HH:MM"
	Pace              Pace           `json:"pace"`
	FixedPOIs         []string       `json:"fixed_pois,omitempty"`
	ExcludedPOIs      []string       `json:"excluded_pois,omitempty"`
	MaxBudget         *float64       `json:"max_budget,omitempty"`
	TransportOverride *TransportMode `json:"transport_override,omitempty"`
}

// PlanRequest is the structured planning input produced by the request layer.
// PackageID, when set, selects a tour package whose defaults fill every field
// the caller left empty; explicit request values always win.
type PlanRequest struct {
	City           string          `json:"city"`
	PackageID      string          `json:"package_id,omitempty"`
	HotelLat       float64         `json:"hotel_lat"`
	HotelLon       float64         `json:"hotel_lon"`
	NumDays        int             `json:"num_days"`
	BudgetBand     BudgetBand      `json:"budget_band"`
	TransportMode  TransportMode   `json:"transport_mode"`
	Interests      []string        `json:"interests,omitempty"`
	Categories     []string        `json:"categories,omitempty"`
	MaxEntryFee    *float64        `json:"max_entry_fee,omitempty"`
	MinRating      *float64        `json:"min_rating,omitempty"`
	TotalBudget    *float64        `json:"total_budget,omitempty"`
	Days           []DayConstraint `json:"day_constraints,omitempty"`
	IncludeSummary bool            `json:"include_summary,omitempty"`
}

// ModeRate is the fare model for one transport mode: flat base plus per-km.
type ModeRate struct {
	Base  float64 `mapstructure:"base"`
	PerKm float64 `mapstructure:"perKm"`
}

// PaceProfile controls dwell-time scaling and stop density for a pace.
type PaceProfile struct {
	DwellFactor float64 `mapstructure:"dwellFactor"`
	MaxStops    int     `mapstructure:"maxStops"`
}

// PlannerSettings is the process-wide read-only tuning for the engine: rate
// tables, speeds, band multipliers and pace profiles. Loaded once at startup
// and passed explicitly into each component.
type PlannerSettings struct {
	Rates               map[TransportMode]ModeRate
	SpeedsKmh           map[TransportMode]float64
	BandTransportFactor map[BudgetBand]float64
	BandMaxEntryFee     map[BudgetBand]float64
	BandDailyBudget     map[BudgetBand]float64
	Paces               map[Pace]PaceProfile
	ActivityExtras      map[string]float64
	MinTravel           time.Duration
	DefaultStart        string
	DefaultEnd          string
}

// DefaultPlannerSettings returns the built-in tuning. Values can be overridden
// from the planner section of the application config.
func DefaultPlannerSettings() PlannerSettings {
	return PlannerSettings{
		Rates: map[TransportMode]ModeRate{
			ModeWalk:          {Base: 0, PerKm: 0},
			ModePublicTransit: {Base: 10, PerKm: 2.5},
			ModeCab:           {Base: 50, PerKm: 22},
		},
		SpeedsKmh: map[TransportMode]float64{
			ModeWalk:          5,
			ModePublicTransit: 25,
			ModeCab:           25,
		},
		BandTransportFactor: map[BudgetBand]float64{
			BandEconomy:  0.8,
			BandStandard: 1.0,
			BandPremium:  1.35,
		},
		BandMaxEntryFee: map[BudgetBand]float64{
			BandEconomy:  100,
			BandStandard: 300,
			BandPremium:  1000,
		},
		BandDailyBudget: map[BudgetBand]float64{
			BandEconomy:  800,
			BandStandard: 1500,
			BandPremium:  3500,
		},
		Paces: map[Pace]PaceProfile{
			PaceRelaxed: {DwellFactor: 1.3, MaxStops: 3},
			PaceNormal:  {DwellFactor: 1.0, MaxStops: 5},
			PacePacked:  {DwellFactor: 0.75, MaxStops: 7},
		},
		ActivityExtras: map[string]float64{
			"lion_safari":       300,
			"water_rides":       400,
			"elephant_ride":     200,
			"planetarium_shows": 40,
			"horseback_riding":  150,
			"drive_in":          200,
			"bowling":           250,
			"battery_vehicle":   50,
		},
		MinTravel:    5 * time.Minute,
		DefaultStart: "09:00",
		DefaultEnd:   "19:00",
	}
}
