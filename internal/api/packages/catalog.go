package packages

import "github.com/FACorreiaa/go-trip-planner/internal/types"

// builtinCatalog is the curated package list. Static for now; a store-backed
// catalog would slot in behind the same Service interface.
func builtinCatalog() []types.TourPackage {
	return []types.TourPackage{
		{
			ID:            "pkg-heritage",
			Name:          "Heritage & History",
			Theme:         "heritage",
			Description:   "Forts, museums and colonial-era landmarks at a steady pace.",
			Categories:    []string{"heritage", "temple", "museum"},
			Tags:          []string{"fort", "colonial", "architecture", "history"},
			Activities:    []string{"museum_visit", "history_tour", "photography"},
			MaxEntryFee:   150,
			MinRating:     4.3,
			TransportMode: types.ModeCab,
			DailyBudget:   1200,
			Pace:          types.PaceNormal,
			StartTime:     "09:00",
			EndTime:       "20:00",
		},
		{
			ID:            "pkg-family",
			Name:          "Family Fun Day",
			Theme:         "family",
			Description:   "Parks, beaches and kid-friendly attractions.",
			Categories:    []string{"beach", "park", "museum", "attraction"},
			Tags:          []string{"family", "zoo", "amusement", "wildlife", "science"},
			Activities:    []string{"water_rides", "planetarium_shows", "lion_safari"},
			MaxEntryFee:   500,
			MinRating:     4.2,
			TransportMode: types.ModeCab,
			DailyBudget:   2000,
			Pace:          types.PaceNormal,
			StartTime:     "09:00",
			EndTime:       "19:00",
		},
		{
			ID:            "pkg-budget",
			Name:          "Budget Explorer",
			Theme:         "budget",
			Description:   "Free and near-free sights, reached by public transit.",
			Categories:    []string{"beach", "temple", "attraction", "heritage"},
			Tags:          []string{"free", "beach", "urban"},
			Activities:    []string{"jogging", "photography"},
			MaxEntryFee:   0,
			MinRating:     4.0,
			TransportMode: types.ModePublicTransit,
			DailyBudget:   400,
			Pace:          types.PaceRelaxed,
			StartTime:     "08:00",
			EndTime:       "18:00",
		},
		{
			ID:            "pkg-spiritual",
			Name:          "Spiritual Trail",
			Theme:         "spiritual",
			Description:   "Temple circuit with early starts and long evenings.",
			Categories:    []string{"temple"},
			Tags:          []string{"heritage", "pilgrimage", "architecture"},
			Activities:    []string{"prayer", "architecture"},
			MaxEntryFee:   50,
			MinRating:     4.4,
			TransportMode: types.ModeCab,
			DailyBudget:   700,
			Pace:          types.PaceRelaxed,
			StartTime:     "06:00",
			EndTime:       "21:00",
		},
		{
			ID:            "pkg-beach",
			Name:          "Coastal Escape",
			Theme:         "beach",
			Description:   "Late-start shoreline days ending after sunset.",
			Categories:    []string{"beach", "attraction"},
			Tags:          []string{"beach", "sunset", "relaxation"},
			Activities:    []string{"relaxation", "surfing", "drive_in"},
			MaxEntryFee:   300,
			MinRating:     4.2,
			TransportMode: types.ModeCab,
			DailyBudget:   900,
			Pace:          types.PaceRelaxed,
			StartTime:     "15:00",
			EndTime:       "23:00",
		},
		{
			ID:            "pkg-shopping",
			Name:          "Shop & Dine",
			Theme:         "shopping",
			Description:   "Markets, malls and street food in a packed loop.",
			Categories:    []string{"attraction"},
			Tags:          []string{"shopping", "mall", "retail", "street_food"},
			Activities:    []string{"shopping", "street_food", "dining"},
			MaxEntryFee:   0,
			MinRating:     4.0,
			TransportMode: types.ModePublicTransit,
			DailyBudget:   1500,
			Pace:          types.PacePacked,
			StartTime:     "11:00",
			EndTime:       "22:00",
		},
	}
}
