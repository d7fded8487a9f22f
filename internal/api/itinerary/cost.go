package itinerary

import (
	"fmt"
	"math"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// transportCost prices one travel leg: per-mode base fare plus per-km rate,
// scaled by the budget band. The band multiplier applies to transport only;
// entry fees are what they are.
func transportCost(distanceKm float64, mode types.TransportMode, band types.BudgetBand, settings types.PlannerSettings) float64 {
	rate, ok := settings.Rates[mode]
	if !ok {
		return 0
	}
	if rate.Base == 0 && rate.PerKm == 0 {
		return 0
	}
	factor := settings.BandTransportFactor[band]
	if factor <= 0 {
		factor = 1
	}
	return round2((rate.Base + rate.PerKm*distanceKm) * factor)
}

// activityExtras prices a POI's on-site activities against the extras rate
// table. Activities without a rate are free.
func activityExtras(p types.POI, settings types.PlannerSettings) float64 {
	var total float64
	for _, a := range p.Activities {
		total += settings.ActivityExtras[a]
	}
	return round2(total)
}

// priceDay fills in slot costs and the day's breakdown, then checks the
// ceiling. An over-budget day is marked, never re-routed: routing and costing
// stay decoupled so each is debuggable on its own.
func priceDay(day *types.Day, dc types.DayConstraint, band types.BudgetBand, settings types.PlannerSettings) {
	var entry, transport, extras float64
	for i := range day.Slots {
		s := &day.Slots[i]
		s.TransportCost = transportCost(s.TravelKm, s.Mode, band, settings)
		s.SlotTotal = round2(s.EntryFee + s.TransportCost + s.ActivityExtras)
		entry += s.EntryFee
		transport += s.TransportCost
		extras += s.ActivityExtras
	}

	day.Cost = types.CostBreakdown{
		Entry:     round2(entry),
		Transport: round2(transport),
		Extras:    round2(extras),
		Total:     round2(entry + transport + extras),
	}

	// An explicit day budget is always honored, zero included: a caller who
	// sends 0 wants a free day, not an uncapped one. The band default only
	// applies when positive.
	ceiling := settings.BandDailyBudget[band]
	explicit := dc.MaxBudget != nil
	if explicit {
		ceiling = *dc.MaxBudget
	}
	if explicit || ceiling > 0 {
		c := ceiling
		day.Cost.MaxBudget = &c
		day.OverBudget = day.Cost.Total > ceiling
	}
}

// buildCostSummary rolls day subtotals up into the trip-level money view.
func buildCostSummary(days []types.Day, totalBudget float64, mode types.TransportMode) types.CostSummary {
	var grand float64
	var warnings []string
	for _, d := range days {
		grand += d.Cost.Total
		if d.OverBudget && d.Cost.MaxBudget != nil {
			warnings = append(warnings, fmt.Sprintf(
				"day %d total %.2f exceeds its ceiling %.2f", d.DayNumber, d.Cost.Total, *d.Cost.MaxBudget))
		}
	}
	grand = round2(grand)
	if totalBudget > 0 && grand > totalBudget {
		warnings = append(warnings, fmt.Sprintf(
			"trip total %.2f exceeds budget %.2f", grand, totalBudget))
	}

	n := len(days)
	if n == 0 {
		n = 1
	}
	return types.CostSummary{
		GrandTotal:      grand,
		TotalBudget:     round2(totalBudget),
		WithinBudget:    totalBudget <= 0 || grand <= totalBudget,
		BudgetRemaining: round2(totalBudget - grand),
		PerDayAvg:       round2(grand / float64(n)),
		TransportMode:   mode,
		Warnings:        warnings,
	}
}
