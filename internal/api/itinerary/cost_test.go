package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func TestTransportCost(t *testing.T) {
	settings := types.DefaultPlannerSettings()

	t.Run("walking is free", func(t *testing.T) {
		assert.Zero(t, transportCost(3.5, types.ModeWalk, types.BandStandard, settings))
	})

	t.Run("cab fare is base plus per-km", func(t *testing.T) {
		// 50 + 22*2.5 = 105 at the standard band
		assert.Equal(t, 105.0, transportCost(2.5, types.ModeCab, types.BandStandard, settings))
	})

	t.Run("band multiplier applies to transport", func(t *testing.T) {
		standard := transportCost(2.5, types.ModeCab, types.BandStandard, settings)
		assert.Equal(t, 84.0, transportCost(2.5, types.ModeCab, types.BandEconomy, settings))
		assert.Equal(t, 141.75, transportCost(2.5, types.ModeCab, types.BandPremium, settings))
		assert.Equal(t, 105.0, standard)
	})

	t.Run("unknown mode costs nothing", func(t *testing.T) {
		assert.Zero(t, transportCost(2.5, types.TransportMode("hovercraft"), types.BandStandard, settings))
	})
}

func TestPriceDay(t *testing.T) {
	settings := types.DefaultPlannerSettings()

	newDay := func() types.Day {
		return types.Day{
			DayNumber: 1,
			Slots: []types.DaySlot{
				{POIID: "a", Mode: types.ModeCab, TravelKm: 2, EntryFee: 30},
				{POIID: "b", Mode: types.ModeCab, TravelKm: 1, EntryFee: 0},
				{Mode: types.ModeCab, TravelKm: 2}, // return leg
			},
		}
	}

	t.Run("breakdown equals the sum of slot totals", func(t *testing.T) {
		day := newDay()
		priceDay(&day, testDay(1), types.BandStandard, settings)

		var slotSum float64
		for _, s := range day.Slots {
			assert.Equal(t, round2(s.EntryFee+s.TransportCost+s.ActivityExtras), s.SlotTotal)
			slotSum += s.SlotTotal
		}
		assert.Equal(t, round2(slotSum), day.Cost.Total)
		assert.Equal(t, day.Cost.Total, round2(day.Cost.Entry+day.Cost.Transport+day.Cost.Extras))
		assert.Equal(t, 30.0, day.Cost.Entry)
	})

	t.Run("activity extras flow into the slot and the breakdown", func(t *testing.T) {
		day := newDay()
		day.Slots[0].ActivityExtras = 340 // e.g. a safari plus a battery vehicle
		priceDay(&day, testDay(1), types.BandStandard, settings)

		assert.Equal(t, round2(day.Slots[0].EntryFee+day.Slots[0].TransportCost+340), day.Slots[0].SlotTotal)
		assert.Equal(t, 340.0, day.Cost.Extras)
		assert.Equal(t, day.Cost.Total, round2(day.Cost.Entry+day.Cost.Transport+340))
	})

	t.Run("band ceiling is attached and checked", func(t *testing.T) {
		day := newDay()
		priceDay(&day, testDay(1), types.BandStandard, settings)
		require.NotNil(t, day.Cost.MaxBudget)
		assert.Equal(t, settings.BandDailyBudget[types.BandStandard], *day.Cost.MaxBudget)
		assert.False(t, day.OverBudget)
	})

	t.Run("explicit day budget overrides the band ceiling", func(t *testing.T) {
		day := newDay()
		dc := testDay(1)
		budget := 50.0
		dc.MaxBudget = &budget
		priceDay(&day, dc, types.BandStandard, settings)
		require.NotNil(t, day.Cost.MaxBudget)
		assert.Equal(t, 50.0, *day.Cost.MaxBudget)
		assert.True(t, day.OverBudget)
	})

	t.Run("explicit zero budget means no spend allowed", func(t *testing.T) {
		day := newDay()
		dc := testDay(1)
		budget := 0.0
		dc.MaxBudget = &budget
		priceDay(&day, dc, types.BandStandard, settings)
		require.NotNil(t, day.Cost.MaxBudget)
		assert.Equal(t, 0.0, *day.Cost.MaxBudget)
		assert.True(t, day.OverBudget)
	})
}

func TestActivityExtras(t *testing.T) {
	settings := types.DefaultPlannerSettings()

	t.Run("sums the rate table over the POI's activities", func(t *testing.T) {
		p := types.POI{ID: "zoo", Activities: []string{"lion_safari", "battery_vehicle"}}
		assert.Equal(t, 350.0, activityExtras(p, settings))
	})

	t.Run("unpriced activities are free", func(t *testing.T) {
		p := types.POI{ID: "beach", Activities: []string{"jogging", "sunbathing"}}
		assert.Zero(t, activityExtras(p, settings))
	})

	t.Run("no activities means no extras", func(t *testing.T) {
		assert.Zero(t, activityExtras(types.POI{ID: "plain"}, settings))
	})
}

func TestBuildCostSummary(t *testing.T) {
	ceiling := 100.0
	days := []types.Day{
		{DayNumber: 1, Cost: types.CostBreakdown{Total: 120, MaxBudget: &ceiling}, OverBudget: true},
		{DayNumber: 2, Cost: types.CostBreakdown{Total: 80}},
	}

	t.Run("grand total aggregates the days", func(t *testing.T) {
		cs := buildCostSummary(days, 500, types.ModeCab)
		assert.Equal(t, 200.0, cs.GrandTotal)
		assert.Equal(t, 100.0, cs.PerDayAvg)
		assert.Equal(t, 300.0, cs.BudgetRemaining)
		assert.True(t, cs.WithinBudget)
	})

	t.Run("over-budget days produce warnings", func(t *testing.T) {
		cs := buildCostSummary(days, 500, types.ModeCab)
		require.Len(t, cs.Warnings, 1)
		assert.Contains(t, cs.Warnings[0], "day 1")
	})

	t.Run("trip overrun adds a warning and clears the flag", func(t *testing.T) {
		cs := buildCostSummary(days, 150, types.ModeCab)
		assert.False(t, cs.WithinBudget)
		require.Len(t, cs.Warnings, 2)
		assert.Contains(t, cs.Warnings[1], "trip total")
	})

	t.Run("no budget means always within it", func(t *testing.T) {
		cs := buildCostSummary(days, 0, types.ModeCab)
		assert.True(t, cs.WithinBudget)
	})
}
