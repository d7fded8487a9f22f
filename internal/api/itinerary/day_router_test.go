package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func orderedIDs(rd routedDay) []string {
	ids := make([]string, 0, len(rd.ordered))
	for _, p := range rd.ordered {
		ids = append(ids, p.ID)
	}
	return ids
}

func TestRouteDay_Greedy(t *testing.T) {
	settings := types.DefaultPlannerSettings()

	t.Run("visits nearest feasible candidate first", func(t *testing.T) {
		pois := []types.POI{linePOI("far", 30), linePOI("near", 10), linePOI("mid", 20)}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		rd := routeDay(m, pois, testDay(1), types.ModeCab, settings)
		assert.Equal(t, []string{"near", "mid", "far"}, orderedIDs(rd))
		assert.True(t, rd.feasible)
		assert.Empty(t, rd.discarded)
	})

	t.Run("stops at the pace's stop cap", func(t *testing.T) {
		pois := []types.POI{
			linePOI("a", 10), linePOI("b", 20), linePOI("c", 30),
			linePOI("d", 40), linePOI("e", 50),
		}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		dc := testDay(1)
		dc.Pace = types.PaceRelaxed // cap of 3
		rd := routeDay(m, pois, dc, types.ModeCab, settings)
		assert.Len(t, rd.ordered, 3)
	})

	t.Run("stops when the day window runs out", func(t *testing.T) {
		pois := []types.POI{linePOI("a", 10), linePOI("b", 20)}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		dc := testDay(1)
		dc.EndTime = "10:30" // room for one 60-minute visit only
		rd := routeDay(m, pois, dc, types.ModeCab, settings)
		assert.Equal(t, []string{"a"}, orderedIDs(rd))
	})
}

func TestRouteDay_FixedPOIs(t *testing.T) {
	settings := types.DefaultPlannerSettings()

	t.Run("fixed POIs lead in their requested order", func(t *testing.T) {
		pois := []types.POI{linePOI("a", 10), linePOI("b", 20), linePOI("c", 30)}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		dc := testDay(1)
		dc.FixedPOIs = []string{"c", "b"}
		rd := routeDay(m, pois, dc, types.ModeCab, settings)
		require.True(t, len(rd.ordered) >= 2)
		assert.Equal(t, "c", rd.ordered[0].ID)
		assert.Equal(t, "b", rd.ordered[1].ID)
		assert.True(t, rd.feasible)
	})

	t.Run("unknown fixed POI flips feasibility", func(t *testing.T) {
		pois := []types.POI{linePOI("a", 10)}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		dc := testDay(1)
		dc.FixedPOIs = []string{"ghost"}
		rd := routeDay(m, pois, dc, types.ModeCab, settings)
		assert.False(t, rd.feasible)
		assert.Equal(t, []string{"a"}, orderedIDs(rd))
	})

	t.Run("fixed POI that cannot fit flips feasibility", func(t *testing.T) {
		closed := linePOI("closed", 10)
		closed.ClosesAt = "08:00" // shut before the day starts
		pois := []types.POI{closed, linePOI("a", 20)}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		dc := testDay(1)
		dc.FixedPOIs = []string{"closed"}
		rd := routeDay(m, pois, dc, types.ModeCab, settings)
		assert.False(t, rd.feasible)
	})
}

func TestRouteDay_OpeningWindows(t *testing.T) {
	settings := types.DefaultPlannerSettings()

	t.Run("waits for a POI that opens later", func(t *testing.T) {
		late := linePOI("late", 10)
		late.OpensAt = "11:00"
		pois := []types.POI{late}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		rd := routeDay(m, pois, testDay(1), types.ModeCab, settings)
		assert.Equal(t, []string{"late"}, orderedIDs(rd))
	})

	t.Run("discards a POI closed for the whole day after the retry", func(t *testing.T) {
		closed := linePOI("closed", 15)
		closed.ClosesAt = "08:00"
		pois := []types.POI{linePOI("a", 10), closed, linePOI("b", 20)}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		rd := routeDay(m, pois, testDay(1), types.ModeCab, settings)
		assert.Equal(t, []string{"a", "b"}, orderedIDs(rd))
		assert.Contains(t, rd.discarded, "closed")
		assert.True(t, rd.feasible)
	})

	t.Run("discards a POI that only opens after the day ends", func(t *testing.T) {
		late := linePOI("late", 10)
		late.OpensAt, late.ClosesAt = "20:00", "23:00"
		pois := []types.POI{late}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		dc := testDay(1)
		dc.EndTime = "18:00"
		rd := routeDay(m, pois, dc, types.ModeCab, settings)
		assert.Empty(t, rd.ordered)
		assert.Contains(t, rd.discarded, "late")
	})
}

func TestRouteDay_Improvement(t *testing.T) {
	settings := types.DefaultPlannerSettings()

	t.Run("adjacent swap that shortens travel is kept", func(t *testing.T) {
		// greedy picks a first (5 < 6) but a->b is expensive one way
		pois := []types.POI{linePOI("a", 1), linePOI("b", 2)}
		est := lineEstimator{overrides: map[[2]float64]float64{
			{0, 1}: 5,
			{0, 2}: 6,
			{1, 2}: 20,
			{2, 1}: 4,
			{1, 0}: 5,
			{2, 0}: 6,
		}}
		m := buildLineMatrix(t, est, pois)

		rd := routeDay(m, pois, testDay(1), types.ModeCab, settings)
		assert.Equal(t, []string{"b", "a"}, orderedIDs(rd))
	})

	t.Run("swap involving a fixed POI is never attempted", func(t *testing.T) {
		pois := []types.POI{linePOI("a", 1), linePOI("b", 2)}
		est := lineEstimator{overrides: map[[2]float64]float64{
			{0, 1}: 5,
			{0, 2}: 6,
			{1, 2}: 20,
			{2, 1}: 4,
			{1, 0}: 5,
			{2, 0}: 6,
		}}
		m := buildLineMatrix(t, est, pois)

		dc := testDay(1)
		dc.FixedPOIs = []string{"a"}
		rd := routeDay(m, pois, dc, types.ModeCab, settings)
		assert.Equal(t, "a", rd.ordered[0].ID)
	})
}

func BenchmarkRouteDay(b *testing.B) {
	settings := types.DefaultPlannerSettings()
	pois := make([]types.POI, 0, 40)
	for i := 0; i < 40; i++ {
		pois = append(pois, linePOI(string(rune('a'+i%26))+string(rune('0'+i/26)), float64(5+i*3)))
	}
	m := buildLineMatrix(b, lineEstimator{}, pois)
	dc := testDay(1)
	dc.Pace = types.PacePacked

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		routeDay(m, pois, dc, types.ModeCab, settings)
	}
}
