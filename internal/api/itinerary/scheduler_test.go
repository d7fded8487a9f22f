package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func TestBuildSchedule_Timeline(t *testing.T) {
	settings := types.DefaultPlannerSettings()
	pois := []types.POI{linePOI("a", 10), linePOI("b", 20)}
	m := buildLineMatrix(t, lineEstimator{}, pois)

	sched := buildSchedule(m, pois, testDay(1), types.ModeCab, settings)

	t.Run("slots carry concrete clocks", func(t *testing.T) {
		require.Len(t, sched.slots, 3) // two visits plus the return leg
		assert.Equal(t, "09:10", sched.slots[0].Arrival)
		assert.Equal(t, "10:10", sched.slots[0].Departure)
		assert.Equal(t, "10:20", sched.slots[1].Arrival)
		assert.Equal(t, "11:20", sched.slots[1].Departure)
	})

	t.Run("the clock never goes backwards", func(t *testing.T) {
		prev := 0
		for _, s := range sched.slots {
			arr, err := parseClock(s.Arrival)
			require.NoError(t, err)
			dep, err := parseClock(s.Departure)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, arr, prev)
			assert.GreaterOrEqual(t, dep, arr)
			prev = dep
		}
	})

	t.Run("closes with a transit-only return to the hotel", func(t *testing.T) {
		last := sched.slots[len(sched.slots)-1]
		assert.Empty(t, last.POIID)
		assert.Zero(t, last.DwellMins)
		assert.Equal(t, 20, last.TravelMins)
		assert.Equal(t, "11:40", last.Arrival)
	})

	t.Run("time accounting sums travel, idle and dwell", func(t *testing.T) {
		// 10 travel + 60 dwell + 10 travel + 60 dwell + 20 return
		assert.Equal(t, 160, sched.totalMins)
		assert.Equal(t, 600-160, sched.freeMins)
		assert.Equal(t, []string{"a", "b"}, sched.visited)
	})

	t.Run("slots carry the POI's activity extras", func(t *testing.T) {
		zoo := linePOI("zoo", 10)
		zoo.Activities = []string{"lion_safari", "battery_vehicle"}
		m := buildLineMatrix(t, lineEstimator{}, []types.POI{zoo})

		s := buildSchedule(m, []types.POI{zoo}, testDay(1), types.ModeCab, settings)
		require.NotEmpty(t, s.slots)
		assert.Equal(t, 350.0, s.slots[0].ActivityExtras)
	})
}

func TestBuildSchedule_OpeningHours(t *testing.T) {
	settings := types.DefaultPlannerSettings()

	t.Run("arrival before opening waits and records idle time", func(t *testing.T) {
		late := linePOI("late", 10)
		late.OpensAt = "10:00"
		m := buildLineMatrix(t, lineEstimator{}, []types.POI{late})

		sched := buildSchedule(m, []types.POI{late}, testDay(1), types.ModeCab, settings)
		require.NotEmpty(t, sched.slots)
		assert.Equal(t, "10:00", sched.slots[0].Arrival)
		assert.Equal(t, 50, sched.slots[0].IdleMins)
	})

	t.Run("a stop past closing is dropped without consuming the clock", func(t *testing.T) {
		closed := linePOI("closed", 15)
		closed.ClosesAt = "08:00"
		pois := []types.POI{closed, linePOI("a", 10)}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		sched := buildSchedule(m, pois, testDay(1), types.ModeCab, settings)
		assert.Equal(t, []string{"closed"}, sched.dropped)
		assert.False(t, sched.infeasible)
		require.NotEmpty(t, sched.slots)
		// a is still reached from the hotel at its own travel time
		assert.Equal(t, "09:10", sched.slots[0].Arrival)
	})

	t.Run("a fixed stop that cannot fit marks the day infeasible", func(t *testing.T) {
		closed := linePOI("closed", 15)
		closed.ClosesAt = "08:00"
		m := buildLineMatrix(t, lineEstimator{}, []types.POI{closed})

		dc := testDay(1)
		dc.FixedPOIs = []string{"closed"}
		sched := buildSchedule(m, []types.POI{closed}, dc, types.ModeCab, settings)
		assert.True(t, sched.infeasible)
		assert.Empty(t, sched.dropped)
	})
}

func TestBuildSchedule_DayEnd(t *testing.T) {
	settings := types.DefaultPlannerSettings()

	t.Run("a visit running past the day end is dropped", func(t *testing.T) {
		pois := []types.POI{linePOI("a", 10), linePOI("b", 20)}
		m := buildLineMatrix(t, lineEstimator{}, pois)

		dc := testDay(1)
		dc.EndTime = "10:30"
		sched := buildSchedule(m, pois, dc, types.ModeCab, settings)
		assert.Equal(t, []string{"a"}, sched.visited)
		assert.Equal(t, []string{"b"}, sched.dropped)
	})

	t.Run("empty sequence yields no slots and full free time", func(t *testing.T) {
		m := buildLineMatrix(t, lineEstimator{}, nil)
		sched := buildSchedule(m, nil, testDay(1), types.ModeCab, settings)
		assert.Empty(t, sched.slots)
		assert.Equal(t, 600, sched.freeMins)
	})
}

func TestBuildSchedule_PaceDwell(t *testing.T) {
	settings := types.DefaultPlannerSettings()
	pois := []types.POI{linePOI("a", 10)}
	m := buildLineMatrix(t, lineEstimator{}, pois)

	dc := testDay(1)
	dc.Pace = types.PacePacked
	sched := buildSchedule(m, pois, dc, types.ModeCab, settings)
	require.NotEmpty(t, sched.slots)
	assert.Equal(t, 45, sched.slots[0].DwellMins)
}
