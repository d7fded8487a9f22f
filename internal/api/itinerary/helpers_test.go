package itinerary

import (
	"context"
	"io"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/api/routing"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// lineEstimator places every node on a line: latitude is the position and one
// unit of distance costs one minute, for any mode. Keeps routing arithmetic
// readable in tests.
type lineEstimator struct {
	// overrides maps [fromPos, toPos] to minutes for directed exceptions
	overrides map[[2]float64]float64
}

func (e lineEstimator) minutes(from, to routing.Coordinate) float64 {
	if m, ok := e.overrides[[2]float64{from.Lat, to.Lat}]; ok {
		return m
	}
	return math.Abs(to.Lat - from.Lat)
}

func (e lineEstimator) EstimateLeg(_ context.Context, from, to routing.Coordinate, _ types.TransportMode) routing.Leg {
	m := e.minutes(from, to)
	return routing.Leg{Duration: time.Duration(m * float64(time.Minute)), DistanceKm: m}
}

func (e lineEstimator) MatrixLegs(ctx context.Context, coords []routing.Coordinate, mode types.TransportMode) ([][]routing.Leg, error) {
	legs := make([][]routing.Leg, len(coords))
	for i := range coords {
		legs[i] = make([]routing.Leg, len(coords))
		for j := range coords {
			if i == j {
				continue
			}
			legs[i][j] = e.EstimateLeg(ctx, coords[i], coords[j], mode)
		}
	}
	return legs, nil
}

// buildLineMatrix assembles a travel matrix for pois positioned by latitude,
// with the origin at position zero.
func buildLineMatrix(t testing.TB, est routing.Estimator, pois []types.POI, modes ...types.TransportMode) *routing.TravelMatrix {
	t.Helper()
	if len(modes) == 0 {
		modes = []types.TransportMode{types.ModeCab}
	}
	nodes := []routing.Node{{ID: routing.OriginNodeID, Coord: routing.Coordinate{Lat: 0}}}
	for _, p := range pois {
		nodes = append(nodes, routing.Node{ID: p.ID, Coord: routing.Coordinate{Lat: p.Latitude}})
	}
	b := routing.NewMatrixBuilder(est, testLogger())
	m, err := b.Build(context.Background(), nodes, modes)
	require.NoError(t, err)
	return m
}

// linePOI is a minimal open-all-day POI at the given line position.
func linePOI(id string, pos float64) types.POI {
	return types.POI{ID: id, Name: id, Latitude: pos, AvgVisitMins: 60, Rating: 4.0}
}

func testDay(n int) types.DayConstraint {
	return types.DayConstraint{
		DayNumber: n,
		StartTime: "09:00",
		EndTime:   "19:00",
		Pace:      types.PaceNormal,
	}
}
