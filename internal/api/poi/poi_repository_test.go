package poi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func setupPOIRepoTest(t *testing.T) (*RepositoryImpl, pgxmock.PgxPoolIface) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockPool.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRepository(mockPool, logger), mockPool
}

func poiRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{
		"id", "city", "name", "latitude", "longitude", "category", "entry_fee",
		"rating", "tags", "activities", "opens_at", "closes_at", "avg_visit_mins",
		"address", "repeatable",
	})
}

func TestRepositoryImpl_SearchCandidates(t *testing.T) {
	ctx := context.Background()

	t.Run("city filter only", func(t *testing.T) {
		repo, mockPool := setupPOIRepoTest(t)
		rows := poiRows().
			AddRow("poi-a", "Lisbon", "Castle", 38.71, -9.13, "landmark", 15.0,
				4.6, []string{"history"}, []string{"history_tour"}, "09:00", "18:00", 90, "Rua A", false).
			AddRow("poi-b", "Lisbon", "Museum", 38.70, -9.15, "museum", 10.0,
				4.1, []string{"art"}, []string(nil), "10:00", "17:00", 60, "Rua B", false)

		mockPool.ExpectQuery("FROM points_of_interest").
			WithArgs("Lisbon", 100).
			WillReturnRows(rows)

		pois, err := repo.SearchCandidates(ctx, types.POIFilter{City: "Lisbon"})
		require.NoError(t, err)
		require.Len(t, pois, 2)
		assert.Equal(t, "poi-a", pois[0].ID)
		assert.Equal(t, []string{"history"}, pois[0].Tags)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("all filters bind in order", func(t *testing.T) {
		repo, mockPool := setupPOIRepoTest(t)
		maxFee := 50.0
		filter := types.POIFilter{
			City:        "Lisbon",
			Categories:  []string{"museum"},
			MaxEntryFee: &maxFee,
			MinRating:   4.0,
			Tags:        []string{"art"},
			Limit:       10,
		}

		mockPool.ExpectQuery("FROM points_of_interest").
			WithArgs("Lisbon", []string{"museum"}, 50.0, 4.0, []string{"art"}, 10).
			WillReturnRows(poiRows())

		pois, err := repo.SearchCandidates(ctx, filter)
		require.NoError(t, err)
		assert.Empty(t, pois)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("missing city is rejected before the query", func(t *testing.T) {
		repo, _ := setupPOIRepoTest(t)
		_, err := repo.SearchCandidates(ctx, types.POIFilter{})
		require.Error(t, err)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		repo, mockPool := setupPOIRepoTest(t)
		mockPool.ExpectQuery("FROM points_of_interest").
			WithArgs("Lisbon", 100).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.SearchCandidates(ctx, types.POIFilter{City: "Lisbon"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to query candidate POIs")
	})
}

func TestRepositoryImpl_GetPOIsByIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("fetches by city and id set", func(t *testing.T) {
		repo, mockPool := setupPOIRepoTest(t)
		rows := poiRows().
			AddRow("poi-z", "Lisbon", "Aquarium", 38.76, -9.09, "attraction", 25.0,
				4.8, []string{"family"}, []string{"water_rides"}, "10:00", "20:00", 120, "Doca", false)

		mockPool.ExpectQuery("FROM points_of_interest").
			WithArgs("Lisbon", []string{"poi-z", "poi-missing"}).
			WillReturnRows(rows)

		pois, err := repo.GetPOIsByIDs(ctx, "Lisbon", []string{"poi-z", "poi-missing"})
		require.NoError(t, err)
		require.Len(t, pois, 1)
		assert.Equal(t, "poi-z", pois[0].ID)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})

	t.Run("empty id set short-circuits", func(t *testing.T) {
		repo, mockPool := setupPOIRepoTest(t)
		pois, err := repo.GetPOIsByIDs(ctx, "Lisbon", nil)
		require.NoError(t, err)
		assert.Nil(t, pois)
		assert.NoError(t, mockPool.ExpectationsWereMet())
	})
}
