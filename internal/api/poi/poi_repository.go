package poi

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Repository = (*RepositoryImpl)(nil)

// Repository is the read-only POI store contract. The engine never writes
// POIs; loading them is the ingestion pipeline's job.
type Repository interface {
	SearchCandidates(ctx context.Context, filter types.POIFilter) ([]types.POI, error)
	GetPOIsByIDs(ctx context.Context, city string, ids []string) ([]types.POI, error)
}

// Querier is the subset of pgxpool.Pool the repository needs. Kept narrow so
// tests can substitute pgxmock.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type RepositoryImpl struct {
	logger *slog.Logger
	pgpool Querier
}

func NewRepository(pgpool Querier, logger *slog.Logger) *RepositoryImpl {
	return &RepositoryImpl{
		logger: logger,
		pgpool: pgpool,
	}
}

const poiColumns = `id, city, name, latitude, longitude, category, entry_fee,
	rating, tags, activities, opens_at, closes_at, avg_visit_mins, address, repeatable`

// SearchCandidates returns POIs for a city matching the hard filters, best
// rated first. Tag overlap is a soft signal and belongs to the ranker, so
// tags only narrow the query when the caller asks for it explicitly.
func (r *RepositoryImpl) SearchCandidates(ctx context.Context, filter types.POIFilter) ([]types.POI, error) {
	if filter.City == "" {
		return nil, fmt.Errorf("city is required")
	}

	var (
		conds = []string{"city = $1"}
		args  = []any{filter.City}
	)
	if len(filter.Categories) > 0 {
		args = append(args, filter.Categories)
		conds = append(conds, fmt.Sprintf("category = ANY($%d)", len(args)))
	}
	if filter.MaxEntryFee != nil {
		args = append(args, *filter.MaxEntryFee)
		conds = append(conds, fmt.Sprintf("entry_fee <= $%d", len(args)))
	}
	if filter.MinRating > 0 {
		args = append(args, filter.MinRating)
		conds = append(conds, fmt.Sprintf("rating >= $%d", len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		conds = append(conds, fmt.Sprintf("tags && $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	args = append(args, limit)

	query := fmt.Sprintf(`
        SELECT %s
        FROM points_of_interest
        WHERE %s
        ORDER BY rating DESC, id ASC
        LIMIT $%d`, poiColumns, strings.Join(conds, " AND "), len(args))

	rows, err := r.pgpool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidate POIs: %w", err)
	}
	defer rows.Close()

	pois, err := scanPOIs(rows)
	if err != nil {
		return nil, err
	}
	r.logger.DebugContext(ctx, "candidate POIs loaded",
		slog.String("city", filter.City), slog.Int("count", len(pois)))
	return pois, nil
}

// GetPOIsByIDs fetches specific POIs (fixed stops in day constraints).
// Missing IDs are simply absent from the result.
func (r *RepositoryImpl) GetPOIsByIDs(ctx context.Context, city string, ids []string) ([]types.POI, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
        SELECT %s
        FROM points_of_interest
        WHERE city = $1 AND id = ANY($2)
        ORDER BY id ASC`, poiColumns)

	rows, err := r.pgpool.Query(ctx, query, city, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query POIs by IDs: %w", err)
	}
	defer rows.Close()

	return scanPOIs(rows)
}

func scanPOIs(rows pgx.Rows) ([]types.POI, error) {
	var pois []types.POI
	for rows.Next() {
		var p types.POI
		if err := rows.Scan(
			&p.ID, &p.City, &p.Name, &p.Latitude, &p.Longitude, &p.Category,
			&p.EntryFee, &p.Rating, &p.Tags, &p.Activities, &p.OpensAt,
			&p.ClosesAt, &p.AvgVisitMins, &p.Address, &p.Repeatable,
		); err != nil {
			return nil, fmt.Errorf("failed to scan POI row: %w", err)
		}
		pois = append(pois, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating POI rows: %w", err)
	}
	return pois, nil
}
