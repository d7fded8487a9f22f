package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/internal/api/packages"
	"github.com/FACorreiaa/go-trip-planner/internal/api/poi"
	"github.com/FACorreiaa/go-trip-planner/internal/api/routing"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service is the itinerary orchestrator: candidate loading, matrix build and
// the per-day rank → route → schedule → cost pipeline.
type Service interface {
	Generate(ctx context.Context, req types.PlanRequest) (*types.Itinerary, error)
}

type ServiceImpl struct {
	logger          *slog.Logger
	poiService      poi.Service
	packagesService packages.Service
	builder         *routing.MatrixBuilder
	settings        types.PlannerSettings
	metrics         *metrics.AppMetrics
}

func NewServiceImpl(poiService poi.Service, packagesService packages.Service, builder *routing.MatrixBuilder, settings types.PlannerSettings, m *metrics.AppMetrics, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:          logger,
		poiService:      poiService,
		packagesService: packagesService,
		builder:         builder,
		settings:        settings,
		metrics:         m,
	}
}

// Generate plans the whole trip. Only input validation is fatal; every
// per-day problem is carried back as a marker on the affected day so a
// partially degraded itinerary still reaches the caller.
//
// Days are planned sequentially: the shared "already used POI" set is the one
// piece of cross-day state, and single ownership keeps uniqueness trivial to
// reason about. Per-day work is pure and in-memory once the matrix exists.
func (s *ServiceImpl) Generate(ctx context.Context, req types.PlanRequest) (*types.Itinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "Generate")
	defer span.End()
	started := time.Now()

	// Day numbers are checked on the raw request: both normalization and the
	// package overlay key days by number and would hide duplicates.
	if err := validateDayNumbers(req.Days); err != nil {
		s.logger.WarnContext(ctx, "planning request rejected", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	if req.PackageID != "" {
		pkg, err := s.resolvePackage(req.PackageID)
		if err != nil {
			s.logger.WarnContext(ctx, "planning request rejected", slog.Any("error", err))
			span.RecordError(err)
			return nil, err
		}
		req = s.packagesService.Apply(pkg, req)
		span.SetAttributes(attribute.String("package_id", pkg.ID))
	}
	normalizeRequest(&req, s.settings)
	if err := validateRequest(req); err != nil {
		s.logger.WarnContext(ctx, "planning request rejected", slog.Any("error", err))
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("city", req.City), attribute.Int("num_days", req.NumDays))

	candidates, err := s.poiService.Candidates(ctx, req)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("loading candidates: %w", err)
	}

	matrix, err := s.buildMatrix(ctx, req, candidates)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("building travel matrix: %w", err)
	}

	byID := make(map[string]types.POI, len(candidates))
	for _, p := range candidates {
		byID[p.ID] = p
	}

	used := make(map[string]bool, len(candidates))
	attempted := make(map[string]bool)
	days := make([]types.Day, 0, req.NumDays)

	for _, dc := range req.Days {
		mode := req.TransportMode
		if dc.TransportOverride != nil {
			mode = *dc.TransportOverride
		}

		pool := s.dayPool(candidates, dc, used)
		ranked := s.poiService.Rank(pool, poi.RankPreferences{
			FixedOrder: dc.FixedPOIs,
			Interests:  req.Interests,
			BandMaxFee: s.settings.BandMaxEntryFee[req.BudgetBand],
		})

		day := types.Day{DayNumber: dc.DayNumber, Feasible: true, Slots: []types.DaySlot{}}
		if len(ranked) == 0 {
			day.NoCandidates = true
			day.Feasible = len(dc.FixedPOIs) == 0
			priceDay(&day, dc, req.BudgetBand, s.settings)
			days = append(days, day)
			continue
		}

		routed := routeDay(matrix, ranked, dc, mode, s.settings)
		sched := buildSchedule(matrix, routed.ordered, dc, mode, s.settings)

		day.Feasible = routed.feasible && !sched.infeasible
		day.Slots = sched.slots
		day.TotalMins = sched.totalMins
		day.FreeMins = sched.freeMins
		priceDay(&day, dc, req.BudgetBand, s.settings)

		for _, id := range sched.visited {
			if p, ok := byID[id]; !ok || !p.Repeatable {
				used[id] = true
			}
		}
		for _, id := range routed.discarded {
			attempted[id] = true
		}
		for _, id := range sched.dropped {
			attempted[id] = true
		}
		if !day.Feasible && s.metrics != nil {
			s.metrics.DaysInfeasibleTotal.Add(ctx, 1)
		}
		days = append(days, day)
	}

	dropped := make([]string, 0, len(attempted))
	for id := range attempted {
		if !used[id] {
			dropped = append(dropped, id)
		}
	}
	sort.Strings(dropped)

	totalBudget := s.settings.BandDailyBudget[req.BudgetBand] * float64(req.NumDays)
	if req.TotalBudget != nil {
		totalBudget = *req.TotalBudget
	}

	it := &types.Itinerary{
		TripID:        uuid.New(),
		City:          req.City,
		NumDays:       req.NumDays,
		TransportMode: req.TransportMode,
		Days:          days,
		Dropped:       dropped,
		CostSummary:   buildCostSummary(days, totalBudget, req.TransportMode),
		Request:       req,
	}

	if s.metrics != nil {
		s.metrics.PlanRequestsTotal.Add(ctx, 1)
		s.metrics.PlanDurationSeconds.Record(ctx, time.Since(started).Seconds())
		s.metrics.DroppedPOIsTotal.Add(ctx, int64(len(dropped)))
	}
	span.SetAttributes(attribute.Int("dropped.count", len(dropped)))
	span.SetStatus(codes.Ok, "itinerary generated")
	s.logger.InfoContext(ctx, "itinerary generated",
		slog.String("trip_id", it.TripID.String()),
		slog.String("city", req.City),
		slog.Int("days", len(days)),
		slog.Int("dropped", len(dropped)),
		slog.Duration("took", time.Since(started)),
	)
	return it, nil
}

// resolvePackage looks a tour package up for the request overlay. An unknown
// package is a constraint error like any other malformed input.
func (s *ServiceImpl) resolvePackage(id string) (types.TourPackage, error) {
	if s.packagesService == nil {
		return types.TourPackage{}, fmt.Errorf("%w: unknown package %q", types.ErrInvalidConstraint, id)
	}
	pkg, err := s.packagesService.Get(id)
	if err != nil {
		return types.TourPackage{}, fmt.Errorf("%w: unknown package %q", types.ErrInvalidConstraint, id)
	}
	return pkg, nil
}

// buildMatrix assembles the hotel + candidates travel matrix for every mode
// the request can touch. Built once, shared read-only across all days.
func (s *ServiceImpl) buildMatrix(ctx context.Context, req types.PlanRequest, candidates []types.POI) (*routing.TravelMatrix, error) {
	nodes := make([]routing.Node, 0, len(candidates)+1)
	nodes = append(nodes, routing.Node{
		ID:    routing.OriginNodeID,
		Coord: routing.Coordinate{Lat: req.HotelLat, Lon: req.HotelLon},
	})
	for _, p := range candidates {
		nodes = append(nodes, routing.Node{
			ID:    p.ID,
			Coord: routing.Coordinate{Lat: p.Latitude, Lon: p.Longitude},
		})
	}

	modes := []types.TransportMode{req.TransportMode}
	seen := map[types.TransportMode]bool{req.TransportMode: true}
	for _, dc := range req.Days {
		if dc.TransportOverride != nil && !seen[*dc.TransportOverride] {
			seen[*dc.TransportOverride] = true
			modes = append(modes, *dc.TransportOverride)
		}
	}

	started := time.Now()
	matrix, err := s.builder.Build(ctx, nodes, modes)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.MatrixBuildSeconds.Record(ctx, time.Since(started).Seconds())
		if matrix.Degraded() {
			s.metrics.RoutingFallbackTotal.Add(ctx, 1)
		}
	}
	return matrix, nil
}

// dayPool filters the trip candidates down to what this day may use: not
// visited on an earlier day (unless repeatable), not excluded by the day.
// A POI both fixed and excluded stays in; the explicit pin wins.
func (s *ServiceImpl) dayPool(candidates []types.POI, dc types.DayConstraint, used map[string]bool) []types.POI {
	fixed := make(map[string]bool, len(dc.FixedPOIs))
	for _, id := range dc.FixedPOIs {
		fixed[id] = true
	}
	excluded := make(map[string]bool, len(dc.ExcludedPOIs))
	for _, id := range dc.ExcludedPOIs {
		excluded[id] = true
	}

	pool := make([]types.POI, 0, len(candidates))
	for _, p := range candidates {
		if used[p.ID] && !p.Repeatable {
			continue
		}
		if excluded[p.ID] && !fixed[p.ID] {
			continue
		}
		pool = append(pool, p)
	}
	return pool
}
