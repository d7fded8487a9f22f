package routing

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// OriginNodeID is the synthetic matrix node for the trip's hotel.
const OriginNodeID = "ORIGIN"

// Node is one planning location: the hotel or a candidate POI.
type Node struct {
	ID    string
	Coord Coordinate
}

type legKey struct {
	mode     types.TransportMode
	from, to string
}

// TravelMatrix is the pairwise travel lookup for a planning run. Built once
// per request and read-only afterwards, so it needs no synchronization.
type TravelMatrix struct {
	legs map[legKey]Leg
}

// Leg returns the travel leg between two nodes for a mode.
func (m *TravelMatrix) Leg(from, to string, mode types.TransportMode) (Leg, bool) {
	l, ok := m.legs[legKey{mode: mode, from: from, to: to}]
	return l, ok
}

// Degraded reports whether any cell came from the fallback estimator.
func (m *TravelMatrix) Degraded() bool {
	for _, l := range m.legs {
		if l.Estimated {
			return true
		}
	}
	return false
}

// MatrixBuilder assembles TravelMatrix values, batching provider calls and
// falling back per cell when the batched call fails. Pair results are cached
// across requests with a TTL.
type MatrixBuilder struct {
	estimator   Estimator
	cache       *gocache.Cache
	logger      *slog.Logger
	minTravel   time.Duration
	concurrency int
	// symmetric mirrors each computed pair. Off by default: one-way streets
	// and traffic make road travel time asymmetric in practice, so both
	// directions are computed unless the provider guarantees symmetry.
	symmetric bool
}

type BuilderOption func(*MatrixBuilder)

func WithSymmetricProvider() BuilderOption {
	return func(b *MatrixBuilder) { b.symmetric = true }
}

func WithConcurrency(n int) BuilderOption {
	return func(b *MatrixBuilder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithMinTravel clamps every non-zero leg duration to at least d.
func WithMinTravel(d time.Duration) BuilderOption {
	return func(b *MatrixBuilder) { b.minTravel = d }
}

func NewMatrixBuilder(estimator Estimator, logger *slog.Logger, opts ...BuilderOption) *MatrixBuilder {
	b := &MatrixBuilder{
		estimator:   estimator,
		cache:       gocache.New(24*time.Hour, 10*time.Minute),
		logger:      logger,
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build computes the pairwise matrix for the given nodes across all requested
// modes. Provider failures degrade to per-cell fallback estimates; the only
// error out of here is context cancellation.
func (b *MatrixBuilder) Build(ctx context.Context, nodes []Node, modes []types.TransportMode) (*TravelMatrix, error) {
	ctx, span := otel.Tracer("MatrixBuilder").Start(ctx, "Build")
	defer span.End()
	span.SetAttributes(attribute.Int("matrix.nodes", len(nodes)), attribute.Int("matrix.modes", len(modes)))

	m := &TravelMatrix{legs: make(map[legKey]Leg, len(nodes)*len(nodes)*len(modes))}
	for _, mode := range modes {
		if err := b.buildMode(ctx, m, nodes, mode); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (b *MatrixBuilder) buildMode(ctx context.Context, m *TravelMatrix, nodes []Node, mode types.TransportMode) error {
	coords := make([]Coordinate, len(nodes))
	for i, n := range nodes {
		coords[i] = n.Coord
	}

	legs, err := b.estimator.MatrixLegs(ctx, coords, mode)
	if err == nil {
		for i := range nodes {
			for j := range nodes {
				if i == j {
					continue
				}
				b.store(m, nodes[i].ID, nodes[j].ID, mode, legs[i][j])
			}
		}
		return nil
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	b.logger.WarnContext(ctx, "batched matrix call failed, filling per cell",
		slog.String("mode", string(mode)), slog.Any("error", err))

	// Per-cell fill: cache first, then individual estimates bounded by the
	// concurrency cap. EstimateLeg never fails, so only ctx can stop us.
	type cell struct {
		i, j int
		leg  Leg
	}
	results := make(chan cell, len(nodes)*len(nodes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i := range nodes {
		for j := range nodes {
			if i == j || (b.symmetric && j < i) {
				continue
			}
			i, j := i, j
			if leg, ok := b.cached(nodes[i].ID, nodes[j].ID, mode); ok {
				results <- cell{i: i, j: j, leg: leg}
				continue
			}
			g.Go(func() error {
				if gctx.Err() != nil {
					return gctx.Err()
				}
				results <- cell{i: i, j: j, leg: b.estimator.EstimateLeg(gctx, nodes[i].Coord, nodes[j].Coord, mode)}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}
	close(results)

	for c := range results {
		b.store(m, nodes[c.i].ID, nodes[c.j].ID, mode, c.leg)
		b.cacheSet(nodes[c.i].ID, nodes[c.j].ID, mode, c.leg)
		if b.symmetric {
			b.store(m, nodes[c.j].ID, nodes[c.i].ID, mode, c.leg)
			b.cacheSet(nodes[c.j].ID, nodes[c.i].ID, mode, c.leg)
		}
	}
	return nil
}

func (b *MatrixBuilder) store(m *TravelMatrix, from, to string, mode types.TransportMode, leg Leg) {
	if leg.Duration > 0 && leg.Duration < b.minTravel {
		leg.Duration = b.minTravel
	}
	m.legs[legKey{mode: mode, from: from, to: to}] = leg
}

func pairCacheKey(from, to string, mode types.TransportMode) string {
	return fmt.Sprintf("%s|%s|%s", mode, from, to)
}

func (b *MatrixBuilder) cached(from, to string, mode types.TransportMode) (Leg, bool) {
	if v, ok := b.cache.Get(pairCacheKey(from, to, mode)); ok {
		return v.(Leg), true
	}
	return Leg{}, false
}

func (b *MatrixBuilder) cacheSet(from, to string, mode types.TransportMode, leg Leg) {
	b.cache.Set(pairCacheKey(from, to, mode), leg, gocache.DefaultExpiration)
}
