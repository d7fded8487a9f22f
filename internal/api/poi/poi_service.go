package poi

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

var _ Service = (*ServiceImpl)(nil)

// Service loads and ranks candidate POIs for a planning run.
type Service interface {
	Candidates(ctx context.Context, req types.PlanRequest) ([]types.POI, error)
	Rank(candidates []types.POI, prefs RankPreferences) []types.POI
}

// RankPreferences is the per-day ranking context: fixed stops always come
// first in their given order, the rest compete on score.
type RankPreferences struct {
	FixedOrder []string
	Interests  []string
	BandMaxFee float64
}

type ServiceImpl struct {
	logger        *slog.Logger
	poiRepository Repository
}

func NewServiceImpl(poiRepository Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:        logger,
		poiRepository: poiRepository,
	}
}

// Candidates returns the trip's candidate pool: the store search for the
// city's filters plus every fixed POI named in the day constraints, merged
// and deduplicated by ID.
func (s *ServiceImpl) Candidates(ctx context.Context, req types.PlanRequest) ([]types.POI, error) {
	ctx, span := otel.Tracer("POIService").Start(ctx, "Candidates")
	defer span.End()
	span.SetAttributes(attribute.String("city", req.City))

	filter := types.POIFilter{
		City:        req.City,
		Categories:  req.Categories,
		MaxEntryFee: req.MaxEntryFee,
		Tags:        nil, // tag overlap is a ranking signal, not a hard filter
	}
	if req.MinRating != nil {
		filter.MinRating = *req.MinRating
	}

	candidates, err := s.poiRepository.SearchCandidates(ctx, filter)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to search candidate POIs", slog.Any("error", err))
		span.RecordError(err)
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	var fixedIDs []string
	seen := make(map[string]struct{}, len(candidates))
	for _, p := range candidates {
		seen[p.ID] = struct{}{}
	}
	for _, dc := range req.Days {
		for _, id := range dc.FixedPOIs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				fixedIDs = append(fixedIDs, id)
			}
		}
	}
	if len(fixedIDs) > 0 {
		fixed, err := s.poiRepository.GetPOIsByIDs(ctx, req.City, fixedIDs)
		if err != nil {
			s.logger.ErrorContext(ctx, "failed to fetch fixed POIs", slog.Any("error", err))
			span.RecordError(err)
			return nil, fmt.Errorf("failed to load fixed POIs: %w", err)
		}
		candidates = append(candidates, fixed...)
	}

	span.SetAttributes(attribute.Int("candidates.count", len(candidates)))
	span.SetStatus(codes.Ok, "candidates loaded")
	return candidates, nil
}

// Rank orders candidates by fit: fixed POIs first in their requested order,
// then descending score from rating, interest-tag overlap and fee-band fit.
// Ties break on POI ID so re-runs produce identical itineraries.
func (s *ServiceImpl) Rank(candidates []types.POI, prefs RankPreferences) []types.POI {
	fixedPos := make(map[string]int, len(prefs.FixedOrder))
	for i, id := range prefs.FixedOrder {
		fixedPos[id] = i
	}

	ranked := make([]types.POI, len(candidates))
	copy(ranked, candidates)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, iFixed := fixedPos[ranked[i].ID]
		pj, jFixed := fixedPos[ranked[j].ID]
		switch {
		case iFixed && jFixed:
			return pi < pj
		case iFixed != jFixed:
			return iFixed
		}
		si := score(ranked[i], prefs)
		sj := score(ranked[j], prefs)
		if si != sj {
			return si > sj
		}
		return ranked[i].ID < ranked[j].ID
	})
	return ranked
}

// score combines normalized rating, tag overlap with the requested interests
// and a fee-band penalty into a 0..1 fit value.
func score(p types.POI, prefs RankPreferences) float64 {
	rating := p.Rating / 5
	if rating > 1 {
		rating = 1
	}

	overlap := 0.0
	if len(prefs.Interests) > 0 {
		tags := make(map[string]struct{}, len(p.Tags))
		for _, t := range p.Tags {
			tags[t] = struct{}{}
		}
		matches := 0
		for _, want := range prefs.Interests {
			if _, ok := tags[want]; ok {
				matches++
			}
		}
		overlap = float64(matches) / float64(len(prefs.Interests))
	}

	feeFit := 1.0
	if prefs.BandMaxFee > 0 && p.EntryFee > prefs.BandMaxFee {
		feeFit = 1 - (p.EntryFee-prefs.BandMaxFee)/prefs.BandMaxFee
		if feeFit < 0 {
			feeFit = 0
		}
	}

	return 0.5*rating + 0.3*overlap + 0.2*feeFit
}
