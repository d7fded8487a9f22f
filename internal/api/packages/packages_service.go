package packages

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// ErrPackageNotFound is returned by Get for an unknown package ID.
var ErrPackageNotFound = errors.New("package not found")

var _ Service = (*ServiceImpl)(nil)

// Service exposes the tour package catalog and the overlay that merges a
// package's defaults into a planning request.
type Service interface {
	List() []types.TourPackage
	Get(id string) (types.TourPackage, error)
	Apply(pkg types.TourPackage, req types.PlanRequest) types.PlanRequest
}

type ServiceImpl struct {
	logger  *slog.Logger
	catalog []types.TourPackage
	byID    map[string]types.TourPackage
}

func NewServiceImpl(logger *slog.Logger) *ServiceImpl {
	catalog := builtinCatalog()
	byID := make(map[string]types.TourPackage, len(catalog))
	for _, pkg := range catalog {
		byID[pkg.ID] = pkg
	}
	return &ServiceImpl{
		logger:  logger,
		catalog: catalog,
		byID:    byID,
	}
}

// List returns every package in catalog order.
func (s *ServiceImpl) List() []types.TourPackage {
	out := make([]types.TourPackage, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *ServiceImpl) Get(id string) (types.TourPackage, error) {
	pkg, ok := s.byID[id]
	if !ok {
		return types.TourPackage{}, fmt.Errorf("%w: %q", ErrPackageNotFound, id)
	}
	return pkg, nil
}

// Apply overlays a package's defaults onto a request. Priority is request
// values over package defaults over built-in defaults: only fields the caller
// left empty are filled, and nil pointers are the "unset" signal so an
// explicit zero (free-only entry) is respected. Day constraints are
// materialized for every day so package times, pace and daily budget reach
// days the caller never mentioned; day numbers must already be validated.
func (s *ServiceImpl) Apply(pkg types.TourPackage, req types.PlanRequest) types.PlanRequest {
	if len(req.Categories) == 0 {
		req.Categories = append([]string(nil), pkg.Categories...)
	}
	if len(req.Interests) == 0 {
		req.Interests = append([]string(nil), pkg.Tags...)
	}
	if req.TransportMode == "" {
		req.TransportMode = pkg.TransportMode
	}
	if req.MaxEntryFee == nil {
		fee := pkg.MaxEntryFee
		req.MaxEntryFee = &fee
	}
	if req.MinRating == nil {
		rating := pkg.MinRating
		req.MinRating = &rating
	}

	numDays := req.NumDays
	for _, dc := range req.Days {
		if dc.DayNumber > numDays {
			numDays = dc.DayNumber
		}
	}
	if numDays < 1 {
		numDays = 1
	}

	byDay := make(map[int]types.DayConstraint, len(req.Days))
	for _, dc := range req.Days {
		byDay[dc.DayNumber] = dc
	}
	days := make([]types.DayConstraint, 0, numDays)
	for n := 1; n <= numDays; n++ {
		dc, ok := byDay[n]
		if !ok {
			dc = types.DayConstraint{DayNumber: n}
		}
		if dc.StartTime == "" {
			dc.StartTime = pkg.StartTime
		}
		if dc.EndTime == "" {
			dc.EndTime = pkg.EndTime
		}
		if dc.Pace == "" {
			dc.Pace = pkg.Pace
		}
		if dc.MaxBudget == nil && pkg.DailyBudget > 0 {
			budget := pkg.DailyBudget
			dc.MaxBudget = &budget
		}
		days = append(days, dc)
	}
	req.NumDays = numDays
	req.Days = days
	return req
}
