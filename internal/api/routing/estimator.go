package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

// Coordinate is a WGS84 point.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Leg is the travel estimate between two points for one mode. Estimated is
// true when the value came from the great-circle fallback rather than the
// routing provider, so downstream decisions can be conservative about it.
type Leg struct {
	Duration   time.Duration `json:"duration"`
	DistanceKm float64       `json:"distance_km"`
	Estimated  bool          `json:"estimated,omitempty"`
}

// Estimator produces travel legs. EstimateLeg never fails: implementations
// degrade precision instead of availability.
type Estimator interface {
	EstimateLeg(ctx context.Context, from, to Coordinate, mode types.TransportMode) Leg
	MatrixLegs(ctx context.Context, coords []Coordinate, mode types.TransportMode) ([][]Leg, error)
}

var (
	ErrProviderUnavailable = errors.New("routing: provider unavailable")
	ErrProviderRejected    = errors.New("routing: provider rejected request")
)

// provider profiles for the OpenRouteService matrix API
var orsProfiles = map[types.TransportMode]string{
	types.ModeWalk:          "foot-walking",
	types.ModeCab:           "driving-car",
	types.ModePublicTransit: "driving-car",
}

// haversineKm returns the great-circle distance in km between two points.
func haversineKm(a, b Coordinate) float64 {
	const earthRadiusKm = 6371
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}

// FallbackEstimator derives legs from great-circle distance and a per-mode
// average speed. It backs the ORS client when the provider is down and is an
// Estimator in its own right when no provider is configured.
type FallbackEstimator struct {
	speedsKmh map[types.TransportMode]float64
}

func NewFallbackEstimator(speedsKmh map[types.TransportMode]float64) *FallbackEstimator {
	return &FallbackEstimator{speedsKmh: speedsKmh}
}

var _ Estimator = (*FallbackEstimator)(nil)

func (f *FallbackEstimator) EstimateLeg(_ context.Context, from, to Coordinate, mode types.TransportMode) Leg {
	dist := haversineKm(from, to)
	speed := f.speedsKmh[mode]
	if speed <= 0 {
		speed = 20
	}
	return Leg{
		Duration:   time.Duration(dist / speed * float64(time.Hour)),
		DistanceKm: dist,
		Estimated:  true,
	}
}

func (f *FallbackEstimator) MatrixLegs(ctx context.Context, coords []Coordinate, mode types.TransportMode) ([][]Leg, error) {
	legs := make([][]Leg, len(coords))
	for i := range coords {
		legs[i] = make([]Leg, len(coords))
		for j := range coords {
			if i == j {
				continue
			}
			legs[i][j] = f.EstimateLeg(ctx, coords[i], coords[j], mode)
		}
	}
	return legs, nil
}

// ORSClient talks to an OpenRouteService-compatible matrix endpoint with
// client-side rate limiting and bounded retries. Any provider failure falls
// back to great-circle estimates, so callers always get usable legs.
type ORSClient struct {
	base     string
	key      string
	hc       *http.Client
	rl       *rate.Limiter
	fallback *FallbackEstimator
	logger   *slog.Logger
}

var _ Estimator = (*ORSClient)(nil)

func NewORSClient(base, key string, rps int, fallback *FallbackEstimator, logger *slog.Logger) (*ORSClient, error) {
	if key == "" {
		return nil, fmt.Errorf("routing: API key is required")
	}
	if rps <= 0 {
		rps = 5
	}
	return &ORSClient{
		base:     base,
		key:      key,
		hc:       &http.Client{Timeout: 20 * time.Second},
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
		fallback: fallback,
		logger:   logger,
	}, nil
}

type matrixRequest struct {
	Locations [][]float64 `json:"locations"` // [lon, lat] per provider convention
	Metrics   []string    `json:"metrics"`
	Units     string      `json:"units"`
}

type matrixResponse struct {
	Durations [][]float64 `json:"durations"` // seconds
	Distances [][]float64 `json:"distances"` // meters
}

func (c *ORSClient) EstimateLeg(ctx context.Context, from, to Coordinate, mode types.TransportMode) Leg {
	legs, err := c.MatrixLegs(ctx, []Coordinate{from, to}, mode)
	if err != nil {
		c.logger.WarnContext(ctx, "routing provider failed, using fallback estimate", slog.Any("error", err))
		return c.fallback.EstimateLeg(ctx, from, to, mode)
	}
	return legs[0][1]
}

// MatrixLegs requests the full pairwise matrix in one provider call. The
// returned error signals degradation only; callers fall back per cell.
func (c *ORSClient) MatrixLegs(ctx context.Context, coords []Coordinate, mode types.TransportMode) ([][]Leg, error) {
	profile, ok := orsProfiles[mode]
	if !ok {
		profile = "driving-car"
	}

	body := matrixRequest{
		Locations: make([][]float64, 0, len(coords)),
		Metrics:   []string{"duration", "distance"},
		Units:     "m",
	}
	for _, p := range coords {
		body.Locations = append(body.Locations, []float64{p.Lon, p.Lat})
	}

	var resp matrixResponse
	if err := c.post(ctx, fmt.Sprintf("%s/v2/matrix/%s", c.base, profile), body, &resp); err != nil {
		return nil, err
	}
	if len(resp.Durations) != len(coords) || len(resp.Distances) != len(coords) {
		return nil, fmt.Errorf("%w: matrix shape mismatch", ErrProviderRejected)
	}

	legs := make([][]Leg, len(coords))
	for i := range coords {
		if len(resp.Durations[i]) != len(coords) || len(resp.Distances[i]) != len(coords) {
			return nil, fmt.Errorf("%w: matrix row %d shape mismatch", ErrProviderRejected, i)
		}
		legs[i] = make([]Leg, len(coords))
		for j := range coords {
			if i == j {
				continue
			}
			legs[i][j] = Leg{
				Duration:   time.Duration(resp.Durations[i][j] * float64(time.Second)),
				DistanceKm: resp.Distances[i][j] / 1000,
			}
		}
	}
	return legs, nil
}

// post performs the provider call with rate limiting and bounded retries on
// transient failures. 4xx responses other than 429 are not retried.
func (c *ORSClient) post(ctx context.Context, url string, in, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return err
		}
		req.Header.Set("Authorization", c.key)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
			if attempt < 2 && sleepCtx(ctx, backoff(attempt)) {
				continue
			}
			return lastErr
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			return err
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
			if attempt < 2 && sleepCtx(ctx, backoff(attempt)) {
				continue
			}
			return lastErr
		default:
			resp.Body.Close()
			return fmt.Errorf("%w: status %d", ErrProviderRejected, resp.StatusCode)
		}
	}
	return lastErr
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * 250 * time.Millisecond
}

// sleepCtx waits for d unless the context ends first. Reports whether the
// caller should retry.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
