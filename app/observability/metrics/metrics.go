package metrics

import (
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the planner's metric instruments.
type AppMetrics struct {
	PlanRequestsTotal    metric.Int64Counter
	PlanDurationSeconds  metric.Float64Histogram
	MatrixBuildSeconds   metric.Float64Histogram
	RoutingFallbackTotal metric.Int64Counter
	DaysInfeasibleTotal  metric.Int64Counter
	DroppedPOIsTotal     metric.Int64Counter
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metric instruments once, using the
// globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		meter := otel.GetMeterProvider().Meter("go-trip-planner")
		var err error
		m := &AppMetrics{}

		m.PlanRequestsTotal, err = meter.Int64Counter(
			"plan_requests_total",
			metric.WithDescription("Total number of itinerary planning requests completed"),
			metric.WithUnit("{request}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_requests_total: %v", err)
		}

		m.PlanDurationSeconds, err = meter.Float64Histogram(
			"plan_duration_seconds",
			metric.WithDescription("End-to-end duration of itinerary planning"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create plan_duration_seconds: %v", err)
		}

		m.MatrixBuildSeconds, err = meter.Float64Histogram(
			"matrix_build_duration_seconds",
			metric.WithDescription("Duration of travel matrix construction"),
			metric.WithUnit("s"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create matrix_build_duration_seconds: %v", err)
		}

		m.RoutingFallbackTotal, err = meter.Int64Counter(
			"routing_fallback_total",
			metric.WithDescription("Travel legs estimated via great-circle fallback"),
			metric.WithUnit("{leg}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create routing_fallback_total: %v", err)
		}

		m.DaysInfeasibleTotal, err = meter.Int64Counter(
			"days_infeasible_total",
			metric.WithDescription("Planned days whose fixed constraints could not be satisfied"),
			metric.WithUnit("{day}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create days_infeasible_total: %v", err)
		}

		m.DroppedPOIsTotal, err = meter.Int64Counter(
			"dropped_pois_total",
			metric.WithDescription("Candidate POIs that could not be scheduled"),
			metric.WithUnit("{poi}"),
		)
		if err != nil {
			log.Fatalf("Metrics: Failed to create dropped_pois_total: %v", err)
		}

		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
