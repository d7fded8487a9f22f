package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"

	database "github.com/FACorreiaa/go-trip-planner/app/db"
	appLogger "github.com/FACorreiaa/go-trip-planner/app/logger"
	appMiddleware "github.com/FACorreiaa/go-trip-planner/app/middleware"
	"github.com/FACorreiaa/go-trip-planner/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-planner/app/tracer"
	"github.com/FACorreiaa/go-trip-planner/config"
	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/packages"
	"github.com/FACorreiaa/go-trip-planner/internal/api/poi"
	"github.com/FACorreiaa/go-trip-planner/internal/api/routing"
	"github.com/FACorreiaa/go-trip-planner/internal/api/summary"
	api "github.com/FACorreiaa/go-trip-planner/internal/router"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

func main() {
	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := setupLogger()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracer.InitTracingAndMetrics("9090")
	metrics.InitAppMetrics()

	// --- Database ---
	dbConfig, err := database.NewDatabaseConfig(&cfg, logger)
	if err != nil {
		logger.Error("Failed to generate database config", slog.Any("error", err))
		os.Exit(1)
	}
	if err := database.RunMigrations(dbConfig.ConnectionURL, logger); err != nil {
		logger.Error("Failed to run database migrations", slog.Any("error", err))
		os.Exit(1)
	}
	pool, err := database.Init(dbConfig.ConnectionURL, logger)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()
	if !database.WaitForDB(ctx, pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	// --- Planning engine wiring ---
	settings := plannerSettings(cfg)
	estimator := setupEstimator(cfg, settings, logger)

	builderOpts := []routing.BuilderOption{
		routing.WithMinTravel(settings.MinTravel),
		routing.WithConcurrency(cfg.Routing.Concurrency),
	}
	if cfg.Routing.Symmetric {
		builderOpts = append(builderOpts, routing.WithSymmetricProvider())
	}
	matrixBuilder := routing.NewMatrixBuilder(estimator, logger, builderOpts...)

	poiRepo := poi.NewRepository(pool, logger)
	poiService := poi.NewServiceImpl(poiRepo, logger)
	packagesService := packages.NewServiceImpl(logger)
	itineraryService := itinerary.NewServiceImpl(poiService, packagesService, matrixBuilder, settings, metrics.Get(), logger)

	var summaryService summary.Service
	if ai, err := summary.NewAIClient(ctx); err != nil {
		logger.Warn("Itinerary summaries disabled", slog.Any("error", err))
	} else {
		summaryService = ai
	}

	poiHandler := poi.NewPOIHandler(poiService, logger)
	packagesHandler := packages.NewPackagesHandler(packagesService, logger)
	itineraryHandler := itinerary.NewItineraryHandler(itineraryService, summaryService, logger)

	// --- Router ---
	mainRouter := api.SetupRouter(&api.Config{
		ItineraryHandler: itineraryHandler,
		POIHandler:       poiHandler,
		PackagesHandler:  packagesHandler,
		APIKeyMiddleware: appMiddleware.APIKey(cfg.Server.APIKey),
	})

	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(appLogger.StructuredLogger(logger))
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)
	router.Use(middleware.Timeout(60 * time.Second))
	router.Use(middleware.Compress(5, "application/json"))
	router.Mount("/", mainRouter)

	serverAddress := fmt.Sprintf(":%s", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         serverAddress,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	go func() {
		logger.Info("Starting HTTP server", slog.String("address", serverAddress))
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server ListenAndServe error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server graceful shutdown failed", slog.Any("error", err))
	} else {
		logger.Info("HTTP server gracefully stopped")
	}
	logger.Info("Application shut down complete.")
}

// setupEstimator picks the routing provider. Without an ORS key the engine
// still plans, on great-circle estimates only.
func setupEstimator(cfg config.Config, settings types.PlannerSettings, logger *slog.Logger) routing.Estimator {
	fallback := routing.NewFallbackEstimator(settings.SpeedsKmh)
	key := os.Getenv("ORS_API_KEY")
	if key == "" {
		logger.Warn("ORS_API_KEY not set, travel estimates will use great-circle fallback only")
		return fallback
	}
	ors, err := routing.NewORSClient(cfg.Routing.BaseURL, key, cfg.Routing.RPS, fallback, logger)
	if err != nil {
		logger.Warn("Failed to build routing client, using fallback estimator", slog.Any("error", err))
		return fallback
	}
	return ors
}

// plannerSettings merges the planner config section onto the built-in
// defaults, so a partial config stays usable.
func plannerSettings(cfg config.Config) types.PlannerSettings {
	s := types.DefaultPlannerSettings()
	p := cfg.Planner

	if p.DefaultStart != "" {
		s.DefaultStart = p.DefaultStart
	}
	if p.DefaultEnd != "" {
		s.DefaultEnd = p.DefaultEnd
	}
	if p.MinTravelMins > 0 {
		s.MinTravel = time.Duration(p.MinTravelMins) * time.Minute
	}
	for mode, v := range p.SpeedsKmh {
		s.SpeedsKmh[types.TransportMode(mode)] = v
	}
	for mode, v := range p.RateBase {
		r := s.Rates[types.TransportMode(mode)]
		r.Base = v
		s.Rates[types.TransportMode(mode)] = r
	}
	for mode, v := range p.RatePerKm {
		r := s.Rates[types.TransportMode(mode)]
		r.PerKm = v
		s.Rates[types.TransportMode(mode)] = r
	}
	for band, v := range p.BandTransport {
		s.BandTransportFactor[types.BudgetBand(band)] = v
	}
	for band, v := range p.BandMaxFee {
		s.BandMaxEntryFee[types.BudgetBand(band)] = v
	}
	for band, v := range p.BandDaily {
		s.BandDailyBudget[types.BudgetBand(band)] = v
	}
	for activity, v := range p.ActivityExtras {
		s.ActivityExtras[activity] = v
	}
	return s
}

// setupLogger configures and returns the application logger.
func setupLogger() *slog.Logger {
	var logger *slog.Logger
	env := os.Getenv("APP_ENV")

	if env == "development" || env == "" {
		tintOpts := &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		}
		logger = slog.New(tint.NewHandler(os.Stdout, tintOpts))
		log.Println("Initialized development logger (tint)")
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, jsonOpts))
		log.Println("Initialized production logger (JSON)")
	}
	return logger
}
