package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-trip-planner/internal/api/itinerary"
	"github.com/FACorreiaa/go-trip-planner/internal/api/packages"
	"github.com/FACorreiaa/go-trip-planner/internal/api/poi"
)

// Config contains dependencies needed for the router setup.
type Config struct {
	ItineraryHandler *itinerary.ItineraryHandler
	POIHandler       *poi.POIHandler
	PackagesHandler  *packages.PackagesHandler
	APIKeyMiddleware func(http.Handler) http.Handler
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (request ID, logging, recoverer) are applied before
// mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.APIKeyMiddleware != nil {
			r.Use(cfg.APIKeyMiddleware)
		}
		r.Post("/itineraries/plan", cfg.ItineraryHandler.PlanItinerary)
		r.Get("/pois", cfg.POIHandler.SearchPOIs)
		r.Get("/packages", cfg.PackagesHandler.ListPackages)
		r.Get("/packages/{id}", cfg.PackagesHandler.GetPackage)
	})

	return r
}
