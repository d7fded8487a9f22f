package itinerary

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/api/summary"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type ItineraryHandler struct {
	itineraryService Service
	summaryService   summary.Service // optional, nil when no LLM is configured
	logger           *slog.Logger
}

func NewItineraryHandler(itineraryService Service, summaryService summary.Service, logger *slog.Logger) *ItineraryHandler {
	return &ItineraryHandler{
		itineraryService: itineraryService,
		summaryService:   summaryService,
		logger:           logger,
	}
}

// PlanItinerary turns a structured planning request into a day-by-day
// itinerary. Invalid constraints are the only client errors; everything the
// engine could not satisfy comes back as markers inside a 200 response.
func (h *ItineraryHandler) PlanItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlanItinerary").Start(r.Context(), "PlanItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/itineraries/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "PlanItinerary"))
	l.DebugContext(ctx, "Plan itinerary handler invoked")

	var req types.PlanRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.ErrorContext(ctx, "Failed to decode request body", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.itineraryService.Generate(ctx, req)
	if err != nil {
		if errors.Is(err, types.ErrInvalidConstraint) {
			l.WarnContext(ctx, "Invalid planning request", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
			return
		}
		l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
		span.RecordError(err)
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate itinerary")
		return
	}

	if req.IncludeSummary && h.summaryService != nil {
		text, err := h.summaryService.ItinerarySummary(ctx, it)
		if err != nil {
			// prose is a nice-to-have; the itinerary still goes out
			l.WarnContext(ctx, "Summary generation failed", slog.Any("error", err))
		} else {
			it.Summary = text
		}
	}

	api.WriteJSONResponse(w, r, http.StatusOK, it)
}
