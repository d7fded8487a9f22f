package poi

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
	"github.com/FACorreiaa/go-trip-planner/internal/types"
)

type POIHandler struct {
	poiService Service
	logger     *slog.Logger
}

func NewPOIHandler(poiService Service, logger *slog.Logger) *POIHandler {
	return &POIHandler{
		poiService: poiService,
		logger:     logger,
	}
}

// SearchPOIs lists POIs for a city filtered by category, fee, rating and tags.
func (h *POIHandler) SearchPOIs(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("SearchPOIs").Start(r.Context(), "SearchPOIs", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/pois"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "SearchPOIs"))

	q := r.URL.Query()
	city := q.Get("city")
	if city == "" {
		l.ErrorContext(ctx, "city query parameter is required")
		api.ErrorResponse(w, r, http.StatusBadRequest, "city is required")
		return
	}

	req := types.PlanRequest{City: city}
	if cats := q.Get("categories"); cats != "" {
		req.Categories = strings.Split(cats, ",")
	}
	if tags := q.Get("tags"); tags != "" {
		req.Interests = strings.Split(tags, ",")
	}
	if s := q.Get("max_entry_fee"); s != "" {
		fee, err := strconv.ParseFloat(s, 64)
		if err != nil || fee < 0 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "invalid max_entry_fee")
			return
		}
		req.MaxEntryFee = &fee
	}
	if s := q.Get("min_rating"); s != "" {
		rating, err := strconv.ParseFloat(s, 64)
		if err != nil || rating < 0 || rating > 5 {
			api.ErrorResponse(w, r, http.StatusBadRequest, "invalid min_rating")
			return
		}
		req.MinRating = &rating
	}

	pois, err := h.poiService.Candidates(ctx, req)
	if err != nil {
		l.ErrorContext(ctx, "failed to search POIs", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to search POIs")
		return
	}

	ranked := h.poiService.Rank(pois, RankPreferences{Interests: req.Interests})
	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"city": city,
		"pois": ranked,
	})
}
