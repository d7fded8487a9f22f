package packages

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-planner/internal/api"
)

type PackagesHandler struct {
	packagesService Service
	logger          *slog.Logger
}

func NewPackagesHandler(packagesService Service, logger *slog.Logger) *PackagesHandler {
	return &PackagesHandler{
		packagesService: packagesService,
		logger:          logger,
	}
}

// ListPackages returns every tour package with its defaults.
func (h *PackagesHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("ListPackages").Start(r.Context(), "ListPackages", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/packages"),
	))
	defer span.End()

	api.WriteJSONResponse(w, r, http.StatusOK, map[string]any{
		"packages": h.packagesService.List(),
	})
}

// GetPackage returns one package by ID.
func (h *PackagesHandler) GetPackage(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("GetPackage").Start(r.Context(), "GetPackage", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/packages/{id}"),
	))
	defer span.End()

	id := chi.URLParam(r, "id")
	pkg, err := h.packagesService.Get(id)
	if err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			api.ErrorResponse(w, r, http.StatusNotFound, err.Error())
			return
		}
		h.logger.ErrorContext(ctx, "failed to load package", slog.Any("error", err))
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to load package")
		return
	}
	api.WriteJSONResponse(w, r, http.StatusOK, pkg)
}
