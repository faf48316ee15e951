package http

import (
	"net/http"

	"home-route-agent/apperrors"
	"home-route-agent/domain"
	"home-route-agent/logger"
	"home-route-agent/service"
)

type RouteHandler struct {
	service *service.RouteService
	logger  logger.Logger
}

func NewRouteHandler(service *service.RouteService, log logger.Logger) *RouteHandler {
	return &RouteHandler{service: service, logger: log}
}

// GenerateRoutes handles POST /api/v1/routes. Partial archetype failures
// still answer 200 with the routes that succeeded.
func (h *RouteHandler) GenerateRoutes(w http.ResponseWriter, r *http.Request) {
	var req domain.RouteRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.service.SynthesizeAllRoutes(r.Context(), req)
	if err != nil {
		fields := map[string]interface{}{"code": apperrors.PublicCode(err)}
		if apperrors.HTTPStatus(err) >= http.StatusInternalServerError {
			h.logger.WithError(err).Error("route generation failed", fields)
		} else {
			h.logger.WithError(err).Debug("route generation rejected", fields)
		}
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// ListArchetypes handles GET /api/v1/routes/archetypes.
func (h *RouteHandler) ListArchetypes(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{"archetypes": h.service.Archetypes()})
}
