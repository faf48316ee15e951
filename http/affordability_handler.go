package http

import (
	"net/http"

	"home-route-agent/domain"
	"home-route-agent/logger"
	"home-route-agent/service"
)

type AffordabilityHandler struct {
	service *service.AffordabilityService
	logger  logger.Logger
}

func NewAffordabilityHandler(service *service.AffordabilityService, log logger.Logger) *AffordabilityHandler {
	return &AffordabilityHandler{service: service, logger: log}
}

// Assess handles POST /api/v1/affordability.
func (h *AffordabilityHandler) Assess(w http.ResponseWriter, r *http.Request) {
	var input domain.AffordabilityInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.service.Assess(r.Context(), input)
	if err != nil {
		h.logger.WithError(err).Debug("affordability assessment rejected", nil)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
