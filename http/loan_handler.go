package http

import (
	"net/http"

	"home-route-agent/domain"
	"home-route-agent/logger"
	"home-route-agent/service"
)

type LoanHandler struct {
	service *service.LoanService
	logger  logger.Logger
}

func NewLoanHandler(service *service.LoanService, log logger.Logger) *LoanHandler {
	return &LoanHandler{service: service, logger: log}
}

// CalculateLoan handles POST /api/v1/loan/calculate.
func (h *LoanHandler) CalculateLoan(w http.ResponseWriter, r *http.Request) {
	var input domain.LoanInput
	if err := decodeJSON(r, &input); err != nil {
		respondError(w, err)
		return
	}

	result, err := h.service.CalculateLoan(r.Context(), input)
	if err != nil {
		h.logger.WithError(err).Debug("loan calculation rejected", nil)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
