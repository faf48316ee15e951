package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"home-route-agent/apperrors"
)

type errorBody struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details string              `json:"details,omitempty"`
}

type errorResponse struct {
	Error  errorBody `json:"error"`
	Status int       `json:"status"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError writes err as the standard error body. Internal details of
// unexpected errors are not exposed.
func respondError(w http.ResponseWriter, err error) {
	status := apperrors.HTTPStatus(err)
	body := errorBody{Code: apperrors.PublicCode(err), Message: "internal server error"}

	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
		body.Details = appErr.Details
	}
	respondJSON(w, status, errorResponse{Error: body, Status: status})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("invalid request body: %v", err)
	}
	return nil
}
