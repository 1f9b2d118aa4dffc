package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/clearledger/recon-backend/internal/api/dto"
	"github.com/clearledger/recon-backend/internal/application/service"
)

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteError writes an error response with the given status code.
func WriteError(w http.ResponseWriter, status int, err dto.APIError) {
	WriteJSON(w, status, err)
}

// WriteServiceError maps coordinator errors onto HTTP responses. Unknown
// errors are treated as upstream failures and carry the server-extracted
// message through to the dashboard.
func WriteServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrTransactionNotFound):
		WriteError(w, http.StatusNotFound, dto.NotFoundError("transaction"))
	case errors.Is(err, service.ErrMutationInFlight):
		WriteError(w, http.StatusConflict, dto.ConflictError(err.Error()))
	case errors.Is(err, service.ErrConfirmRequired):
		WriteError(w, http.StatusConflict, dto.ConfirmRequiredError(err.Error()))
	default:
		WriteError(w, http.StatusBadGateway, dto.UpstreamError(err.Error()))
	}
}

// ParseIntParam parses an integer query parameter with a default value.
func ParseIntParam(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return parsed
}
