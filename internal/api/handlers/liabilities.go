package handlers

import (
	"net/http"

	"github.com/clearledger/recon-backend/internal/adapters/ledgerapi"
	"github.com/clearledger/recon-backend/internal/api/dto"
	"github.com/clearledger/recon-backend/internal/application/service"
)

// LiabilitiesHandler proxies the upstream liabilities report.
type LiabilitiesHandler struct {
	svc *service.MutationService
}

// NewLiabilitiesHandler creates a new liabilities handler.
func NewLiabilitiesHandler(svc *service.MutationService) *LiabilitiesHandler {
	return &LiabilitiesHandler{svc: svc}
}

// Get handles GET /api/liabilities.
func (h *LiabilitiesHandler) Get(w http.ResponseWriter, r *http.Request) {
	params := ledgerapi.LiabilityParams{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}

	liabilities, err := h.svc.Liabilities(r.Context(), params)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dto.LiabilitiesResponse{Liabilities: *liabilities})
}
