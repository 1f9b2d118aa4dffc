package handlers

import (
	"net/http"

	"github.com/clearledger/recon-backend/internal/api/dto"
	"github.com/clearledger/recon-backend/internal/infrastructure/storage"
)

// AuditHandler serves the mutation journal.
type AuditHandler struct {
	repo storage.MutationRepository
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(repo storage.MutationRepository) *AuditHandler {
	return &AuditHandler{repo: repo}
}

// List handles GET /api/mutations - journaled mutation attempts, newest
// first, filterable by transaction, kind and outcome.
func (h *AuditHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := storage.MutationFilters{
		TransactionID: r.URL.Query().Get("transaction_id"),
		Kind:          r.URL.Query().Get("kind"),
		Outcome:       r.URL.Query().Get("outcome"),
		Limit:         ParseIntParam(r, "limit", 50),
		Offset:        ParseIntParam(r, "offset", 0),
	}

	mutations, err := h.repo.ListMutations(filters)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	WriteJSON(w, http.StatusOK, dto.MutationListResponse{
		Mutations: mutations,
		Count:     len(mutations),
	})
}
