package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearledger/recon-backend/internal/api/dto"
	"github.com/clearledger/recon-backend/internal/application/service"
	"github.com/clearledger/recon-backend/internal/infrastructure/storage"
)

// ReconciliationHandler serves derived reconciliation views and their
// persisted history.
type ReconciliationHandler struct {
	svc  *service.MutationService
	repo storage.SnapshotRepository
}

// NewReconciliationHandler creates a new reconciliation handler.
func NewReconciliationHandler(svc *service.MutationService, repo storage.SnapshotRepository) *ReconciliationHandler {
	return &ReconciliationHandler{svc: svc, repo: repo}
}

// Get handles GET /api/statements/{id}/reconciliation - the full derived
// reconciliation picture for one statement, recomputed from the current
// transaction set on every request.
func (h *ReconciliationHandler) Get(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "id")
	if statementID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("statement ID is required"))
		return
	}

	summary := h.svc.ReconcileStatement(statementID, nil)
	WriteJSON(w, http.StatusOK, dto.ReconciliationResponse{
		Summary: summary,
		Version: h.svc.Store().StatementVersion(statementID),
	})
}

// Snapshots handles GET /api/statements/{id}/snapshots - persisted
// reconciliation history for one statement.
func (h *ReconciliationHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	statementID := chi.URLParam(r, "id")
	if statementID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("statement ID is required"))
		return
	}

	limit := ParseIntParam(r, "limit", 50)
	snapshots, err := h.repo.ListSnapshots(statementID, limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	WriteJSON(w, http.StatusOK, dto.SnapshotListResponse{
		StatementID: statementID,
		Snapshots:   snapshots,
		Count:       len(snapshots),
	})
}
