package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearledger/recon-backend/internal/api/dto"
	"github.com/clearledger/recon-backend/internal/application/service"
)

// MatchingHandler handles adjustment, link and document-match mutations.
type MatchingHandler struct {
	svc *service.MutationService
}

// NewMatchingHandler creates a new matching handler.
func NewMatchingHandler(svc *service.MutationService) *MatchingHandler {
	return &MatchingHandler{svc: svc}
}

// Adjustment handles POST /api/transactions/{id}/adjustment.
func (h *MatchingHandler) Adjustment(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")

	var req dto.AdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.StatementID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("statementId is required"))
		return
	}

	if err := h.svc.UpdateAdjustment(r.Context(), txnID, req.StatementID, req.Amount.Float64()); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dto.MutationResponse{Success: true})
}

// Unlink handles POST /api/transactions/{id}/unlink.
func (h *MatchingHandler) Unlink(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")

	var req dto.UnlinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.StatementID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("statementId is required"))
		return
	}

	if err := h.svc.Unlink(r.Context(), txnID, req.StatementID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dto.MutationResponse{Success: true})
}

// AddMatch handles POST /api/transactions/{id}/matches. Responds 409 with
// code confirm_required when the transaction is already perfectly matched
// and the request did not confirm.
func (h *MatchingHandler) AddMatch(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")

	var req dto.MatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}
	if req.DocumentID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("documentId is required"))
		return
	}

	if err := h.svc.AddMatch(r.Context(), txnID, req.DocumentID, req.Confirmed); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dto.MutationResponse{Success: true})
}

// RemoveMatch handles DELETE /api/transactions/{id}/matches/{docID}.
func (h *MatchingHandler) RemoveMatch(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")
	docID := chi.URLParam(r, "docID")
	if docID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("document ID is required"))
		return
	}

	if err := h.svc.RemoveMatch(r.Context(), txnID, docID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dto.MutationResponse{Success: true})
}
