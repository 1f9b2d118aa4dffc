package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/clearledger/recon-backend/internal/api/dto"
	"github.com/clearledger/recon-backend/internal/application/service"
	"github.com/clearledger/recon-backend/internal/domain/ledger"
	"github.com/clearledger/recon-backend/internal/domain/matcher"
	"github.com/clearledger/recon-backend/internal/domain/reconcile"
)

// TransactionsHandler handles transaction-related HTTP requests.
type TransactionsHandler struct {
	svc *service.MutationService
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(svc *service.MutationService) *TransactionsHandler {
	return &TransactionsHandler{svc: svc}
}

// List handles GET /api/transactions - returns the current transaction set,
// each row annotated with its match balance and, for statement-linked
// transactions, the reconciliation summary per linked statement.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := ParseIntParam(r, "limit", 0)

	snapshot := h.svc.Store().Snapshot()
	if limit > 0 && limit < len(snapshot) {
		snapshot = snapshot[:limit]
	}

	m := matcher.New(matcher.DefaultConfig())
	cfg := reconcile.DefaultConfig()
	full := h.svc.Store().Snapshot()

	response := dto.TransactionListResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(snapshot)),
	}
	for _, txn := range snapshot {
		row := dto.TransactionResponse{
			Transaction:  txn,
			MatchBalance: m.Balance(txn),
		}
		for _, link := range txn.LinkedStatements {
			summary := reconcile.ReconcileStatement(cfg, link.Statement.ID(), full, nil)
			row.Reconciliations = append(row.Reconciliations, summary)
		}
		response.Transactions = append(response.Transactions, row)
	}
	response.Count = len(response.Transactions)

	WriteJSON(w, http.StatusOK, response)
}

// Create handles POST /api/transactions.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var txn ledger.Transaction
	if err := json.NewDecoder(r.Body).Decode(&txn); err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	created, err := h.svc.Create(r.Context(), txn)
	if err != nil {
		if validationErr := txn.ValidateNew(); validationErr != nil {
			WriteError(w, http.StatusBadRequest, dto.ValidationError(validationErr.Error()))
			return
		}
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/transactions/{id} - category, type and note
// edits through the coordinator.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")
	if txnID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("transaction ID is required"))
		return
	}

	var req dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("invalid request body"))
		return
	}

	ctx := r.Context()
	if req.Category != nil {
		if err := h.svc.UpdateCategory(ctx, txnID, *req.Category); err != nil {
			WriteServiceError(w, err)
			return
		}
	}
	if req.Type != nil {
		if err := h.svc.UpdateType(ctx, txnID, ledger.TransactionType(*req.Type)); err != nil {
			WriteServiceError(w, err)
			return
		}
	}
	if req.Note != nil {
		if err := h.svc.UpdateNote(ctx, txnID, *req.Note); err != nil {
			WriteServiceError(w, err)
			return
		}
	}

	WriteJSON(w, http.StatusOK, dto.MutationResponse{Success: true})
}

// Delete handles DELETE /api/transactions/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")
	if txnID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("transaction ID is required"))
		return
	}

	if err := h.svc.Delete(r.Context(), txnID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dto.MutationResponse{Success: true})
}

// Balance handles GET /api/transactions/{id}/balance - the document match
// balance for one transaction.
func (h *TransactionsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")
	if txnID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("transaction ID is required"))
		return
	}

	balance, err := h.svc.MatchBalance(txnID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, dto.BalanceResponse{TransactionID: txnID, Balance: balance})
}

// Similar handles GET /api/transactions/{id}/similar - upstream similarity
// search pass-through.
func (h *TransactionsHandler) Similar(w http.ResponseWriter, r *http.Request) {
	txnID := chi.URLParam(r, "id")
	if txnID == "" {
		WriteError(w, http.StatusBadRequest, dto.BadRequestError("transaction ID is required"))
		return
	}

	similar, err := h.svc.FindSimilar(r.Context(), txnID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": similar,
		"count":        len(similar),
	})
}
