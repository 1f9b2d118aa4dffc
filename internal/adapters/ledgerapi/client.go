// Package ledgerapi is the HTTP client for the upstream ledger server. Reads
// are retried (the server sits behind a flaky ingress); mutations are issued
// exactly once and failures are surfaced to the caller, never retried
// automatically.
package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/clearledger/recon-backend/internal/domain/ledger"
)

// HTTPClient implements Client against a real upstream server.
type HTTPClient struct {
	baseURL   string
	companyID string
	apiKey    string
	reads     *retryablehttp.Client
	writes    *retryablehttp.Client
	logger    *slog.Logger
}

// Compile-time check that HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// New creates a client scoped to one company.
func New(baseURL, companyID, apiKey string, logger *slog.Logger) *HTTPClient {
	if logger == nil {
		logger = slog.Default()
	}

	reads := retryablehttp.NewClient()
	reads.RetryMax = 3
	reads.RetryWaitMin = 200 * time.Millisecond
	reads.RetryWaitMax = 2 * time.Second
	reads.Logger = nil

	// Mutations must not be replayed on transient failures.
	writes := retryablehttp.NewClient()
	writes.RetryMax = 0
	writes.Logger = nil

	return &HTTPClient{
		baseURL:   baseURL,
		companyID: companyID,
		apiKey:    apiKey,
		reads:     reads,
		writes:    writes,
		logger:    logger,
	}
}

// apiError is the upstream error envelope. Message mirrors what the server
// puts in response.data.message.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("upstream returned status %d", e.StatusCode)
}

// transactionsEnvelope wraps list responses.
type transactionsEnvelope struct {
	Data struct {
		Transactions []ledger.Transaction `json:"transactions"`
	} `json:"data"`
}

// transactionEnvelope wraps single-transaction responses.
type transactionEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		Transaction *ledger.Transaction `json:"transaction"`
	} `json:"data"`
}

// ListTransactions fetches transactions for the client's company.
func (c *HTTPClient) ListTransactions(ctx context.Context, params ListParams) ([]ledger.Transaction, error) {
	q := url.Values{}
	q.Set("companyId", c.companyID)
	if params.StatementID != "" {
		q.Set("statementId", params.StatementID)
	}
	if params.AccountID != "" {
		q.Set("accountId", params.AccountID)
		q.Set("accountType", string(params.AccountType))
	}
	if params.Limit > 0 {
		q.Set("limit", strconv.Itoa(params.Limit))
	}
	if params.SortBy != "" {
		q.Set("sortBy", params.SortBy)
		q.Set("sortOrder", params.SortOrder)
	}

	var envelope transactionsEnvelope
	if err := c.do(ctx, c.reads, http.MethodGet, "/transactions?"+q.Encode(), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Transactions, nil
}

// CreateTransaction creates a new transaction upstream.
func (c *HTTPClient) CreateTransaction(ctx context.Context, txn ledger.Transaction) (*ledger.Transaction, error) {
	var envelope transactionEnvelope
	if err := c.do(ctx, c.writes, http.MethodPost, "/transactions?companyId="+url.QueryEscape(c.companyID), txn, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Transaction, nil
}

// UpdateTransaction applies a partial update.
func (c *HTTPClient) UpdateTransaction(ctx context.Context, id string, update TransactionUpdate) (*ledger.Transaction, error) {
	var envelope transactionEnvelope
	if err := c.do(ctx, c.writes, http.MethodPut, "/transactions/"+url.PathEscape(id), update, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Transaction, nil
}

// DeleteTransaction deletes a transaction.
func (c *HTTPClient) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, c.writes, http.MethodDelete, "/transactions/"+url.PathEscape(id), nil, nil)
}

// Liabilities fetches the liabilities report.
func (c *HTTPClient) Liabilities(ctx context.Context, params LiabilityParams) (*Liabilities, error) {
	q := url.Values{}
	q.Set("companyId", c.companyID)
	if params.StartDate != "" {
		q.Set("startDate", params.StartDate)
	}
	if params.EndDate != "" {
		q.Set("endDate", params.EndDate)
	}

	var envelope struct {
		Data struct {
			Liabilities Liabilities `json:"liabilities"`
		} `json:"data"`
	}
	if err := c.do(ctx, c.reads, http.MethodGet, "/transactions/liabilities?"+q.Encode(), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data.Liabilities, nil
}

// FindSimilar asks the server's matching engine for transactions similar to
// the given one.
func (c *HTTPClient) FindSimilar(ctx context.Context, id string) ([]ledger.Transaction, error) {
	var envelope transactionsEnvelope
	if err := c.do(ctx, c.reads, http.MethodGet, "/transactions/"+url.PathEscape(id)+"/similar", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Transactions, nil
}

// UpdateAdjustment sets the adjustment amount on one statement link.
func (c *HTTPClient) UpdateAdjustment(ctx context.Context, txnID, statementID string, amount float64) (*ledger.Transaction, error) {
	body := map[string]any{
		"transactionId":    txnID,
		"statementId":      statementID,
		"adjustmentAmount": amount,
	}
	var envelope transactionEnvelope
	if err := c.do(ctx, c.writes, http.MethodPost, "/matching/adjustment", body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Transaction, nil
}

// UnlinkCreditCard removes a statement link from a transaction.
func (c *HTTPClient) UnlinkCreditCard(ctx context.Context, txnID, statementID string) (*ledger.Transaction, error) {
	body := map[string]any{
		"transactionId": txnID,
		"statementId":   statementID,
	}
	var envelope transactionEnvelope
	if err := c.do(ctx, c.writes, http.MethodPost, "/matching/unlink-credit-card", body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Transaction, nil
}

// AddMatch associates a document with a transaction.
func (c *HTTPClient) AddMatch(ctx context.Context, txnID, documentID string) (*ledger.Transaction, error) {
	body := map[string]any{
		"transactionId": txnID,
		"documentId":    documentID,
	}
	var envelope transactionEnvelope
	if err := c.do(ctx, c.writes, http.MethodPost, "/matching", body, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Transaction, nil
}

// RemoveMatch removes a document match from a transaction.
func (c *HTTPClient) RemoveMatch(ctx context.Context, txnID, documentID string) (*ledger.Transaction, error) {
	q := url.Values{}
	q.Set("transactionId", txnID)
	q.Set("documentId", documentID)

	var envelope transactionEnvelope
	if err := c.do(ctx, c.writes, http.MethodDelete, "/matching?"+q.Encode(), nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data.Transaction, nil
}

// do issues one request and decodes the response into out (when non-nil).
// Non-2xx responses are turned into an apiError carrying the server's
// message when one is present in the body.
func (c *HTTPClient) do(ctx context.Context, client *retryablehttp.Client, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.errorFrom(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// errorFrom extracts the server's error message, falling back to the status
// code when the body is not the expected envelope.
func (c *HTTPClient) errorFrom(resp *http.Response) error {
	apiErr := &apiError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
		Data    struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Data.Message != "" {
			apiErr.Message = payload.Data.Message
		} else {
			apiErr.Message = payload.Message
		}
	}

	c.logger.Warn("upstream request failed", "status", resp.StatusCode, "message", apiErr.Message)
	return apiErr
}
