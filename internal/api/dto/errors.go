package dto

// APIError represents a structured error response.
// All error responses from the API use this format for consistency.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes
const (
	ErrCodeNotFound        = "not_found"
	ErrCodeBadRequest      = "bad_request"
	ErrCodeInternalError   = "internal_error"
	ErrCodeValidation      = "validation_error"
	ErrCodeConflict        = "conflict"
	ErrCodeConfirmRequired = "confirm_required"
	ErrCodeUpstream        = "upstream_error"
)

// NewAPIError creates a new APIError with the given code and message.
func NewAPIError(code, message string) APIError {
	return APIError{Code: code, Message: message}
}

// NotFoundError creates a not found error response.
func NotFoundError(resource string) APIError {
	return NewAPIError(ErrCodeNotFound, resource+" not found")
}

// BadRequestError creates a bad request error response.
func BadRequestError(message string) APIError {
	return NewAPIError(ErrCodeBadRequest, message)
}

// InternalError creates an internal server error response.
func InternalError() APIError {
	return NewAPIError(ErrCodeInternalError, "an internal error occurred")
}

// ValidationError creates a validation error response.
func ValidationError(message string) APIError {
	return NewAPIError(ErrCodeValidation, message)
}

// ConflictError creates a conflict error response, used when a mutation is
// already in flight for the same transaction.
func ConflictError(message string) APIError {
	return NewAPIError(ErrCodeConflict, message)
}

// ConfirmRequiredError signals that the mutation needs explicit
// confirmation before it can proceed.
func ConfirmRequiredError(message string) APIError {
	return NewAPIError(ErrCodeConfirmRequired, message)
}

// UpstreamError wraps an error message extracted from the ledger server.
func UpstreamError(message string) APIError {
	if message == "" {
		message = "upstream request failed"
	}
	return NewAPIError(ErrCodeUpstream, message)
}
