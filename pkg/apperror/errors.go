// Package apperror defines the error taxonomy spec.md §7 draws: seven
// kinds, not type names, each mapping to a stable HTTP status (except
// ClientRequest, which is 400, or 404 for ErrNotFound).
package apperror

import (
	"fmt"
	"net/http"
)

// Kind is one of the seven error kinds spec.md §7 names.
type Kind string

const (
	KindClientAuth     Kind = "ClientAuth"     // missing/invalid API key -> 401
	KindClientRate     Kind = "ClientRate"     // bucket empty -> 429
	KindClientRequest  Kind = "ClientRequest"  // malformed/oversized request -> 400; unknown entity -> 404
	KindClientConflict Kind = "ClientConflict" // lock/idempotency conflict -> 409
	KindClientPayment  Kind = "ClientPayment"  // wrong coin/amount/verify failure -> 402
	KindUpstream       Kind = "Upstream"       // backend/SDK failure -> 502
	KindServer         Kind = "Server"         // unexpected exception -> 500
)

// AppError is a structured error that maps to an HTTP response.
type AppError struct {
	Kind       Kind   `json:"-"`
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"` // wrapped internal error, not exposed to clients
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with no wrapped cause.
func New(kind Kind, code, message string, httpStatus int) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap creates a new AppError wrapping an internal error.
func Wrap(kind Kind, code, message string, httpStatus int, err error) *AppError {
	return &AppError{Kind: kind, Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

// ---- ClientAuth (401) ----

func ErrUnauthorized() *AppError {
	return New(KindClientAuth, "AUTH_001", "Unauthorized", http.StatusUnauthorized)
}

func ErrInvalidAPIKey() *AppError {
	return New(KindClientAuth, "AUTH_002", "Invalid or inactive API key", http.StatusUnauthorized)
}

// ---- ClientRate (429) ----

func ErrRateLimitExceeded(retryAfterSecs int64) *AppError {
	e := New(KindClientRate, "RATE_001", "Rate limit exceeded", http.StatusTooManyRequests)
	e.Message = fmt.Sprintf("Rate limit exceeded, retry after %ds", retryAfterSecs)
	return e
}

// ---- ClientRequest (400) ----

func ErrBodyTooLarge() *AppError {
	return New(KindClientRequest, "REQ_001", "Request body too large", http.StatusBadRequest)
}

func ErrTooManyHeaders() *AppError {
	return New(KindClientRequest, "REQ_002", "Too many headers", http.StatusBadRequest)
}

func ErrAmbiguousRoute() *AppError {
	return New(KindClientRequest, "REQ_003", "Cannot specify both requestId and shardId", http.StatusBadRequest)
}

func ErrMissingRouteParams() *AppError {
	return New(KindClientRequest, "REQ_004", "JSON-RPC requests must include either requestId or shardId", http.StatusBadRequest)
}

func ErrUnknownShard() *AppError {
	return New(KindClientRequest, "REQ_005", "Unknown shard id", http.StatusBadRequest)
}

func ErrMalformedRequestID() *AppError {
	return New(KindClientRequest, "REQ_006", "Malformed request id", http.StatusBadRequest)
}

func ErrValidation(message string) *AppError {
	return New(KindClientRequest, "REQ_007", message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New(KindClientRequest, "REQ_008", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- ClientConflict (409) ----

func ErrLockUnavailable(err error) *AppError {
	return Wrap(KindClientConflict, "CONFLICT_001", "Resource is currently locked, retry", http.StatusConflict, err)
}

func ErrDuplicateCompletionRequest() *AppError {
	return New(KindClientConflict, "CONFLICT_002", "A different completion request is already stored for this session", http.StatusConflict)
}

func ErrTokenAlreadyUsed() *AppError {
	return New(KindClientConflict, "CONFLICT_003", "Token already used", http.StatusConflict)
}

func ErrPendingSessionExists() *AppError {
	return New(KindClientConflict, "CONFLICT_004", "A pending payment session already exists for this key", http.StatusConflict)
}

func ErrSessionNotPending(status string) *AppError {
	return New(KindClientConflict, "CONFLICT_005", fmt.Sprintf("Session is not pending (status=%s)", status), http.StatusConflict)
}

// ---- ClientPayment (402) ----

func ErrWrongCoinType() *AppError {
	return New(KindClientPayment, "PAYMENT_001", "Payment token contains an unaccepted coin type", http.StatusPaymentRequired)
}

func ErrInsufficientPayment() *AppError {
	return New(KindClientPayment, "PAYMENT_002", "Insufficient payment amount", http.StatusPaymentRequired)
}

func ErrOverpayment() *AppError {
	return New(KindClientPayment, "PAYMENT_003", "Overpayment not accepted. Please send the exact amount", http.StatusPaymentRequired)
}

func ErrTokenVerificationFailed(err error) *AppError {
	return Wrap(KindClientPayment, "PAYMENT_004", "Token verification failed", http.StatusPaymentRequired, err)
}

func ErrSessionExpired() *AppError {
	return New(KindClientPayment, "PAYMENT_005", "Session has expired", http.StatusPaymentRequired)
}

// ---- Upstream (502) ----

func ErrBadGateway(err error) *AppError {
	return Wrap(KindUpstream, "UPSTREAM_001", "Bad Gateway", http.StatusBadGateway, err)
}

func ErrSDKFailure(err error) *AppError {
	return Wrap(KindUpstream, "UPSTREAM_002", "Blockchain SDK call did not succeed", http.StatusBadGateway, err)
}

// ---- Server (500) ----

func ErrDatabase(err error) *AppError {
	return Wrap(KindServer, "SERVER_001", "Internal database error", http.StatusInternalServerError, err)
}

func ErrEncryption(err error) *AppError {
	return Wrap(KindServer, "SERVER_002", "Encryption service failure", http.StatusInternalServerError, err)
}

func InternalError(err error) *AppError {
	return Wrap(KindServer, "SERVER_000", "Internal server error", http.StatusInternalServerError, err)
}
