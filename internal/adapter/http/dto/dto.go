// Package dto holds the request/response shapes of the payment and
// config HTTP surface, kept distinct from the domain types so wire
// format changes don't ripple into PaymentEngine.
package dto

// InitiatePaymentRequest is the request body for POST
// /api/payment/initiate.
type InitiatePaymentRequest struct {
	APIKey       *string `json:"apiKey,omitempty"`
	TargetPlanID int64   `json:"targetPlanId" binding:"required"`
}

// InitiatePaymentResponse is the response body for a successful
// initiate call.
type InitiatePaymentResponse struct {
	SessionID      string `json:"sessionId"`
	PaymentAddress string `json:"paymentAddress"`
	AmountRequired string `json:"amountRequired"`
	ExpiresAt      string `json:"expiresAt"`
}

// CompletePaymentRequest is the request body for POST
// /api/payment/complete.
type CompletePaymentRequest struct {
	SessionID              string `json:"sessionId" binding:"required"`
	Salt                   string `json:"salt" binding:"required"`
	TransferCommitmentJSON string `json:"transferCommitmentJson" binding:"required"`
	SourceTokenJSON        string `json:"sourceTokenJson" binding:"required"`
}

// CompletePaymentResponse is the response body for a successful
// complete call.
type CompletePaymentResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	TargetPlanID int64  `json:"targetPlanId"`
	APIKey       string `json:"apiKey,omitempty"`
}

// PlanResponse is one entry of GET /api/payment/plans.
type PlanResponse struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	RequestsPerSecond int    `json:"requestsPerSecond"`
	RequestsPerDay    int    `json:"requestsPerDay"`
	Price             string `json:"price"`
}

// KeyStatusResponse is the response body for GET
// /api/payment/key/{apiKey}.
type KeyStatusResponse struct {
	Status        string  `json:"status"`
	PricingPlanID *int64  `json:"pricingPlanId,omitempty"`
	ActiveUntil   *string `json:"activeUntil,omitempty"`
}

// ErrorBody is the structured `{error, message}` shape spec.md §6/§7
// uses for the payment API's own error responses (distinct from the
// RequestPipeline's plain-text bodies).
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ShardInfoResponse is one entry of GET /config/shards.
type ShardInfoResponse struct {
	ID  int    `json:"id"`
	URL string `json:"url"`
}

// ShardConfigResponse is the response body for GET /config/shards.
type ShardConfigResponse struct {
	Version   int                 `json:"version"`
	Shards    []ShardInfoResponse `json:"shards"`
	CreatedBy string              `json:"createdBy"`
	CreatedAt string              `json:"createdAt"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status      string            `json:"status"`
	Database    string            `json:"database"`
	Aggregators map[string]string `json:"aggregators"`
}
