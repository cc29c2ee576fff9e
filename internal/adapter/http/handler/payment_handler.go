package handler

import (
	"math/big"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/unicitylabs/aggregator-proxy/internal/adapter/http/dto"
	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
	"github.com/unicitylabs/aggregator-proxy/internal/payment"
	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
)

// PaymentHandler implements the acquire/upgrade API-key subscription
// surface of spec.md §4.6: initiate, complete, plan listing, and key
// status lookup.
type PaymentHandler struct {
	engine *payment.Engine
	plans  ports.PlanStore
	keys   ports.KeyStore
	tx     ports.DBTransactor
	minAmt *big.Int
	log    zerolog.Logger
}

// NewPaymentHandler creates a PaymentHandler.
func NewPaymentHandler(engine *payment.Engine, plans ports.PlanStore, keys ports.KeyStore, tx ports.DBTransactor, minAmt *big.Int, log zerolog.Logger) *PaymentHandler {
	return &PaymentHandler{engine: engine, plans: plans, keys: keys, tx: tx, minAmt: minAmt, log: log}
}

// Initiate handles POST /api/payment/initiate.
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.ErrValidation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.engine.InitiatePayment(c.Request.Context(), req.APIKey, req.TargetPlanID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.InitiatePaymentResponse{
		SessionID:      result.SessionID,
		PaymentAddress: result.PaymentAddress,
		AmountRequired: result.AmountRequired.String(),
		ExpiresAt:      result.ExpiresAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// Complete handles POST /api/payment/complete.
func (h *PaymentHandler) Complete(c *gin.Context) {
	var req dto.CompletePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperror.ErrValidation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	result, err := h.engine.CompletePayment(c.Request.Context(), req.SessionID, req.Salt, req.TransferCommitmentJSON, req.SourceTokenJSON)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.CompletePaymentResponse{
		Success:      result.Success,
		Message:      result.Message,
		TargetPlanID: result.TargetPlanID,
		APIKey:       result.FinalApiKey,
	})
}

// Plans handles GET /api/payment/plans, clamping each plan's price up
// to the configured minimum payment amount so the list reflects what a
// caller would actually be charged.
func (h *PaymentHandler) Plans(c *gin.Context) {
	transaction, err := h.tx.Begin(c.Request.Context())
	if err != nil {
		writeError(c, apperror.ErrDatabase(err))
		return
	}
	defer transaction.Rollback(c.Request.Context())

	plans, err := h.plans.List(c.Request.Context(), transaction)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		price := p.Price
		if h.minAmt != nil && price.Cmp(h.minAmt) < 0 {
			price = h.minAmt
		}
		out = append(out, dto.PlanResponse{
			ID:                p.ID,
			Name:              p.Name,
			RequestsPerSecond: p.RequestsPerSecond,
			RequestsPerDay:    p.RequestsPerDay,
			Price:             price.String(),
		})
	}
	c.JSON(http.StatusOK, out)
}

// KeyStatus handles GET /api/payment/key/:apiKey.
func (h *PaymentHandler) KeyStatus(c *gin.Context) {
	apiKey := c.Param("apiKey")

	transaction, err := h.tx.Begin(c.Request.Context())
	if err != nil {
		writeError(c, apperror.ErrDatabase(err))
		return
	}
	defer transaction.Rollback(c.Request.Context())

	key, err := h.keys.FindByKey(c.Request.Context(), transaction, apiKey)
	if err != nil {
		writeError(c, err)
		return
	}
	if key == nil || key.Status == domain.ApiKeyStatusRevoked {
		writeError(c, apperror.ErrNotFound("ApiKey"))
		return
	}

	resp := dto.KeyStatusResponse{Status: string(key.Status), PricingPlanID: key.PricingPlanID}
	if key.ActiveUntil != nil {
		s := key.ActiveUntil.Format("2006-01-02T15:04:05Z07:00")
		resp.ActiveUntil = &s
	}
	c.JSON(http.StatusOK, resp)
}
