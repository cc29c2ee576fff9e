// Package payment implements PaymentEngine, the state machine described
// in spec §4.6: initiatePayment and completePayment over PaymentSession,
// orchestrating KeyStore, PlanStore, PaymentStore and the blockchain SDK
// collaborator, with strict lock ordering and idempotency.
package payment

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
)

const (
	// SessionValidity is the 15-minute pending-session window.
	SessionValidity = 15 * time.Minute
	// ActivationValidityDays is spec's PAYMENT_VALIDITY_DAYS.
	ActivationValidityDays = 30
	// SubmitDeadline bounds TokenSDK.SubmitCommitment.
	SubmitDeadline = 30 * time.Second
	// InclusionDeadline bounds TokenSDK.WaitInclusionProof.
	InclusionDeadline = 60 * time.Second

	// TestnetTokenType is the token type fed into the masked-predicate
	// derivation, per spec §4.6 step 5.
	TestnetTokenType = "TESTNET"
)

// Config bundles the PaymentEngine's static configuration.
type Config struct {
	ServerSecret         []byte
	AcceptedCoinID       string
	MinimumPaymentAmount *big.Int
	TrustBase            []byte
	TokenTypeName        string
}

// Engine implements the PaymentEngine component.
type Engine struct {
	keys      ports.KeyStore
	plans     ports.PlanStore
	sessions  ports.PaymentStore
	tx        ports.DBTransactor
	sdk       ports.TokenSDK
	predicate ports.PredicateDeriver
	clock     ports.TimeSource
	enc       ports.EncryptionService
	cfg       Config
	log       zerolog.Logger
}

// New creates an Engine.
func New(
	keys ports.KeyStore,
	plans ports.PlanStore,
	sessions ports.PaymentStore,
	tx ports.DBTransactor,
	sdk ports.TokenSDK,
	predicate ports.PredicateDeriver,
	clock ports.TimeSource,
	enc ports.EncryptionService,
	cfg Config,
	log zerolog.Logger,
) *Engine {
	return &Engine{
		keys: keys, plans: plans, sessions: sessions, tx: tx,
		sdk: sdk, predicate: predicate, clock: clock, enc: enc, cfg: cfg, log: log,
	}
}

// InitiateResult is returned by InitiatePayment.
type InitiateResult struct {
	SessionID      string
	PaymentAddress string
	AmountRequired *big.Int
	ExpiresAt      time.Time
}

// InitiatePayment opens a PaymentSession for apiKey (optional — nil
// means a new-key flow) against targetPlanID, per spec §4.6.
func (e *Engine) InitiatePayment(ctx context.Context, apiKey *string, targetPlanID int64) (*InitiateResult, error) {
	transaction, err := e.tx.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase(err)
	}
	defer transaction.Rollback(ctx)

	now := e.clock.Now()

	var existingKey *domain.ApiKey
	if apiKey != nil {
		existingKey, err = e.keys.FindByKey(ctx, transaction, *apiKey)
		if err != nil {
			return nil, err
		}
		if existingKey == nil {
			return nil, apperror.ErrNotFound("ApiKey")
		}
		if existingKey.Status == domain.ApiKeyStatusRevoked {
			return nil, apperror.ErrInvalidAPIKey()
		}
		if existingKey, err = e.keys.LockForUpdate(ctx, transaction, existingKey.ID); err != nil {
			return nil, err
		}
	}

	plan, err := e.plans.FindByID(ctx, transaction, targetPlanID)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, apperror.ErrNotFound("PricingPlan")
	}

	if existingKey != nil {
		if err := e.sessions.CancelPendingForKey(ctx, transaction, existingKey.Key); err != nil {
			return nil, err
		}
	}

	receiverNonce := make([]byte, 32)
	if _, err := rand.Read(receiverNonce); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generating receiver nonce: %w", err))
	}

	paymentAddress, err := e.predicate.DerivePaymentAddress(e.cfg.ServerSecret, receiverNonce, TestnetTokenType)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("deriving payment address: %w", err))
	}

	refund, err := e.refundForKey(ctx, transaction, existingKey, now)
	if err != nil {
		return nil, err
	}
	amountRequired := new(big.Int).Sub(plan.Price, refund)
	if amountRequired.Sign() < 0 {
		amountRequired.SetInt64(0)
	}
	if amountRequired.Cmp(e.cfg.MinimumPaymentAmount) < 0 {
		amountRequired = new(big.Int).Set(e.cfg.MinimumPaymentAmount)
	}

	session := &domain.PaymentSession{
		ID:              uuid.New().String(),
		ApiKey:          apiKey,
		PaymentAddress:  paymentAddress,
		ReceiverNonce:   receiverNonce,
		Status:          domain.PaymentSessionPending,
		TargetPlanID:    targetPlanID,
		CreatedAt:       now,
		ExpiresAt:       now.Add(SessionValidity),
		ShouldCreateKey: apiKey == nil,
		RefundAmount:    refund,
		AmountRequired:  amountRequired,
	}

	if err := e.sessions.Insert(ctx, transaction, session); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabase(err)
	}

	return &InitiateResult{
		SessionID:      session.ID,
		PaymentAddress: session.PaymentAddress,
		AmountRequired: session.AmountRequired,
		ExpiresAt:      session.ExpiresAt,
	}, nil
}

// refundForKey resolves existingKey's current plan price and applies
// the pro-rated refund formula from spec §4.6 step 6.
func (e *Engine) refundForKey(ctx context.Context, tx pgx.Tx, existingKey *domain.ApiKey, now time.Time) (*big.Int, error) {
	if existingKey == nil || existingKey.ActiveUntil == nil || existingKey.PricingPlanID == nil {
		return big.NewInt(0), nil
	}
	remaining := existingKey.ActiveUntil.Sub(now).Milliseconds()
	if remaining <= 0 {
		return big.NewInt(0), nil
	}
	currentPlan, err := e.plans.FindByID(ctx, tx, *existingKey.PricingPlanID)
	if err != nil {
		return nil, err
	}
	if currentPlan == nil {
		return big.NewInt(0), nil
	}
	validityMillis := int64(ActivationValidityDays) * 86_400_000
	refund := new(big.Int).Mul(currentPlan.Price, big.NewInt(remaining))
	refund.Div(refund, big.NewInt(validityMillis))
	return refund, nil
}

// CompleteResult is returned by CompletePayment.
type CompleteResult struct {
	Success       bool
	Message       string
	TargetPlanID  int64
	FinalApiKey   string
}

// CompletePayment implements the two-phase completion described in
// spec §4.6: an idempotent early record, then locked processing with
// strict lock ordering (api_keys before payment_sessions).
func (e *Engine) CompletePayment(ctx context.Context, sessionID, salt, transferCommitmentJSON, sourceTokenJSON string) (*CompleteResult, error) {
	requestID, err := e.sdk.DeriveRequestID(transferCommitmentJSON)
	if err != nil {
		return nil, apperror.ErrValidation("malformed transfer commitment: " + err.Error())
	}

	encryptedCommitment, err := e.enc.Encrypt(transferCommitmentJSON)
	if err != nil {
		return nil, apperror.ErrEncryption(fmt.Errorf("encrypting completion request: %w", err))
	}

	if err := e.recordCompletionRequest(ctx, sessionID, requestID, encryptedCommitment); err != nil {
		return nil, err
	}

	return e.processCompletion(ctx, sessionID, transferCommitmentJSON, sourceTokenJSON)
}

// recordCompletionRequest is Phase 1: a short, separate transaction
// that idempotently stamps the session with its blockchain requestId.
func (e *Engine) recordCompletionRequest(ctx context.Context, sessionID, requestID, completionJSON string) error {
	transaction, err := e.tx.Begin(ctx)
	if err != nil {
		return apperror.ErrDatabase(err)
	}
	defer transaction.Rollback(ctx)

	rows, duplicate, err := e.sessions.RecordCompletionRequest(ctx, transaction, sessionID, requestID, completionJSON, e.clock.Now())
	if err != nil {
		return err
	}
	if duplicate {
		return apperror.ErrTokenAlreadyUsed()
	}
	if rows == 0 {
		existing, err := e.sessions.FindByID(ctx, transaction, sessionID)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperror.ErrNotFound("PaymentSession")
		}
		return apperror.ErrDuplicateCompletionRequest()
	}

	if err := transaction.Commit(ctx); err != nil {
		return apperror.ErrDatabase(err)
	}
	return nil
}

// processCompletion is Phase 2: the locked processing transaction.
func (e *Engine) processCompletion(ctx context.Context, sessionID, transferCommitmentJSON, sourceTokenJSON string) (*CompleteResult, error) {
	transaction, err := e.tx.Begin(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase(err)
	}
	defer transaction.Rollback(ctx)

	unlocked, err := e.sessions.FindByID(ctx, transaction, sessionID)
	if err != nil {
		return nil, err
	}
	if unlocked == nil {
		return nil, apperror.ErrNotFound("PaymentSession")
	}

	// Strict lock ordering: api_keys before payment_sessions.
	var lockedKey *domain.ApiKey
	if unlocked.ApiKey != nil {
		existingKey, err := e.keys.FindByKey(ctx, transaction, *unlocked.ApiKey)
		if err != nil {
			return nil, err
		}
		if existingKey == nil {
			return nil, apperror.ErrNotFound("ApiKey")
		}
		if lockedKey, err = e.keys.LockForUpdate(ctx, transaction, existingKey.ID); err != nil {
			return nil, err
		}
	}

	session, err := e.sessions.FindByIDAndLock(ctx, transaction, sessionID)
	if err != nil {
		return nil, err
	}

	now := e.clock.Now()

	if session.Status != domain.PaymentSessionPending {
		return nil, apperror.ErrSessionNotPending(string(session.Status))
	}

	if now.After(session.ExpiresAt) {
		session.Status = domain.PaymentSessionExpired
		if err := e.sessions.Update(ctx, transaction, session); err != nil {
			return nil, err
		}
		if err := transaction.Commit(ctx); err != nil {
			return nil, apperror.ErrDatabase(err)
		}
		return nil, apperror.ErrSessionExpired()
	}

	submitCtx, cancel := context.WithTimeout(ctx, SubmitDeadline)
	defer cancel()
	if err := e.sdk.SubmitCommitment(submitCtx, transferCommitmentJSON); err != nil {
		return e.fail(ctx, transaction, session, "Failed to submit transfer commitment: "+err.Error())
	}

	inclusionCtx, cancel2 := context.WithTimeout(ctx, InclusionDeadline)
	defer cancel2()
	inclusion, err := e.sdk.WaitInclusionProof(inclusionCtx, transferCommitmentJSON)
	if err != nil {
		return e.fail(ctx, transaction, session, "Failed waiting for inclusion proof: "+err.Error())
	}

	received, err := e.sdk.FinalizeTransaction(ctx, inclusion, e.cfg.ServerSecret, session.ReceiverNonce, sourceTokenJSON)
	if err != nil {
		return e.fail(ctx, transaction, session, "Failed to finalize transaction: "+err.Error())
	}

	if err := e.sdk.Verify(ctx, received, e.cfg.TrustBase); err != nil {
		return e.fail(ctx, transaction, session, "Token verification failed: "+err.Error())
	}

	if err := e.checkCoinType(received); err != nil {
		return e.fail(ctx, transaction, session, err.Error())
	}

	receivedAmount := e.sumAcceptedCoin(received)
	switch receivedAmount.Cmp(session.AmountRequired) {
	case -1:
		return e.fail(ctx, transaction, session, "Insufficient payment amount")
	case 1:
		return e.fail(ctx, transaction, session, "Overpayment not accepted. Please send the exact amount")
	}

	newExpiry := now.AddDate(0, 0, ActivationValidityDays)
	finalKey := ""

	if session.ShouldCreateKey {
		keyString := "sk_" + randomHex32()
		newKey := &domain.ApiKey{
			Key:           keyString,
			Status:        domain.ApiKeyStatusActive,
			PricingPlanID: &session.TargetPlanID,
			ActiveUntil:   &newExpiry,
			CreatedAt:     now,
		}
		if _, err := e.keys.Insert(ctx, transaction, newKey); err != nil {
			return nil, err
		}
		finalKey = keyString
		session.ApiKey = &keyString
	} else {
		if lockedKey == nil {
			return nil, apperror.InternalError(errors.New("processCompletion: expected a locked api key for an existing-key session"))
		}
		if err := e.keys.UpdatePlanAndExpiry(ctx, transaction, lockedKey.ID, session.TargetPlanID, newExpiry); err != nil {
			return nil, err
		}
		finalKey = lockedKey.Key
	}

	encryptedToken, err := e.enc.Encrypt(received.Serialized)
	if err != nil {
		return nil, apperror.ErrEncryption(fmt.Errorf("encrypting received token: %w", err))
	}

	session.Status = domain.PaymentSessionCompleted
	completedAt := now
	session.CompletedAt = &completedAt
	session.TokenReceived = &encryptedToken

	if err := e.sessions.Update(ctx, transaction, session); err != nil {
		return nil, err
	}

	if err := transaction.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabase(err)
	}

	return &CompleteResult{
		Success:      true,
		Message:      "Payment completed",
		TargetPlanID: session.TargetPlanID,
		FinalApiKey:  finalKey,
	}, nil
}

func (e *Engine) fail(ctx context.Context, tx pgx.Tx, session *domain.PaymentSession, message string) (*CompleteResult, error) {
	session.Status = domain.PaymentSessionFailed
	if err := e.sessions.Update(ctx, tx, session); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.ErrDatabase(err)
	}
	return nil, apperror.ErrTokenVerificationFailed(errors.New(message))
}

// checkCoinType enforces spec §4.6 step 8: the received token's coin
// data must contain ONLY entries whose CoinId equals acceptedCoinId.
func (e *Engine) checkCoinType(received *ports.ReceivedToken) error {
	for _, c := range received.Coins {
		if c.CoinID != e.cfg.AcceptedCoinID {
			return apperror.ErrWrongCoinType()
		}
	}
	return nil
}

func (e *Engine) sumAcceptedCoin(received *ports.ReceivedToken) *big.Int {
	sum := big.NewInt(0)
	for _, c := range received.Coins {
		if c.CoinID == e.cfg.AcceptedCoinID {
			sum.Add(sum, c.Value)
		}
	}
	return sum
}

func randomHex32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
