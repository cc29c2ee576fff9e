package postgres

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
)

// PaymentStoreRepo implements ports.PaymentStore over PostgreSQL.
// payment_sessions carries a partial unique index on (api_key) WHERE
// status='pending' and a partial unique index on (request_id) WHERE
// request_id IS NOT NULL — both enforced by PostgreSQL, not application
// code, per spec §3.
type PaymentStoreRepo struct {
	pool Pool
}

// NewPaymentStoreRepo creates a new PaymentStoreRepo.
func NewPaymentStoreRepo(pool Pool) *PaymentStoreRepo {
	return &PaymentStoreRepo{pool: pool}
}

func (r *PaymentStoreRepo) q(tx pgx.Tx) rowQuerier {
	if tx != nil {
		return tx
	}
	return r.pool
}

func scanSession(row pgx.Row) (*domain.PaymentSession, error) {
	var s domain.PaymentSession
	var amountRequiredStr, refundAmountStr string
	var status string
	if err := row.Scan(
		&s.ID, &s.ApiKey, &s.PaymentAddress, &s.ReceiverNonce, &status,
		&s.TargetPlanID, &amountRequiredStr, &s.TokenReceived, &s.CreatedAt,
		&s.CompletedAt, &s.CancelledAt, &s.ExpiresAt, &s.ShouldCreateKey,
		&refundAmountStr, &s.RequestID, &s.CompletionRequestJSON,
		&s.CompletionRequestTimestamp,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.ErrDatabase(err)
	}
	s.Status = domain.PaymentSessionStatus(status)

	amt, ok := new(big.Int).SetString(amountRequiredStr, 10)
	if !ok {
		return nil, apperror.ErrDatabase(errors.New("corrupt amount_required column"))
	}
	s.AmountRequired = amt

	refund, ok := new(big.Int).SetString(refundAmountStr, 10)
	if !ok {
		return nil, apperror.ErrDatabase(errors.New("corrupt refund_amount column"))
	}
	s.RefundAmount = refund

	return &s, nil
}

const sessionColumns = `id, api_key, payment_address, receiver_nonce, status,
	target_plan_id, amount_required, token_received, created_at,
	completed_at, cancelled_at, expires_at, should_create_key,
	refund_amount, request_id, completion_request_json,
	completion_request_timestamp`

// Insert creates a new PaymentSession row.
func (r *PaymentStoreRepo) Insert(ctx context.Context, tx pgx.Tx, s *domain.PaymentSession) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO payment_sessions (
			id, api_key, payment_address, receiver_nonce, status,
			target_plan_id, amount_required, token_received, created_at,
			completed_at, cancelled_at, expires_at, should_create_key,
			refund_amount, request_id, completion_request_json,
			completion_request_timestamp
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`,
		s.ID, s.ApiKey, s.PaymentAddress, s.ReceiverNonce, string(s.Status),
		s.TargetPlanID, s.AmountRequired.String(), s.TokenReceived, s.CreatedAt,
		s.CompletedAt, s.CancelledAt, s.ExpiresAt, s.ShouldCreateKey,
		s.RefundAmount.String(), s.RequestID, s.CompletionRequestJSON,
		s.CompletionRequestTimestamp,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.ErrPendingSessionExists()
		}
		return apperror.ErrDatabase(err)
	}
	return nil
}

// FindByID returns the session with the given id, unlocked.
func (r *PaymentStoreRepo) FindByID(ctx context.Context, tx pgx.Tx, id string) (*domain.PaymentSession, error) {
	row := r.q(tx).QueryRow(ctx, `SELECT `+sessionColumns+` FROM payment_sessions WHERE id = $1`, id)
	return scanSession(row)
}

// FindByIDAndLock acquires FOR UPDATE NOWAIT on the session row.
func (r *PaymentStoreRepo) FindByIDAndLock(ctx context.Context, tx pgx.Tx, id string) (*domain.PaymentSession, error) {
	row := tx.QueryRow(ctx, `SELECT `+sessionColumns+` FROM payment_sessions WHERE id = $1 FOR UPDATE NOWAIT`, id)
	s, err := scanSession(row)
	if err != nil {
		if isLockNotAvailable(err) {
			return nil, apperror.ErrLockUnavailable(err)
		}
		return nil, err
	}
	return s, nil
}

// CancelPendingForKey marks any pending sessions whose api_key column
// equals apiKey as cancelled, stamping cancelledAt with the database
// server's now(); no time from the injected TimeSource is used here.
func (r *PaymentStoreRepo) CancelPendingForKey(ctx context.Context, tx pgx.Tx, apiKey string) error {
	_, err := tx.Exec(ctx, `
		UPDATE payment_sessions
		SET status = 'cancelled', cancelled_at = now()
		WHERE api_key = $1 AND status = 'pending'`, apiKey)
	if err != nil {
		return apperror.ErrDatabase(err)
	}
	return nil
}

// RecordCompletionRequest performs the Phase-1 idempotent early record:
// conditionally sets request_id and completion_request_json only if
// they are currently unset or already match, so a verbatim retry is a
// no-op rather than a conflict.
func (r *PaymentStoreRepo) RecordCompletionRequest(ctx context.Context, tx pgx.Tx, sessionID, requestID, completionJSON string, ts time.Time) (int64, bool, error) {
	tag, err := tx.Exec(ctx, `
		UPDATE payment_sessions
		SET request_id = $2, completion_request_json = $3, completion_request_timestamp = $4
		WHERE id = $1
		  AND (request_id IS NULL OR request_id = $2)
		  AND (completion_request_json IS NULL OR completion_request_json = $3)`,
		sessionID, requestID, completionJSON, ts)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, true, nil
		}
		return 0, false, apperror.ErrDatabase(err)
	}
	return tag.RowsAffected(), false, nil
}

// MarkExpired transitions pending sessions whose expiresAt has passed
// to expired, returning the number of rows affected.
func (r *PaymentStoreRepo) MarkExpired(ctx context.Context, tx pgx.Tx, now time.Time) (int64, error) {
	tag, err := r.execer(tx).Exec(ctx, `
		UPDATE payment_sessions SET status = 'expired'
		WHERE status = 'pending' AND expires_at < $1`, now)
	if err != nil {
		return 0, apperror.ErrDatabase(err)
	}
	return tag.RowsAffected(), nil
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

func (r *PaymentStoreRepo) execer(tx pgx.Tx) execer {
	if tx != nil {
		return tx
	}
	return r.pool
}

// Update persists the full mutable state of a session (status,
// completedAt, tokenReceived, ...) after a state-machine transition.
func (r *PaymentStoreRepo) Update(ctx context.Context, tx pgx.Tx, s *domain.PaymentSession) error {
	_, err := tx.Exec(ctx, `
		UPDATE payment_sessions SET
			api_key = $2, status = $3, token_received = $4,
			completed_at = $5, cancelled_at = $6
		WHERE id = $1`,
		s.ID, s.ApiKey, string(s.Status), s.TokenReceived, s.CompletedAt, s.CancelledAt,
	)
	if err != nil {
		return apperror.ErrDatabase(err)
	}
	return nil
}
