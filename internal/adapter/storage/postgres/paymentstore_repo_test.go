package postgres

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
)

var errUniqueViolation = &pgconn.PgError{Code: uniqueViolationSQLState}

func newTestSession() *domain.PaymentSession {
	now := time.Now().UTC().Truncate(time.Microsecond)
	key := "sk_existing"
	return &domain.PaymentSession{
		ID:              "11111111-1111-1111-1111-111111111111",
		ApiKey:          &key,
		PaymentAddress:  "addr-xyz",
		ReceiverNonce:   []byte("0123456789012345678901234567890"),
		Status:          domain.PaymentSessionPending,
		TargetPlanID:    2,
		AmountRequired:  big.NewInt(2500),
		CreatedAt:       now,
		ExpiresAt:       now.Add(15 * time.Minute),
		ShouldCreateKey: false,
		RefundAmount:    big.NewInt(500),
	}
}

func TestPaymentStoreRepo_Insert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStoreRepo(mock)
	s := newTestSession()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_sessions").
		WithArgs(
			s.ID, s.ApiKey, s.PaymentAddress, s.ReceiverNonce, string(s.Status),
			s.TargetPlanID, s.AmountRequired.String(), s.TokenReceived, s.CreatedAt,
			s.CompletedAt, s.CancelledAt, s.ExpiresAt, s.ShouldCreateKey,
			s.RefundAmount.String(), s.RequestID, s.CompletionRequestJSON,
			s.CompletionRequestTimestamp,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Insert(context.Background(), tx, s)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentStoreRepo_Insert_DuplicatePendingSessionRejected(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStoreRepo(mock)
	s := newTestSession()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO payment_sessions").
		WithArgs(
			s.ID, s.ApiKey, s.PaymentAddress, s.ReceiverNonce, string(s.Status),
			s.TargetPlanID, s.AmountRequired.String(), s.TokenReceived, s.CreatedAt,
			s.CompletedAt, s.CancelledAt, s.ExpiresAt, s.ShouldCreateKey,
			s.RefundAmount.String(), s.RequestID, s.CompletionRequestJSON,
			s.CompletionRequestTimestamp,
		).
		WillReturnError(errUniqueViolation)

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.Insert(context.Background(), tx, s)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentStoreRepo_CancelPendingForKey_MatchesByKeyString(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStoreRepo(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payment_sessions").
		WithArgs("sk_existing").
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	err = repo.CancelPendingForKey(context.Background(), tx, "sk_existing")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentStoreRepo_FindByID_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStoreRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM payment_sessions WHERE id").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows(sessionColumnNames()))

	got, err := repo.FindByID(context.Background(), nil, "missing")
	assert.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentStoreRepo_RecordCompletionRequest_DuplicateRequestIDReported(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStoreRepo(mock)
	now := time.Now().UTC()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE payment_sessions").
		WithArgs("sess-1", "req-1", "{}", now).
		WillReturnError(errUniqueViolation)

	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)

	rows, duplicate, err := repo.RecordCompletionRequest(context.Background(), tx, "sess-1", "req-1", "{}", now)
	require.NoError(t, err)
	assert.True(t, duplicate)
	assert.Zero(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentStoreRepo_MarkExpired(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPaymentStoreRepo(mock)
	now := time.Now().UTC()

	mock.ExpectExec("UPDATE payment_sessions SET status = 'expired'").
		WithArgs(now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	n, err := repo.MarkExpired(context.Background(), nil, now)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func sessionColumnNames() []string {
	return []string{"id", "api_key", "payment_address", "receiver_nonce", "status",
		"target_plan_id", "amount_required", "token_received", "created_at",
		"completed_at", "cancelled_at", "expires_at", "should_create_key",
		"refund_amount", "request_id", "completion_request_json",
		"completion_request_timestamp"}
}
