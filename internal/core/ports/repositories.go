package ports

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
)

// DBTransactor opens database transactions, mirroring the teacher's
// transactor pattern so repositories accept an explicit pgx.Tx rather
// than reaching for a package-level pool.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// KeyStore is the persistent repository of API keys.
type KeyStore interface {
	// FindByKey returns the row for the given key string, or nil if absent.
	FindByKey(ctx context.Context, tx pgx.Tx, key string) (*domain.ApiKey, error)
	// FindByID returns the row for the given id, or nil if absent.
	FindByID(ctx context.Context, tx pgx.Tx, id int64) (*domain.ApiKey, error)
	// LockForUpdate acquires an exclusive row lock (NOWAIT) on the key's
	// row and returns it. Returns ErrLockNotAvailable if already locked.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.ApiKey, error)
	// Insert creates a new ApiKey row and returns its assigned id.
	Insert(ctx context.Context, tx pgx.Tx, key *domain.ApiKey) (int64, error)
	// UpdatePlanAndExpiry sets pricingPlanId and activeUntil absolutely.
	UpdatePlanAndExpiry(ctx context.Context, tx pgx.Tx, id int64, planID int64, activeUntil time.Time) error
}

// PlanStore is the persistent repository of pricing plans.
type PlanStore interface {
	FindByID(ctx context.Context, tx pgx.Tx, id int64) (*domain.PricingPlan, error)
	List(ctx context.Context, tx pgx.Tx) ([]domain.PricingPlan, error)
}

// PaymentStore is the persistent repository of payment sessions.
type PaymentStore interface {
	Insert(ctx context.Context, tx pgx.Tx, s *domain.PaymentSession) error
	FindByID(ctx context.Context, tx pgx.Tx, id string) (*domain.PaymentSession, error)
	// FindByIDAndLock acquires FOR UPDATE NOWAIT on the session row.
	FindByIDAndLock(ctx context.Context, tx pgx.Tx, id string) (*domain.PaymentSession, error)
	// CancelPendingForKey marks any pending sessions whose api_key
	// column equals apiKey as cancelled, stamping cancelledAt. apiKey is
	// the key's bearer string (domain.PaymentSession.ApiKey), not its
	// numeric id, since that's what the column stores.
	CancelPendingForKey(ctx context.Context, tx pgx.Tx, apiKey string) error
	// RecordCompletionRequest performs the Phase-1 idempotent early
	// record described in spec §4.6: conditionally sets requestId and
	// completionRequestJson, returning rowsAffected and whether a
	// unique-constraint violation on request_id occurred.
	RecordCompletionRequest(ctx context.Context, tx pgx.Tx, sessionID, requestID, completionJSON string, ts time.Time) (rowsAffected int64, duplicateRequestID bool, err error)
	// MarkExpired transitions pending sessions whose expiresAt has
	// passed to expired. Used by both completePayment's inline check
	// and the periodic EXPIRE sweep.
	MarkExpired(ctx context.Context, tx pgx.Tx, now time.Time) (int64, error)
	Update(ctx context.Context, tx pgx.Tx, s *domain.PaymentSession) error
}

// ShardStore is the persistent repository of the shard-routing document.
type ShardStore interface {
	// Latest returns the most recently written ShardConfig, or nil if
	// none has ever been written.
	Latest(ctx context.Context, tx pgx.Tx) (*domain.ShardConfig, error)
}
