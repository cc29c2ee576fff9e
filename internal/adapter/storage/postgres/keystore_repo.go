package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
)

// rowQuerier is satisfied by both pgx.Tx and Pool, letting read methods
// accept an optional transaction and fall back to the pool otherwise.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// KeyStoreRepo implements ports.KeyStore over PostgreSQL.
type KeyStoreRepo struct {
	pool Pool
}

// NewKeyStoreRepo creates a new KeyStoreRepo.
func NewKeyStoreRepo(pool Pool) *KeyStoreRepo {
	return &KeyStoreRepo{pool: pool}
}

func (r *KeyStoreRepo) q(tx pgx.Tx) rowQuerier {
	if tx != nil {
		return tx
	}
	return r.pool
}

func (r *KeyStoreRepo) scanKey(row pgx.Row) (*domain.ApiKey, error) {
	var k domain.ApiKey
	var planID *int64
	var activeUntil *time.Time
	if err := row.Scan(&k.ID, &k.Key, &k.Description, &k.Status, &planID, &activeUntil, &k.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.ErrDatabase(err)
	}
	k.PricingPlanID = planID
	k.ActiveUntil = activeUntil
	return &k, nil
}

// FindByKey returns the row for the given key string, or nil if absent.
func (r *KeyStoreRepo) FindByKey(ctx context.Context, tx pgx.Tx, key string) (*domain.ApiKey, error) {
	row := r.q(tx).QueryRow(ctx,
		`SELECT id, key, description, status, pricing_plan_id, active_until, created_at
		 FROM api_keys WHERE key = $1`, key)
	return r.scanKey(row)
}

// FindByID returns the row for the given id, or nil if absent.
func (r *KeyStoreRepo) FindByID(ctx context.Context, tx pgx.Tx, id int64) (*domain.ApiKey, error) {
	row := r.q(tx).QueryRow(ctx,
		`SELECT id, key, description, status, pricing_plan_id, active_until, created_at
		 FROM api_keys WHERE id = $1`, id)
	return r.scanKey(row)
}

// LockForUpdate acquires an exclusive row lock (NOWAIT).
func (r *KeyStoreRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.ApiKey, error) {
	row := tx.QueryRow(ctx,
		`SELECT id, key, description, status, pricing_plan_id, active_until, created_at
		 FROM api_keys WHERE id = $1 FOR UPDATE NOWAIT`, id)
	k, err := r.scanKey(row)
	if err != nil {
		if isLockNotAvailable(err) {
			return nil, apperror.ErrLockUnavailable(err)
		}
		return nil, err
	}
	return k, nil
}

// Insert creates a new ApiKey row and returns its assigned id.
func (r *KeyStoreRepo) Insert(ctx context.Context, tx pgx.Tx, k *domain.ApiKey) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`INSERT INTO api_keys (key, description, status, pricing_plan_id, active_until, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		k.Key, k.Description, k.Status, k.PricingPlanID, k.ActiveUntil, k.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, apperror.ErrDatabase(err)
	}
	return id, nil
}

// UpdatePlanAndExpiry sets pricingPlanId and activeUntil absolutely.
func (r *KeyStoreRepo) UpdatePlanAndExpiry(ctx context.Context, tx pgx.Tx, id int64, planID int64, activeUntil time.Time) error {
	_, err := tx.Exec(ctx,
		`UPDATE api_keys SET pricing_plan_id = $1, active_until = $2, status = 'active' WHERE id = $3`,
		planID, activeUntil, id)
	if err != nil {
		return apperror.ErrDatabase(err)
	}
	return nil
}
