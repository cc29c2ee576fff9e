package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
	"github.com/unicitylabs/aggregator-proxy/pkg/apperror"
)

// ShardStoreRepo implements ports.ShardStore over PostgreSQL. The
// shard_config table is append-only; Latest always wins by (version,
// created_at) descending.
type ShardStoreRepo struct {
	pool Pool
}

// NewShardStoreRepo creates a new ShardStoreRepo.
func NewShardStoreRepo(pool Pool) *ShardStoreRepo {
	return &ShardStoreRepo{pool: pool}
}

// Latest returns the most recently written ShardConfig, or nil if none
// has ever been written.
func (r *ShardStoreRepo) Latest(ctx context.Context, tx pgx.Tx) (*domain.ShardConfig, error) {
	var q rowQuerier = r.pool
	if tx != nil {
		q = tx
	}

	var version int
	var shardsJSON []byte
	var createdBy string
	var createdAt time.Time
	row := q.QueryRow(ctx, `
		SELECT version, shards, created_by, created_at
		FROM shard_config ORDER BY version DESC, created_at DESC LIMIT 1`)
	if err := row.Scan(&version, &shardsJSON, &createdBy, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.ErrDatabase(err)
	}

	var shards []domain.ShardInfo
	if err := json.Unmarshal(shardsJSON, &shards); err != nil {
		return nil, apperror.ErrDatabase(err)
	}

	return &domain.ShardConfig{
		Version:   version,
		Shards:    shards,
		CreatedBy: createdBy,
		CreatedAt: createdAt,
	}, nil
}
