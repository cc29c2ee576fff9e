// Package reload implements ConfigReloader, spec.md §4.7's periodic
// poll-validate-swap loop: it keeps the ShardRouter reference that
// RequestPipeline reads in sync with the latest ShardStore row
// (PaymentEngine holds no router reference), and runs the EXPIRE sweep
// over stale pending payment sessions alongside it on the same ticker,
// so a single goroutine owns both periodic concerns. The sweep reads the
// current time from the TimeSource.
package reload

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
	"github.com/unicitylabs/aggregator-proxy/internal/shard"
)

// DefaultInterval is the poll period spec.md §4.7 leaves as "every few
// seconds".
const DefaultInterval = 5 * time.Second

// ConfigReloader holds the single ShardRouter reference RequestPipeline
// reads through an atomic pointer, per spec.md's
// "Cyclic initialization" note in §9.
type ConfigReloader struct {
	shards   ports.ShardStore
	sessions ports.PaymentStore
	tx       ports.DBTransactor
	builder  ports.ShardRouterBuilder
	clock    ports.TimeSource
	interval time.Duration
	log      zerolog.Logger

	router  atomic.Pointer[ports.ShardRouter]
	version atomic.Int64
}

// New creates a ConfigReloader. The router starts out as a
// shard.Failsafe so traffic that arrives before the first poll
// completes fails closed rather than panicking on a nil router.
func New(shards ports.ShardStore, sessions ports.PaymentStore, tx ports.DBTransactor, builder ports.ShardRouterBuilder, clock ports.TimeSource, interval time.Duration, log zerolog.Logger) *ConfigReloader {
	if interval <= 0 {
		interval = DefaultInterval
	}
	r := &ConfigReloader{shards: shards, sessions: sessions, tx: tx, builder: builder, clock: clock, interval: interval, log: log}
	var failsafe ports.ShardRouter = shard.Failsafe{}
	r.router.Store(&failsafe)
	r.version.Store(-1)
	return r
}

// Router returns the current ShardRouter snapshot. RequestPipeline calls
// this per-request rather than holding its own copy, so every in-flight
// request observes a single consistent router even mid-swap.
func (r *ConfigReloader) Router() ports.ShardRouter {
	return *r.router.Load()
}

// Run polls until ctx is cancelled. It is meant to be launched as its
// own goroutine from main.
func (r *ConfigReloader) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.tick(ctx)
		}
	}
}

func (r *ConfigReloader) tick(ctx context.Context) {
	r.reloadShardConfig(ctx)
	r.sweepExpiredSessions(ctx)
}

// reloadShardConfig implements spec.md §4.7: read the latest
// ShardStore row; if its version differs from the running one, build
// and validate a new router, and only on success swap the reference.
func (r *ConfigReloader) reloadShardConfig(ctx context.Context) {
	transaction, err := r.tx.Begin(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("config reload: failed to open transaction")
		return
	}
	defer transaction.Rollback(ctx)

	cfg, err := r.shards.Latest(ctx, transaction)
	if err != nil {
		r.log.Warn().Err(err).Msg("config reload: failed to read shard config")
		return
	}
	if cfg == nil {
		return
	}
	if int64(cfg.Version) == r.version.Load() {
		return
	}

	newRouter, err := r.builder.Build(cfg)
	if err != nil {
		r.log.Error().Err(err).Int("version", cfg.Version).Msg("config reload: new shard config failed validation, keeping previous router")
		return
	}

	r.router.Store(&newRouter)
	r.version.Store(int64(cfg.Version))
	r.log.Info().Int("version", cfg.Version).Int("shards", len(cfg.Shards)).Msg("config reload: shard router swapped")
}

// sweepExpiredSessions implements the EXPIRE sweep spec.md §4.6
// describes as a lazy alternative that is "fine" to run periodically.
func (r *ConfigReloader) sweepExpiredSessions(ctx context.Context) {
	transaction, err := r.tx.Begin(ctx)
	if err != nil {
		r.log.Warn().Err(err).Msg("expire sweep: failed to open transaction")
		return
	}
	defer transaction.Rollback(ctx)

	n, err := r.sessions.MarkExpired(ctx, transaction, r.clock.Now())
	if err != nil {
		r.log.Warn().Err(err).Msg("expire sweep: failed to mark expired sessions")
		return
	}
	if err := transaction.Commit(ctx); err != nil {
		r.log.Warn().Err(err).Msg("expire sweep: failed to commit")
		return
	}
	if n > 0 {
		r.log.Info().Int64("count", n).Msg("expire sweep: marked sessions expired")
	}
}
