package reload

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports/mocks"
)

type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

func TestConfigReloader_StartsFailsafe(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := New(
		mocks.NewMockShardStore(ctrl),
		mocks.NewMockPaymentStore(ctrl),
		mocks.NewMockDBTransactor(ctrl),
		mocks.NewMockShardRouterBuilder(ctrl),
		mocks.NewMockTimeSource(ctrl),
		time.Second,
		zerolog.Nop(),
	)

	_, err := r.Router().RandomTarget()
	assert.Error(t, err, "before the first successful poll, the router must fail closed")
}

func TestConfigReloader_SwapsOnVersionChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	shards := mocks.NewMockShardStore(ctrl)
	sessions := mocks.NewMockPaymentStore(ctrl)
	tx := mocks.NewMockDBTransactor(ctrl)
	builder := mocks.NewMockShardRouterBuilder(ctrl)
	clock := mocks.NewMockTimeSource(ctrl)

	cfg := &domain.ShardConfig{Version: 1, Shards: []domain.ShardInfo{{ID: 1, URL: "http://a"}}}
	built := fakeRouter{target: "http://a"}

	txn := &mockTx{}
	tx.EXPECT().Begin(gomock.Any()).Return(txn, nil).Times(2)
	shards.EXPECT().Latest(gomock.Any(), txn).Return(cfg, nil)
	builder.EXPECT().Build(cfg).Return(built, nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now)
	sessions.EXPECT().MarkExpired(gomock.Any(), txn, now).Return(int64(0), nil)

	r := New(shards, sessions, tx, builder, clock, time.Second, zerolog.Nop())
	r.tick(context.Background())

	got, err := r.Router().RandomTarget()
	require.NoError(t, err)
	assert.Equal(t, "http://a", got)
}

func TestConfigReloader_KeepsPreviousRouterOnValidationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	shards := mocks.NewMockShardStore(ctrl)
	sessions := mocks.NewMockPaymentStore(ctrl)
	tx := mocks.NewMockDBTransactor(ctrl)
	builder := mocks.NewMockShardRouterBuilder(ctrl)
	clock := mocks.NewMockTimeSource(ctrl)

	cfg := &domain.ShardConfig{Version: 2, Shards: []domain.ShardInfo{{ID: 3, URL: "http://bad"}}}

	txn := &mockTx{}
	tx.EXPECT().Begin(gomock.Any()).Return(txn, nil).Times(2)
	shards.EXPECT().Latest(gomock.Any(), txn).Return(cfg, nil)
	builder.EXPECT().Build(cfg).Return(nil, errors.New("does not exhaustively partition the request-id space"))
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now)
	sessions.EXPECT().MarkExpired(gomock.Any(), txn, now).Return(int64(0), nil)

	r := New(shards, sessions, tx, builder, clock, time.Second, zerolog.Nop())
	r.tick(context.Background())

	_, err := r.Router().RandomTarget()
	assert.Error(t, err, "a failed-validation reload must leave the failsafe router in place")
}

func TestConfigReloader_SkipsRebuildWhenVersionUnchanged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	shards := mocks.NewMockShardStore(ctrl)
	sessions := mocks.NewMockPaymentStore(ctrl)
	tx := mocks.NewMockDBTransactor(ctrl)
	builder := mocks.NewMockShardRouterBuilder(ctrl)
	clock := mocks.NewMockTimeSource(ctrl)

	cfg := &domain.ShardConfig{Version: 1, Shards: []domain.ShardInfo{{ID: 1, URL: "http://a"}}}
	built := fakeRouter{target: "http://a"}

	txn := &mockTx{}
	// First tick builds; second tick sees the same version and must not call Build again.
	tx.EXPECT().Begin(gomock.Any()).Return(txn, nil).Times(4)
	shards.EXPECT().Latest(gomock.Any(), txn).Return(cfg, nil).Times(2)
	builder.EXPECT().Build(cfg).Return(built, nil).Times(1)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now).Times(2)
	sessions.EXPECT().MarkExpired(gomock.Any(), txn, now).Return(int64(0), nil).Times(2)

	r := New(shards, sessions, tx, builder, clock, time.Second, zerolog.Nop())
	r.tick(context.Background())
	r.tick(context.Background())
}

func TestConfigReloader_SweepsExpiredSessions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	shards := mocks.NewMockShardStore(ctrl)
	sessions := mocks.NewMockPaymentStore(ctrl)
	tx := mocks.NewMockDBTransactor(ctrl)
	builder := mocks.NewMockShardRouterBuilder(ctrl)
	clock := mocks.NewMockTimeSource(ctrl)

	txn := &mockTx{}
	tx.EXPECT().Begin(gomock.Any()).Return(txn, nil).Times(2)
	shards.EXPECT().Latest(gomock.Any(), txn).Return(nil, nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	clock.EXPECT().Now().Return(now)
	sessions.EXPECT().MarkExpired(gomock.Any(), txn, now).Return(int64(3), nil)

	r := New(shards, sessions, tx, builder, clock, time.Second, zerolog.Nop())
	r.tick(context.Background())
}

type fakeRouter struct {
	target string
}

func (f fakeRouter) RouteByRequestID(string) (string, error) { return f.target, nil }
func (f fakeRouter) RouteByShardID(int) (string, error)      { return f.target, nil }
func (f fakeRouter) RandomTarget() (string, error)           { return f.target, nil }

var _ ports.ShardRouter = fakeRouter{}
