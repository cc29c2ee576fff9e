package handler

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/unicitylabs/aggregator-proxy/internal/adapter/http/middleware"
	"github.com/unicitylabs/aggregator-proxy/internal/core/domain"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports/mocks"
	"github.com/unicitylabs/aggregator-proxy/internal/shard"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeBackend is a minimal ports.BackendClient that echoes back a
// canned response while recording the request it was handed, so tests
// can assert on the headers actually forwarded.
type fakeBackend struct {
	lastReq *http.Request
	status  int
	body    string
	err     error
}

func (f *fakeBackend) Forward(_ context.Context, targetURL string, req *http.Request) (*http.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &http.Response{
		StatusCode: f.status,
		Header:     http.Header{"X-Upstream": []string{targetURL}},
		Body:       io.NopCloser(bytes.NewBufferString(f.body)),
	}, nil
}

func catchAllRouter(t *testing.T, url string) func() ports.ShardRouter {
	b := &shard.Builder{}
	r, err := b.Build(&domain.ShardConfig{Shards: []domain.ShardInfo{{ID: 1, URL: url}}})
	require.NoError(t, err)
	return func() ports.ShardRouter { return r }
}

func newTestEngine(h *ProxyHandler) *gin.Engine {
	r := gin.New()
	r.Any("/*path", h.ServeHTTP)
	return r
}

func TestProxyHandler_BasicProxy_NoAuthRequired(t *testing.T) {
	backend := &fakeBackend{status: http.StatusOK, body: "pong"}
	h := NewProxyHandler(catchAllRouter(t, "http://backend:3000"), backend, nil, nil, zerolog.Nop())
	r := newTestEngine(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"jsonrpc":"2.0","method":"get_block","params":{"requestId":"01"},"id":1}`))
	req.Header.Set("Authorization", "Bearer supersecret")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", w.Body.String())
	require.NotNil(t, backend.lastReq)
	assert.Empty(t, backend.lastReq.Header.Get("Authorization"), "Authorization must be stripped before forwarding")
}

func TestProxyHandler_ProtectedMethodWithoutKey_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	auth := middleware.NewAuthenticator(
		mocks.NewMockKeyCache(ctrl),
		mocks.NewMockKeyStore(ctrl),
		mocks.NewMockPlanStore(ctrl),
		mocks.NewMockDBTransactor(ctrl),
		mocks.NewMockRateLimiter(ctrl),
		mocks.NewMockTimeSource(ctrl),
		zerolog.Nop(),
	)

	backend := &fakeBackend{status: http.StatusOK, body: "pong"}
	h := NewProxyHandler(catchAllRouter(t, "http://backend:3000"), backend, auth, []string{"submit_commitment"}, zerolog.Nop())
	r := newTestEngine(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"jsonrpc":"2.0","method":"submit_commitment","params":{"requestId":"01"},"id":1}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProxyHandler_ProtectedMethodWithKey_ConsumesRateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	cache := mocks.NewMockKeyCache(ctrl)
	keys := mocks.NewMockKeyStore(ctrl)
	plans := mocks.NewMockPlanStore(ctrl)
	tx := mocks.NewMockDBTransactor(ctrl)
	limiter := mocks.NewMockRateLimiter(ctrl)
	clock := mocks.NewMockTimeSource(ctrl)

	cache.EXPECT().Lookup(gomock.Any(), "supersecret").Return(ports.KeyLimits{RPS: 5, RPD: 100000}, true, true)
	limiter.EXPECT().TryConsume("supersecret", 5, 100000).Return(ports.ConsumeResult{Allowed: true, RemainingS: 4, RemainingD: 99999})

	auth := middleware.NewAuthenticator(cache, keys, plans, tx, limiter, clock, zerolog.Nop())
	backend := &fakeBackend{status: http.StatusOK, body: "pong"}
	h := NewProxyHandler(catchAllRouter(t, "http://backend:3000"), backend, auth, []string{"submit_commitment"}, zerolog.Nop())
	r := newTestEngine(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(`{"jsonrpc":"2.0","method":"submit_commitment","params":{"requestId":"01"},"id":1}`))
	req.Header.Set("Authorization", "Bearer supersecret")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}

func TestProxyHandler_BothRequestIDAndShardID_Rejected(t *testing.T) {
	backend := &fakeBackend{status: http.StatusOK, body: "pong"}
	h := NewProxyHandler(catchAllRouter(t, "http://backend:3000"), backend, nil, nil, zerolog.Nop())
	r := newTestEngine(h)

	w := httptest.NewRecorder()
	body := `{"jsonrpc":"2.0","method":"get_block","params":{"requestId":"01","shardId":1},"id":1}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProxyHandler_ShardRouting_TwoShards(t *testing.T) {
	aBackend := &fakeBackend{status: http.StatusOK, body: "from-a"}
	b := &shard.Builder{}
	router, err := b.Build(&domain.ShardConfig{Shards: []domain.ShardInfo{
		{ID: 2, URL: "http://a"},
		{ID: 3, URL: "http://b"},
	}})
	require.NoError(t, err)

	h := NewProxyHandler(func() ports.ShardRouter { return router }, aBackend, nil, nil, zerolog.Nop())
	r := newTestEngine(h)

	// requestId ending in bit 0 -> shard A (id=2's suffix is bit 0 = 0).
	w := httptest.NewRecorder()
	body := `{"jsonrpc":"2.0","method":"get_block","params":{"requestId":"00"},"id":1}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://a", w.Header().Get("X-Upstream"))
	assert.Equal(t, "from-a", w.Body.String())
}

func TestProxyHandler_JSONRPCWithoutRouteParams_Rejected(t *testing.T) {
	backend := &fakeBackend{status: http.StatusOK, body: "pong"}
	b := &shard.Builder{}
	router, err := b.Build(&domain.ShardConfig{Shards: []domain.ShardInfo{
		{ID: 2, URL: "http://a"},
		{ID: 3, URL: "http://b"},
	}})
	require.NoError(t, err)

	h := NewProxyHandler(func() ports.ShardRouter { return router }, backend, nil, nil, zerolog.Nop())
	r := newTestEngine(h)

	w := httptest.NewRecorder()
	body := `{"jsonrpc":"2.0","method":"get_block","params":{},"id":1}`
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProxyHandler_BackendError_BadGateway(t *testing.T) {
	backend := &fakeBackend{err: context.DeadlineExceeded}
	h := NewProxyHandler(catchAllRouter(t, "http://backend:3000"), backend, nil, nil, zerolog.Nop())
	r := newTestEngine(h)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
