package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
)

// fakeHealthChecker is a minimal ports.HealthChecker test double.
type fakeHealthChecker struct{ err error }

func (f fakeHealthChecker) Ping(context.Context) error { return f.err }
func (f fakeHealthChecker) Name() string               { return "postgresql" }

func noShards() ports.ShardRouter { return shardStub{} }

type shardStub struct{}

func (shardStub) RouteByRequestID(string) (string, error) { return "", errors.New("unused") }
func (shardStub) RouteByShardID(int) (string, error)      { return "", errors.New("unused") }
func (shardStub) RandomTarget() (string, error)           { return "", errors.New("unused") }
func (shardStub) URLs() []string                          { return nil }

func TestHealthHandler_HealthyWhenDBOKAndNoAggregators(t *testing.T) {
	h := NewHealthHandler(fakeHealthChecker{}, noShards, nil)

	r := gin.New()
	r.GET("/health", h.ServeHTTP)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"healthy"`)
	assert.Contains(t, w.Body.String(), `"database":"ok"`)
}

func TestHealthHandler_DegradedWhenDBUnreachable(t *testing.T) {
	h := NewHealthHandler(fakeHealthChecker{err: errors.New("connection refused")}, noShards, nil)

	r := gin.New()
	r.GET("/health", h.ServeHTTP)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"degraded"`)
}

func TestHealthHandler_ProbesEachConfiguredAggregator(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer backend.Close()

	router := func() ports.ShardRouter { return urlsStub{urls: []string{backend.URL}} }

	h := NewHealthHandler(fakeHealthChecker{}, router, nil)

	r := gin.New()
	r.GET("/health", h.ServeHTTP)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), backend.URL)
	assert.Contains(t, w.Body.String(), `"ok"`)
}

type urlsStub struct{ urls []string }

func (u urlsStub) RouteByRequestID(string) (string, error) { return "", errors.New("unused") }
func (u urlsStub) RouteByShardID(int) (string, error)      { return "", errors.New("unused") }
func (u urlsStub) RandomTarget() (string, error)           { return "", errors.New("unused") }
func (u urlsStub) URLs() []string                          { return u.urls }
