package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/unicitylabs/aggregator-proxy/internal/adapter/http/dto"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
)

// aggregatorProbeTimeout bounds a single shard's reachability check so
// one slow or dead aggregator can't hold up the whole health response.
const aggregatorProbeTimeout = 2 * time.Second

// HealthHandler implements GET /health: a deep check of the database
// plus every aggregator node currently in the shard table, grounded on
// the teacher's ports.HealthChecker pattern but shaped to spec.md §7's
// {status,database,aggregators} envelope rather than a generic
// dependency map.
type HealthHandler struct {
	db     ports.HealthChecker
	router func() ports.ShardRouter
	client *http.Client
}

// NewHealthHandler creates a HealthHandler. router returns the
// currently active ShardRouter so the probe set always reflects the
// live config.
func NewHealthHandler(db ports.HealthChecker, router func() ports.ShardRouter, client *http.Client) *HealthHandler {
	if client == nil {
		client = &http.Client{Timeout: aggregatorProbeTimeout}
	}
	return &HealthHandler{db: db, router: router, client: client}
}

// shardURLs is satisfied by internal/shard.Router and its Failsafe
// stand-in; it is not part of ports.ShardRouter because only the
// health probe needs to enumerate every target rather than resolve one.
type shardURLs interface {
	URLs() []string
}

func (h *HealthHandler) ServeHTTP(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), aggregatorProbeTimeout)
	defer cancel()

	dbStatus := "ok"
	if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unreachable: " + err.Error()
	}

	urls := h.targetURLs()
	aggregators := make(map[string]string, len(urls))
	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()
			status := h.probe(ctx, url)
			mu.Lock()
			aggregators[url] = status
			mu.Unlock()
		}(url)
	}
	wg.Wait()

	healthy := dbStatus == "ok"
	for _, status := range aggregators {
		if status != "ok" {
			healthy = false
		}
	}

	status := "healthy"
	code := http.StatusOK
	if !healthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, dto.HealthResponse{Status: status, Database: dbStatus, Aggregators: aggregators})
}

func (h *HealthHandler) targetURLs() []string {
	router := h.router()
	if enumerable, ok := router.(shardURLs); ok {
		return enumerable.URLs()
	}
	return nil
}

func (h *HealthHandler) probe(ctx context.Context, url string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "unreachable: " + err.Error()
	}
	resp, err := h.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "timeout"
		}
		return "unreachable: " + err.Error()
	}
	defer resp.Body.Close()
	return "ok"
}
