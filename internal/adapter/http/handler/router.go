package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/unicitylabs/aggregator-proxy/internal/adapter/http/middleware"
)

// maxBodyBytes and maxHeaderCount are the RequestPipeline's fixed body
// and header guards (spec.md §4.1 step 1, §8) — not operator
// configurable, unlike the rest of config.Config.
const (
	maxBodyBytes   int64 = 10 << 20 // 10 MiB
	maxHeaderCount       = 200
)

// RouterDeps holds every handler and middleware SetupRouter wires
// together.
type RouterDeps struct {
	Proxy   *ProxyHandler
	Payment *PaymentHandler
	Config  *ConfigHandler
	Health  *HealthHandler
	Logger  zerolog.Logger
}

// SetupRouter initializes the Gin engine with every route the proxy
// serves. Reserved prefixes (/api/payment, /config, /health) are
// registered explicitly; everything else falls through to the
// RequestPipeline via NoRoute, since the proxy's route space is
// arbitrary (it mirrors whatever paths the aggregator nodes expose).
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.BodyGuard(maxBodyBytes, maxHeaderCount))

	r.GET("/health", deps.Health.ServeHTTP)

	payment := r.Group("/api/payment")
	{
		payment.POST("/initiate", deps.Payment.Initiate)
		payment.POST("/complete", deps.Payment.Complete)
		payment.GET("/plans", deps.Payment.Plans)
		payment.GET("/key/:apiKey", deps.Payment.KeyStatus)
	}

	configGroup := r.Group("/config")
	{
		configGroup.GET("/shards", deps.Config.Shards)
	}

	// Everything else is the reverse-proxy's own route space.
	r.NoRoute(deps.Proxy.ServeHTTP)

	return r
}
