package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/unicitylabs/aggregator-proxy/config"
	httpHandler "github.com/unicitylabs/aggregator-proxy/internal/adapter/http/handler"
	"github.com/unicitylabs/aggregator-proxy/internal/adapter/http/middleware"
	"github.com/unicitylabs/aggregator-proxy/internal/adapter/storage/clock"
	"github.com/unicitylabs/aggregator-proxy/internal/adapter/storage/postgres"
	"github.com/unicitylabs/aggregator-proxy/internal/adapter/tokensdk"
	"github.com/unicitylabs/aggregator-proxy/internal/backend"
	"github.com/unicitylabs/aggregator-proxy/internal/cache"
	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
	"github.com/unicitylabs/aggregator-proxy/internal/payment"
	"github.com/unicitylabs/aggregator-proxy/internal/ratelimit"
	"github.com/unicitylabs/aggregator-proxy/internal/reload"
	"github.com/unicitylabs/aggregator-proxy/internal/service"
	"github.com/unicitylabs/aggregator-proxy/internal/shard"
	"github.com/unicitylabs/aggregator-proxy/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	log.Info().Int("port", cfg.Server.Port).Msg("starting aggregator proxy")

	ctx := context.Background()

	pool, err := postgres.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgresql")
	}
	defer pool.Close()

	keys := postgres.NewKeyStoreRepo(pool)
	plans := postgres.NewPlanStoreRepo(pool)
	sessions := postgres.NewPaymentStoreRepo(pool)
	shards := postgres.NewShardStoreRepo(pool)
	transactor := postgres.NewTransactor(pool)
	dbHealth := postgres.NewHealthCheck(pool)

	realClock := clock.NewReal()

	keyCache := cache.NewDefault()
	limiter := ratelimit.New(realClock)

	shardBuilder := &shard.Builder{}

	paymentCfg, err := loadPaymentConfig(cfg.Payment)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid payment configuration")
	}

	sdk := tokensdk.New(cfg.Payment.TokenTypeIDsURL, &http.Client{Timeout: 30 * time.Second})
	predicate := payment.NewPredicateDeriver()

	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid AES encryption key")
	}

	engine := payment.New(keys, plans, sessions, transactor, sdk, predicate, realClock, encSvc, paymentCfg, log)

	reloader := reload.New(shards, sessions, transactor, shardBuilder, realClock, reload.DefaultInterval, log)
	reloadCtx, cancelReload := context.WithCancel(ctx)
	go reloader.Run(reloadCtx)
	defer cancelReload()

	backendClient := backend.New(backend.Config{
		ConnectTimeout: cfg.Server.ConnectTimeout,
		ReadTimeout:    cfg.Server.ReadTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
	})

	authenticator := middleware.NewAuthenticator(keyCache, keys, plans, transactor, limiter, realClock, log)

	routerFn := func() ports.ShardRouter { return reloader.Router() }

	proxyHandler := httpHandler.NewProxyHandler(routerFn, backendClient, authenticator, cfg.Auth.ProtectedMethods, log)
	paymentHandler := httpHandler.NewPaymentHandler(engine, plans, keys, transactor, paymentCfg.MinimumPaymentAmount, log)
	configHandler := httpHandler.NewConfigHandler(shards, transactor)
	healthHandler := httpHandler.NewHealthHandler(dbHealth, routerFn, nil)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Proxy:   proxyHandler,
		Payment: paymentHandler,
		Config:  configHandler,
		Health:  healthHandler,
		Logger:  log,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		log.Info().Str("addr", addr).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}
	log.Info().Msg("server exited")
}

// loadPaymentConfig resolves the hex/decimal strings in config.PaymentConfig
// into the typed values payment.Config needs.
func loadPaymentConfig(pc config.PaymentConfig) (payment.Config, error) {
	secret, err := hex.DecodeString(pc.ServerSecret)
	if err != nil {
		return payment.Config{}, fmt.Errorf("parsing server_secret: %w", err)
	}

	minAmount, ok := new(big.Int).SetString(pc.MinimumPaymentAmount, 10)
	if !ok {
		return payment.Config{}, fmt.Errorf("invalid minimum_payment_amount %q", pc.MinimumPaymentAmount)
	}

	var trustBase []byte
	if pc.TrustBasePath != "" {
		trustBase, err = os.ReadFile(pc.TrustBasePath)
		if err != nil {
			return payment.Config{}, fmt.Errorf("reading trust_base_path: %w", err)
		}
	}

	return payment.Config{
		ServerSecret:         secret,
		AcceptedCoinID:       pc.AcceptedCoinID,
		MinimumPaymentAmount: minAmount,
		TrustBase:            trustBase,
		TokenTypeName:        pc.TokenTypeName,
	}, nil
}
