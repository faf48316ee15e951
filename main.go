package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"home-route-agent/config"
	httpLayer "home-route-agent/http"
	"home-route-agent/llm"
	"home-route-agent/logger"
	"home-route-agent/repository"
	"home-route-agent/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	zl := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zl.Sync()
	log := logger.NewZapAdapter(zl).With(map[string]interface{}{
		"app": cfg.App.Name,
		"env": cfg.App.Environment,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		log.WithError(err).Error("failed to create text generator", nil)
		os.Exit(1)
	}
	if generator == nil {
		log.Warn("no text generator configured, narratives use templates", map[string]interface{}{
			"provider": cfg.LLM.Provider,
		})
	}
	if closer, ok := generator.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	cache := newCache(ctx, cfg.Redis, log)
	if closer, ok := cache.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	loanService := service.NewLoanService(repository.NewLoanRepositoryMemory(), cache, log)
	affordabilityService := service.NewAffordabilityService(cache, cfg.Affordability.InterestRate, cfg.Affordability.TermYears, log)
	routeService := service.NewRouteService(
		cfg.Routes.DomainArchetypes(),
		service.NewNarrativeService(generator, config.GetDuration(cfg.LLM.Timeout), log),
		service.NewProjector(newGrowthModel(cfg.Routes.Growth), cfg.Routes.Growth.SavingsEscalation),
		log,
	)

	rateLimiter := httpLayer.NewRateLimiter(cfg.Server.RateLimit, config.GetDuration(cfg.Server.RateLimitWindow))
	defer rateLimiter.Stop()

	handlers := httpLayer.Handlers{
		Routes:        httpLayer.NewRouteHandler(routeService, log),
		Affordability: httpLayer.NewAffordabilityHandler(affordabilityService, log),
		Loan:          httpLayer.NewLoanHandler(loanService, log),
	}

	writeTimeout := config.GetDuration(cfg.Server.WriteTimeout)
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      httpLayer.NewRouter(handlers, rateLimiter, writeTimeout, log),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: writeTimeout,
		IdleTimeout:  config.GetDuration(cfg.Server.IdleTimeout),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server listening", map[string]interface{}{"addr": server.Addr})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.WithError(err).Error("server failed", nil)
		return
	case <-ctx.Done():
		log.Info("shutting down server", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("error during server shutdown", nil)
	}

	log.Info("server exited", nil)
}

// newCache prefers Redis and falls back to process memory when it is
// disabled or unreachable.
func newCache(ctx context.Context, cfg config.RedisConfig, log logger.Logger) repository.CacheRepository {
	if !cfg.Enabled {
		return repository.NewMemoryCache()
	}

	redisCache := repository.NewRedisCache(cfg.Address, cfg.Password, cfg.DB, time.Duration(cfg.TTL)*time.Second)
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := redisCache.Ping(pingCtx); err != nil {
		log.WithError(err).Warn("redis unreachable, using in-memory cache", map[string]interface{}{
			"address": cfg.Address,
		})
		_ = redisCache.Close()
		return repository.NewMemoryCache()
	}
	return redisCache
}

func newGrowthModel(cfg config.GrowthConfig) service.GrowthModel {
	if cfg.Model == "fixed" {
		return service.FixedGrowth{Rate: (cfg.MinIncomeGrowth + cfg.MaxIncomeGrowth) / 2}
	}
	return service.NewRandomGrowth(cfg.MinIncomeGrowth, cfg.MaxIncomeGrowth, cfg.Seed)
}
