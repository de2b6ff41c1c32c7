package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"business-heatmap/api"
	"business-heatmap/cache"
	"business-heatmap/config"
	"business-heatmap/scraper/yelp"
	"business-heatmap/services"
	"business-heatmap/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithWriter(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := yelp.Options{
		BaseURL:    cfg.YelpBaseURL,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
		Locale:     cfg.SearchLocale,
		CacheTTL:   cfg.CacheTTLSeconds,
		Logger:     logger,
	}
	if cfg.RedisAddr != "" {
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: 500 * time.Millisecond, MaxDelay: 5 * time.Second, Logger: logger}
		rc, err := cache.NewRedisCache(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, retry)
		if err != nil {
			logger.Warn("[server] Redis unavailable, serving without page cache: %v", err)
		} else {
			defer rc.Close()
			opts.Cache = rc
		}
	}
	client := yelp.NewClient(cfg.APIKey, opts)
	agg := services.NewAggregator(client, logger).WithLimits(cfg.PageSize, cfg.HardCap)

	router := gin.Default()
	api.SetupRoutes(router, api.NewHandler(agg, client, cfg.MapZoom, logger))

	srv := &http.Server{Addr: cfg.ServerAddr, Handler: router}
	go func() {
		logger.Info("[server] Listening on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("[server] %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("[server] Shutdown: %v", err)
	}
	logger.Info("[server] Stopped")
}
