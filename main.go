package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"business-heatmap/cache"
	"business-heatmap/config"
	"business-heatmap/mapping"
	"business-heatmap/models"
	"business-heatmap/prompt"
	"business-heatmap/scraper/yelp"
	"business-heatmap/services"
	"business-heatmap/storage"
	"business-heatmap/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithWriter(os.Stdout, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("=== Business Heatmap starting ===")
	logger.Info("Config: page size %d | hard cap %d | locale %s | storage %s",
		cfg.PageSize, cfg.HardCap, cfg.SearchLocale, cfg.StorageDriver)

	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    5 * time.Second,
		Logger:      logger,
	}

	opts := yelp.Options{
		BaseURL:    cfg.YelpBaseURL,
		HTTPClient: &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
		Locale:     cfg.SearchLocale,
		CacheTTL:   cfg.CacheTTLSeconds,
		Logger:     logger,
	}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, &redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, retry)
		if err != nil {
			logger.Warn("Redis unavailable, continuing without page cache: %v", err)
		} else {
			defer rc.Close()
			opts.Cache = rc
			logger.Info("Page cache enabled (redis %s)", cfg.RedisAddr)
		}
	}
	client := yelp.NewClient(cfg.APIKey, opts)

	var (
		src         prompt.QuerySource
		maxAttempts = 1
	)
	if cfg.Interactive() {
		src = prompt.New(os.Stdin, os.Stdout, client, cfg.MaxQueryAttempts)
		maxAttempts = cfg.MaxQueryAttempts
	} else {
		src = prompt.FixedQuery{Location: cfg.Location, Category: cfg.Category}
	}

	agg := services.NewAggregator(client, logger).WithLimits(cfg.PageSize, cfg.HardCap)
	session, err := prompt.RunSession(ctx, src, agg, maxAttempts, logger)
	if err != nil {
		logger.Error("Search failed: %v", err)
		os.Exit(1)
	}

	insightSvc := services.NewInsightService(logger)
	insightSvc.PrintTable(os.Stdout, session.WeightedRows)
	insightSvc.Print(os.Stdout, session.Query, insightSvc.Generate(session.WeightedRows))

	doc := mapping.BuildSessionMap(session, cfg.MapZoom)

	if err := writeOutputs(ctx, cfg, logger, retry, session, doc); err != nil {
		logger.Error("Some outputs failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("  Done. Table -> %s | Map -> %s\n\n", cfg.CSVOutputPath, cfg.MapOutputPath)
}

// writeOutputs runs the independent sinks concurrently. The snapshot and the
// upload both read the HTML file, so they run after it is written.
func writeOutputs(ctx context.Context, cfg *config.Config, logger *utils.Logger, retry *utils.RetryConfig,
	session *models.SearchSession, doc *models.MapDocument) error {
	pool := utils.NewWorkerPool(4)

	pool.Submit("csv", func() error {
		return writeCSV(cfg.CSVOutputPath, session.WeightedRows)
	})

	if db := openSessionWriter(ctx, cfg, retry); db != nil {
		pool.Submit("database", func() error {
			w, err := db()
			if err != nil {
				return err
			}
			defer w.Close()
			if err := w.WriteSession(ctx, session); err != nil {
				return err
			}
			logger.Info("Session %s stored (%s)", session.ID, cfg.StorageDriver)
			return nil
		})
	}

	pool.Submit("document", func() error {
		if err := mapping.WriteHTMLFile(cfg.MapOutputPath, doc); err != nil {
			return err
		}
		logger.Info("Map document saved to %s", cfg.MapOutputPath)

		followUp := utils.NewWorkerPool(2)
		if cfg.SnapshotPath != "" {
			followUp.Submit("snapshot", func() error {
				snap := mapping.NewSnapshotter(cfg.ChromeBin, logger)
				return snap.Capture(ctx, cfg.MapOutputPath, cfg.SnapshotPath)
			})
		}
		if cfg.S3Bucket != "" {
			followUp.Submit("s3", func() error {
				return publishDocument(ctx, cfg, logger, doc)
			})
		}
		return followUp.Wait()
	})

	return pool.Wait()
}

func writeCSV(path string, rows []models.CanonicalRow) error {
	w, err := storage.NewCSVWriter(path)
	if err != nil {
		return err
	}
	if err := w.WriteRows(rows); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}

// openSessionWriter returns a constructor for the configured database, or
// nil when persistence is disabled.
func openSessionWriter(ctx context.Context, cfg *config.Config, retry *utils.RetryConfig) func() (storage.SessionWriter, error) {
	switch cfg.StorageDriver {
	case "sqlite":
		return func() (storage.SessionWriter, error) {
			return storage.NewSQLiteWriter(ctx, cfg.SQLitePath)
		}
	case "postgres":
		return func() (storage.SessionWriter, error) {
			return storage.NewPostgresWriter(ctx, cfg.DSN(), retry)
		}
	default:
		return nil
	}
}

func publishDocument(ctx context.Context, cfg *config.Config, logger *utils.Logger, doc *models.MapDocument) error {
	pub, err := storage.NewS3Publisher(ctx, cfg.S3Bucket, cfg.AWSRegion)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := mapping.RenderHTML(&buf, doc); err != nil {
		return err
	}
	url, err := pub.Publish(ctx, filepath.Base(cfg.MapOutputPath), buf.Bytes(), "text/html; charset=utf-8")
	if err != nil {
		return err
	}
	logger.Info("Map document published to %s", url)
	return nil
}
