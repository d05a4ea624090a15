package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-gstbill/internal/common"
	"github.com/noah-isme/backend-gstbill/internal/config"
	dbgen "github.com/noah-isme/backend-gstbill/internal/db/gen"
	"github.com/noah-isme/backend-gstbill/internal/invoice"
	"github.com/noah-isme/backend-gstbill/internal/lock"
	"github.com/noah-isme/backend-gstbill/internal/notify"
	"github.com/noah-isme/backend-gstbill/internal/obs"
)

const (
	taskInvoiceOverdueSweep = "invoice:overdue_sweep"
	taskLowStockScan        = "inventory:low_stock_scan"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("component", "worker").Logger()

	obs.MustRegisterDomainMetrics(envOrDefault("OBS_METRICS_NAMESPACE", "gstbill"), nil)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, queries := mustInitDatabase(ctx, cfg, logger)
	defer pool.Close()

	redisClient := mustInitRedis(ctx, cfg, logger)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	redisConn, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url for asynq")
	}

	locker := lock.Locker{R: redisClient}
	invoiceSvc := &invoice.Service{Q: queries, Pool: pool, Locker: locker, Prefix: cfg.InvoicePrefix, DueDays: cfg.InvoiceDueDays}
	notifier := notify.LowStockNotifier{
		Mail:    common.NopEmailSender{},
		Enabled: envBool("NOTIFY_LOW_STOCK_EMAIL", false),
	}

	mux := asynq.NewServeMux()
	mux.HandleFunc(taskInvoiceOverdueSweep, func(ctx context.Context, _ *asynq.Task) error {
		return locker.WithLock(ctx, "sweep:invoice-overdue", time.Minute, func(ctx context.Context) error {
			count, err := invoiceSvc.MarkOverdue(ctx, time.Now())
			if err != nil {
				return fmt.Errorf("mark invoices overdue: %w", err)
			}
			if count > 0 {
				logger.Info().Int("count", count).Msg("invoices marked overdue")
			}
			return nil
		})
	})
	mux.HandleFunc(taskLowStockScan, func(ctx context.Context, _ *asynq.Task) error {
		return locker.WithLock(ctx, "sweep:low-stock", time.Minute, func(ctx context.Context) error {
			rows, err := queries.ListLowStockAlerts(ctx)
			if err != nil {
				return fmt.Errorf("list low stock alerts: %w", err)
			}
			if obs.LowStockProducts != nil {
				obs.LowStockProducts.Set(float64(len(rows)))
			}
			sent, err := notifier.Notify(ctx, rows)
			if err != nil {
				return err
			}
			logger.Info().Int("products", len(rows)).Int("emails", sent).Msg("low stock scan complete")
			return nil
		})
	})

	srv := asynq.NewServer(redisConn, asynq.Config{
		Concurrency: envInt("WORKER_CONCURRENCY", 4),
	})

	scheduler := asynq.NewScheduler(redisConn, &asynq.SchedulerOpts{Location: time.UTC})
	if _, err := scheduler.Register(every(cfg.OverdueSweepInterval), asynq.NewTask(taskInvoiceOverdueSweep, nil)); err != nil {
		logger.Fatal().Err(err).Msg("register overdue sweep")
	}
	if _, err := scheduler.Register(every(cfg.LowStockSweepInterval), asynq.NewTask(taskLowStockScan, nil)); err != nil {
		logger.Fatal().Err(err).Msg("register low stock scan")
	}

	if err := scheduler.Start(); err != nil {
		logger.Fatal().Err(err).Msg("start scheduler")
	}
	if err := srv.Start(mux); err != nil {
		logger.Fatal().Err(err).Msg("start worker")
	}

	logger.Info().
		Dur("overdue_sweep", cfg.OverdueSweepInterval).
		Dur("low_stock_sweep", cfg.LowStockSweepInterval).
		Msg("worker started")

	<-ctx.Done()
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info().Msg("worker shutdown complete")
}

func every(interval time.Duration) string {
	if interval <= 0 {
		interval = time.Hour
	}
	return fmt.Sprintf("@every %s", interval)
}

func mustInitDatabase(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*pgxpool.Pool, *dbgen.Queries) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse database config")
	}
	poolConfig.ConnConfig.Tracer = obs.PGXTracer{}
	if poolConfig.ConnConfig.RuntimeParams == nil {
		poolConfig.ConnConfig.RuntimeParams = map[string]string{}
	}
	poolConfig.ConnConfig.RuntimeParams["application_name"] = "gstbill-worker"
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect database")
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal().Err(err).Msg("ping database")
	}
	return pool, dbgen.New(pool)
}

func mustInitRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger) *redis.Client {
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}
	return redisClient
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}
