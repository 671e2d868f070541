package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/booking-actions/internal/config"
	"github.com/jwalitptl/booking-actions/internal/email"
	"github.com/jwalitptl/booking-actions/internal/repository/postgres"
	"github.com/jwalitptl/booking-actions/pkg/logger"
	"github.com/jwalitptl/booking-actions/pkg/messaging/redis"
	"github.com/jwalitptl/booking-actions/pkg/metrics"
	"github.com/jwalitptl/booking-actions/pkg/worker"
)

// WorkerEnv holds the env-only knobs of the notifier worker.
type WorkerEnv struct {
	BatchSize       int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PollInterval    time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	MaxRetries      int           `envconfig:"OUTBOX_MAX_RETRIES" default:"3"`
	RetryDelay      time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"30s"`
	CleanupAfter    time.Duration `envconfig:"OUTBOX_CLEANUP_AFTER" default:"168h"`
	CleanupInterval time.Duration `envconfig:"OUTBOX_CLEANUP_INTERVAL" default:"1h"`
	HealthAddr      string        `envconfig:"WORKER_HEALTH_ADDR" default:":8081"`
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	var env WorkerEnv
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal().Err(err).Msg("failed to process environment")
	}

	appLogger := logger.NewLogger(nil).WithFields(map[string]interface{}{
		"component": "outbox-worker",
	})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   3,
		RetryBackoff: 100 * time.Millisecond,
		PoolSize:     10,
		MinIdleConns: 2,
	}, &appLogger.ZL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer broker.Close()

	outboxRepo := postgres.NewOutboxRepository(db)
	mailer := email.NewSMTPService(cfg.SMTP)
	appMetrics := metrics.NewMetrics("booking_actions", "worker")

	processor := worker.NewOutboxProcessor(outboxRepo, broker, mailer, worker.OutboxProcessorConfig{
		BatchSize:       env.BatchSize,
		PollInterval:    env.PollInterval,
		MaxRetries:      env.MaxRetries,
		RetryDelay:      env.RetryDelay,
		CleanupAfter:    env.CleanupAfter,
		CleanupInterval: env.CleanupInterval,
	}, appLogger, appMetrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	setupHealthCheck(env.HealthAddr, appLogger)

	go processor.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("shutting down worker")
	cancel()
}

func setupHealthCheck(addr string, appLogger *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			appLogger.Error(err, "health check server failed")
			os.Exit(1)
		}
	}()
}
