package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/kelseyhightower/envconfig"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medicare-platform/admin-api/internal/email"
	"github.com/medicare-platform/admin-api/internal/repository/postgres"
	"github.com/medicare-platform/admin-api/pkg/logger"
	"github.com/medicare-platform/admin-api/pkg/messaging/redis"
	"github.com/medicare-platform/admin-api/pkg/metrics"
	"github.com/medicare-platform/admin-api/pkg/worker"
)

// Config is read from the environment; the worker runs without a
// config file so it can be deployed alongside the API or standalone.
type Config struct {
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	RedisURL          string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	RedisMaxRetries   int           `envconfig:"REDIS_MAX_RETRIES" default:"3"`
	RedisRetryBackoff time.Duration `envconfig:"REDIS_RETRY_BACKOFF" default:"100ms"`
	RedisPoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	RedisMinIdleConns int           `envconfig:"REDIS_MIN_IDLE_CONNS" default:"2"`

	BatchSize     int           `envconfig:"OUTBOX_BATCH_SIZE" default:"100"`
	PollInterval  time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"5s"`
	RetryAttempts int           `envconfig:"OUTBOX_RETRY_ATTEMPTS" default:"3"`
	RetryDelay    time.Duration `envconfig:"OUTBOX_RETRY_DELAY" default:"1s"`

	SMTPHost     string `envconfig:"SMTP_HOST"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"587"`
	SMTPUsername string `envconfig:"SMTP_USERNAME"`
	SMTPPassword string `envconfig:"SMTP_PASSWORD"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"alerts@medicare-platform.local"`

	HealthPort int `envconfig:"HEALTH_PORT" default:"8081"`
}

func main() {
	log := logger.NewLogger(nil)

	var cfg Config
	if err := envconfig.Process("worker", &cfg); err != nil {
		log.Fatal(err, "failed to load worker config")
	}

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err, "failed to connect to database")
	}
	defer db.Close()

	zl := log.ZL()
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.RedisURL,
		MaxRetries:   cfg.RedisMaxRetries,
		RetryBackoff: cfg.RedisRetryBackoff,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	}, &zl)
	if err != nil {
		log.Fatal(err, "failed to connect to redis")
	}
	defer broker.Close()

	var emailService email.Service
	if cfg.SMTPHost != "" {
		emailService = email.NewService(email.Config{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.SMTPFrom,
		})
	} else {
		log.Warn("SMTP not configured, donor emails disabled")
	}

	processor := worker.NewOutboxProcessor(
		postgres.NewOutboxRepository(db),
		broker,
		emailService,
		worker.OutboxProcessorConfig{
			BatchSize:     cfg.BatchSize,
			PollInterval:  cfg.PollInterval,
			RetryAttempts: cfg.RetryAttempts,
			RetryDelay:    cfg.RetryDelay,
		},
		log,
		metrics.NewMetrics("medicare", "worker"),
	)

	startHealthServer(cfg.HealthPort, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		cancel()
	}()

	processor.Start(ctx)
}

func startHealthServer(port int, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health/live", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.Handle("/metrics", promhttp.Handler())

	go func() {
		if err := http.ListenAndServe(fmt.Sprintf(":%d", port), mux); err != nil {
			log.Error(err, "health server failed")
			os.Exit(1)
		}
	}()
}
