package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/medicare-platform/admin-api/internal/email"
	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
	"github.com/medicare-platform/admin-api/pkg/logger"
	"github.com/medicare-platform/admin-api/pkg/messaging"
	"github.com/medicare-platform/admin-api/pkg/metrics"
)

type OutboxProcessorConfig struct {
	BatchSize     int
	PollInterval  time.Duration
	RetryAttempts int
	RetryDelay    time.Duration
}

// OutboxProcessor drains pending outbox events to the broker. For
// donor notification events it also sends best-effort email alerts;
// email failures never fail the event.
type OutboxProcessor struct {
	repo    repository.OutboxRepository
	broker  messaging.Broker
	emails  email.Service
	config  OutboxProcessorConfig
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewOutboxProcessor(
	repo repository.OutboxRepository,
	broker messaging.Broker,
	emails email.Service,
	config OutboxProcessorConfig,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *OutboxProcessor {
	if config.BatchSize <= 0 {
		config.BatchSize = 100
	}
	if config.PollInterval <= 0 {
		config.PollInterval = 5 * time.Second
	}
	if config.RetryAttempts <= 0 {
		config.RetryAttempts = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = time.Second
	}

	return &OutboxProcessor{
		repo:    repo,
		broker:  broker,
		emails:  emails,
		config:  config,
		logger:  logger,
		metrics: metrics,
	}
}

func (p *OutboxProcessor) Start(ctx context.Context) {
	ticker := time.NewTicker(p.config.PollInterval)
	defer ticker.Stop()

	p.logger.Info("starting outbox processor")

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("shutting down outbox processor")
			return
		case <-ticker.C:
			if err := p.processEvents(ctx); err != nil {
				p.logger.Error(err, "failed to process events")
			}
		}
	}
}

func (p *OutboxProcessor) processEvents(ctx context.Context) error {
	timer := prometheus.NewTimer(p.metrics.OutboxProcessingLatency)
	defer timer.ObserveDuration()

	events, err := p.repo.GetPendingEvents(ctx, p.config.BatchSize)
	if err != nil {
		p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "error").Inc()
		return fmt.Errorf("failed to get pending events: %w", err)
	}
	p.metrics.DatabaseOperations.WithLabelValues("get_pending_events", "success").Inc()

	for _, event := range events {
		if err := p.processEvent(ctx, event); err != nil {
			p.logger.WithFields(map[string]interface{}{
				"event_id":   event.ID,
				"event_type": event.EventType,
			}).Error(err, "failed to process event")
		}
	}

	return nil
}

func (p *OutboxProcessor) processEvent(ctx context.Context, event *model.OutboxEvent) error {
	err := retry(p.config.RetryAttempts, p.config.RetryDelay, func() error {
		return p.broker.Publish(ctx, event.EventType, []byte(event.Payload))
	})

	if err != nil {
		p.metrics.OutboxEventsFailed.Inc()
		if markErr := p.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
			p.logger.Error(markErr, "failed to mark event failed")
		}
		return err
	}

	if event.EventType == model.EventDonorsNotified {
		p.sendDonorEmails(ctx, event)
	}

	p.metrics.OutboxEventsProcessed.Inc()
	if err := p.repo.MarkProcessed(ctx, event.ID); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

func (p *OutboxProcessor) sendDonorEmails(ctx context.Context, event *model.OutboxEvent) {
	if p.emails == nil {
		return
	}

	var payload model.DonorsNotifiedPayload
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		p.logger.Error(err, "failed to decode donor notification payload")
		return
	}

	for _, to := range payload.DonorEmails {
		if err := p.emails.SendDonationRequestAlert(ctx, to, payload.HospitalName, payload.Message); err != nil {
			p.logger.WithFields(map[string]interface{}{
				"request_id": payload.RequestID,
				"recipient":  to,
			}).Error(err, "failed to send donor email")
		}
	}
}

func retry(attempts int, delay time.Duration, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(); err == nil {
			return nil
		}
		if i < attempts-1 {
			time.Sleep(delay)
		}
	}
	return err
}
