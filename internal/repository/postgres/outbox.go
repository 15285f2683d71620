package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
)

type outboxRepository struct {
	db *sqlx.DB
}

func NewOutboxRepository(db *sqlx.DB) repository.OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	if event == nil {
		return fmt.Errorf("event cannot be nil")
	}
	if event.Payload == nil {
		return fmt.Errorf("event payload cannot be nil")
	}

	query := `
		INSERT INTO outbox_events (id, event_type, payload, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	event.ID = uuid.New()
	event.CreatedAt = time.Now()
	event.Status = model.OutboxStatusPending

	_, err := r.db.ExecContext(ctx, query,
		event.ID,
		event.EventType,
		event.Payload,
		event.Status,
		event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create outbox event: %w", err)
	}
	return nil
}

func (r *outboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	query := `
		SELECT id, event_type, payload, status, error_message, created_at, processed_at
		FROM outbox_events
		WHERE status = $1
		ORDER BY created_at ASC
		LIMIT $2
	`
	var events []*model.OutboxEvent
	err := r.db.SelectContext(ctx, &events, query, model.OutboxStatusPending, limit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pending events: %w", err)
	}
	return events, nil
}

func (r *outboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE outbox_events SET status = $1, processed_at = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, model.OutboxStatusProcessed, time.Now(), id); err != nil {
		return fmt.Errorf("failed to mark event processed: %w", err)
	}
	return nil
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	query := `UPDATE outbox_events SET status = $1, error_message = $2 WHERE id = $3`
	if _, err := r.db.ExecContext(ctx, query, model.OutboxStatusFailed, errMsg, id); err != nil {
		return fmt.Errorf("failed to mark event failed: %w", err)
	}
	return nil
}
