package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
)

type linkRepository struct {
	db *sqlx.DB
}

func NewLinkRepository(db *sqlx.DB) repository.LinkRepository {
	return &linkRepository{db: db}
}

func (r *linkRepository) Create(ctx context.Context, link *model.Link) error {
	query := `
		INSERT INTO links (id, caretaker_id, patient_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	link.CreatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		link.ID,
		link.CaretakerID,
		link.PatientID,
		link.Status,
		link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create link: %w", err)
	}
	return nil
}

func (r *linkRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.LinkStatus) (int64, error) {
	query := `UPDATE links SET status = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update link status: %w", err)
	}
	return res.RowsAffected()
}

func (r *linkRepository) List(ctx context.Context, p *model.Pagination) ([]*model.LinkDetail, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM links`); err != nil {
		return nil, 0, fmt.Errorf("failed to count links: %w", err)
	}

	query := `
		SELECT l.id, l.caretaker_id, l.patient_id, l.status, l.created_at,
		       c.name AS caretaker_name, c.email AS caretaker_email,
		       p.name AS patient_name, p.email AS patient_email
		FROM links l
		JOIN users c ON c.id = l.caretaker_id
		JOIN users p ON p.id = l.patient_id
		ORDER BY l.created_at DESC
		LIMIT $1 OFFSET $2
	`
	var links []*model.LinkDetail
	if err := r.db.SelectContext(ctx, &links, query, p.Limit, p.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list links: %w", err)
	}
	return links, total, nil
}

func (r *linkRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM links`); err != nil {
		return 0, fmt.Errorf("failed to count links: %w", err)
	}
	return count, nil
}
