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

type donationRequestRepository struct {
	db *sqlx.DB
}

func NewDonationRequestRepository(db *sqlx.DB) repository.DonationRequestRepository {
	return &donationRequestRepository{db: db}
}

func (r *donationRequestRepository) Create(ctx context.Context, request *model.DonationRequest) error {
	query := `
		INSERT INTO donation_requests (
			id, requester_id, hospital_name, location, blood_group, units_needed,
			urgency_level, contact_number, notes, status, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	request.CreatedAt = time.Now()
	request.UpdatedAt = request.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		request.ID,
		request.RequesterID,
		request.HospitalName,
		request.Location,
		request.BloodGroup,
		request.UnitsNeeded,
		request.UrgencyLevel,
		request.ContactNumber,
		request.Notes,
		request.Status,
		request.CreatedAt,
		request.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation request: %w", err)
	}
	return nil
}

func (r *donationRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error) {
	query := `SELECT * FROM donation_requests WHERE id = $1`
	var request model.DonationRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, fmt.Errorf("failed to get donation request: %w", err)
	}
	return &request, nil
}

func (r *donationRequestRepository) List(ctx context.Context, p *model.Pagination) ([]*model.DonationRequest, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM donation_requests`); err != nil {
		return nil, 0, fmt.Errorf("failed to count donation requests: %w", err)
	}

	query := `
		SELECT * FROM donation_requests
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	var requests []*model.DonationRequest
	if err := r.db.SelectContext(ctx, &requests, query, p.Limit, p.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list donation requests: %w", err)
	}
	return requests, total, nil
}

func (r *donationRequestRepository) ApproveIfPending(ctx context.Context, id uuid.UUID, notes *string, at time.Time) (int64, error) {
	query := `
		UPDATE donation_requests
		SET status = $1, admin_notes = $2, approved_at = $3, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query, model.RequestStatusApproved, notes, at, id, model.RequestStatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to approve donation request: %w", err)
	}
	return res.RowsAffected()
}

func (r *donationRequestRepository) RejectIfPending(ctx context.Context, id uuid.UUID, reason string, at time.Time) (int64, error) {
	query := `
		UPDATE donation_requests
		SET status = $1, rejection_reason = $2, rejected_at = $3, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query, model.RequestStatusRejected, reason, at, id, model.RequestStatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to reject donation request: %w", err)
	}
	return res.RowsAffected()
}
