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

type donationRepository struct {
	db *sqlx.DB
}

func NewDonationRepository(db *sqlx.DB) repository.DonationRepository {
	return &donationRepository{db: db}
}

func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	query := `
		INSERT INTO donations (
			id, donor_id, request_id, hospital_name, location, blood_group,
			units, date, status, donation_code, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	donation.CreatedAt = time.Now()
	donation.UpdatedAt = donation.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		donation.ID,
		donation.DonorID,
		donation.RequestID,
		donation.HospitalName,
		donation.Location,
		donation.BloodGroup,
		donation.Units,
		donation.Date,
		donation.Status,
		donation.DonationCode,
		donation.Notes,
		donation.CreatedAt,
		donation.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

func (r *donationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	query := `SELECT * FROM donations WHERE id = $1`
	var donation model.Donation
	if err := r.db.GetContext(ctx, &donation, query, id); err != nil {
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	return &donation, nil
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*model.Donation, error) {
	query := `SELECT * FROM donations WHERE donor_id = $1 ORDER BY date DESC`
	var donations []*model.Donation
	if err := r.db.SelectContext(ctx, &donations, query, donorID); err != nil {
		return nil, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, nil
}

func (r *donationRepository) CompletedCount(ctx context.Context, donorID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM donations WHERE donor_id = $1 AND status = $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, donorID, model.DonationStatusCompleted); err != nil {
		return 0, fmt.Errorf("failed to count completed donations: %w", err)
	}
	return count, nil
}

func (r *donationRepository) LastDonationDate(ctx context.Context, donorID uuid.UUID) (*time.Time, error) {
	query := `SELECT MAX(date) FROM donations WHERE donor_id = $1`
	var last *time.Time
	if err := r.db.GetContext(ctx, &last, query, donorID); err != nil {
		return nil, fmt.Errorf("failed to get last donation date: %w", err)
	}
	return last, nil
}

func (r *donationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM donations`); err != nil {
		return 0, fmt.Errorf("failed to count donations: %w", err)
	}
	return count, nil
}
