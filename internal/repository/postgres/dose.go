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

type doseRepository struct {
	db *sqlx.DB
}

func NewDoseRepository(db *sqlx.DB) repository.DoseRepository {
	return &doseRepository{db: db}
}

func (r *doseRepository) Create(ctx context.Context, dose *model.Dose) error {
	query := `
		INSERT INTO doses (id, medication_id, patient_id, scheduled_time, taken_time, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	dose.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		dose.ID,
		dose.MedicationID,
		dose.PatientID,
		dose.ScheduledTime,
		dose.TakenTime,
		dose.Status,
		dose.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create dose: %w", err)
	}
	return nil
}

func (r *doseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Dose, error) {
	query := `SELECT * FROM doses WHERE id = $1`
	var dose model.Dose
	if err := r.db.GetContext(ctx, &dose, query, id); err != nil {
		return nil, fmt.Errorf("failed to get dose: %w", err)
	}
	return &dose, nil
}

func (r *doseRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]*model.Dose, error) {
	query := `
		SELECT * FROM doses
		WHERE patient_id = $1 AND scheduled_time >= $2 AND scheduled_time <= $3
		ORDER BY scheduled_time DESC
	`
	var doses []*model.Dose
	if err := r.db.SelectContext(ctx, &doses, query, patientID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list doses: %w", err)
	}
	return doses, nil
}

// UpdateStatus transitions a pending dose only; rows affected signals
// whether the transition happened.
func (r *doseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DoseStatus, takenTime *time.Time) (int64, error) {
	query := `
		UPDATE doses SET status = $1, taken_time = $2, updated_at = $3
		WHERE id = $4 AND status = $5
	`
	res, err := r.db.ExecContext(ctx, query, status, takenTime, time.Now(), id, model.DoseStatusPending)
	if err != nil {
		return 0, fmt.Errorf("failed to update dose status: %w", err)
	}
	return res.RowsAffected()
}

func (r *doseRepository) CountInWindow(ctx context.Context, patientID uuid.UUID, from, to time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM doses WHERE patient_id = $1 AND scheduled_time >= $2 AND scheduled_time <= $3`
	var count int
	if err := r.db.GetContext(ctx, &count, query, patientID, from, to); err != nil {
		return 0, fmt.Errorf("failed to count doses: %w", err)
	}
	return count, nil
}

func (r *doseRepository) CountByStatusInWindow(ctx context.Context, patientID uuid.UUID, status model.DoseStatus, from, to time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM doses
		WHERE patient_id = $1 AND status = $2 AND scheduled_time >= $3 AND scheduled_time <= $4
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, patientID, status, from, to); err != nil {
		return 0, fmt.Errorf("failed to count doses by status: %w", err)
	}
	return count, nil
}

func (r *doseRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM doses`); err != nil {
		return 0, fmt.Errorf("failed to count doses: %w", err)
	}
	return count, nil
}

func (r *doseRepository) ListRecent(ctx context.Context, limit int) ([]*model.RecentDose, error) {
	query := `
		SELECT id, status, scheduled_time, taken_time, updated_at FROM doses
		ORDER BY updated_at DESC
		LIMIT $1
	`
	var doses []*model.RecentDose
	if err := r.db.SelectContext(ctx, &doses, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent doses: %w", err)
	}
	return doses, nil
}
