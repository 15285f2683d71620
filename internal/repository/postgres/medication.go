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

type medicationRepository struct {
	db *sqlx.DB
}

func NewMedicationRepository(db *sqlx.DB) repository.MedicationRepository {
	return &medicationRepository{db: db}
}

func (r *medicationRepository) Create(ctx context.Context, medication *model.Medication) error {
	query := `
		INSERT INTO medications (id, patient_id, name, dosage, frequency, times, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	medication.CreatedAt = time.Now()
	medication.UpdatedAt = medication.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		medication.ID,
		medication.PatientID,
		medication.Name,
		medication.Dosage,
		medication.Frequency,
		medication.Times,
		medication.Notes,
		medication.CreatedAt,
		medication.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	query := `SELECT * FROM medications WHERE id = $1`
	var medication model.Medication
	if err := r.db.GetContext(ctx, &medication, query, id); err != nil {
		return nil, fmt.Errorf("failed to get medication: %w", err)
	}
	return &medication, nil
}

func (r *medicationRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Medication, error) {
	query := `SELECT * FROM medications WHERE patient_id = $1 ORDER BY created_at DESC`
	var medications []*model.Medication
	if err := r.db.SelectContext(ctx, &medications, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list medications: %w", err)
	}
	return medications, nil
}

func (r *medicationRepository) Update(ctx context.Context, medication *model.Medication) error {
	query := `
		UPDATE medications
		SET name = $1, dosage = $2, frequency = $3, times = $4, notes = $5, updated_at = $6
		WHERE id = $7
	`
	_, err := r.db.ExecContext(ctx, query,
		medication.Name,
		medication.Dosage,
		medication.Frequency,
		medication.Times,
		medication.Notes,
		time.Now(),
		medication.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM medications WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete medication: %w", err)
	}
	return nil
}

func (r *medicationRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM medications`); err != nil {
		return 0, fmt.Errorf("failed to count medications: %w", err)
	}
	return count, nil
}

func (r *medicationRepository) ListRecent(ctx context.Context, limit int) ([]*model.RecentMedication, error) {
	query := `
		SELECT m.id, m.name, m.patient_id, u.name AS patient_name, m.created_at
		FROM medications m
		LEFT JOIN users u ON u.id = m.patient_id
		ORDER BY m.created_at DESC
		LIMIT $1
	`
	var medications []*model.RecentMedication
	if err := r.db.SelectContext(ctx, &medications, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent medications: %w", err)
	}
	return medications, nil
}
