package medication

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
)

type Service interface {
	CreateMedication(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error)
	GetMedication(ctx context.Context, id uuid.UUID) (*model.Medication, error)
	ListMedications(ctx context.Context, patientID uuid.UUID) ([]*model.Medication, error)
	UpdateMedication(ctx context.Context, id uuid.UUID, req *model.UpdateMedicationRequest) (*model.Medication, error)
	DeleteMedication(ctx context.Context, id uuid.UUID) error
	ListDoses(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]*model.Dose, error)
	UpdateDoseStatus(ctx context.Context, id uuid.UUID, status model.DoseStatus) error
	AdherenceReport(ctx context.Context, patientID uuid.UUID, from, to time.Time) (*model.AdherenceReport, error)
}

type service struct {
	medications repository.MedicationRepository
	doses       repository.DoseRepository
}

func NewService(medications repository.MedicationRepository, doses repository.DoseRepository) Service {
	return &service{medications: medications, doses: doses}
}

func (s *service) CreateMedication(ctx context.Context, req *model.CreateMedicationRequest) (*model.Medication, error) {
	medication := &model.Medication{
		Base:      model.Base{ID: uuid.New()},
		PatientID: req.PatientID,
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Times:     req.Times,
		Notes:     req.Notes,
	}
	if err := s.medications.Create(ctx, medication); err != nil {
		return nil, apperrors.Internal("failed to create medication", err)
	}
	return medication, nil
}

func (s *service) GetMedication(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	medication, err := s.medications.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("medication", err)
		}
		return nil, apperrors.Internal("failed to fetch medication", err)
	}
	return medication, nil
}

func (s *service) ListMedications(ctx context.Context, patientID uuid.UUID) ([]*model.Medication, error) {
	medications, err := s.medications.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, apperrors.Internal("failed to list medications", err)
	}
	return medications, nil
}

func (s *service) UpdateMedication(ctx context.Context, id uuid.UUID, req *model.UpdateMedicationRequest) (*model.Medication, error) {
	medication, err := s.GetMedication(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		medication.Name = *req.Name
	}
	if req.Dosage != nil {
		medication.Dosage = *req.Dosage
	}
	if req.Frequency != nil {
		medication.Frequency = *req.Frequency
	}
	if req.Times != nil {
		medication.Times = req.Times
	}
	if req.Notes != nil {
		medication.Notes = req.Notes
	}

	if err := s.medications.Update(ctx, medication); err != nil {
		return nil, apperrors.Internal("failed to update medication", err)
	}
	return medication, nil
}

func (s *service) DeleteMedication(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMedication(ctx, id); err != nil {
		return err
	}
	if err := s.medications.Delete(ctx, id); err != nil {
		return apperrors.Internal("failed to delete medication", err)
	}
	return nil
}

func (s *service) ListDoses(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]*model.Dose, error) {
	doses, err := s.doses.ListByPatient(ctx, patientID, from, to)
	if err != nil {
		return nil, apperrors.Internal("failed to list doses", err)
	}
	return doses, nil
}

// UpdateDoseStatus transitions a pending dose to taken or missed. The
// update is conditional on the dose still being pending.
func (s *service) UpdateDoseStatus(ctx context.Context, id uuid.UUID, status model.DoseStatus) error {
	if status != model.DoseStatusTaken && status != model.DoseStatusMissed {
		return apperrors.Validation("status must be taken or missed")
	}

	var takenTime *time.Time
	if status == model.DoseStatusTaken {
		now := time.Now()
		takenTime = &now
	}

	rows, err := s.doses.UpdateStatus(ctx, id, status, takenTime)
	if err != nil {
		return apperrors.Internal("failed to update dose status", err)
	}
	if rows == 0 {
		dose, err := s.doses.Get(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("dose", err)
			}
			return apperrors.Internal("failed to fetch dose", err)
		}
		return apperrors.Conflict("dose is already " + string(dose.Status))
	}
	return nil
}

// AdherenceReport computes the percentage of scheduled doses marked
// taken within the window.
func (s *service) AdherenceReport(ctx context.Context, patientID uuid.UUID, from, to time.Time) (*model.AdherenceReport, error) {
	if to.Before(from) {
		return nil, apperrors.Validation("window end must not precede window start")
	}

	scheduled, err := s.doses.CountInWindow(ctx, patientID, from, to)
	if err != nil {
		return nil, apperrors.Internal("failed to count scheduled doses", err)
	}
	taken, err := s.doses.CountByStatusInWindow(ctx, patientID, model.DoseStatusTaken, from, to)
	if err != nil {
		return nil, apperrors.Internal("failed to count taken doses", err)
	}

	rate := 0.0
	if scheduled > 0 {
		rate = float64(taken) / float64(scheduled) * 100
	}

	return &model.AdherenceReport{
		PatientID:      patientID,
		From:           from,
		To:             to,
		ScheduledDoses: scheduled,
		TakenDoses:     taken,
		AdherenceRate:  rate,
	}, nil
}
