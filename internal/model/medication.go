package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/lib/pq"
)

// Medication is a prescription tracked for a patient
type Medication struct {
	Base
	PatientID uuid.UUID      `json:"patient_id" db:"patient_id"`
	Name      string         `json:"name" db:"name"`
	Dosage    string         `json:"dosage" db:"dosage"`
	Frequency string         `json:"frequency" db:"frequency"`
	Times     pq.StringArray `json:"times" db:"times"`
	Notes     *string        `json:"notes,omitempty" db:"notes"`
}

// CreateMedicationRequest represents the medication creation body
type CreateMedicationRequest struct {
	PatientID uuid.UUID `json:"patient_id" binding:"required"`
	Name      string    `json:"name" binding:"required"`
	Dosage    string    `json:"dosage" binding:"required"`
	Frequency string    `json:"frequency" binding:"required"`
	Times     []string  `json:"times"`
	Notes     *string   `json:"notes"`
}

// UpdateMedicationRequest represents the medication update body
type UpdateMedicationRequest struct {
	Name      *string  `json:"name"`
	Dosage    *string  `json:"dosage"`
	Frequency *string  `json:"frequency"`
	Times     []string `json:"times"`
	Notes     *string  `json:"notes"`
}

// RecentMedication is the activity-feed projection of a medication row
type RecentMedication struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	PatientID   uuid.UUID `json:"patient_id" db:"patient_id"`
	PatientName *string   `json:"patient_name,omitempty" db:"patient_name"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// AdherenceReport summarizes dose compliance over a window
type AdherenceReport struct {
	PatientID      uuid.UUID `json:"patient_id"`
	From           time.Time `json:"from"`
	To             time.Time `json:"to"`
	ScheduledDoses int       `json:"scheduled_doses"`
	TakenDoses     int       `json:"taken_doses"`
	AdherenceRate  float64   `json:"adherence_rate"`
}
