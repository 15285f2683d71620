package model

import (
	"time"

	"github.com/google/uuid"
)

// DoseStatus is the closed set of dose states
type DoseStatus string

const (
	DoseStatusPending DoseStatus = "pending"
	DoseStatusTaken   DoseStatus = "taken"
	DoseStatusMissed  DoseStatus = "missed"
)

func IsValidDoseStatus(s DoseStatus) bool {
	switch s {
	case DoseStatusPending, DoseStatusTaken, DoseStatusMissed:
		return true
	}
	return false
}

// Dose is a single scheduled intake of a medication
type Dose struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	MedicationID  uuid.UUID  `json:"medication_id" db:"medication_id"`
	PatientID     uuid.UUID  `json:"patient_id" db:"patient_id"`
	ScheduledTime time.Time  `json:"scheduled_time" db:"scheduled_time"`
	TakenTime     *time.Time `json:"taken_time,omitempty" db:"taken_time"`
	Status        DoseStatus `json:"status" db:"status"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// UpdateDoseStatusRequest represents the dose status transition body
type UpdateDoseStatusRequest struct {
	Status DoseStatus `json:"status" binding:"required"`
}

// RecentDose is the activity-feed projection of a dose row
type RecentDose struct {
	ID            uuid.UUID  `json:"id" db:"id"`
	Status        DoseStatus `json:"status" db:"status"`
	ScheduledTime time.Time  `json:"scheduled_time" db:"scheduled_time"`
	TakenTime     *time.Time `json:"taken_time,omitempty" db:"taken_time"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
