package model

import (
	"time"

	"github.com/google/uuid"
)

// LinkStatus is the closed set of caretaker-patient link states
type LinkStatus string

const (
	LinkStatusActive   LinkStatus = "active"
	LinkStatusInactive LinkStatus = "inactive"
)

// Link assigns a caretaker to a patient
type Link struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	CaretakerID uuid.UUID  `json:"caretaker_id" db:"caretaker_id"`
	PatientID   uuid.UUID  `json:"patient_id" db:"patient_id"`
	Status      LinkStatus `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// LinkDetail is a link joined with both user summaries
type LinkDetail struct {
	Link
	CaretakerName  string `json:"caretaker_name" db:"caretaker_name"`
	CaretakerEmail string `json:"caretaker_email" db:"caretaker_email"`
	PatientName    string `json:"patient_name" db:"patient_name"`
	PatientEmail   string `json:"patient_email" db:"patient_email"`
}

// CreateLinkRequest represents the link creation body
type CreateLinkRequest struct {
	CaretakerID uuid.UUID `json:"caretaker_id" binding:"required"`
	PatientID   uuid.UUID `json:"patient_id" binding:"required"`
}

// UpdateLinkStatusRequest represents the link status toggle body
type UpdateLinkStatusRequest struct {
	Status LinkStatus `json:"status" binding:"required,oneof=active inactive"`
}
