package model

import (
	"time"

	"github.com/google/uuid"
)

// DonationStatus is the closed set of donation states
type DonationStatus string

const (
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusPending   DonationStatus = "pending"
)

// Donation represents a historical or scheduled act of donation. The
// request reference is a weak, nullable link to the request it
// fulfilled.
type Donation struct {
	Base
	DonorID      uuid.UUID      `json:"donor_id" db:"donor_id"`
	RequestID    *uuid.UUID     `json:"request_id,omitempty" db:"request_id"`
	HospitalName string         `json:"hospital_name" db:"hospital_name"`
	Location     string         `json:"location" db:"location"`
	BloodGroup   string         `json:"blood_group" db:"blood_group"`
	Units        int            `json:"units" db:"units"`
	Date         time.Time      `json:"date" db:"date"`
	Status       DonationStatus `json:"status" db:"status"`
	DonationCode string         `json:"donation_id" db:"donation_code"`
	Notes        *string        `json:"notes,omitempty" db:"notes"`
}

// CreateDonationRequest represents the donation recording body
type CreateDonationRequest struct {
	DonorID      uuid.UUID  `json:"donor_id" binding:"required"`
	RequestID    *uuid.UUID `json:"request_id"`
	HospitalName string     `json:"hospital_name" binding:"required"`
	Location     string     `json:"location" binding:"required"`
	BloodGroup   string     `json:"blood_group" binding:"required,bloodgroup"`
	Units        int        `json:"units" binding:"required,gt=0"`
	Date         time.Time  `json:"date" binding:"required"`
	Notes        *string    `json:"notes"`
}
