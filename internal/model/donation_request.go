package model

import (
	"time"

	"github.com/google/uuid"
)

// UrgencyLevel is the closed set of request priorities
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "Low"
	UrgencyMedium   UrgencyLevel = "Medium"
	UrgencyHigh     UrgencyLevel = "High"
	UrgencyCritical UrgencyLevel = "Critical"
)

func IsValidUrgencyLevel(u UrgencyLevel) bool {
	switch u {
	case UrgencyLow, UrgencyMedium, UrgencyHigh, UrgencyCritical:
		return true
	}
	return false
}

// RequiresNotification reports whether creating a request at this
// urgency triggers the automatic donor fan-out.
func (u UrgencyLevel) RequiresNotification() bool {
	return u == UrgencyHigh || u == UrgencyCritical
}

// RequestStatus is the closed set of donation request states
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusActive   RequestStatus = "active"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// DonationRequest represents a hospital's blood requirement
type DonationRequest struct {
	Base
	RequesterID     *uuid.UUID    `json:"requester_id,omitempty" db:"requester_id"`
	HospitalName    string        `json:"hospital_name" db:"hospital_name"`
	Location        string        `json:"location" db:"location"`
	BloodGroup      string        `json:"blood_group" db:"blood_group"`
	UnitsNeeded     int           `json:"units_needed" db:"units_needed"`
	UrgencyLevel    UrgencyLevel  `json:"urgency_level" db:"urgency_level"`
	ContactNumber   string        `json:"contact_number" db:"contact_number"`
	Notes           *string       `json:"notes,omitempty" db:"notes"`
	Status          RequestStatus `json:"status" db:"status"`
	AdminNotes      *string       `json:"admin_notes,omitempty" db:"admin_notes"`
	RejectionReason *string       `json:"rejection_reason,omitempty" db:"rejection_reason"`
	ApprovedAt      *time.Time    `json:"approved_at,omitempty" db:"approved_at"`
	RejectedAt      *time.Time    `json:"rejected_at,omitempty" db:"rejected_at"`
}

// CreateDonationRequestRequest represents the creation body. Required
// fields are checked in the service so missing ones can be reported
// together.
type CreateDonationRequestRequest struct {
	RequesterID   *uuid.UUID   `json:"requester_id"`
	HospitalName  string       `json:"hospital_name"`
	Location      string       `json:"location"`
	BloodGroup    string       `json:"blood_group"`
	UnitsNeeded   int          `json:"units_needed"`
	UrgencyLevel  UrgencyLevel `json:"urgency_level" binding:"omitempty,urgency"`
	ContactNumber string       `json:"contact_number"`
	Notes         *string      `json:"notes"`
}

// ApproveRequestRequest represents the approval body
type ApproveRequestRequest struct {
	Notes *string `json:"notes"`
}

// RejectRequestRequest represents the rejection body
type RejectRequestRequest struct {
	Reason string `json:"reason"`
}

// SuitableDonor is a candidate donor enriched with donation history
type SuitableDonor struct {
	ID             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	BloodGroup     *string    `json:"blood_group,omitempty"`
	City           *string    `json:"city,omitempty"`
	TotalDonations int        `json:"total_donations"`
	LastDonation   *time.Time `json:"last_donation,omitempty"`
	SameCity       bool       `json:"same_city"`
}

// DonorSearchResult is the find-donors payload
type DonorSearchResult struct {
	Request        *DonationRequest `json:"request"`
	SuitableDonors []*SuitableDonor `json:"suitableDonors"`
	Total          int              `json:"total"`
}

// NotifyDonorsResult is the notify-donors payload
type NotifyDonorsResult struct {
	NotifiedCount int            `json:"notified_count"`
	Donors        []*UserSummary `json:"donors"`
}
