package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type OutboxStatus string

const (
	OutboxStatusPending   OutboxStatus = "pending"
	OutboxStatusProcessed OutboxStatus = "processed"
	OutboxStatusFailed    OutboxStatus = "failed"
)

const (
	EventDonorsNotified         = "DONORS_NOTIFIED"
	EventDonationRequestCreated = "DONATION_REQUEST_CREATED"
)

// OutboxEvent is a durable record of a domain event awaiting delivery
// to the message broker.
type OutboxEvent struct {
	ID           uuid.UUID       `json:"id" db:"id"`
	EventType    string          `json:"event_type" db:"event_type"`
	Payload      json.RawMessage `json:"payload" db:"payload"`
	Status       OutboxStatus    `json:"status" db:"status"`
	ErrorMessage *string         `json:"error_message,omitempty" db:"error_message"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty" db:"processed_at"`
}

// DonorsNotifiedPayload is the outbox payload for a notification fan-out
type DonorsNotifiedPayload struct {
	RequestID    uuid.UUID   `json:"request_id"`
	HospitalName string      `json:"hospital_name"`
	BloodGroup   string      `json:"blood_group"`
	UrgencyLevel string      `json:"urgency_level"`
	DonorIDs     []uuid.UUID `json:"donor_ids"`
	DonorEmails  []string    `json:"donor_emails"`
	Message      string      `json:"message"`
}
