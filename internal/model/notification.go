package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	NotificationTypeDonationRequest = "donation_request"
	NotificationTypeDoseReminder    = "dose_reminder"
	NotificationTypeLinkRequest     = "link_request"
)

// Notification is an in-app message for a user
type Notification struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Type      string    `json:"type" db:"type"`
	Message   string    `json:"message" db:"message"`
	IsRead    bool      `json:"is_read" db:"is_read"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NotificationFilter represents notification list parameters
type NotificationFilter struct {
	Pagination
	UnreadOnly bool `form:"unread"`
}
