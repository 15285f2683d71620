package model

import "time"

// UserStats breaks user counts down by role
type UserStats struct {
	Total  int          `json:"total"`
	ByRole map[Role]int `json:"byRole"`
}

// Analytics is the system-wide statistics payload
type Analytics struct {
	Users                 UserStats `json:"users"`
	Medications           int       `json:"medications"`
	Donations             int       `json:"donations"`
	Doses                 int       `json:"doses"`
	CaretakerPatientLinks int       `json:"caretakerPatientLinks"`
}

// Activity is one entry in the recent-activity feed
type Activity struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}
