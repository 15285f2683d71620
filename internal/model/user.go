package model

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of user roles
type Role string

const (
	RolePatient   Role = "patient"
	RoleCaretaker Role = "caretaker"
	RoleDonor     Role = "donor"
	RoleAdmin     Role = "admin"
)

// UserStatus is the closed set of account statuses
type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

var bloodGroups = map[string]struct{}{
	"A+": {}, "A-": {}, "B+": {}, "B-": {},
	"AB+": {}, "AB-": {}, "O+": {}, "O-": {},
}

func IsValidRole(r Role) bool {
	switch r {
	case RolePatient, RoleCaretaker, RoleDonor, RoleAdmin:
		return true
	}
	return false
}

func IsValidUserStatus(s UserStatus) bool {
	switch s {
	case UserStatusActive, UserStatusInactive, UserStatusSuspended:
		return true
	}
	return false
}

func IsValidBloodGroup(bg string) bool {
	_, ok := bloodGroups[bg]
	return ok
}

// User represents a platform user. Only donors participate in matching.
type User struct {
	Base
	Name         string     `json:"name" db:"name"`
	Email        string     `json:"email" db:"email"`
	PasswordHash string     `json:"-" db:"password_hash"`
	Role         Role       `json:"role" db:"role"`
	Status       UserStatus `json:"status" db:"status"`
	Phone        *string    `json:"phone,omitempty" db:"phone"`
	Age          *int       `json:"age,omitempty" db:"age"`
	Gender       *string    `json:"gender,omitempty" db:"gender"`
	BloodGroup   *string    `json:"blood_group,omitempty" db:"blood_group"`
	City         *string    `json:"city,omitempty" db:"city"`
}

// UserSummary is the trimmed user shape returned in list payloads
type UserSummary struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Name  string    `json:"name" db:"name"`
	Email string    `json:"email" db:"email"`
}

// UserFilter represents user search parameters
type UserFilter struct {
	Pagination
	Role Role `json:"role" form:"role"`
}

// RegisterRequest represents user registration parameters
type RegisterRequest struct {
	Name       string  `json:"name" binding:"required"`
	Email      string  `json:"email" binding:"required,email"`
	Password   string  `json:"password" binding:"required,min=8"`
	Role       Role    `json:"role" binding:"required,userrole"`
	Phone      *string `json:"phone"`
	Age        *int    `json:"age"`
	Gender     *string `json:"gender"`
	BloodGroup *string `json:"blood_group" binding:"omitempty,bloodgroup"`
	City       *string `json:"city"`
}

// LoginRequest represents login parameters
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token and user
type LoginResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// UpdateUserStatusRequest represents the admin status toggle body
type UpdateUserStatusRequest struct {
	Status UserStatus `json:"status" binding:"required,userstatus"`
}

// RecentUser is the activity-feed projection of a user row
type RecentUser struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Role      Role      `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
