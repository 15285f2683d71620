package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, filter *model.UserFilter) ([]*model.User, int, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.UserStatus) (*model.User, error)
	ListActiveDonors(ctx context.Context) ([]*model.User, error)
	ListDonorsByBloodGroup(ctx context.Context, bloodGroup string) ([]*model.User, error)
	CountByRole(ctx context.Context) (map[model.Role]int, error)
	ListRecent(ctx context.Context, limit int) ([]*model.RecentUser, error)
}

type MedicationRepository interface {
	Create(ctx context.Context, medication *model.Medication) error
	Get(ctx context.Context, id uuid.UUID) (*model.Medication, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Medication, error)
	Update(ctx context.Context, medication *model.Medication) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*model.RecentMedication, error)
}

type DoseRepository interface {
	Create(ctx context.Context, dose *model.Dose) error
	Get(ctx context.Context, id uuid.UUID) (*model.Dose, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]*model.Dose, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.DoseStatus, takenTime *time.Time) (int64, error)
	CountInWindow(ctx context.Context, patientID uuid.UUID, from, to time.Time) (int, error)
	CountByStatusInWindow(ctx context.Context, patientID uuid.UUID, status model.DoseStatus, from, to time.Time) (int, error)
	Count(ctx context.Context) (int, error)
	ListRecent(ctx context.Context, limit int) ([]*model.RecentDose, error)
}

type LinkRepository interface {
	Create(ctx context.Context, link *model.Link) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.LinkStatus) (int64, error)
	List(ctx context.Context, p *model.Pagination) ([]*model.LinkDetail, int, error)
	Count(ctx context.Context) (int, error)
}

type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error
	Get(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*model.Donation, error)
	CompletedCount(ctx context.Context, donorID uuid.UUID) (int, error)
	LastDonationDate(ctx context.Context, donorID uuid.UUID) (*time.Time, error)
	Count(ctx context.Context) (int, error)
}

type DonationRequestRepository interface {
	Create(ctx context.Context, request *model.DonationRequest) error
	Get(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error)
	List(ctx context.Context, p *model.Pagination) ([]*model.DonationRequest, int, error)
	// ApproveIfPending and RejectIfPending perform conditional updates
	// guarded on status = pending and report rows affected, closing the
	// concurrent-admin race window.
	ApproveIfPending(ctx context.Context, id uuid.UUID, notes *string, at time.Time) (int64, error)
	RejectIfPending(ctx context.Context, id uuid.UUID, reason string, at time.Time) (int64, error)
}

type NotificationRepository interface {
	BulkCreate(ctx context.Context, notifications []*model.Notification) error
	ListForUser(ctx context.Context, userID uuid.UUID, filter *model.NotificationFilter) ([]*model.Notification, int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	MarkProcessed(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
}
