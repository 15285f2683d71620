// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/medicare-platform/admin-api/internal/model"
)

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) List(ctx context.Context, filter *model.UserFilter) ([]*model.User, int, error) {
	args := m.Called(ctx, filter)
	var users []*model.User
	if v := args.Get(0); v != nil {
		users = v.([]*model.User)
	}
	return users, args.Int(1), args.Error(2)
}

func (m *UserRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.UserStatus) (*model.User, error) {
	args := m.Called(ctx, id, status)
	if u := args.Get(0); u != nil {
		return u.(*model.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) ListActiveDonors(ctx context.Context) ([]*model.User, error) {
	args := m.Called(ctx)
	var users []*model.User
	if v := args.Get(0); v != nil {
		users = v.([]*model.User)
	}
	return users, args.Error(1)
}

func (m *UserRepository) ListDonorsByBloodGroup(ctx context.Context, bloodGroup string) ([]*model.User, error) {
	args := m.Called(ctx, bloodGroup)
	var users []*model.User
	if v := args.Get(0); v != nil {
		users = v.([]*model.User)
	}
	return users, args.Error(1)
}

func (m *UserRepository) CountByRole(ctx context.Context) (map[model.Role]int, error) {
	args := m.Called(ctx)
	var counts map[model.Role]int
	if v := args.Get(0); v != nil {
		counts = v.(map[model.Role]int)
	}
	return counts, args.Error(1)
}

func (m *UserRepository) ListRecent(ctx context.Context, limit int) ([]*model.RecentUser, error) {
	args := m.Called(ctx, limit)
	var users []*model.RecentUser
	if v := args.Get(0); v != nil {
		users = v.([]*model.RecentUser)
	}
	return users, args.Error(1)
}

type MedicationRepository struct {
	mock.Mock
}

func (m *MedicationRepository) Create(ctx context.Context, medication *model.Medication) error {
	return m.Called(ctx, medication).Error(0)
}

func (m *MedicationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Medication, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Medication), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MedicationRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]*model.Medication, error) {
	args := m.Called(ctx, patientID)
	var meds []*model.Medication
	if v := args.Get(0); v != nil {
		meds = v.([]*model.Medication)
	}
	return meds, args.Error(1)
}

func (m *MedicationRepository) Update(ctx context.Context, medication *model.Medication) error {
	return m.Called(ctx, medication).Error(0)
}

func (m *MedicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MedicationRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *MedicationRepository) ListRecent(ctx context.Context, limit int) ([]*model.RecentMedication, error) {
	args := m.Called(ctx, limit)
	var meds []*model.RecentMedication
	if v := args.Get(0); v != nil {
		meds = v.([]*model.RecentMedication)
	}
	return meds, args.Error(1)
}

type DoseRepository struct {
	mock.Mock
}

func (m *DoseRepository) Create(ctx context.Context, dose *model.Dose) error {
	return m.Called(ctx, dose).Error(0)
}

func (m *DoseRepository) Get(ctx context.Context, id uuid.UUID) (*model.Dose, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Dose), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DoseRepository) ListByPatient(ctx context.Context, patientID uuid.UUID, from, to time.Time) ([]*model.Dose, error) {
	args := m.Called(ctx, patientID, from, to)
	var doses []*model.Dose
	if v := args.Get(0); v != nil {
		doses = v.([]*model.Dose)
	}
	return doses, args.Error(1)
}

func (m *DoseRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.DoseStatus, takenTime *time.Time) (int64, error) {
	args := m.Called(ctx, id, status, takenTime)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DoseRepository) CountInWindow(ctx context.Context, patientID uuid.UUID, from, to time.Time) (int, error) {
	args := m.Called(ctx, patientID, from, to)
	return args.Int(0), args.Error(1)
}

func (m *DoseRepository) CountByStatusInWindow(ctx context.Context, patientID uuid.UUID, status model.DoseStatus, from, to time.Time) (int, error) {
	args := m.Called(ctx, patientID, status, from, to)
	return args.Int(0), args.Error(1)
}

func (m *DoseRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *DoseRepository) ListRecent(ctx context.Context, limit int) ([]*model.RecentDose, error) {
	args := m.Called(ctx, limit)
	var doses []*model.RecentDose
	if v := args.Get(0); v != nil {
		doses = v.([]*model.RecentDose)
	}
	return doses, args.Error(1)
}

type LinkRepository struct {
	mock.Mock
}

func (m *LinkRepository) Create(ctx context.Context, link *model.Link) error {
	return m.Called(ctx, link).Error(0)
}

func (m *LinkRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.LinkStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LinkRepository) List(ctx context.Context, p *model.Pagination) ([]*model.LinkDetail, int, error) {
	args := m.Called(ctx, p)
	var links []*model.LinkDetail
	if v := args.Get(0); v != nil {
		links = v.([]*model.LinkDetail)
	}
	return links, args.Int(1), args.Error(2)
}

func (m *LinkRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type DonationRepository struct {
	mock.Mock
}

func (m *DonationRepository) Create(ctx context.Context, donation *model.Donation) error {
	return m.Called(ctx, donation).Error(0)
}

func (m *DonationRepository) Get(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Donation), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DonationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID) ([]*model.Donation, error) {
	args := m.Called(ctx, donorID)
	var donations []*model.Donation
	if v := args.Get(0); v != nil {
		donations = v.([]*model.Donation)
	}
	return donations, args.Error(1)
}

func (m *DonationRepository) CompletedCount(ctx context.Context, donorID uuid.UUID) (int, error) {
	args := m.Called(ctx, donorID)
	return args.Int(0), args.Error(1)
}

func (m *DonationRepository) LastDonationDate(ctx context.Context, donorID uuid.UUID) (*time.Time, error) {
	args := m.Called(ctx, donorID)
	if v := args.Get(0); v != nil {
		return v.(*time.Time), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DonationRepository) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type DonationRequestRepository struct {
	mock.Mock
}

func (m *DonationRequestRepository) Create(ctx context.Context, request *model.DonationRequest) error {
	return m.Called(ctx, request).Error(0)
}

func (m *DonationRequestRepository) Get(ctx context.Context, id uuid.UUID) (*model.DonationRequest, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.DonationRequest), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DonationRequestRepository) List(ctx context.Context, p *model.Pagination) ([]*model.DonationRequest, int, error) {
	args := m.Called(ctx, p)
	var requests []*model.DonationRequest
	if v := args.Get(0); v != nil {
		requests = v.([]*model.DonationRequest)
	}
	return requests, args.Int(1), args.Error(2)
}

func (m *DonationRequestRepository) ApproveIfPending(ctx context.Context, id uuid.UUID, notes *string, at time.Time) (int64, error) {
	args := m.Called(ctx, id, notes, at)
	return args.Get(0).(int64), args.Error(1)
}

func (m *DonationRequestRepository) RejectIfPending(ctx context.Context, id uuid.UUID, reason string, at time.Time) (int64, error) {
	args := m.Called(ctx, id, reason, at)
	return args.Get(0).(int64), args.Error(1)
}

type NotificationRepository struct {
	mock.Mock
}

func (m *NotificationRepository) BulkCreate(ctx context.Context, notifications []*model.Notification) error {
	return m.Called(ctx, notifications).Error(0)
}

func (m *NotificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, filter *model.NotificationFilter) ([]*model.Notification, int, error) {
	args := m.Called(ctx, userID, filter)
	var notifications []*model.Notification
	if v := args.Get(0); v != nil {
		notifications = v.([]*model.Notification)
	}
	return notifications, args.Int(1), args.Error(2)
}

func (m *NotificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, id, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type OutboxRepository struct {
	mock.Mock
}

func (m *OutboxRepository) Create(ctx context.Context, event *model.OutboxEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *OutboxRepository) GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error) {
	args := m.Called(ctx, limit)
	var events []*model.OutboxEvent
	if v := args.Get(0); v != nil {
		events = v.([]*model.OutboxEvent)
	}
	return events, args.Error(1)
}

func (m *OutboxRepository) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *OutboxRepository) MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error {
	return m.Called(ctx, id, errMsg).Error(0)
}
