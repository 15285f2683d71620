package admin

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
)

const (
	defaultUserPageSize = 10
	defaultLinkPageSize = 20
	activityFeedSize    = 20
)

type Service interface {
	ListUsers(ctx context.Context, filter *model.UserFilter) ([]*model.User, int, error)
	UpdateUserStatus(ctx context.Context, actorID, targetID uuid.UUID, status model.UserStatus) (*model.User, error)
	Analytics(ctx context.Context) (*model.Analytics, error)
	ListLinks(ctx context.Context, p *model.Pagination) ([]*model.LinkDetail, int, error)
	CreateLink(ctx context.Context, req *model.CreateLinkRequest) (*model.Link, error)
	UpdateLinkStatus(ctx context.Context, id uuid.UUID, status model.LinkStatus) error
	RecentActivity(ctx context.Context) ([]*model.Activity, error)
}

type service struct {
	users       repository.UserRepository
	medications repository.MedicationRepository
	donations   repository.DonationRepository
	doses       repository.DoseRepository
	links       repository.LinkRepository
}

func NewService(
	users repository.UserRepository,
	medications repository.MedicationRepository,
	donations repository.DonationRepository,
	doses repository.DoseRepository,
	links repository.LinkRepository,
) Service {
	return &service{
		users:       users,
		medications: medications,
		donations:   donations,
		doses:       doses,
		links:       links,
	}
}

func (s *service) ListUsers(ctx context.Context, filter *model.UserFilter) ([]*model.User, int, error) {
	if filter.Role != "" && !model.IsValidRole(filter.Role) {
		return nil, 0, apperrors.Validation(fmt.Sprintf("invalid role %q", filter.Role))
	}
	filter.Normalize(defaultUserPageSize)

	users, total, err := s.users.List(ctx, filter)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list users", err)
	}
	return users, total, nil
}

func (s *service) UpdateUserStatus(ctx context.Context, actorID, targetID uuid.UUID, status model.UserStatus) (*model.User, error) {
	if !model.IsValidUserStatus(status) {
		return nil, apperrors.Validation("invalid status, must be active, inactive, or suspended")
	}
	if actorID == targetID {
		return nil, apperrors.Validation("cannot change your own status")
	}

	user, err := s.users.UpdateStatus(ctx, targetID, status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Internal("failed to update user status", err)
	}
	return user, nil
}

// Analytics gathers system-wide counts. The counts are independent
// reads, so they are issued concurrently and joined; any failure
// aborts the whole report.
func (s *service) Analytics(ctx context.Context) (*model.Analytics, error) {
	var (
		roleCounts  map[model.Role]int
		medications int
		donations   int
		doses       int
		links       int
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		roleCounts, err = s.users.CountByRole(gctx)
		return err
	})
	g.Go(func() (err error) {
		medications, err = s.medications.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		donations, err = s.donations.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		doses, err = s.doses.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		links, err = s.links.Count(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal("failed to gather analytics", err)
	}

	total := 0
	byRole := map[model.Role]int{
		model.RolePatient:   0,
		model.RoleCaretaker: 0,
		model.RoleDonor:     0,
		model.RoleAdmin:     0,
	}
	for role, count := range roleCounts {
		byRole[role] = count
		total += count
	}

	return &model.Analytics{
		Users:                 model.UserStats{Total: total, ByRole: byRole},
		Medications:           medications,
		Donations:             donations,
		Doses:                 doses,
		CaretakerPatientLinks: links,
	}, nil
}

func (s *service) ListLinks(ctx context.Context, p *model.Pagination) ([]*model.LinkDetail, int, error) {
	p.Normalize(defaultLinkPageSize)
	links, total, err := s.links.List(ctx, p)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list links", err)
	}
	return links, total, nil
}

// CreateLink assigns a caretaker to a patient. Both sides must exist
// and hold the expected role.
func (s *service) CreateLink(ctx context.Context, req *model.CreateLinkRequest) (*model.Link, error) {
	if err := s.requireRole(ctx, req.CaretakerID, model.RoleCaretaker, "caretaker"); err != nil {
		return nil, err
	}
	if err := s.requireRole(ctx, req.PatientID, model.RolePatient, "patient"); err != nil {
		return nil, err
	}

	link := &model.Link{
		ID:          uuid.New(),
		CaretakerID: req.CaretakerID,
		PatientID:   req.PatientID,
		Status:      model.LinkStatusActive,
	}
	if err := s.links.Create(ctx, link); err != nil {
		return nil, apperrors.Internal("failed to create link", err)
	}
	return link, nil
}

func (s *service) UpdateLinkStatus(ctx context.Context, id uuid.UUID, status model.LinkStatus) error {
	rows, err := s.links.UpdateStatus(ctx, id, status)
	if err != nil {
		return apperrors.Internal("failed to update link status", err)
	}
	if rows == 0 {
		return apperrors.NotFoundMsg("link not found")
	}
	return nil
}

func (s *service) requireRole(ctx context.Context, id uuid.UUID, role model.Role, label string) error {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperrors.NotFound(label, err)
		}
		return apperrors.Internal("failed to fetch "+label, err)
	}
	if user.Role != role {
		return apperrors.Validation(fmt.Sprintf("user %s is not a %s", id, label))
	}
	return nil
}

// RecentActivity merges the newest users, medications and doses into a
// single feed, newest first, capped at the feed size.
func (s *service) RecentActivity(ctx context.Context) ([]*model.Activity, error) {
	var (
		users       []*model.RecentUser
		medications []*model.RecentMedication
		doses       []*model.RecentDose
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		users, err = s.users.ListRecent(gctx, activityFeedSize)
		return err
	})
	g.Go(func() (err error) {
		medications, err = s.medications.ListRecent(gctx, activityFeedSize)
		return err
	})
	g.Go(func() (err error) {
		doses, err = s.doses.ListRecent(gctx, activityFeedSize)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, apperrors.Internal("failed to gather recent activity", err)
	}

	activities := make([]*model.Activity, 0, len(users)+len(medications)+len(doses))
	for _, u := range users {
		activities = append(activities, &model.Activity{
			Type:      "user_created",
			Timestamp: u.CreatedAt,
			Data:      u,
		})
	}
	for _, m := range medications {
		activities = append(activities, &model.Activity{
			Type:      "medication_created",
			Timestamp: m.CreatedAt,
			Data:      m,
		})
	}
	for _, d := range doses {
		activities = append(activities, &model.Activity{
			Type:      "dose_updated",
			Timestamp: d.UpdatedAt,
			Data:      d,
		})
	}

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > activityFeedSize {
		activities = activities[:activityFeedSize]
	}
	return activities, nil
}
