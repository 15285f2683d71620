package donation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
)

type Service interface {
	RecordDonation(ctx context.Context, req *model.CreateDonationRequest) (*model.Donation, error)
	GetDonation(ctx context.Context, id uuid.UUID) (*model.Donation, error)
	DonorHistory(ctx context.Context, donorID uuid.UUID) ([]*model.Donation, error)
}

type service struct {
	donations repository.DonationRepository
	users     repository.UserRepository
}

func NewService(donations repository.DonationRepository, users repository.UserRepository) Service {
	return &service{donations: donations, users: users}
}

func (s *service) RecordDonation(ctx context.Context, req *model.CreateDonationRequest) (*model.Donation, error) {
	donor, err := s.users.Get(ctx, req.DonorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("donor", err)
		}
		return nil, apperrors.Internal("failed to fetch donor", err)
	}
	if donor.Role != model.RoleDonor {
		return nil, apperrors.Validation("user is not a donor")
	}

	donation := &model.Donation{
		Base:         model.Base{ID: uuid.New()},
		DonorID:      req.DonorID,
		RequestID:    req.RequestID,
		HospitalName: req.HospitalName,
		Location:     req.Location,
		BloodGroup:   req.BloodGroup,
		Units:        req.Units,
		Date:         req.Date,
		Status:       model.DonationStatusCompleted,
		DonationCode: fmt.Sprintf("DON%d", time.Now().UnixNano()),
		Notes:        req.Notes,
	}

	if err := s.donations.Create(ctx, donation); err != nil {
		return nil, apperrors.Internal("failed to record donation", err)
	}
	return donation, nil
}

func (s *service) GetDonation(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	donation, err := s.donations.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("donation", err)
		}
		return nil, apperrors.Internal("failed to fetch donation", err)
	}
	return donation, nil
}

func (s *service) DonorHistory(ctx context.Context, donorID uuid.UUID) ([]*model.Donation, error) {
	donations, err := s.donations.ListByDonor(ctx, donorID)
	if err != nil {
		return nil, apperrors.Internal("failed to list donations", err)
	}
	return donations, nil
}
