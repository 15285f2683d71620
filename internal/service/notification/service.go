package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
)

const defaultPageSize = 20

type Service interface {
	ListForUser(ctx context.Context, userID uuid.UUID, filter *model.NotificationFilter) ([]*model.Notification, int, error)
	MarkRead(ctx context.Context, id, userID uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}

type service struct {
	notifications repository.NotificationRepository
}

func NewService(notifications repository.NotificationRepository) Service {
	return &service{notifications: notifications}
}

func (s *service) ListForUser(ctx context.Context, userID uuid.UUID, filter *model.NotificationFilter) ([]*model.Notification, int, error) {
	filter.Normalize(defaultPageSize)
	notifications, total, err := s.notifications.ListForUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list notifications", err)
	}
	return notifications, total, nil
}

func (s *service) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	rows, err := s.notifications.MarkRead(ctx, id, userID)
	if err != nil {
		return apperrors.Internal("failed to mark notification read", err)
	}
	if rows == 0 {
		return apperrors.NotFoundMsg("notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	count, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, apperrors.Internal("failed to mark notifications read", err)
	}
	return count, nil
}
