package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
)

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) repository.NotificationRepository {
	return &notificationRepository{db: db}
}

// BulkCreate inserts all notifications in a single statement so the
// fan-out is all-or-nothing.
func (r *notificationRepository) BulkCreate(ctx context.Context, notifications []*model.Notification) error {
	if len(notifications) == 0 {
		return nil
	}

	now := time.Now()
	values := make([]string, 0, len(notifications))
	args := make([]interface{}, 0, len(notifications)*6)
	for i, n := range notifications {
		n.CreatedAt = now
		base := i * 6
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6))
		args = append(args, n.ID, n.UserID, n.Type, n.Message, n.IsRead, n.CreatedAt)
	}

	query := `
		INSERT INTO notifications (id, user_id, type, message, is_read, created_at)
		VALUES ` + strings.Join(values, ", ")

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to bulk create notifications: %w", err)
	}
	return nil
}

func (r *notificationRepository) ListForUser(ctx context.Context, userID uuid.UUID, filter *model.NotificationFilter) ([]*model.Notification, int, error) {
	where := `WHERE user_id = $1`
	if filter.UnreadOnly {
		where += ` AND is_read = FALSE`
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM notifications `+where, userID); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM notifications %s
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`, where)

	var notifications []*model.Notification
	if err := r.db.SelectContext(ctx, &notifications, query, userID, filter.Limit, filter.Offset()); err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, id, userID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notification read: %w", err)
	}
	return res.RowsAffected()
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return res.RowsAffected()
}
