package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, name, email, password_hash, role, status, phone, age, gender, blood_group, city, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.Status,
		user.Phone,
		user.Age,
		user.Gender,
		user.BloodGroup,
		user.City,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT * FROM users WHERE id = $1`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT * FROM users WHERE email = $1`
	var user model.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) List(ctx context.Context, filter *model.UserFilter) ([]*model.User, int, error) {
	args := []interface{}{}
	where := ""
	if filter.Role != "" {
		where = ` WHERE role = $1`
		args = append(args, filter.Role)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM users`+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT * FROM users%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	var users []*model.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.UserStatus) (*model.User, error) {
	query := `
		UPDATE users SET status = $1, updated_at = $2
		WHERE id = $3
		RETURNING *
	`
	var user model.User
	err := r.db.GetContext(ctx, &user, query, status, time.Now(), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user status: %w", err)
	}
	return &user, nil
}

func (r *userRepository) ListActiveDonors(ctx context.Context) ([]*model.User, error) {
	query := `SELECT * FROM users WHERE role = $1 AND status = $2`
	var donors []*model.User
	if err := r.db.SelectContext(ctx, &donors, query, model.RoleDonor, model.UserStatusActive); err != nil {
		return nil, fmt.Errorf("failed to list active donors: %w", err)
	}
	return donors, nil
}

func (r *userRepository) ListDonorsByBloodGroup(ctx context.Context, bloodGroup string) ([]*model.User, error) {
	query := `SELECT * FROM users WHERE role = $1 AND blood_group = $2`
	var donors []*model.User
	if err := r.db.SelectContext(ctx, &donors, query, model.RoleDonor, bloodGroup); err != nil {
		return nil, fmt.Errorf("failed to list donors by blood group: %w", err)
	}
	return donors, nil
}

func (r *userRepository) CountByRole(ctx context.Context) (map[model.Role]int, error) {
	query := `SELECT role, COUNT(*) AS count FROM users GROUP BY role`
	rows := []struct {
		Role  model.Role `db:"role"`
		Count int        `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to count users by role: %w", err)
	}

	counts := make(map[model.Role]int, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

func (r *userRepository) ListRecent(ctx context.Context, limit int) ([]*model.RecentUser, error) {
	query := `
		SELECT id, name, email, role, created_at FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`
	var users []*model.RecentUser
	if err := r.db.SelectContext(ctx, &users, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent users: %w", err)
	}
	return users, nil
}
