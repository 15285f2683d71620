package auth

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/medicare-platform/admin-api/internal/model"
	"github.com/medicare-platform/admin-api/internal/repository"
	"github.com/medicare-platform/admin-api/pkg/auth"
	apperrors "github.com/medicare-platform/admin-api/pkg/errors"
	"github.com/medicare-platform/admin-api/pkg/security"
)

type Service interface {
	Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error)
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

type service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	jwt    auth.JWTService
}

func NewService(users repository.UserRepository, hasher security.PasswordHasher, jwt auth.JWTService) Service {
	return &service{users: users, hasher: hasher, jwt: jwt}
}

func (s *service) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	if !model.IsValidRole(req.Role) {
		return nil, apperrors.Validation("invalid role")
	}
	if req.BloodGroup != nil && !model.IsValidBloodGroup(*req.BloodGroup) {
		return nil, apperrors.Validation("invalid blood group")
	}

	if existing, err := s.users.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return nil, apperrors.Conflict("email already registered")
	} else if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.Internal("failed to check existing user", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	user := &model.User{
		Base:         model.Base{ID: uuid.New()},
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       model.UserStatusActive,
		Phone:        req.Phone,
		Age:          req.Age,
		Gender:       req.Gender,
		BloodGroup:   req.BloodGroup,
		City:         req.City,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to create user", err)
	}
	return user, nil
}

func (s *service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthenticated("invalid credentials")
		}
		return nil, apperrors.Internal("failed to fetch user", err)
	}

	if user.Status != model.UserStatusActive {
		return nil, apperrors.Unauthorized("account is " + string(user.Status))
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthenticated("invalid credentials")
	}

	token, err := s.jwt.GenerateToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, apperrors.Internal("failed to issue token", err)
	}

	return &model.LoginResponse{Token: token, User: user}, nil
}

func (s *service) ValidateToken(_ context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwt.ValidateToken(token)
	if err != nil {
		return nil, apperrors.Unauthenticated("invalid token")
	}
	return claims, nil
}
