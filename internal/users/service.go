package users

import (
	"context"

	"github.com/google/uuid"

	"ticketly/internal/shared/apperrors"
	"ticketly/internal/shared/utils/pagination"
)

type Service interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*Response, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Response, error)
	GetPublicProfile(ctx context.Context, userID uuid.UUID) (*Response, error)
	ListUsers(ctx context.Context, params pagination.Params) (pagination.Page[Response], error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetProfile(ctx context.Context, userID uuid.UUID) (*Response, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := user.ToResponse()
	return &resp, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*Response, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil && (user.Email == nil || *req.Email != *user.Email) {
		exists, err := s.repo.EmailExists(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Conflict("email already registered")
		}
		user.Email = req.Email
		user.EmailVerified = false
	}
	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	resp := user.ToResponse()
	return &resp, nil
}

// GetPublicProfile returns the public subset of a user's profile.
func (s *service) GetPublicProfile(ctx context.Context, userID uuid.UUID) (*Response, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := Response{
		ID:        user.ID.String(),
		FullName:  user.FullName,
		Role:      string(user.Role),
		CreatedAt: user.CreatedAt,
	}
	return &resp, nil
}

func (s *service) ListUsers(ctx context.Context, params pagination.Params) (pagination.Page[Response], error) {
	params.Normalize()

	list, total, err := s.repo.List(ctx, params)
	if err != nil {
		return pagination.Page[Response]{}, err
	}

	items := make([]Response, 0, len(list))
	for i := range list {
		items = append(items, list[i].ToResponse())
	}

	return pagination.NewPage(items, total, params), nil
}
