package handler

import (
	"context"

	"user-profile-service/internal/domain"
	"user-profile-service/internal/feature/user"
)

type UserService interface {
	Register(ctx context.Context, in user.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, error)
	Profile(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, actorID, actorRole string, in user.UpdateProfileRequest) (*domain.User, error)
	ChangePassword(ctx context.Context, id string, in user.ChangePasswordRequest) (bool, error)
	Verify(ctx context.Context, token string) (*domain.User, error)
	List(ctx context.Context, q domain.ListQuery) (*domain.Page[domain.User], error)
	Ban(ctx context.Context, id string) error
}
