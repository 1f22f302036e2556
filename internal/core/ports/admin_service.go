package ports

import (
	"context"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// ListUsersInput carries the admin user-list query parameters.
type ListUsersInput struct {
	Role   string
	Search string
	PageRequest
}

// AdminService manages accounts on behalf of an admin caller.
type AdminService interface {
	ListUsers(ctx context.Context, caller *domain.Identity, input ListUsersInput) (*Page[*domain.User], error)
	GetUser(ctx context.Context, caller *domain.Identity, userID string) (*domain.User, error)
	DeleteUser(ctx context.Context, caller *domain.Identity, userID string) error
	ChangeRole(ctx context.Context, caller *domain.Identity, userID, role string) (*domain.User, error)
}
