package ports

import (
	"context"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// ListUsersFilter carries the admin user-list query.
type ListUsersFilter struct {
	Role   domain.Role // optional
	Search string      // optional: partial match on email or full name
	Page   int         // 1-based
	Limit  int
}

// UserDetails are the self-editable account fields. Nil leaves a field unchanged.
type UserDetails struct {
	FirstName *string
	LastName  *string
	Phone     *string
	Company   *string
	AvatarURL *string
}

// UserRepository persists accounts.
type UserRepository interface {
	// Create stores a new user. Returns domain.ErrEmailTaken on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindRole fetches only the role column for id.
	FindRole(ctx context.Context, id string) (domain.Role, error)
	List(ctx context.Context, filter ListUsersFilter) ([]*domain.User, int64, error)
	UpdateRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	UpdateDetails(ctx context.Context, id string, details UserDetails) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// ProfileRepository persists the role-specific profiles.
type ProfileRepository interface {
	FindCandidate(ctx context.Context, userID string) (*domain.CandidateProfile, error)
	UpsertCandidate(ctx context.Context, p *domain.CandidateProfile) (*domain.CandidateProfile, error)
	FindRecruiter(ctx context.Context, userID string) (*domain.RecruiterProfile, error)
	UpsertRecruiter(ctx context.Context, p *domain.RecruiterProfile) (*domain.RecruiterProfile, error)
}
