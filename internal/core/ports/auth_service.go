package ports

import (
	"context"
	"time"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// SignupInput carries the self-registration form.
type SignupInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Company   string
	Phone     string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, caller *domain.Identity) error
	Me(ctx context.Context, caller *domain.Identity) (*domain.User, error)
}
