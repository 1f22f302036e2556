package ports

import (
	"context"
	"time"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// SessionStore keeps revocable server-side sessions.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	// Get returns domain.ErrSessionNotFound for missing or expired sessions.
	Get(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
	// DeleteUser revokes every session belonging to userID.
	DeleteUser(ctx context.Context, userID string) error
}

// TokenClaims are the fields carried by a signed session token.
type TokenClaims struct {
	UserID    string
	SessionID string
	ExpiresAt time.Time
}

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Sign(claims TokenClaims) (string, error)
	Parse(token string) (TokenClaims, error)
}

// IdentityResolver turns a presented token into the caller's Identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.Identity, error)
}
