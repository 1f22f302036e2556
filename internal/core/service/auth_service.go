package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// AuthService implements signup, login and session teardown.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	tokens   ports.TokenCodec
	ttl      time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	tokens ports.TokenCodec,
	ttl time.Duration,
	logger zerolog.Logger,
) *AuthService {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		ttl:      ttl,
		logger:   logger,
		now:      time.Now,
	}
}

// Signup registers a candidate or recruiter. Admins are only ever promoted
// by another admin.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*domain.User, error) {
	role := domain.ParseRole(in.Role)
	if role != domain.RoleCandidate && role != domain.RoleRecruiter {
		return nil, domain.Invalid("role must be candidate or recruiter")
	}
	if role == domain.RoleRecruiter && strings.TrimSpace(in.Company) == "" {
		return nil, domain.Invalid("Company name is required for recruiters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}

	now := s.now().UTC()
	first, last := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    first,
		LastName:     last,
		FullName:     strings.TrimSpace(first + " " + last),
		Phone:        strings.TrimSpace(in.Phone),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if role == domain.RoleRecruiter {
		user.Company = strings.TrimSpace(in.Company)
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Str("role", role.String()).Msg("user signed up")
	return created, nil
}

// Login verifies credentials, opens a session and signs a token for it.
// Unknown emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	now := s.now().UTC()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("login: create session: %w", err)
	}

	token, err := s.tokens.Sign(ports.TokenClaims{
		UserID:    user.ID,
		SessionID: session.ID,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("login: sign token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Token: token, ExpiresAt: session.ExpiresAt, User: user}, nil
}

// Logout revokes the caller's current session.
func (s *AuthService) Logout(ctx context.Context, caller *domain.Identity) error {
	if caller == nil || caller.SessionID == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.sessions.Delete(ctx, caller.SessionID); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, caller *domain.Identity) (*domain.User, error) {
	if caller == nil || caller.UserID == "" {
		return nil, domain.ErrUnauthenticated
	}
	user, err := s.users.FindByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("me: %w", err)
	}
	return user, nil
}

// SessionResolver turns a signed token into an Identity, requiring the
// session it names to still exist.
type SessionResolver struct {
	tokens   ports.TokenCodec
	sessions ports.SessionStore
	now      func() time.Time
}

func NewSessionResolver(tokens ports.TokenCodec, sessions ports.SessionStore) *SessionResolver {
	return &SessionResolver{tokens: tokens, sessions: sessions, now: time.Now}
}

// Resolve returns domain.ErrUnauthenticated for any token that does not map
// to a live session of the same user. Store failures are returned wrapped.
func (r *SessionResolver) Resolve(ctx context.Context, token string) (*domain.Identity, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	claims, err := r.tokens.Parse(token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	session, err := r.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	if session.UserID != claims.UserID || session.Expired(r.now()) {
		return nil, domain.ErrUnauthenticated
	}

	return &domain.Identity{UserID: session.UserID, SessionID: session.ID}, nil
}
