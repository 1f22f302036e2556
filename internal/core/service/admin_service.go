package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/talentgate/jobboard/internal/core/access"
	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

const (
	reasonSelfDelete = "Cannot delete your own account"
	reasonSelfRole   = "Cannot change your own role"
)

type AdminService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	authz    *access.Authorizer
	audit    ports.Auditor
	logger   zerolog.Logger
	now      func() time.Time
}

func NewAdminService(
	users ports.UserRepository,
	sessions ports.SessionStore,
	authz *access.Authorizer,
	audit ports.Auditor,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{users: users, sessions: sessions, authz: authz, audit: audit, logger: logger, now: time.Now}
}

func (s *AdminService) ListUsers(ctx context.Context, caller *domain.Identity, in ports.ListUsersInput) (*ports.Page[*domain.User], error) {
	if _, err := s.authz.Authorize(ctx, caller, requireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}

	var role domain.Role
	if in.Role != "" {
		role = domain.ParseRole(in.Role)
		if !role.Valid() {
			return nil, domain.Invalid("role must be one of: candidate recruiter admin")
		}
	}

	page := in.PageRequest.Normalize()
	users, total, err := s.users.List(ctx, ports.ListUsersFilter{
		Role:   role,
		Search: strings.TrimSpace(in.Search),
		Page:   page.Page,
		Limit:  page.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return ports.NewPage(users, total, page), nil
}

func (s *AdminService) GetUser(ctx context.Context, caller *domain.Identity, userID string) (*domain.User, error) {
	if _, err := s.authz.Authorize(ctx, caller, requireRole(domain.RoleAdmin)); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// DeleteUser removes another account and revokes all of its sessions.
func (s *AdminService) DeleteUser(ctx context.Context, caller *domain.Identity, userID string) error {
	if _, err := s.authz.Authorize(ctx, caller, adminActingOn(userID, reasonSelfDelete)); err != nil {
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}

	if err := s.sessions.DeleteUser(ctx, userID); err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("failed to revoke sessions of deleted user")
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    caller.UserID,
		Action:     domain.AuditUserDeleted,
		Resource:   "user",
		ResourceID: userID,
		OccurredAt: s.now().UTC(),
	})
	s.logger.Info().Str("actor_id", caller.UserID).Str("user_id", userID).Msg("user deleted")
	return nil
}

// ChangeRole assigns another account a new role.
func (s *AdminService) ChangeRole(ctx context.Context, caller *domain.Identity, userID, role string) (*domain.User, error) {
	if _, err := s.authz.Authorize(ctx, caller, adminActingOn(userID, reasonSelfRole)); err != nil {
		return nil, err
	}

	next := domain.ParseRole(role)
	if !next.Valid() {
		return nil, domain.Invalid("role must be one of: candidate recruiter admin")
	}

	before, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("change role: %w", err)
	}

	user, err := s.users.UpdateRole(ctx, userID, next)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("change role: %w", err)
	}

	s.audit.Record(domain.AuditEntry{
		ActorID:    caller.UserID,
		Action:     domain.AuditRoleChanged,
		Resource:   "user",
		ResourceID: userID,
		Details: map[string]any{
			"from": before.Role.String(),
			"to":   next.String(),
		},
		OccurredAt: s.now().UTC(),
	})
	s.logger.Info().
		Str("actor_id", caller.UserID).
		Str("user_id", userID).
		Str("role", next.String()).
		Msg("user role changed")
	return user, nil
}
