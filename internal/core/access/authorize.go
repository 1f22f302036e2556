// Package access holds the two gates every request passes through: the
// page route table consulted by the route guard, and the Authorizer
// consulted by every protected API operation.
package access

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// RoleLookup fetches the stored role of a user.
type RoleLookup interface {
	FindRole(ctx context.Context, userID string) (domain.Role, error)
}

// OwnerLookup returns the owner id of the resource a policy protects.
type OwnerLookup func(ctx context.Context) (string, error)

// Policy describes what a caller must satisfy to proceed.
type Policy struct {
	// Roles lists the accepted roles. Empty accepts any authenticated caller.
	Roles []domain.Role

	// Owner, when set, must return the caller's own id.
	Owner OwnerLookup
	// NotFound is returned when Owner reports a missing row or a different
	// owner, so the caller cannot tell the two apart. Defaults to ErrForbidden.
	NotFound error

	// SelfTarget is the user id the action targets. A caller targeting
	// themselves gets a bad request carrying SelfReason.
	SelfTarget string
	SelfReason string
}

// Authorizer evaluates Policies against the caller's stored facts.
type Authorizer struct {
	roles RoleLookup
	log   zerolog.Logger
}

func NewAuthorizer(roles RoleLookup, log zerolog.Logger) *Authorizer {
	return &Authorizer{roles: roles, log: log}
}

// Authorize checks caller against p and returns the caller's role.
//
// Checks run in order: identity, self-action, role, ownership. The
// self-action check precedes the role check so that targeting oneself is
// rejected the same way whatever the caller's role.
func (a *Authorizer) Authorize(ctx context.Context, caller *domain.Identity, p Policy) (domain.Role, error) {
	if caller == nil || caller.UserID == "" {
		return domain.RoleUnknown, domain.ErrUnauthenticated
	}

	if p.SelfTarget != "" && sameUser(p.SelfTarget, caller.UserID) {
		reason := p.SelfReason
		if reason == "" {
			reason = "Cannot perform this action on your own account"
		}
		return domain.RoleUnknown, domain.NewError(domain.ErrSelfAction, reason)
	}

	role, err := a.roles.FindRole(ctx, caller.UserID)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		role = domain.RoleUnknown
	case err != nil:
		return domain.RoleUnknown, fmt.Errorf("authorize: lookup role: %w", err)
	}

	if len(p.Roles) > 0 && !slices.Contains(p.Roles, role) {
		a.log.Debug().
			Str("user_id", caller.UserID).
			Str("role", role.String()).
			Msg("role requirement not met")
		return role, domain.ErrForbidden
	}

	if p.Owner == nil {
		return role, nil
	}

	notFound := p.NotFound
	if notFound == nil {
		notFound = domain.ErrForbidden
	}

	owner, err := p.Owner(ctx)
	switch {
	case errors.Is(err, notFound):
		return role, notFound
	case err != nil:
		return role, fmt.Errorf("authorize: lookup owner: %w", err)
	case !sameUser(owner, caller.UserID):
		a.log.Debug().
			Str("user_id", caller.UserID).
			Msg("ownership requirement not met")
		return role, notFound
	}

	return role, nil
}

// sameUser compares user ids by value. The store accepts any spelling of a
// uuid (upper case, braces, no hyphens), so two spellings of one id must
// compare equal.
func sameUser(a, b string) bool {
	if a == b {
		return true
	}
	ua, err := uuid.Parse(a)
	if err != nil {
		return false
	}
	ub, err := uuid.Parse(b)
	if err != nil {
		return false
	}
	return ua == ub
}
