package access

import (
	"net/url"
	"path"
	"strings"

	"github.com/talentgate/jobboard/internal/core/domain"
)

// Reason explains a guard decision. It doubles as a metrics label.
type Reason string

const (
	ReasonPublic        Reason = "public"
	ReasonAuthEntry     Reason = "auth_entry"
	ReasonSignIn        Reason = "sign_in"
	ReasonRoleMismatch  Reason = "role_mismatch"
	ReasonRecruiterOnly Reason = "recruiter_only"
	ReasonAuthorized    Reason = "authorized"
)

// Decision is the outcome for one page request. An empty Redirect means
// the request may proceed.
type Decision struct {
	Redirect string
	Reason   Reason
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

// RoleRoute restricts a path prefix and its sub-paths to one role.
type RoleRoute struct {
	Prefix string
	Role   domain.Role
}

// RouteTable is the static classification of page paths.
type RouteTable struct {
	// Public paths are served to anyone. Matching is exact or on a "/"
	// boundary, so "/jobs" also covers "/jobs/123".
	Public []string
	// AuthEntry paths are public paths an authenticated caller is
	// bounced away from.
	AuthEntry []string
	// Protected paths require an identity even when a public prefix
	// would otherwise cover them.
	Protected []string
	// RoleRoutes map prefixes to the single role allowed to view them.
	RoleRoutes []RoleRoute
	// RecruiterOnly is the job-creation page. Other roles are sent to
	// RecruiterFallback.
	RecruiterOnly     string
	RecruiterFallback string
	// SignIn is where unauthenticated callers are sent.
	SignIn string
}

// DefaultRoutes returns the job board's page table.
func DefaultRoutes() RouteTable {
	return RouteTable{
		Public:    []string{"/", "/sign-in", "/sign-up", "/jobs", "/about", "/contact"},
		AuthEntry: []string{"/sign-in", "/sign-up"},
		Protected: []string{"/profile", "/jobs/create"},
		RoleRoutes: []RoleRoute{
			{Prefix: "/dashboard/candidate", Role: domain.RoleCandidate},
			{Prefix: "/dashboard/recruiter", Role: domain.RoleRecruiter},
			{Prefix: "/dashboard/admin", Role: domain.RoleAdmin},
			{Prefix: "/admin", Role: domain.RoleAdmin},
		},
		RecruiterOnly:     "/jobs/create",
		RecruiterFallback: "/jobs",
		SignIn:            "/sign-in",
	}
}

// Decide classifies p and returns what the guard should do.
//
// The checks run in a fixed order: public paths (with the auth-entry
// bounce), then the identity requirement, then the role prefix table,
// then the job-creation page.
func (t RouteTable) Decide(p string, authenticated bool, role domain.Role) Decision {
	p = cleanPath(p)

	if t.IsPublic(p) {
		if authenticated && t.isAuthEntry(p) {
			return Decision{Redirect: domain.Dashboard(role), Reason: ReasonAuthEntry}
		}
		return Decision{Reason: ReasonPublic}
	}

	if !authenticated {
		return Decision{Redirect: t.signInURL(p), Reason: ReasonSignIn}
	}

	if required, ok := t.RequiredRole(p); ok && required != role {
		return Decision{Redirect: domain.Dashboard(role), Reason: ReasonRoleMismatch}
	}

	if t.RecruiterOnly != "" && matches(p, t.RecruiterOnly) && role != domain.RoleRecruiter {
		return Decision{Redirect: t.RecruiterFallback, Reason: ReasonRecruiterOnly}
	}

	return Decision{Reason: ReasonAuthorized}
}

// NeedsRole reports whether the caller's role can change the decision for
// p, letting the guard skip the lookup otherwise.
func (t RouteTable) NeedsRole(p string, authenticated bool) bool {
	if !authenticated {
		return false
	}
	p = cleanPath(p)
	return t.isAuthEntry(p) || !t.IsPublic(p)
}

// IsPublic reports whether p is served without an identity.
func (t RouteTable) IsPublic(p string) bool {
	p = cleanPath(p)
	for _, r := range t.Protected {
		if matches(p, r) {
			return false
		}
	}
	for _, r := range t.Public {
		if matches(p, r) {
			return true
		}
	}
	return false
}

// RequiredRole returns the role a path is restricted to, if any.
func (t RouteTable) RequiredRole(p string) (domain.Role, bool) {
	p = cleanPath(p)
	for _, rr := range t.RoleRoutes {
		if matches(p, rr.Prefix) {
			return rr.Role, true
		}
	}
	return domain.RoleUnknown, false
}

func (t RouteTable) isAuthEntry(p string) bool {
	for _, r := range t.AuthEntry {
		if matches(p, r) {
			return true
		}
	}
	return false
}

// signInURL keeps slashes readable in the return target while escaping
// everything that would break the query string.
func (t RouteTable) signInURL(p string) string {
	target := strings.ReplaceAll(url.QueryEscape(p), "%2F", "/")
	return t.SignIn + "?redirect=" + target
}

func matches(p, route string) bool {
	if p == route {
		return true
	}
	if route == "/" {
		return false
	}
	return strings.HasPrefix(p, strings.TrimSuffix(route, "/")+"/")
}

// cleanPath also collapses "//host" style paths so a return target can
// never point off-site.
func cleanPath(p string) string {
	if p == "" {
		return "/"
	}
	return path.Clean("/" + p)
}
