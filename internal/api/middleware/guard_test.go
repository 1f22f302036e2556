package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentgate/jobboard/internal/core/access"
	"github.com/talentgate/jobboard/internal/core/domain"
)

type stubRoles struct {
	roles map[string]domain.Role
	err   error
	calls int
}

func (s *stubRoles) FindRole(_ context.Context, userID string) (domain.Role, error) {
	s.calls++
	if s.err != nil {
		return domain.RoleUnknown, s.err
	}
	r, ok := s.roles[userID]
	if !ok {
		return domain.RoleUnknown, domain.ErrUserNotFound
	}
	return r, nil
}

// serveGuarded runs one page request through Guard as the given user
// ("" = anonymous) and returns the recorder and whether the page rendered.
func serveGuarded(t *testing.T, roles *stubRoles, userID, target string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, target, nil), rec)
	if userID != "" {
		c.Set(IdentityKey, &domain.Identity{UserID: userID, SessionID: "s"})
	}

	rendered := false
	h := Guard(access.DefaultRoutes(), roles, zerolog.Nop())(func(c echo.Context) error {
		rendered = true
		return c.HTML(http.StatusOK, "<html></html>")
	})
	if err := h(c); err != nil {
		t.Fatalf("Guard must not return errors: %v", err)
	}
	return rec, rendered
}

func newRoles() *stubRoles {
	return &stubRoles{roles: map[string]domain.Role{
		"cand": domain.RoleCandidate,
		"rec":  domain.RoleRecruiter,
		"adm":  domain.RoleAdmin,
	}}
}

func TestGuard_Redirects(t *testing.T) {
	cases := []struct {
		name     string
		user     string
		path     string
		location string
	}{
		{"anonymous profile", "", "/profile", "/sign-in?redirect=/profile"},
		{"anonymous dashboard", "", "/dashboard/admin/users", "/sign-in?redirect=/dashboard/admin/users"},
		{"anonymous job creation", "", "/jobs/create", "/sign-in?redirect=/jobs/create"},
		{"candidate on admin dashboard", "cand", "/dashboard/admin", "/dashboard/candidate"},
		{"recruiter on admin area", "rec", "/admin/users", "/dashboard/recruiter"},
		{"admin on recruiter dashboard", "adm", "/dashboard/recruiter", "/dashboard/admin"},
		{"candidate creating a job", "cand", "/jobs/create", "/jobs"},
		{"signed in on sign-in", "rec", "/sign-in", "/dashboard/recruiter"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, rendered := serveGuarded(t, newRoles(), tc.user, tc.path)
			if rendered {
				t.Fatalf("page should not render")
			}
			if rec.Code != http.StatusTemporaryRedirect {
				t.Fatalf("expected 307, got %d", rec.Code)
			}
			if got := rec.Header().Get(echo.HeaderLocation); got != tc.location {
				t.Fatalf("expected redirect to %q, got %q", tc.location, got)
			}
		})
	}
}

func TestGuard_Allows(t *testing.T) {
	cases := []struct {
		name string
		user string
		path string
	}{
		{"anonymous home", "", "/"},
		{"anonymous job detail", "", "/jobs/123"},
		{"anonymous sign-up", "", "/sign-up"},
		{"candidate dashboard", "cand", "/dashboard/candidate"},
		{"recruiter job creation", "rec", "/jobs/create"},
		{"admin area", "adm", "/admin/users"},
		{"any signed in user on profile", "cand", "/profile"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, rendered := serveGuarded(t, newRoles(), tc.user, tc.path)
			if !rendered || rec.Code != http.StatusOK {
				t.Fatalf("expected page to render, got %d", rec.Code)
			}
		})
	}
}

func TestGuard_SkipsRoleLookupOnPublicPages(t *testing.T) {
	roles := newRoles()
	if _, rendered := serveGuarded(t, roles, "cand", "/jobs"); !rendered {
		t.Fatalf("expected public page to render")
	}
	if roles.calls != 0 {
		t.Fatalf("expected no role lookup, got %d", roles.calls)
	}
}

func TestGuard_LookupFailureMeansNoRole(t *testing.T) {
	roles := &stubRoles{err: errors.New("connection reset")}

	rec, rendered := serveGuarded(t, roles, "adm", "/dashboard/admin")
	if rendered {
		t.Fatalf("page should not render without a role")
	}
	if got := rec.Header().Get(echo.HeaderLocation); got != "/" {
		t.Fatalf("expected redirect home, got %q", got)
	}

	// Pages that need only an identity still render.
	if _, rendered := serveGuarded(t, roles, "adm", "/profile"); !rendered {
		t.Fatalf("expected /profile to render for an authenticated caller")
	}
}
