package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentgate/jobboard/internal/core/domain"
	"github.com/talentgate/jobboard/internal/core/ports"
)

const (
	// SessionCookie carries the signed session token for browsers.
	SessionCookie = "session"
	// IdentityKey is the echo context key holding the *domain.Identity.
	IdentityKey = "identity"
)

// Authenticate resolves the caller from the session cookie or a Bearer
// header and stores the identity on the context. A missing or invalid
// token leaves the request unauthenticated; handlers and the guard decide
// what that means.
func Authenticate(resolver ports.IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := presentedToken(c)
			if raw == "" {
				return next(c)
			}

			id, err := resolver.Resolve(c.Request().Context(), raw)
			switch {
			case err == nil:
				c.Set(IdentityKey, id)
			case errors.Is(err, domain.ErrUnauthenticated):
				// expired, revoked or forged
			default:
				log.Error().Err(err).
					Str("path", c.Request().URL.Path).
					Msg("resolve session")
			}
			return next(c)
		}
	}
}

// RequireIdentity rejects requests that Authenticate could not attach an
// identity to.
func RequireIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if IdentityFrom(c) == nil {
			return domain.ErrUnauthenticated
		}
		return next(c)
	}
}

// IdentityFrom returns the caller's identity, or nil when unauthenticated.
func IdentityFrom(c echo.Context) *domain.Identity {
	id, _ := c.Get(IdentityKey).(*domain.Identity)
	return id
}

// presentedToken prefers the Authorization header over the cookie.
func presentedToken(c echo.Context) string {
	if h := c.Request().Header.Get(echo.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if ck, err := c.Cookie(SessionCookie); err == nil {
		return ck.Value
	}
	return ""
}
