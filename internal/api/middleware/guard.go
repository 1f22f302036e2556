package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talentgate/jobboard/internal/api/metrics"
	"github.com/talentgate/jobboard/internal/core/access"
	"github.com/talentgate/jobboard/internal/core/domain"
)

// Guard runs the route table against every page request. It either lets
// the request through or answers with a temporary redirect; it never
// renders an error. It must run after Authenticate.
func Guard(table access.RouteTable, roles access.RoleLookup, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := c.Request().URL.Path
			id := IdentityFrom(c)
			authenticated := id != nil

			role := domain.RoleUnknown
			if authenticated && table.NeedsRole(p, true) {
				r, err := roles.FindRole(c.Request().Context(), id.UserID)
				if err != nil {
					log.Warn().Err(err).
						Str("user_id", id.UserID).
						Str("path", p).
						Msg("guard role lookup failed, continuing without role")
				} else {
					role = r
				}
			}

			d := table.Decide(p, authenticated, role)
			if !d.Allowed() {
				metrics.GuardDecisionsTotal.WithLabelValues("redirect", string(d.Reason)).Inc()
				log.Debug().
					Str("path", p).
					Str("redirect", d.Redirect).
					Str("reason", string(d.Reason)).
					Msg("guard redirect")
				return c.Redirect(http.StatusTemporaryRedirect, d.Redirect)
			}

			metrics.GuardDecisionsTotal.WithLabelValues("allow", string(d.Reason)).Inc()
			return next(c)
		}
	}
}
