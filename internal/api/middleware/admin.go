package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/planventa/planning-system/internal/core/domain"
)

// RequireSystemAdmin is the stricter secondary guard for platform-only
// operations. It performs no store lookups: it only reads the principal the
// Auth guard already attached.
func RequireSystemAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := PrincipalFrom(c)
			if !ok {
				return domain.ErrMissingCredential
			}
			if !p.IsSystemAdmin {
				return &domain.AccessDeniedError{Reason: "System admin access required"}
			}
			return next(c)
		}
	}
}
