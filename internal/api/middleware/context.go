package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/planventa/planning-system/internal/core/domain"
)

// principalContextKey keys the principal on the request's context.Context.
type principalContextKey struct{}

// echoPrincipalKey keys the principal on the echo context for handlers.
const echoPrincipalKey = "principal"

// attachPrincipal stores the resolved principal on both the echo context and
// the request context. The principal is immutable from here on.
func attachPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(echoPrincipalKey, p)
	req := c.Request()
	c.SetRequest(req.WithContext(context.WithValue(req.Context(), principalContextKey{}, p)))
}

// PrincipalFrom returns the principal attached by the Auth guard, or false
// when the guard did not run for this route.
func PrincipalFrom(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(echoPrincipalKey).(*domain.Principal)
	return p, ok
}

// PrincipalFromContext reads the principal from a plain context.Context, for
// code below the handler layer.
func PrincipalFromContext(ctx context.Context) (*domain.Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(*domain.Principal)
	return p, ok
}
