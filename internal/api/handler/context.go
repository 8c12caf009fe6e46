package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/planventa/planning-system/internal/api/middleware"
	"github.com/planventa/planning-system/internal/core/domain"
)

// principalFrom extracts the principal attached by the Auth guard. Its
// absence means the route was wired without the guard; fail closed with the
// same response as a missing credential.
func principalFrom(c echo.Context) (*domain.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, domain.ErrMissingCredential
	}
	return p, nil
}
