package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/planventa/planning-system/internal/api/metrics"
	"github.com/planventa/planning-system/internal/core/domain"
	"github.com/planventa/planning-system/internal/core/ports"
	"github.com/planventa/planning-system/internal/core/service"
)

// apiKeyHeader is the fallback transport for API keys when the Authorization
// header is not usable by the client.
const apiKeyHeader = "X-API-Key"

// FailureThrottle limits repeated failed credential presentations per
// client. A nil throttle disables the check.
type FailureThrottle interface {
	Allow(ctx context.Context, clientIP string) (bool, error)
	RecordFailure(ctx context.Context, clientIP string) error
}

// Auth is the request guard: it extracts the bearer credential, resolves it
// into a principal, and attaches the principal to the request. Requests with
// a missing or invalid credential terminate here with the same 401 body, so
// callers cannot probe which of the two happened.
func Auth(resolver ports.PrincipalResolver, jwtSecret string, throttle FailureThrottle, audit ports.AuditSink, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			token, ok := extractCredential(c)
			if !ok {
				metrics.AuthFailuresTotal.WithLabelValues("missing").Inc()
				return domain.ErrMissingCredential
			}

			clientIP := c.RealIP()
			if throttle != nil {
				allowed, err := throttle.Allow(ctx, clientIP)
				if err != nil {
					// Throttle outages fail open; resolution still runs.
					log.Warn().Err(err).Msg("auth throttle unavailable")
				} else if !allowed {
					metrics.AuthFailuresTotal.WithLabelValues("throttled").Inc()
					return domain.ErrTooManyAttempts
				}
			}

			start := time.Now()
			principal, err := resolvePrincipal(ctx, resolver, jwtSecret, token)
			metrics.PrincipalResolutionDuration.Observe(time.Since(start).Seconds())

			if err != nil {
				if errors.Is(err, domain.ErrInvalidCredential) {
					metrics.AuthFailuresTotal.WithLabelValues("invalid").Inc()
					if throttle != nil {
						if terr := throttle.RecordFailure(ctx, clientIP); terr != nil {
							log.Warn().Err(terr).Msg("auth throttle record failed")
						}
					}
					audit.Record(domain.AuditEvent{
						Action: domain.AuditAuthFailed,
						Detail: clientIP,
						At:     time.Now().UTC(),
					})
					return domain.ErrInvalidCredential
				}
				metrics.AuthFailuresTotal.WithLabelValues("store_error").Inc()
				return err
			}

			metrics.PrincipalResolutionsTotal.Inc()
			attachPrincipal(c, principal)
			return next(c)
		}
	}
}

// resolvePrincipal picks the credential path: opaque API keys carry the pv_
// prefix and go through the credential store; anything else must verify as a
// session JWT before the same role resolution runs.
func resolvePrincipal(ctx context.Context, resolver ports.PrincipalResolver, jwtSecret, token string) (*domain.Principal, error) {
	if strings.HasPrefix(token, domain.APIKeyPrefix) {
		return resolver.ResolveSecret(ctx, token)
	}
	userID, err := service.VerifySessionToken(token, jwtSecret)
	if err != nil {
		return nil, err
	}
	return resolver.ResolveUser(ctx, userID)
}

// extractCredential checks the Authorization bearer header first and the
// dedicated API-key header second; first match wins.
func extractCredential(c echo.Context) (string, bool) {
	if authHeader := c.Request().Header.Get(echo.HeaderAuthorization); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") && parts[1] != "" {
			return parts[1], true
		}
		return "", false
	}
	if key := c.Request().Header.Get(apiKeyHeader); key != "" {
		return key, true
	}
	return "", false
}
