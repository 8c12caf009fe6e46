package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/planventa/planning-system/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_MissingAndInvalidCredentialsMatch(t *testing.T) {
	missingCode, missingBody := renderError(t, domain.ErrMissingCredential)
	invalidCode, invalidBody := renderError(t, domain.ErrInvalidCredential)

	if missingCode != http.StatusUnauthorized || invalidCode != http.StatusUnauthorized {
		t.Fatalf("expected 401/401, got %d/%d", missingCode, invalidCode)
	}
	if missingBody != invalidBody {
		t.Fatalf("missing and invalid credentials must render identically: %v vs %v", missingBody, invalidBody)
	}
	if missingBody.Error != authRequiredMessage {
		t.Fatalf("unexpected body: %v", missingBody)
	}
}

func TestErrorHandler_AccessDeniedCarriesReason(t *testing.T) {
	code, body := renderError(t, &domain.AccessDeniedError{Reason: "Editor role required for this shop"})
	if code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
	if body.Error != "Editor role required for this shop" {
		t.Fatalf("denial reason lost: %v", body)
	}
}

func TestErrorHandler_DomainCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests},
		{"tenant not found", domain.ErrTenantNotFound, http.StatusNotFound},
		{"shop not found", domain.ErrShopNotFound, http.StatusNotFound},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound},
		{"key not found", domain.ErrKeyNotFound, http.StatusNotFound},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, _ := renderError(t, tc.err)
			if code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, code)
			}
		})
	}
}

func TestErrorHandler_EchoErrorsPassThrough(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusNotFound, "Not Found"))
	if code != http.StatusNotFound || body.Error != "Not Found" {
		t.Fatalf("echo error not preserved: %d %v", code, body)
	}
}

func TestErrorHandler_UnexpectedErrorsAreOpaque(t *testing.T) {
	code, body := renderError(t, errors.New("mongo: connection reset"))
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if body.Error != "internal server error" {
		t.Fatalf("internal error detail leaked: %v", body)
	}
}
