package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/planventa/planning-system/internal/core/ports"
)

// APIKeyHandler exposes the system-admin-only key administration surface.
// The router mounts it behind the RequireSystemAdmin guard.
type APIKeyHandler struct {
	keys ports.APIKeyService
}

func NewAPIKeyHandler(keys ports.APIKeyService) *APIKeyHandler {
	return &APIKeyHandler{keys: keys}
}

// Mint issues a new API key for a user.
//
// @Summary      Mint an API key
// @Tags         apikeys
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      mintKeyRequest  true  "Key details"
// @Success      201   {object}  mintKeyResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/apikeys [post]
func (h *APIKeyHandler) Mint(c echo.Context) error {
	var req mintKeyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	secret, key, err := h.keys.Mint(c.Request().Context(), req.UserID, req.Name, time.Duration(req.TTLSeconds)*time.Second)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, mintKeyResponse{
		ID:        key.ID,
		Secret:    secret,
		Name:      key.Name,
		ExpiresAt: key.ExpiresAt,
	})
}

// Revoke deletes an API key.
//
// @Summary      Revoke an API key
// @Tags         apikeys
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Key id"
// @Success      200  {object}  statusResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/apikeys/{id} [delete]
func (h *APIKeyHandler) Revoke(c echo.Context) error {
	if err := h.keys.Revoke(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Message: "api key revoked"})
}
