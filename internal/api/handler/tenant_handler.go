package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/planventa/planning-system/internal/core/domain"
	"github.com/planventa/planning-system/internal/core/ports"
)

// TenantHandler exposes tenant and role administration. Access rules are
// enforced in the directory service; the handler only shapes HTTP.
type TenantHandler struct {
	directory ports.DirectoryService
}

func NewTenantHandler(directory ports.DirectoryService) *TenantHandler {
	return &TenantHandler{directory: directory}
}

// List returns the tenants the caller can access.
//
// @Summary      List accessible tenants
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Tenant
// @Failure      401  {object}  errorResponse
// @Router       /v1/tenants [get]
func (h *TenantHandler) List(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	tenants, err := h.directory.ListAccessibleTenants(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenants)
}

// Get returns one tenant; requires owner or admin access.
//
// @Summary      Get a tenant
// @Tags         tenants
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Tenant id"
// @Success      200  {object}  domain.Tenant
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/tenants/{id} [get]
func (h *TenantHandler) Get(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	tenantID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tenant, err := h.directory.GetTenant(c.Request().Context(), p, tenantID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tenant)
}

// Create provisions a tenant. System admin only (enforced in the service).
//
// @Summary      Create a tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTenantRequest  true  "Tenant details"
// @Success      201   {object}  domain.Tenant
// @Failure      403   {object}  errorResponse
// @Router       /v1/tenants [post]
func (h *TenantHandler) Create(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req createTenantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	tenant, err := h.directory.CreateTenant(c.Request().Context(), p, req.Name, req.OwnerID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tenant)
}

// CreateShop adds a shop under a tenant; requires tenant admin access.
//
// @Summary      Create a shop
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                true  "Tenant id"
// @Param        body  body      createShopRequest  true  "Shop details"
// @Success      201   {object}  domain.Shop
// @Failure      403   {object}  errorResponse
// @Router       /v1/tenants/{id}/shops [post]
func (h *TenantHandler) CreateShop(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	tenantID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req createShopRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	shop, err := h.directory.CreateShop(c.Request().Context(), p, tenantID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, shop)
}

// GrantRole assigns a role within the tenant; requires tenant admin access.
//
// @Summary      Grant a role
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Tenant id"
// @Param        body  body      roleRequest  true  "Role assignment"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/tenants/{id}/roles [post]
func (h *TenantHandler) GrantRole(c echo.Context) error {
	return h.roleChange(c, h.directory.GrantRole, "role granted")
}

// RevokeRole removes a role within the tenant; requires tenant admin access.
//
// @Summary      Revoke a role
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Tenant id"
// @Param        body  body      roleRequest  true  "Role assignment"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  errorResponse
// @Router       /v1/tenants/{id}/roles [delete]
func (h *TenantHandler) RevokeRole(c echo.Context) error {
	return h.roleChange(c, h.directory.RevokeRole, "role revoked")
}

func (h *TenantHandler) roleChange(c echo.Context, apply func(ctx context.Context, p *domain.Principal, assignment domain.RoleAssignment) error, message string) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	tenantID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	assignment := domain.RoleAssignment{
		UserID:   req.UserID,
		Role:     domain.Role(req.Role),
		TenantID: &tenantID,
		ShopID:   req.ShopID,
	}
	if err := apply(c.Request().Context(), p, assignment); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Message: message})
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
