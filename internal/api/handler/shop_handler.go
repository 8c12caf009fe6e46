package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/planventa/planning-system/internal/core/domain"
	"github.com/planventa/planning-system/internal/core/ports"
)

// ShopHandler exposes shop reads and the sales-plan surface. Read operations
// need a viewer or editor role on the shop (or tenant-level access); writes
// need editor.
type ShopHandler struct {
	directory ports.DirectoryService
}

func NewShopHandler(directory ports.DirectoryService) *ShopHandler {
	return &ShopHandler{directory: directory}
}

// Get returns one shop.
//
// @Summary      Get a shop
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Shop id"
// @Success      200  {object}  domain.Shop
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/shops/{id} [get]
func (h *ShopHandler) Get(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	shopID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	shop, err := h.directory.GetShop(c.Request().Context(), p, shopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, shop)
}

// ListPlans returns the shop's sales-plan entries.
//
// @Summary      List plan entries
// @Tags         shops
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Shop id"
// @Success      200  {array}   domain.PlanEntry
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/shops/{id}/plans [get]
func (h *ShopHandler) ListPlans(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	shopID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.directory.ListPlanEntries(c.Request().Context(), p, shopID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// UpsertPlan creates or revises one plan entry.
//
// @Summary      Upsert a plan entry
// @Tags         shops
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Shop id"
// @Param        body  body      planEntryRequest  true  "Plan entry"
// @Success      200   {object}  statusResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/shops/{id}/plans [put]
func (h *ShopHandler) UpsertPlan(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	shopID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req planEntryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	entry := &domain.PlanEntry{
		ShopID:   shopID,
		SKU:      req.SKU,
		Month:    req.Month,
		Quantity: req.Quantity,
	}
	if err := h.directory.UpsertPlanEntry(c.Request().Context(), p, entry); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Message: "plan entry saved"})
}
