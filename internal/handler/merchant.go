package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/rlaig/ezorder/internal/middleware"
	"github.com/rlaig/ezorder/internal/service"
	"github.com/rlaig/ezorder/internal/view"
)

// MerchantHandler serves a signed-in merchant's own dashboard. Every
// operation is scoped to the merchant profile of the calling user.
type MerchantHandler struct {
	Merchants *service.MerchantService
	Menu      *service.MenuService
	Orders    *service.OrderService
	QR        *service.QRService
}

func NewMerchantHandler(m *service.MerchantService, menu *service.MenuService, o *service.OrderService, qr *service.QRService) *MerchantHandler {
	return &MerchantHandler{Merchants: m, Menu: menu, Orders: o, QR: qr}
}

// scope resolves the caller's merchant id under a request deadline.
func (h *MerchantHandler) scope(c echo.Context) (context.Context, context.CancelFunc, string, error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	m, err := h.Merchants.ForUser(ctx, middleware.UserID(c))
	if err != nil {
		cancel()
		return nil, nil, "", err
	}
	return ctx, cancel, m.ID, nil
}

func (h *MerchantHandler) Profile(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.Merchants.Profile(ctx, middleware.UserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *MerchantHandler) UpdateProfile(c echo.Context) error {
	var req view.MerchantInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.Merchants.UpdateProfile(ctx, middleware.UserID(c), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// ---- menu categories ----

func (h *MerchantHandler) ListCategories(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.Categories(ctx, mid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

func (h *MerchantHandler) CreateCategory(c echo.Context) error {
	var req view.MenuCategoryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.CreateCategory(ctx, mid, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MerchantHandler) UpdateCategory(c echo.Context) error {
	var req view.MenuCategoryInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.UpdateCategory(ctx, mid, c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MerchantHandler) DeleteCategory(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	if err := h.Menu.DeleteCategory(ctx, mid, c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- menu items ----

// GET /v1/merchant/items?categoryId=
func (h *MerchantHandler) ListItems(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.Items(ctx, mid, c.QueryParam("categoryId"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

func (h *MerchantHandler) CreateItem(c echo.Context) error {
	var req view.MenuItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.CreateItem(ctx, mid, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MerchantHandler) UpdateItem(c echo.Context) error {
	var req view.MenuItemInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.UpdateItem(ctx, mid, c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MerchantHandler) DeleteItem(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	if err := h.Menu.DeleteItem(ctx, mid, c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- modifiers ----

// GET /v1/merchant/items/:id/modifiers
func (h *MerchantHandler) ListModifiers(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.Modifiers(ctx, mid, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

func (h *MerchantHandler) CreateModifier(c echo.Context) error {
	var req view.MenuModifierInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.CreateModifier(ctx, mid, c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MerchantHandler) UpdateModifier(c echo.Context) error {
	var req view.MenuModifierInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.UpdateModifier(ctx, mid, c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MerchantHandler) DeleteModifier(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	if err := h.Menu.DeleteModifier(ctx, mid, c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type copyModifiersReq struct {
	FromItemID string                 `json:"fromItemId"`
	ToItemID   string                 `json:"toItemId"`
	Modifiers  []service.ModifierCopy `json:"modifiers"`
}

// POST /v1/merchant/modifiers/copy
func (h *MerchantHandler) CopyModifiers(c echo.Context) error {
	var req copyModifiersReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Menu.CopyModifiers(ctx, mid, req.FromItemID, req.ToItemID, req.Modifiers)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"items": out})
}

// ---- QR codes ----

func (h *MerchantHandler) ListQRCodes(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.QR.List(ctx, mid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

func (h *MerchantHandler) CreateQRCode(c echo.Context) error {
	var req view.QRCodeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.QR.Create(ctx, mid, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *MerchantHandler) UpdateQRCode(c echo.Context) error {
	var req view.QRCodeInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.QR.Update(ctx, mid, c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MerchantHandler) DeleteQRCode(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	if err := h.QR.Delete(ctx, mid, c.Param("id")); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ---- orders ----

// GET /v1/merchant/orders?status=&page=&perPage=
func (h *MerchantHandler) ListOrders(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	page, perPage := pageParams(c)
	out, err := h.Orders.List(ctx, mid, c.QueryParam("status"), page, perPage)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MerchantHandler) GetOrder(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Orders.Detail(ctx, mid, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// POST /v1/merchant/orders/:id/advance
func (h *MerchantHandler) AdvanceOrder(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Orders.Advance(ctx, mid, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MerchantHandler) CancelOrder(c echo.Context) error {
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Orders.Cancel(ctx, mid, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// GET /v1/merchant/orders/stats?from=YYYY-MM-DD&to=YYYY-MM-DD
//
// A date-only "to" includes the whole day. RFC3339 timestamps are accepted too.
func (h *MerchantHandler) OrderStats(c echo.Context) error {
	from, err := parseDay(c.QueryParam("from"), false)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid from"})
	}
	to, err := parseDay(c.QueryParam("to"), true)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid to"})
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "to must not be before from"})
	}
	ctx, cancel, mid, err := h.scope(c)
	if err != nil {
		return fail(c, err)
	}
	defer cancel()

	out, err := h.Orders.Stats(ctx, mid, from, to)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func parseDay(s string, endOfDay bool) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Millisecond)
	}
	return t, nil
}
