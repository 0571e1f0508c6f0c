package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/filter"
	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/schema"
	"github.com/rlaig/ezorder/internal/service"
	"github.com/rlaig/ezorder/internal/view"
)

// AdminHandler serves the platform admin dashboard.
type AdminHandler struct {
	Merchants *service.MerchantService
	W         *access.Wrapper
}

func NewAdminHandler(m *service.MerchantService, w *access.Wrapper) *AdminHandler {
	return &AdminHandler{Merchants: m, W: w}
}

// GET /v1/admin/merchants?page=&perPage=&status=&search=
func (h *AdminHandler) ListMerchants(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	page, perPage := pageParams(c)
	res, err := h.Merchants.List(ctx, page, perPage, c.QueryParam("status"), c.QueryParam("search"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AdminHandler) GetMerchant(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.Merchants.Get(ctx, c.Param("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

// CreateMerchant registers a merchant account and its pending profile.
func (h *AdminHandler) CreateMerchant(c echo.Context) error {
	var req service.NewMerchant
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.Merchants.Create(ctx, req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, m)
}

func (h *AdminHandler) UpdateMerchant(c echo.Context) error {
	var req view.MerchantInput
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.Merchants.Update(ctx, c.Param("id"), req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

type statusReq struct {
	Status model.MerchantStatus `json:"status"`
}

// PATCH /v1/admin/merchants/:id/status
func (h *AdminHandler) UpdateMerchantStatus(c echo.Context) error {
	var req statusReq
	if err := c.Bind(&req); err != nil || req.Status == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	m, err := h.Merchants.UpdateStatus(ctx, c.Param("id"), req.Status)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, m)
}

func (h *AdminHandler) Stats(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	st, err := h.Merchants.Stats(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, st)
}

// ListCollection browses any known collection. view=raw returns persisted
// records instead of display records.
//
// GET /v1/admin/collections/:collection?view=&page=&perPage=&filter=&sort=
func (h *AdminHandler) ListCollection(c echo.Context) error {
	coll, kind, ok := h.collection(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	opts := access.Options{Filter: c.QueryParam("filter"), Sort: c.QueryParam("sort")}
	if err := checkQuery(c.Param("collection"), opts); err != nil {
		return fail(c, err)
	}
	page, perPage := pageParams(c)
	res, err := coll.GetList(ctx, page, perPage, opts, kind)
	if err != nil {
		return fail(c, err)
	}
	if kind == model.KindNone {
		res.Items = redactAll(res.Items)
	}
	return c.JSON(http.StatusOK, res)
}

// GET /v1/admin/collections/:collection/:id?view=
func (h *AdminHandler) GetCollectionRecord(c echo.Context) error {
	coll, kind, ok := h.collection(c)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "unknown collection"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), requestTimeout)
	defer cancel()

	rec, err := coll.GetOne(ctx, c.Param("id"), kind)
	if err != nil {
		return fail(c, err)
	}
	if kind == model.KindNone {
		rec = redact(rec)
	}
	return c.JSONBlob(http.StatusOK, rec)
}

func (h *AdminHandler) collection(c echo.Context) (access.Collection, model.Kind, bool) {
	name := c.Param("collection")
	kind, ok := model.KindForCollection(name)
	if !ok {
		return access.Collection{}, model.KindNone, false
	}
	if c.QueryParam("view") == "raw" {
		kind = model.KindNone
	}
	return h.W.Collection(name), kind, true
}

// checkQuery rejects filter and sort fields the collection does not
// persist, and credential fields.
func checkQuery(collection string, q access.Options) error {
	kind, _ := model.KindForCollection(collection)
	persisted := schema.Persisted(kind)
	known := func(f string) bool { return persisted.Allowed(f) && f != "password_hash" }

	n, err := filter.Parse(q.Filter)
	if err != nil {
		return &service.InputError{Field: "filter", Message: err.Error()}
	}
	if f, bad := lo.Find(filter.Fields(n), func(f string) bool { return !known(f) }); bad {
		return &service.InputError{Field: "filter", Message: fmt.Sprintf("unknown field %q", f)}
	}
	sort, err := filter.ParseSort(q.Sort)
	if err != nil {
		return &service.InputError{Field: "sort", Message: err.Error()}
	}
	if sf, bad := lo.Find(sort, func(sf filter.SortField) bool { return !known(sf.Field) }); bad {
		return &service.InputError{Field: "sort", Message: fmt.Sprintf("unknown field %q", sf.Field)}
	}
	return nil
}

// redact drops credential fields from a raw record.
func redact(raw json.RawMessage) json.RawMessage {
	if !gjson.GetBytes(raw, "password_hash").Exists() {
		return raw
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return raw
	}
	delete(m, "password_hash")
	out, err := json.Marshal(m)
	if err != nil {
		return raw
	}
	return out
}

func redactAll(raws []json.RawMessage) []json.RawMessage {
	for i, r := range raws {
		raws[i] = redact(r)
	}
	return raws
}
