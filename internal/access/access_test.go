package access

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/rlaig/ezorder/internal/docstore"
	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/validate"
	"github.com/rlaig/ezorder/internal/view"
)

var now = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newWrapper(t *testing.T) (*Wrapper, *docstore.Memory, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.WarnLevel)
	store := docstore.NewMemory().WithClock(func() time.Time { return now })
	w := New(store, validate.New(true, zap.New(core)), func() transform.Env {
		return transform.Env{Now: now, MenuBaseURL: "https://menu.example.ph"}
	})
	return w, store, logs
}

func seedMerchant(t *testing.T, store *docstore.Memory) string {
	t.Helper()
	raw, err := store.Create(context.Background(), "merchants", map[string]any{
		"user_id": "u1", "business_name": "Cafe Luna", "status": "active",
	})
	require.NoError(t, err)
	return gjson.GetBytes(raw, "id").String()
}

func TestCollectionGetOne(t *testing.T) {
	ctx := context.Background()
	w, store, _ := newWrapper(t)
	id := seedMerchant(t, store)

	out, err := w.Collection("merchants").GetOne(ctx, id, model.KindMerchant)
	require.NoError(t, err)
	doc := gjson.ParseBytes(out)
	require.Equal(t, "Cafe Luna", doc.Get("businessName").String())
	require.Equal(t, "green", doc.Get("statusColor").String())
	require.True(t, doc.Get("isActive").Bool())
	require.False(t, doc.Get("business_name").Exists())

	raw, err := w.Collection("merchants").GetOne(ctx, id, model.KindNone)
	require.NoError(t, err)
	require.Equal(t, "Cafe Luna", gjson.GetBytes(raw, "business_name").String())
	require.False(t, gjson.GetBytes(raw, "businessName").Exists())
}

func TestCollectionNotFound(t *testing.T) {
	ctx := context.Background()
	w, _, _ := newWrapper(t)

	_, err := w.Collection("merchants").GetOne(ctx, "missing", model.KindMerchant)
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, "failed to fetch merchants")

	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, NotFound, ae.Kind)
	require.Equal(t, 404, ae.Status)
	require.ErrorIs(t, err, docstore.ErrNotFound)

	_, err = w.Collection("orders").Update(ctx, "missing", map[string]any{"status": "confirmed"}, model.KindOrder)
	require.ErrorIs(t, err, ErrNotFound)
	require.EqualError(t, err, "failed to update orders")

	err = w.Collection("orders").Delete(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionCreateConvertsDisplayPayload(t *testing.T) {
	ctx := context.Background()
	w, store, logs := newWrapper(t)

	out, err := w.Collection("merchants").Create(ctx, map[string]any{
		"userId":       "u1",
		"businessName": "Cafe Luna",
		"status":       "pending",
		"statusColor":  "ignored",
	}, model.KindMerchant)
	require.NoError(t, err)
	require.Equal(t, "yellow", gjson.GetBytes(out, "statusColor").String())
	require.Zero(t, logs.Len())

	id := gjson.GetBytes(out, "id").String()
	stored, err := store.GetOne(ctx, "merchants", id)
	require.NoError(t, err)
	require.Equal(t, "u1", gjson.GetBytes(stored, "user_id").String())
	require.Equal(t, "Cafe Luna", gjson.GetBytes(stored, "business_name").String())
	require.False(t, gjson.GetBytes(stored, "statusColor").Exists())
	require.False(t, gjson.GetBytes(stored, "businessName").Exists())
}

func TestCollectionCreatePassesPersistedPayload(t *testing.T) {
	ctx := context.Background()
	w, store, _ := newWrapper(t)

	out, err := w.Collection("merchants").Create(ctx, map[string]any{
		"user_id": "u2", "business_name": "Kusina", "status": "active",
	}, model.KindMerchant)
	require.NoError(t, err)
	require.Equal(t, "Kusina", gjson.GetBytes(out, "displayName").String())

	stored, err := store.GetOne(ctx, "merchants", gjson.GetBytes(out, "id").String())
	require.NoError(t, err)
	require.Equal(t, "u2", gjson.GetBytes(stored, "user_id").String())

	raw, err := w.Collection("merchants").Create(ctx, map[string]any{"anything": 1}, model.KindNone)
	require.NoError(t, err)
	require.Equal(t, int64(1), gjson.GetBytes(raw, "anything").Int())
}

func TestCollectionUpdatePartial(t *testing.T) {
	ctx := context.Background()
	w, store, logs := newWrapper(t)
	id := seedMerchant(t, store)

	out, err := w.Collection("merchants").Update(ctx, id, map[string]any{"businessName": "New Name"}, model.KindMerchant)
	require.NoError(t, err)
	require.Equal(t, "New Name", gjson.GetBytes(out, "businessName").String())
	require.Equal(t, "u1", gjson.GetBytes(out, "userId").String())
	require.Zero(t, logs.Len())

	// A persisted-shape key in the payload disables conversion.
	out, err = w.Collection("merchants").Update(ctx, id, map[string]any{"gcash_number": "09171234567"}, model.KindMerchant)
	require.NoError(t, err)
	require.Equal(t, "09171234567", gjson.GetBytes(out, "gcashNumber").String())
}

func TestCollectionConflict(t *testing.T) {
	ctx := context.Background()
	w, _, _ := newWrapper(t)
	users := w.Collection("users")

	_, err := users.Create(ctx, map[string]any{"email": "a@b.ph", "name": "A", "role": "merchant", "isVerified": true}, model.KindUser)
	require.NoError(t, err)
	_, err = users.Create(ctx, map[string]any{"email": "a@b.ph", "name": "B", "role": "merchant", "isVerified": true}, model.KindUser)

	require.ErrorIs(t, err, ErrConflict)
	require.EqualError(t, err, "failed to create users")
	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, 400, ae.Status)
	require.Equal(t, map[string]string{"email": "value must be unique"}, ae.Fields)
}

func TestCollectionListing(t *testing.T) {
	ctx := context.Background()
	w, store, _ := newWrapper(t)
	for _, status := range []string{"placed", "ready", "placed"} {
		_, err := store.Create(ctx, "orders", map[string]any{"merchant_id": "m1", "status": status, "total_amount": 100})
		require.NoError(t, err)
	}
	orders := w.Collection("orders")

	page, err := orders.GetList(ctx, 1, 2, Options{Filter: `status = "placed"`}, model.KindOrder)
	require.NoError(t, err)
	require.Equal(t, 2, page.TotalItems)
	require.Equal(t, 1, page.TotalPages)
	require.Len(t, page.Items, 2)
	require.Equal(t, "₱100.00", gjson.GetBytes(page.Items[0], "formattedTotal").String())

	all, err := orders.GetFullList(ctx, Options{}, model.KindNone)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.True(t, gjson.GetBytes(all[0], "total_amount").Exists())

	_, err = orders.GetFullList(ctx, Options{Filter: `status = `}, model.KindOrder)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, Invalid, ae.Kind)
}

func TestMalformedRecord(t *testing.T) {
	ctx := context.Background()
	w, store, _ := newWrapper(t)
	raw, err := store.Create(ctx, "merchants", map[string]any{"business_name": "No Owner"})
	require.NoError(t, err)
	id := gjson.GetBytes(raw, "id").String()

	_, err = w.Collection("merchants").GetOne(ctx, id, model.KindMerchant)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, Malformed, ae.Kind)
	var de *transform.DecodeError
	require.ErrorAs(t, err, &de)
	require.Equal(t, []string{"user_id", "status"}, de.Missing)

	_, err = GetOne(ctx, w, transform.Merchants, id)
	require.ErrorAs(t, err, &de)
}

type failingClient struct{ err error }

func (f failingClient) GetOne(context.Context, string, string) (json.RawMessage, error) {
	return nil, f.err
}
func (f failingClient) GetList(context.Context, string, int, int, docstore.Query) (docstore.ListResult, error) {
	return docstore.ListResult{}, f.err
}
func (f failingClient) GetFullList(context.Context, string, docstore.Query) ([]json.RawMessage, error) {
	return nil, f.err
}
func (f failingClient) Create(context.Context, string, map[string]any) (json.RawMessage, error) {
	return nil, f.err
}
func (f failingClient) Update(context.Context, string, string, map[string]any) (json.RawMessage, error) {
	return nil, f.err
}
func (f failingClient) Delete(context.Context, string, string) error { return f.err }

func TestTransportFailure(t *testing.T) {
	ctx := context.Background()
	down := errors.New("dial tcp 127.0.0.1:3306: connect: connection refused")
	w := New(failingClient{down}, nil, nil)

	tests := []struct {
		name string
		call func() error
		msg  string
	}{
		{"fetch", func() error { _, err := GetList(ctx, w, transform.Orders, 1, 10, Options{}); return err }, "failed to fetch orders"},
		{"create", func() error {
			_, err := Create(ctx, w, transform.MenuItems, view.MenuItemInput{})
			return err
		}, "failed to create menu_items"},
		{"update", func() error {
			_, err := w.Collection("orders").Update(ctx, "x", map[string]any{}, model.KindOrder)
			return err
		}, "failed to update orders"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.EqualError(t, err, tt.msg)
			require.ErrorIs(t, err, down)
			require.NotErrorIs(t, err, ErrNotFound)
			var ae *Error
			require.ErrorAs(t, err, &ae)
			require.Equal(t, Transport, ae.Kind)
			require.Zero(t, ae.Status)
		})
	}
}

func TestTypedRoundTrip(t *testing.T) {
	ctx := context.Background()
	w, _, logs := newWrapper(t)

	name := "Chicken Adobo"
	price := 195.0
	avail := true
	cat := "c1"
	merchant := "m1"
	featured := false
	order := 1
	created, err := Create(ctx, w, transform.MenuItems, view.MenuItemInput{
		MerchantID: &merchant, CategoryID: &cat, Name: &name, Price: &price,
		IsAvailable: &avail, IsFeatured: &featured, SortOrder: &order,
	})
	require.NoError(t, err)
	require.Equal(t, "₱195.00", created.FormattedPrice)
	require.Equal(t, "available", created.AvailabilityStatus)
	require.Zero(t, logs.Len())

	off := false
	updated, err := Update(ctx, w, transform.MenuItems, created.ID, view.MenuItemInput{IsAvailable: &off})
	require.NoError(t, err)
	require.Equal(t, "Chicken Adobo", updated.Name)
	require.False(t, updated.IsAvailable)

	got, err := GetOne(ctx, w, transform.MenuItems, created.ID)
	require.NoError(t, err)
	require.Equal(t, updated, got)

	rec, err := GetRecord(ctx, w, transform.MenuItems, created.ID)
	require.NoError(t, err)
	require.Equal(t, "c1", rec.CategoryID)

	list, err := GetFullList(ctx, w, transform.MenuItems, Options{Filter: `merchant_id = "m1"`})
	require.NoError(t, err)
	require.Len(t, list, 1)

	page, err := GetList(ctx, w, transform.MenuItems, 1, 10, Options{})
	require.NoError(t, err)
	require.Equal(t, 1, page.TotalItems)

	require.NoError(t, Delete(ctx, w, transform.MenuItems, created.ID))
	_, err = GetOne(ctx, w, transform.MenuItems, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestTypedCreateWarnsOnMissingFields(t *testing.T) {
	ctx := context.Background()
	w, _, logs := newWrapper(t)

	name := "Cafe"
	_, err := Create(ctx, w, transform.Merchants, view.MerchantInput{BusinessName: &name})
	// The record lacks user_id and status, so reading it back fails the decode.
	require.Error(t, err)

	warnings := logs.FilterMessage("structural validation failed").All()
	require.NotEmpty(t, warnings)
	require.Contains(t, warnings[0].ContextMap()["error"], "userId")
}

func TestPatchPersistedFields(t *testing.T) {
	ctx := context.Background()
	w, store, _ := newWrapper(t)
	raw, err := store.Create(ctx, "orders", map[string]any{"merchant_id": "m1", "status": "ready", "total_amount": 50})
	require.NoError(t, err)
	id := gjson.GetBytes(raw, "id").String()

	o, err := Patch(ctx, w, transform.Orders, id, model.Patch{"status": "completed", "completed_at": "2024-01-15T12:00:00.000Z"})
	require.NoError(t, err)
	require.Equal(t, model.OrderCompleted, o.Status)
	require.False(t, o.CanAdvanceStatus)
	require.NotNil(t, o.CompletedAt)
}

func TestLooksDisplayShaped(t *testing.T) {
	require.True(t, LooksDisplayShaped(model.KindMerchant, map[string]any{"businessName": "x", "status": "active"}))
	require.False(t, LooksDisplayShaped(model.KindMerchant, map[string]any{"business_name": "x"}))
	require.True(t, LooksDisplayShaped(model.KindMerchant, map[string]any{}))
}
