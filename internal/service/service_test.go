package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/docstore"
	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/queue"
	"github.com/rlaig/ezorder/internal/repository"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/utils"
	"github.com/rlaig/ezorder/internal/validate"
	"github.com/rlaig/ezorder/internal/view"
)

var start = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store *docstore.Memory
	w     *access.Wrapper
	users *repository.UserRepo
}

// newFixture returns a memory store whose clock advances one second per call,
// so records sort by creation order.
func newFixture(t *testing.T) fixture {
	t.Helper()
	var mu sync.Mutex
	tick := start
	store := docstore.NewMemory().WithClock(func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		tick = tick.Add(time.Second)
		return tick
	})
	w := access.New(store, validate.New(true, zap.NewNop()), func() transform.Env {
		return transform.Env{Now: start.Add(time.Hour), MenuBaseURL: "https://menu.example.ph"}
	})
	return fixture{store: store, w: w, users: repository.NewUserRepo(w)}
}

func (f fixture) create(t *testing.T, coll string, data map[string]any) string {
	t.Helper()
	raw, err := f.store.Create(context.Background(), coll, data)
	require.NoError(t, err)
	return gjson.GetBytes(raw, "id").String()
}

type recordingPublisher struct{ events []queue.OrderStatusChangedEvent }

func (p *recordingPublisher) PublishOrderStatusChanged(_ context.Context, ev queue.OrderStatusChangedEvent) error {
	p.events = append(p.events, ev)
	return nil
}

func TestMerchantCreate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewMerchantService(f.w, f.users, 4, zap.NewNop())

	m, err := svc.Create(ctx, NewMerchant{
		BusinessName: " Cafe Luna ", Email: "Luna@Cafe.ph", Phone: "09171234567", VerifyImmediately: true,
	})
	require.NoError(t, err)
	require.Equal(t, "Cafe Luna", m.BusinessName)
	require.Equal(t, model.MerchantPending, m.Status)
	require.Equal(t, "yellow", m.StatusColor)
	require.False(t, m.IsActive)
	require.Equal(t, "09171234567", *m.Phone)
	require.Nil(t, m.Address)
	require.NotNil(t, m.Settings)

	u, err := f.users.GetByID(ctx, m.UserID)
	require.NoError(t, err)
	require.Equal(t, "luna@cafe.ph", u.Email)
	require.Equal(t, "Cafe Luna", u.Name)
	require.Equal(t, model.RoleMerchant, u.Role)
	require.True(t, u.Verified)
	require.True(t, utils.VerifyPassword(*u.PasswordHash, DefaultMerchantPassword))

	_, err = svc.Create(ctx, NewMerchant{BusinessName: "Other", Email: "LUNA@cafe.ph"})
	require.ErrorIs(t, err, ErrEmailInUse)
}

func TestMerchantCreateRejectsInput(t *testing.T) {
	svc := NewMerchantService(newFixture(t).w, nil, 4, zap.NewNop())
	tests := []struct {
		name  string
		in    NewMerchant
		field string
	}{
		{"no name", NewMerchant{Email: "a@b.ph"}, "businessName"},
		{"bad email", NewMerchant{BusinessName: "X", Email: "nope"}, "email"},
		{"short password", NewMerchant{BusinessName: "X", Email: "a@b.ph", Password: "short"}, "password"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			require.ErrorIs(t, err, ErrInvalidInput)
			var ie *InputError
			require.ErrorAs(t, err, &ie)
			require.Equal(t, tt.field, ie.Field)
		})
	}
}

func TestMerchantListAndProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewMerchantService(f.w, f.users, 4, zap.NewNop())
	f.create(t, "merchants", map[string]any{"user_id": "u1", "business_name": "Cafe Luna", "status": "active"})
	f.create(t, "merchants", map[string]any{"user_id": "u2", "business_name": "Bistro Sol", "status": "pending"})
	f.create(t, "merchants", map[string]any{"user_id": "u3", "business_name": "Luna Grill", "status": "active"})

	page, err := svc.List(ctx, 1, 20, "", "")
	require.NoError(t, err)
	require.Equal(t, 3, page.TotalItems)
	require.Equal(t, []string{"Luna Grill", "Bistro Sol", "Cafe Luna"},
		lo.Map(page.Items, func(m view.Merchant, _ int) string { return m.BusinessName }))

	page, err = svc.List(ctx, 1, 20, "active", "LUNA")
	require.NoError(t, err)
	require.Len(t, page.Items, 2)

	_, err = svc.List(ctx, 1, 20, "closed", "")
	require.ErrorIs(t, err, ErrInvalidInput)

	prof, err := svc.Profile(ctx, "u2")
	require.NoError(t, err)
	require.Equal(t, "Bistro Sol", prof.BusinessName)

	_, err = svc.Profile(ctx, "nobody")
	require.ErrorIs(t, err, ErrNoMerchantProfile)

	updated, err := svc.UpdateProfile(ctx, "u2", view.MerchantInput{
		Address: lo.ToPtr("Makati"),
		Status:  lo.ToPtr(model.MerchantActive),
		UserID:  lo.ToPtr("u9"),
	})
	require.NoError(t, err)
	require.Equal(t, "Makati", *updated.Address)
	require.Equal(t, model.MerchantPending, updated.Status)
	require.Equal(t, "u2", updated.UserID)

	active, err := svc.UpdateStatus(ctx, updated.ID, model.MerchantActive)
	require.NoError(t, err)
	require.True(t, active.IsActive)

	_, err = svc.UpdateStatus(ctx, updated.ID, "closed")
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestMerchantStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewMerchantService(f.w, f.users, 4, zap.NewNop())
	f.create(t, "merchants", map[string]any{"user_id": "u1", "business_name": "A", "status": "active"})
	f.create(t, "merchants", map[string]any{"user_id": "u2", "business_name": "B", "status": "pending"})
	f.create(t, "orders", map[string]any{"merchant_id": "m1", "status": "completed", "total_amount": 1200.5})
	f.create(t, "orders", map[string]any{"merchant_id": "m1", "status": "completed", "total_amount": 99.5})
	f.create(t, "orders", map[string]any{"merchant_id": "m1", "status": "placed", "total_amount": 50})

	st, err := svc.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, st.TotalMerchants)
	require.Equal(t, 1, st.MerchantsByStatus[model.MerchantActive])
	require.Equal(t, 0, st.MerchantsByStatus[model.MerchantSuspended])
	require.Equal(t, 3, st.TotalOrders)
	require.Equal(t, 1300.0, st.TotalRevenue)
	require.Equal(t, "₱1,300.00", st.FormattedRevenue)
}

func TestMenuCategoriesAndItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewMenuService(f.w)

	drinks, err := svc.CreateCategory(ctx, "m1", view.MenuCategoryInput{Name: lo.ToPtr("Drinks"), SortOrder: lo.ToPtr(2)})
	require.NoError(t, err)
	require.True(t, drinks.IsEnabled)
	mains, err := svc.CreateCategory(ctx, "m1", view.MenuCategoryInput{Name: lo.ToPtr("Mains"), SortOrder: lo.ToPtr(1)})
	require.NoError(t, err)
	_, err = svc.CreateCategory(ctx, "m1", view.MenuCategoryInput{Name: lo.ToPtr("  ")})
	require.ErrorIs(t, err, ErrInvalidInput)

	adobo, err := svc.CreateItem(ctx, "m1", view.MenuItemInput{
		CategoryID: &mains.ID, Name: lo.ToPtr("Adobo"), Price: lo.ToPtr(180.0),
	})
	require.NoError(t, err)
	require.True(t, adobo.IsAvailable)
	require.Equal(t, "Mains", *adobo.CategoryName)
	require.Equal(t, "₱180.00", adobo.FormattedPrice)
	_, err = svc.CreateItem(ctx, "m1", view.MenuItemInput{
		CategoryID: &mains.ID, Name: lo.ToPtr("Sinigang"), Price: lo.ToPtr(220.0),
	})
	require.NoError(t, err)

	_, err = svc.CreateItem(ctx, "m2", view.MenuItemInput{
		CategoryID: &mains.ID, Name: lo.ToPtr("Stolen"), Price: lo.ToPtr(1.0),
	})
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.CreateItem(ctx, "m1", view.MenuItemInput{CategoryID: &mains.ID, Name: lo.ToPtr("Free?")})
	require.ErrorIs(t, err, ErrInvalidInput)

	cats, err := svc.Categories(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, []string{"Mains", "Drinks"}, lo.Map(cats, func(c view.MenuCategory, _ int) string { return c.Name }))
	require.Equal(t, 2, *cats[0].ItemCount)
	require.Equal(t, 0, *cats[1].ItemCount)

	items, err := svc.Items(ctx, "m1", mains.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"Adobo", "Sinigang"}, lo.Map(items, func(it view.MenuItem, _ int) string { return it.Name }))
	require.Equal(t, "Mains", *items[1].CategoryName)

	items, err = svc.Items(ctx, "m1", drinks.ID)
	require.NoError(t, err)
	require.Empty(t, items)

	require.ErrorIs(t, svc.DeleteCategory(ctx, "m1", mains.ID), ErrCategoryInUse)
	require.NoError(t, svc.DeleteCategory(ctx, "m1", drinks.ID))

	moved, err := svc.UpdateItem(ctx, "m1", adobo.ID, view.MenuItemInput{IsAvailable: lo.ToPtr(false)})
	require.NoError(t, err)
	require.Equal(t, "unavailable", moved.AvailabilityStatus)
	_, err = svc.UpdateItem(ctx, "m2", adobo.ID, view.MenuItemInput{IsAvailable: lo.ToPtr(true)})
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.UpdateItem(ctx, "m1", "missing", view.MenuItemInput{})
	require.ErrorIs(t, err, access.ErrNotFound)
}

func TestUpdateModifierSelectionBounds(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewMenuService(f.w)
	item := f.create(t, "menu_items", map[string]any{
		"merchant_id": "m1", "category_id": "c1", "name": "Halo-halo", "price": 150,
		"available": true, "featured": false, "sort_order": 0,
	})
	mod, err := svc.CreateModifier(ctx, "m1", item, view.MenuModifierInput{
		Name: lo.ToPtr("Toppings"), Type: lo.ToPtr(model.ModifierMultipleChoice),
		Options:       model.ModifierOptions{{Name: "Leche flan", Price: 20}, {Name: "Ube", Price: 15}},
		MinSelections: lo.ToPtr(1), MaxSelections: lo.ToPtr(2),
	})
	require.NoError(t, err)

	// Applied in order; accepted updates change the stored bounds.
	cases := []struct {
		name     string
		in       view.MenuModifierInput
		ok       bool
		min, max int
	}{
		{name: "min above stored max", in: view.MenuModifierInput{MinSelections: lo.ToPtr(3)}, min: 1, max: 2},
		{name: "max below stored min", in: view.MenuModifierInput{MaxSelections: lo.ToPtr(0)}, min: 1, max: 2},
		{name: "both raised together", in: view.MenuModifierInput{MinSelections: lo.ToPtr(3), MaxSelections: lo.ToPtr(4)}, ok: true, min: 3, max: 4},
		{name: "max lowered to stored min", in: view.MenuModifierInput{MaxSelections: lo.ToPtr(3)}, ok: true, min: 3, max: 3},
		{name: "min above lowered max", in: view.MenuModifierInput{MinSelections: lo.ToPtr(4)}, min: 3, max: 3},
		{name: "unrelated field", in: view.MenuModifierInput{Name: lo.ToPtr("Sahog")}, ok: true, min: 3, max: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateModifier(ctx, "m1", mod.ID, tc.in)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidInput)
			}
			got, err := access.GetRecord(ctx, f.w, transform.MenuModifiers, mod.ID)
			require.NoError(t, err)
			require.Equal(t, tc.min, *got.MinSelections)
			require.Equal(t, tc.max, *got.MaxSelections)
		})
	}
}

func TestMenuModifiersCopy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewMenuService(f.w)
	cat := f.create(t, "menu_categories", map[string]any{"merchant_id": "m1", "name": "Coffee", "sort_order": 0, "enabled": true})
	item := func(merchant, name string) string {
		return f.create(t, "menu_items", map[string]any{
			"merchant_id": merchant, "category_id": cat, "name": name, "price": 120,
			"available": true, "featured": false, "sort_order": 0,
		})
	}
	latte, mocha, foreign := item("m1", "Latte"), item("m1", "Mocha"), item("m2", "Tea")

	size, err := svc.CreateModifier(ctx, "m1", latte, view.MenuModifierInput{
		Name:    lo.ToPtr("Size"),
		Options: model.ModifierOptions{{Name: "Small", Price: 0}, {Name: "Large", Price: 25}},
	})
	require.NoError(t, err)
	require.Equal(t, model.ModifierSingleChoice, size.Type)
	require.Equal(t, 2, size.OptionCount)
	milk, err := svc.CreateModifier(ctx, "m1", latte, view.MenuModifierInput{
		Name: lo.ToPtr("Milk"), Type: lo.ToPtr(model.ModifierMultipleChoice),
		Options: model.ModifierOptions{{Name: "Oat", Price: 30}},
	})
	require.NoError(t, err)
	_, err = svc.CreateModifier(ctx, "m1", latte, view.MenuModifierInput{Name: lo.ToPtr("Bad"), Type: lo.ToPtr(model.ModifierType("dial"))})
	require.ErrorIs(t, err, ErrInvalidInput)

	copied, err := svc.CopyModifiers(ctx, "m1", latte, mocha, []ModifierCopy{
		{ID: size.ID},
		{ID: milk.ID, Name: lo.ToPtr("Milk choice")},
	})
	require.NoError(t, err)
	require.Len(t, copied, 2)
	require.Equal(t, mocha, copied[0].ItemID)
	require.Equal(t, "Size", copied[0].Name)
	require.Equal(t, size.Options, copied[0].Options)
	require.Equal(t, "Milk choice", copied[1].Name)
	require.True(t, copied[1].AllowsMultiple)

	mods, err := svc.Modifiers(ctx, "m1", mocha)
	require.NoError(t, err)
	require.Len(t, mods, 2)
	original, err := svc.Modifiers(ctx, "m1", latte)
	require.NoError(t, err)
	require.Equal(t, "Milk", original[1].Name)

	_, err = svc.CopyModifiers(ctx, "m1", mocha, latte, []ModifierCopy{{ID: size.ID}})
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.CopyModifiers(ctx, "m1", latte, foreign, []ModifierCopy{{ID: size.ID}})
	require.ErrorIs(t, err, ErrForbidden)
	_, err = svc.CopyModifiers(ctx, "m1", latte, latte, []ModifierCopy{{ID: size.ID}})
	require.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, svc.DeleteItem(ctx, "m1", mocha))
	left, err := access.ListRecords(ctx, f.w, transform.MenuModifiers, access.Options{})
	require.NoError(t, err)
	require.Len(t, left, 2)
}

func TestOrderLifecycle(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	pub := &recordingPublisher{}
	svc := NewOrderService(f.w, pub, zap.NewNop())
	svc.Now = func() time.Time { return start.Add(2 * time.Hour) }

	id := f.create(t, "orders", map[string]any{"merchant_id": "m1", "status": "placed", "total_amount": 250})

	for _, want := range []model.OrderStatus{model.OrderConfirmed, model.OrderPreparing, model.OrderReady} {
		o, err := svc.Advance(ctx, "m1", id)
		require.NoError(t, err)
		require.Equal(t, want, o.Status)
		require.Nil(t, o.CompletedAt)
	}
	done, err := svc.Advance(ctx, "m1", id)
	require.NoError(t, err)
	require.Equal(t, model.OrderCompleted, done.Status)
	require.Equal(t, "2024-03-01T11:00:00.000Z", *done.CompletedAt)
	require.False(t, done.CanAdvanceStatus)

	_, err = svc.Advance(ctx, "m1", id)
	require.ErrorIs(t, err, ErrCannotAdvance)
	_, err = svc.Cancel(ctx, "m1", id)
	require.ErrorIs(t, err, ErrOrderClosed)
	_, err = svc.Advance(ctx, "m2", id)
	require.ErrorIs(t, err, ErrForbidden)

	require.Len(t, pub.events, 4)
	last := pub.events[3]
	require.Equal(t, model.OrderReady, last.From)
	require.Equal(t, model.OrderCompleted, last.To)
	require.Equal(t, "m1", last.MerchantID)
	require.Equal(t, 250.0, last.TotalAmount)
	require.NotEmpty(t, last.MessageID)

	other := f.create(t, "orders", map[string]any{"merchant_id": "m1", "status": "preparing", "total_amount": 90})
	cancelled, err := svc.Cancel(ctx, "m1", other)
	require.NoError(t, err)
	require.Equal(t, "red", cancelled.StatusColor)
	require.Len(t, pub.events, 5)
}

func TestOrderListAndDetail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewOrderService(f.w, nil, zap.NewNop())

	first := f.create(t, "orders", map[string]any{"merchant_id": "m1", "status": "placed", "total_amount": 100})
	f.create(t, "orders", map[string]any{"merchant_id": "m1", "status": "ready", "total_amount": 200})
	f.create(t, "orders", map[string]any{"merchant_id": "m2", "status": "placed", "total_amount": 300})
	f.create(t, "orders", map[string]any{"merchant_id": "m1", "status": "placed", "total_amount": 400})

	page, err := svc.List(ctx, "m1", "", 1, 2)
	require.NoError(t, err)
	require.Equal(t, 3, page.TotalItems)
	require.Equal(t, 2, page.TotalPages)
	require.Equal(t, 400.0, page.Items[0].TotalAmount)

	page, err = svc.List(ctx, "m1", "placed", 1, 30)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	_, err = svc.List(ctx, "m1", "lost", 1, 30)
	require.ErrorIs(t, err, ErrInvalidInput)

	li := f.create(t, "order_items", map[string]any{
		"order_id": first, "menu_item_id": "i1", "item_name": "Latte", "quantity": 2, "unit_price": 50, "total_price": 100,
	})
	f.create(t, "order_items", map[string]any{
		"order_id": first, "menu_item_id": "i2", "item_name": "Cookie", "quantity": 1, "unit_price": 0, "total_price": 0,
	})
	f.create(t, "order_modifiers", map[string]any{
		"order_item_id": li, "modifier_name": "Size", "option_name": "Large", "option_value": "Large", "price_adjustment": 25,
	})

	o, err := svc.Detail(ctx, "m1", first)
	require.NoError(t, err)
	require.Len(t, o.Items, 2)
	require.Equal(t, "Latte", o.Items[0].ItemName)
	require.Len(t, o.Items[0].Modifiers, 1)
	require.Equal(t, "₱25.00", o.Items[0].Modifiers[0].FormattedPriceAdjustment)
	require.Empty(t, o.Items[1].Modifiers)

	_, err = svc.Detail(ctx, "m2", first)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestOrderStats(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewOrderService(f.w, nil, zap.NewNop())
	for _, o := range []struct {
		status string
		amount float64
	}{{"completed", 100.10}, {"completed", 200.20}, {"cancelled", 50}, {"placed", 0.05}} {
		f.create(t, "orders", map[string]any{"merchant_id": "m1", "status": o.status, "total_amount": o.amount})
	}
	f.create(t, "orders", map[string]any{"merchant_id": "m2", "status": "completed", "total_amount": 999})

	st, err := svc.Stats(ctx, "m1", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Equal(t, 4, st.TotalOrders)
	require.Equal(t, 350.35, st.TotalRevenue)
	require.Equal(t, 87.59, st.AverageOrderValue)
	require.Equal(t, map[model.OrderStatus]int{"completed": 2, "cancelled": 1, "placed": 1}, st.OrdersByStatus)
	require.Equal(t, "₱350.35", st.FormattedRevenue)

	// created stamps run 09:00:01, :02, ... in insertion order
	st, err = svc.Stats(ctx, "m1", start.Add(2*time.Second), start.Add(3*time.Second))
	require.NoError(t, err)
	require.Equal(t, 2, st.TotalOrders)

	empty, err := svc.Stats(ctx, "m3", time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Zero(t, empty.TotalOrders)
	require.Zero(t, empty.AverageOrderValue)
	require.Equal(t, "₱0.00", empty.FormattedAverage)
}

func TestQRCodes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	svc := NewQRService(f.w)

	q, err := svc.Create(ctx, "m1", view.QRCodeInput{TableName: lo.ToPtr(" Table 4 "), UsageCount: lo.ToPtr(99)})
	require.NoError(t, err)
	require.Regexp(t, `^m1-[0-9a-f]{12}$`, q.QRCode)
	require.Equal(t, "Table 4", *q.TableName)
	require.True(t, q.IsActive)
	require.Zero(t, q.UsageCount)
	require.Equal(t, "https://menu.example.ph/menu/m1?qr="+q.QRCode, q.QRCodeURL)

	second, err := svc.Create(ctx, "m1", view.QRCodeInput{LocationName: lo.ToPtr("Patio")})
	require.NoError(t, err)
	list, err := svc.List(ctx, "m1")
	require.NoError(t, err)
	require.Equal(t, []string{second.ID, q.ID}, lo.Map(list, func(c view.QRCode, _ int) string { return c.ID }))

	off, err := svc.Update(ctx, "m1", q.ID, view.QRCodeInput{IsActive: lo.ToPtr(false), QRCode: lo.ToPtr("hijack")})
	require.NoError(t, err)
	require.False(t, off.IsActive)
	require.Equal(t, q.QRCode, off.QRCode)

	_, err = svc.Update(ctx, "m2", q.ID, view.QRCodeInput{IsActive: lo.ToPtr(true)})
	require.ErrorIs(t, err, ErrForbidden)
	require.ErrorIs(t, svc.Delete(ctx, "m2", q.ID), ErrForbidden)
	require.NoError(t, svc.Delete(ctx, "m1", q.ID))
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	log := zap.NewNop()

	require.NoError(t, EnsureAdmin(ctx, f.users, "", "", 4, log))
	require.Error(t, EnsureAdmin(ctx, f.users, "root@ezorder.ph", "", 4, log))
	require.NoError(t, EnsureAdmin(ctx, f.users, "root@ezorder.ph", "s3cret-pass", 4, log))
	require.NoError(t, EnsureAdmin(ctx, f.users, "root@ezorder.ph", "other-pass", 4, log))

	u, err := f.users.GetByEmail(ctx, "root@ezorder.ph")
	require.NoError(t, err)
	require.Equal(t, model.RoleAdmin, u.Role)
	require.True(t, u.Verified)
	require.True(t, utils.VerifyPassword(*u.PasswordHash, "s3cret-pass"))
}
