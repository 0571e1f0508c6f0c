package service

import (
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/filter"
	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/view"
)

// ErrCategoryInUse is returned when deleting a category that still has items.
var ErrCategoryInUse = errors.New("category still has menu items")

const menuSort = "sort_order,name"

// MenuService manages one merchant's categories, items and modifiers. Every
// method takes the acting merchant's id and refuses records of other merchants.
type MenuService struct{ W *access.Wrapper }

func NewMenuService(w *access.Wrapper) *MenuService { return &MenuService{W: w} }

// Categories lists categories with the number of items in each.
func (s *MenuService) Categories(ctx context.Context, merchantID string) ([]view.MenuCategory, error) {
	cats, err := access.GetFullList(ctx, s.W, transform.MenuCategories, access.Options{
		Filter: filter.Eq("merchant_id", merchantID),
		Sort:   menuSort,
	})
	if err != nil {
		return nil, err
	}
	items, err := access.ListRecords(ctx, s.W, transform.MenuItems, access.Options{
		Filter: filter.Eq("merchant_id", merchantID),
	})
	if err != nil {
		return nil, err
	}
	counts := lo.CountValuesBy(items, func(it model.MenuItem) string { return it.CategoryID })
	for i := range cats {
		cats[i].ItemCount = lo.ToPtr(counts[cats[i].ID])
	}
	return cats, nil
}

func (s *MenuService) CreateCategory(ctx context.Context, merchantID string, in view.MenuCategoryInput) (view.MenuCategory, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return view.MenuCategory{}, invalid("name", "required")
	}
	in.MerchantID = &merchantID
	in.SortOrder = lo.CoalesceOrEmpty(in.SortOrder, lo.ToPtr(0))
	in.IsEnabled = lo.CoalesceOrEmpty(in.IsEnabled, lo.ToPtr(true))
	return access.Create(ctx, s.W, transform.MenuCategories, in)
}

func (s *MenuService) UpdateCategory(ctx context.Context, merchantID, id string, in view.MenuCategoryInput) (view.MenuCategory, error) {
	if _, err := s.ownCategory(ctx, merchantID, id); err != nil {
		return view.MenuCategory{}, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return view.MenuCategory{}, invalid("name", "must not be empty")
	}
	in.MerchantID = nil
	return access.Update(ctx, s.W, transform.MenuCategories, id, in)
}

func (s *MenuService) DeleteCategory(ctx context.Context, merchantID, id string) error {
	if _, err := s.ownCategory(ctx, merchantID, id); err != nil {
		return err
	}
	items, err := access.ListRecords(ctx, s.W, transform.MenuItems, access.Options{
		Filter: filter.Eq("category_id", id),
	})
	if err != nil {
		return err
	}
	if len(items) > 0 {
		return ErrCategoryInUse
	}
	return access.Delete(ctx, s.W, transform.MenuCategories, id)
}

// Items lists menu items, optionally within one category, each with its
// category name.
func (s *MenuService) Items(ctx context.Context, merchantID, categoryID string) ([]view.MenuItem, error) {
	f := filter.Eq("merchant_id", merchantID)
	if categoryID != "" {
		f = filter.And(f, filter.Eq("category_id", categoryID))
	}
	items, err := access.GetFullList(ctx, s.W, transform.MenuItems, access.Options{Filter: f, Sort: menuSort})
	if err != nil {
		return nil, err
	}
	cats, err := access.ListRecords(ctx, s.W, transform.MenuCategories, access.Options{
		Filter: filter.Eq("merchant_id", merchantID),
	})
	if err != nil {
		return nil, err
	}
	names := lo.SliceToMap(cats, func(c model.MenuCategory) (string, string) { return c.ID, c.Name })
	for i := range items {
		if name, ok := names[items[i].CategoryID]; ok {
			items[i].CategoryName = lo.ToPtr(name)
		}
	}
	return items, nil
}

func (s *MenuService) CreateItem(ctx context.Context, merchantID string, in view.MenuItemInput) (view.MenuItem, error) {
	switch {
	case in.Name == nil || strings.TrimSpace(*in.Name) == "":
		return view.MenuItem{}, invalid("name", "required")
	case in.Price == nil || *in.Price < 0:
		return view.MenuItem{}, invalid("price", "must be zero or more")
	case in.CategoryID == nil:
		return view.MenuItem{}, invalid("categoryId", "required")
	}
	cat, err := s.ownCategory(ctx, merchantID, *in.CategoryID)
	if err != nil {
		return view.MenuItem{}, err
	}
	in.MerchantID = &merchantID
	in.IsAvailable = lo.CoalesceOrEmpty(in.IsAvailable, lo.ToPtr(true))
	in.IsFeatured = lo.CoalesceOrEmpty(in.IsFeatured, lo.ToPtr(false))
	in.SortOrder = lo.CoalesceOrEmpty(in.SortOrder, lo.ToPtr(0))
	it, err := access.Create(ctx, s.W, transform.MenuItems, in)
	if err != nil {
		return view.MenuItem{}, err
	}
	it.CategoryName = &cat.Name
	return it, nil
}

func (s *MenuService) UpdateItem(ctx context.Context, merchantID, id string, in view.MenuItemInput) (view.MenuItem, error) {
	if _, err := s.ownItem(ctx, merchantID, id); err != nil {
		return view.MenuItem{}, err
	}
	if in.Price != nil && *in.Price < 0 {
		return view.MenuItem{}, invalid("price", "must be zero or more")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return view.MenuItem{}, invalid("name", "must not be empty")
	}
	if in.CategoryID != nil {
		if _, err := s.ownCategory(ctx, merchantID, *in.CategoryID); err != nil {
			return view.MenuItem{}, err
		}
	}
	in.MerchantID = nil
	return access.Update(ctx, s.W, transform.MenuItems, id, in)
}

// DeleteItem removes an item and its modifiers.
func (s *MenuService) DeleteItem(ctx context.Context, merchantID, id string) error {
	if _, err := s.ownItem(ctx, merchantID, id); err != nil {
		return err
	}
	mods, err := access.ListRecords(ctx, s.W, transform.MenuModifiers, access.Options{
		Filter: filter.Eq("item_id", id),
	})
	if err != nil {
		return err
	}
	for _, m := range mods {
		if err := access.Delete(ctx, s.W, transform.MenuModifiers, m.ID); err != nil && !errors.Is(err, access.ErrNotFound) {
			return err
		}
	}
	return access.Delete(ctx, s.W, transform.MenuItems, id)
}

func (s *MenuService) Modifiers(ctx context.Context, merchantID, itemID string) ([]view.MenuModifier, error) {
	if _, err := s.ownItem(ctx, merchantID, itemID); err != nil {
		return nil, err
	}
	return access.GetFullList(ctx, s.W, transform.MenuModifiers, access.Options{
		Filter: filter.Eq("item_id", itemID),
		Sort:   "created",
	})
}

func (s *MenuService) CreateModifier(ctx context.Context, merchantID, itemID string, in view.MenuModifierInput) (view.MenuModifier, error) {
	if _, err := s.ownItem(ctx, merchantID, itemID); err != nil {
		return view.MenuModifier{}, err
	}
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return view.MenuModifier{}, invalid("name", "required")
	}
	if err := checkModifier(in); err != nil {
		return view.MenuModifier{}, err
	}
	in.ItemID = &itemID
	in.Type = lo.CoalesceOrEmpty(in.Type, lo.ToPtr(model.ModifierSingleChoice))
	in.IsRequired = lo.CoalesceOrEmpty(in.IsRequired, lo.ToPtr(false))
	if in.Options == nil {
		in.Options = model.ModifierOptions{}
	}
	return access.Create(ctx, s.W, transform.MenuModifiers, in)
}

func (s *MenuService) UpdateModifier(ctx context.Context, merchantID, id string, in view.MenuModifierInput) (view.MenuModifier, error) {
	stored, err := s.ownModifier(ctx, merchantID, id)
	if err != nil {
		return view.MenuModifier{}, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return view.MenuModifier{}, invalid("name", "must not be empty")
	}
	// Bounds the payload leaves out keep their stored values.
	bounds := in
	bounds.MinSelections = lo.CoalesceOrEmpty(in.MinSelections, stored.MinSelections)
	bounds.MaxSelections = lo.CoalesceOrEmpty(in.MaxSelections, stored.MaxSelections)
	if err := checkModifier(bounds); err != nil {
		return view.MenuModifier{}, err
	}
	in.ItemID = nil
	return access.Update(ctx, s.W, transform.MenuModifiers, id, in)
}

func (s *MenuService) DeleteModifier(ctx context.Context, merchantID, id string) error {
	if _, err := s.ownModifier(ctx, merchantID, id); err != nil {
		return err
	}
	return access.Delete(ctx, s.W, transform.MenuModifiers, id)
}

// ModifierCopy selects one source modifier. A non-blank Name renames the copy.
type ModifierCopy struct {
	ID   string  `json:"id"`
	Name *string `json:"name,omitempty"`
}

// CopyModifiers duplicates the selected modifiers of one item onto another
// item of the same merchant. Nothing is written when a selection does not
// belong to the source item.
func (s *MenuService) CopyModifiers(ctx context.Context, merchantID, fromItemID, toItemID string, picks []ModifierCopy) ([]view.MenuModifier, error) {
	if fromItemID == toItemID {
		return nil, invalid("toItemId", "must differ from fromItemId")
	}
	if len(picks) == 0 {
		return nil, invalid("modifiers", "select at least one modifier")
	}
	if _, err := s.ownItem(ctx, merchantID, fromItemID); err != nil {
		return nil, err
	}
	if _, err := s.ownItem(ctx, merchantID, toItemID); err != nil {
		return nil, err
	}
	source, err := access.ListRecords(ctx, s.W, transform.MenuModifiers, access.Options{
		Filter: filter.Eq("item_id", fromItemID),
	})
	if err != nil {
		return nil, err
	}
	byID := lo.KeyBy(source, func(m model.MenuModifier) string { return m.ID })

	inputs := make([]view.MenuModifierInput, 0, len(picks))
	for _, p := range picks {
		m, ok := byID[p.ID]
		if !ok {
			return nil, invalid("modifiers", "modifier "+p.ID+" does not belong to the source item")
		}
		name := m.Name
		if p.Name != nil && strings.TrimSpace(*p.Name) != "" {
			name = strings.TrimSpace(*p.Name)
		}
		inputs = append(inputs, view.MenuModifierInput{
			ItemID:        &toItemID,
			Name:          &name,
			Type:          &m.Type,
			Options:       slices.Clone(m.Options),
			IsRequired:    &m.Required,
			MinSelections: m.MinSelections,
			MaxSelections: m.MaxSelections,
		})
	}

	out := make([]view.MenuModifier, 0, len(inputs))
	for _, in := range inputs {
		if in.Options == nil {
			in.Options = model.ModifierOptions{}
		}
		created, err := access.Create(ctx, s.W, transform.MenuModifiers, in)
		if err != nil {
			return out, err
		}
		out = append(out, created)
	}
	return out, nil
}

func checkModifier(in view.MenuModifierInput) error {
	if in.Type != nil && !slices.Contains(model.ModifierTypes, *in.Type) {
		return invalid("type", "unknown modifier type")
	}
	if in.MinSelections != nil && in.MaxSelections != nil && *in.MinSelections > *in.MaxSelections {
		return invalid("minSelections", "must not exceed maxSelections")
	}
	return nil
}

func (s *MenuService) ownCategory(ctx context.Context, merchantID, id string) (model.MenuCategory, error) {
	c, err := access.GetRecord(ctx, s.W, transform.MenuCategories, id)
	if err != nil {
		return model.MenuCategory{}, err
	}
	if c.MerchantID != merchantID {
		return model.MenuCategory{}, ErrForbidden
	}
	return c, nil
}

func (s *MenuService) ownItem(ctx context.Context, merchantID, id string) (model.MenuItem, error) {
	it, err := access.GetRecord(ctx, s.W, transform.MenuItems, id)
	if err != nil {
		return model.MenuItem{}, err
	}
	if it.MerchantID != merchantID {
		return model.MenuItem{}, ErrForbidden
	}
	return it, nil
}

func (s *MenuService) ownModifier(ctx context.Context, merchantID, id string) (model.MenuModifier, error) {
	m, err := access.GetRecord(ctx, s.W, transform.MenuModifiers, id)
	if err != nil {
		return model.MenuModifier{}, err
	}
	if _, err := s.ownItem(ctx, merchantID, m.ItemID); err != nil {
		return model.MenuModifier{}, err
	}
	return m, nil
}
