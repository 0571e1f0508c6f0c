package transform

import (
	"slices"

	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/view"
)

func MenuCategoryToFrontend(c model.MenuCategory, _ Env) view.MenuCategory {
	return view.MenuCategory{
		Entity:       entity(c.Base),
		MerchantID:   c.MerchantID,
		Name:         c.Name,
		Description:  clone(c.Description),
		SortOrder:    c.SortOrder,
		IsEnabled:    c.Enabled,
		DisplayOrder: c.SortOrder,
	}
}

func MenuCategoryToDatabase(in view.MenuCategoryInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "merchant_id", in.MerchantID)
	model.Put(p, "name", in.Name)
	model.Put(p, "description", in.Description)
	model.Put(p, "sort_order", in.SortOrder)
	model.Put(p, "enabled", in.IsEnabled)
	return p
}

func MenuItemToFrontend(it model.MenuItem, _ Env) view.MenuItem {
	return view.MenuItem{
		Entity:             entity(it.Base),
		MerchantID:         it.MerchantID,
		CategoryID:         it.CategoryID,
		Name:               it.Name,
		Description:        clone(it.Description),
		Price:              it.Price,
		ImageURL:           clone(it.Image),
		IsAvailable:        it.Available,
		IsFeatured:         it.Featured,
		SortOrder:          it.SortOrder,
		Allergens:          tagList(it.Allergens),
		DietaryInfo:        tagList(it.DietaryInfo),
		FormattedPrice:     FormatCurrency(it.Price),
		AvailabilityStatus: availability(it.Available),
	}
}

func availability(available bool) string {
	if available {
		return "available"
	}
	return "unavailable"
}

func MenuItemToDatabase(in view.MenuItemInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "merchant_id", in.MerchantID)
	model.Put(p, "category_id", in.CategoryID)
	model.Put(p, "name", in.Name)
	model.Put(p, "description", in.Description)
	model.Put(p, "price", in.Price)
	model.Put(p, "image", in.ImageURL)
	model.Put(p, "available", in.IsAvailable)
	model.Put(p, "featured", in.IsFeatured)
	model.Put(p, "sort_order", in.SortOrder)
	if in.Allergens != nil {
		p["allergens"] = model.NewTagSet(in.Allergens)
	}
	if in.DietaryInfo != nil {
		p["dietary_info"] = model.NewTagSet(in.DietaryInfo)
	}
	return p
}

// tagList returns the tags of a stored set in stored order, never nil.
func tagList(s model.TagSet) []string {
	if len(s) == 0 {
		return []string{}
	}
	return slices.Clone(s)
}

func MenuModifierToFrontend(m model.MenuModifier, _ Env) view.MenuModifier {
	return view.MenuModifier{
		Entity:         entity(m.Base),
		ItemID:         m.ItemID,
		Name:           m.Name,
		Type:           m.Type,
		Options:        slices.Clone(m.Options),
		IsRequired:     m.Required,
		MinSelections:  clone(m.MinSelections),
		MaxSelections:  clone(m.MaxSelections),
		TypeLabel:      ModifierTypeLabel(m.Type),
		AllowsMultiple: m.Type == model.ModifierMultipleChoice,
		OptionCount:    len(m.Options),
	}
}

func MenuModifierToDatabase(in view.MenuModifierInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "item_id", in.ItemID)
	model.Put(p, "name", in.Name)
	model.Put(p, "type", in.Type)
	if in.Options != nil {
		p["options"] = slices.Clone(in.Options)
	}
	model.Put(p, "required", in.IsRequired)
	model.Put(p, "min_selections", in.MinSelections)
	model.Put(p, "max_selections", in.MaxSelections)
	return p
}

func QRCodeToFrontend(q model.QrCode, env Env) view.QRCode {
	out := view.QRCode{
		Entity:       entity(q.Base),
		MerchantID:   q.MerchantID,
		TableName:    clone(q.TableIdentifier),
		LocationName: clone(q.LocationIdentifier),
		QRCode:       q.Code,
		IsActive:     q.Active,
		UsageCount:   q.UsageCount,
		LastUsed:     clone(q.LastUsed),
		DisplayName:  qrDisplayName(q),
		QRCodeURL:    env.MenuBaseURL + "/menu/" + q.MerchantID + "?qr=" + q.Code,
		StatusColor:  QRStatusColor(q.Active),
	}
	if q.LastUsed != nil {
		formatted := FormatTimeAgo(*q.LastUsed, env.now())
		out.FormattedLastUsed = &formatted
	}
	return out
}

func qrDisplayName(q model.QrCode) string {
	switch {
	case q.TableIdentifier != nil && *q.TableIdentifier != "":
		return *q.TableIdentifier
	case q.LocationIdentifier != nil && *q.LocationIdentifier != "":
		return *q.LocationIdentifier
	}
	return "QR Code"
}

func QRCodeToDatabase(in view.QRCodeInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "merchant_id", in.MerchantID)
	model.Put(p, "table_identifier", in.TableName)
	model.Put(p, "location_identifier", in.LocationName)
	model.Put(p, "code", in.QRCode)
	model.Put(p, "active", in.IsActive)
	model.Put(p, "usage_count", in.UsageCount)
	model.Put(p, "last_used", in.LastUsed)
	return p
}
