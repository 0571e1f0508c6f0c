package view

import "github.com/rlaig/ezorder/internal/model"

type MenuCategory struct {
	Entity
	MerchantID  string  `json:"merchantId"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	SortOrder   int     `json:"sortOrder"`
	IsEnabled   bool    `json:"isEnabled"`

	// ItemCount is filled by list endpoints that count items per category.
	ItemCount    *int `json:"itemCount,omitempty"`
	DisplayOrder int  `json:"displayOrder"`
}

type MenuCategoryInput struct {
	MerchantID  *string `json:"merchantId,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	SortOrder   *int    `json:"sortOrder,omitempty"`
	IsEnabled   *bool   `json:"isEnabled,omitempty"`
}

type MenuItem struct {
	Entity
	MerchantID  string   `json:"merchantId"`
	CategoryID  string   `json:"categoryId"`
	Name        string   `json:"name"`
	Description *string  `json:"description,omitempty"`
	Price       float64  `json:"price"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	IsAvailable bool     `json:"isAvailable"`
	IsFeatured  bool     `json:"isFeatured"`
	SortOrder   int      `json:"sortOrder"`
	Allergens   []string `json:"allergens"`
	DietaryInfo []string `json:"dietaryInfo"`

	FormattedPrice     string `json:"formattedPrice"`
	AvailabilityStatus string `json:"availabilityStatus"`
	// CategoryName is populated from the category join.
	CategoryName *string `json:"categoryName,omitempty"`
}

// MenuItemInput uses nil slices for "absent". An empty, non-nil slice clears the tag set.
type MenuItemInput struct {
	MerchantID  *string  `json:"merchantId,omitempty"`
	CategoryID  *string  `json:"categoryId,omitempty"`
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	IsAvailable *bool    `json:"isAvailable,omitempty"`
	IsFeatured  *bool    `json:"isFeatured,omitempty"`
	SortOrder   *int     `json:"sortOrder,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
	DietaryInfo []string `json:"dietaryInfo,omitempty"`
}

type MenuModifier struct {
	Entity
	ItemID        string                `json:"itemId"`
	Name          string                `json:"name"`
	Type          model.ModifierType    `json:"type"`
	Options       model.ModifierOptions `json:"options"`
	IsRequired    bool                  `json:"isRequired"`
	MinSelections *int                  `json:"minSelections,omitempty"`
	MaxSelections *int                  `json:"maxSelections,omitempty"`

	TypeLabel      string `json:"typeLabel"`
	AllowsMultiple bool   `json:"allowsMultiple"`
	OptionCount    int    `json:"optionCount"`
}

type MenuModifierInput struct {
	ItemID        *string               `json:"itemId,omitempty"`
	Name          *string               `json:"name,omitempty"`
	Type          *model.ModifierType   `json:"type,omitempty"`
	Options       model.ModifierOptions `json:"options,omitempty"`
	IsRequired    *bool                 `json:"isRequired,omitempty"`
	MinSelections *int                  `json:"minSelections,omitempty"`
	MaxSelections *int                  `json:"maxSelections,omitempty"`
}
