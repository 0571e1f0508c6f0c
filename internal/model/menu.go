package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/tidwall/gjson"
)

// MenuCategory groups the items of one merchant's menu.
type MenuCategory struct {
	Base
	MerchantID  string  `json:"merchant_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	SortOrder   int     `json:"sort_order"`
	Enabled     bool    `json:"enabled"`
}

// MenuItem is a purchasable item. Allergens and DietaryInfo are stored as
// tag sets ({"nuts": true}); only the keys carry meaning.
type MenuItem struct {
	Base
	MerchantID  string         `json:"merchant_id"`
	CategoryID  string         `json:"category_id"`
	Name        string         `json:"name"`
	Description *string        `json:"description,omitempty"`
	Price       float64        `json:"price"`
	Image       *string        `json:"image,omitempty"`
	Available   bool           `json:"available"`
	Featured    bool           `json:"featured"`
	SortOrder   int            `json:"sort_order"`
	Allergens   TagSet         `json:"allergens,omitempty"`
	DietaryInfo TagSet         `json:"dietary_info,omitempty"`
}

// ModifierType selects how a modifier's options are chosen.
type ModifierType string

const (
	ModifierSingleChoice   ModifierType = "single_choice"
	ModifierMultipleChoice ModifierType = "multiple_choice"
	ModifierTextInput      ModifierType = "text_input"
)

var ModifierTypes = []ModifierType{ModifierSingleChoice, ModifierMultipleChoice, ModifierTextInput}

// MenuModifier is a customisation attached to a menu item (size, add-ons).
type MenuModifier struct {
	Base
	ItemID        string          `json:"item_id"`
	Name          string          `json:"name"`
	Type          ModifierType    `json:"type"`
	Options       ModifierOptions `json:"options"`
	Required      bool            `json:"required"`
	MinSelections *int            `json:"min_selections,omitempty"`
	MaxSelections *int            `json:"max_selections,omitempty"`
}

// ModifierOption is one selectable choice and its price adjustment.
type ModifierOption struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// ModifierOptions decodes both stored layouts: a list of {name, price}
// objects, or an object mapping option name to price. Map input is ordered
// by name so decoding is deterministic. It always encodes as a list.
type ModifierOptions []ModifierOption

func (o *ModifierOptions) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*o = nil
		return nil
	}
	switch b[0] {
	case '[':
		var list []ModifierOption
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*o = list
		return nil
	case '{':
		var m map[string]float64
		if err := json.Unmarshal(b, &m); err != nil {
			return fmt.Errorf("modifier options: %w", err)
		}
		out := make(ModifierOptions, 0, len(m))
		for _, name := range slices.Sorted(maps.Keys(m)) {
			out = append(out, ModifierOption{Name: name, Price: m[name]})
		}
		*o = out
		return nil
	}
	return fmt.Errorf("modifier options: unexpected JSON %q", b[:1])
}

// TagSet is a stored tag set read as its keys in document order. It encodes
// as an object of true values in the same order.
type TagSet []string

// NewTagSet keeps the first occurrence of each tag. A nil slice stays nil.
func NewTagSet(tags []string) TagSet {
	if tags == nil {
		return nil
	}
	out := make(TagSet, 0, len(tags))
	for _, t := range tags {
		if !slices.Contains(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func (s TagSet) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, t := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		key, err := json.Marshal(t)
		if err != nil {
			return nil, err
		}
		b.Write(key)
		b.WriteString(":true")
	}
	b.WriteByte('}')
	return b.Bytes(), nil
}

func (s *TagSet) UnmarshalJSON(b []byte) error {
	r := gjson.ParseBytes(b)
	switch {
	case r.Type == gjson.Null:
		*s = nil
		return nil
	case !r.IsObject():
		return fmt.Errorf("tag set: want object, got %s", r.Type)
	}
	out := TagSet{}
	r.ForEach(func(key, _ gjson.Result) bool {
		if !slices.Contains(out, key.String()) {
			out = append(out, key.String())
		}
		return true
	})
	*s = out
	return nil
}
