// Package transform converts records between their persisted shape
// (model) and their display shape (view). Every function is pure: inputs are
// never mutated and outputs share no mutable state with them.
package transform

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/schema"
	"github.com/rlaig/ezorder/internal/view"
)

// Entity binds one kind to its transformer pair. P is the persisted record,
// D the display object and In the display partial accepted on writes.
type Entity[P, D, In any] struct {
	kind       model.Kind
	ToFrontend func(P, Env) D
	ToDatabase func(In) model.Patch
}

func (e Entity[P, D, In]) Kind() model.Kind { return e.kind }

// Decode parses a raw persisted record of this entity's kind.
func (e Entity[P, D, In]) Decode(raw []byte) (P, error) {
	return Decode[P](e.kind, raw)
}

// FrontendJSON decodes a raw persisted record and returns its display shape as JSON.
func (e Entity[P, D, In]) FrontendJSON(raw []byte, env Env) (json.RawMessage, error) {
	p, err := e.Decode(raw)
	if err != nil {
		return nil, err
	}
	return json.Marshal(e.ToFrontend(p, env))
}

// DatabasePatch decodes a display partial and maps it to persisted field names.
// Keys the input type does not declare, computed fields included, are dropped.
func (e Entity[P, D, In]) DatabasePatch(raw []byte) (model.Patch, error) {
	var in In
	if err := json.Unmarshal(raw, &in); err != nil {
		return nil, &DecodeError{Kind: e.kind, Err: err}
	}
	return e.ToDatabase(in), nil
}

// Transformer is the kind-erased view of an Entity used for dispatch over
// raw JSON records.
type Transformer interface {
	Kind() model.Kind
	FrontendJSON(raw []byte, env Env) (json.RawMessage, error)
	DatabasePatch(raw []byte) (model.Patch, error)
}

var (
	Users           = Entity[model.User, view.User, view.UserInput]{model.KindUser, UserToFrontend, UserToDatabase}
	Merchants       = Entity[model.Merchant, view.Merchant, view.MerchantInput]{model.KindMerchant, MerchantToFrontend, MerchantToDatabase}
	MenuCategories  = Entity[model.MenuCategory, view.MenuCategory, view.MenuCategoryInput]{model.KindMenuCategory, MenuCategoryToFrontend, MenuCategoryToDatabase}
	MenuItems       = Entity[model.MenuItem, view.MenuItem, view.MenuItemInput]{model.KindMenuItem, MenuItemToFrontend, MenuItemToDatabase}
	MenuModifiers   = Entity[model.MenuModifier, view.MenuModifier, view.MenuModifierInput]{model.KindMenuModifier, MenuModifierToFrontend, MenuModifierToDatabase}
	QRCodes         = Entity[model.QrCode, view.QRCode, view.QRCodeInput]{model.KindQrCode, QRCodeToFrontend, QRCodeToDatabase}
	Customers       = Entity[model.Customer, view.Customer, view.CustomerInput]{model.KindCustomer, CustomerToFrontend, CustomerToDatabase}
	Orders          = Entity[model.Order, view.Order, view.OrderInput]{model.KindOrder, OrderToFrontend, OrderToDatabase}
	OrderItems      = Entity[model.OrderItem, view.OrderItem, view.OrderItemInput]{model.KindOrderItem, OrderItemToFrontend, OrderItemToDatabase}
	OrderModifiers  = Entity[model.OrderModifier, view.OrderModifier, view.OrderModifierInput]{model.KindOrderModifier, OrderModifierToFrontend, OrderModifierToDatabase}
	Payments        = Entity[model.Payment, view.Payment, view.PaymentInput]{model.KindPayment, PaymentToFrontend, PaymentToDatabase}
	Reviews         = Entity[model.Review, view.Review, view.ReviewInput]{model.KindReview, ReviewToFrontend, ReviewToDatabase}
	LoyaltyPoints   = Entity[model.LoyaltyPoint, view.LoyaltyPoint, view.LoyaltyPointInput]{model.KindLoyaltyPoint, LoyaltyPointToFrontend, LoyaltyPointToDatabase}
	SupportTickets  = Entity[model.SupportTicket, view.SupportTicket, view.SupportTicketInput]{model.KindSupportTicket, SupportTicketToFrontend, SupportTicketToDatabase}
	AnalyticsEvents = Entity[model.AnalyticsEvent, view.AnalyticsEvent, view.AnalyticsEventInput]{model.KindAnalyticsEvent, AnalyticsEventToFrontend, AnalyticsEventToDatabase}
)

var table = [model.KindCount]Transformer{
	model.KindUser:           Users,
	model.KindMerchant:       Merchants,
	model.KindMenuCategory:   MenuCategories,
	model.KindMenuItem:       MenuItems,
	model.KindMenuModifier:   MenuModifiers,
	model.KindQrCode:         QRCodes,
	model.KindCustomer:       Customers,
	model.KindOrder:          Orders,
	model.KindOrderItem:      OrderItems,
	model.KindOrderModifier:  OrderModifiers,
	model.KindPayment:        Payments,
	model.KindReview:         Reviews,
	model.KindLoyaltyPoint:   LoyaltyPoints,
	model.KindSupportTicket:  SupportTickets,
	model.KindAnalyticsEvent: AnalyticsEvents,
}

func init() {
	for _, k := range model.Kinds() {
		lo.Assertf(table[k] != nil, "transform: no transformer for kind %s", k)
		lo.Assertf(table[k].Kind() == k, "transform: transformer for %s registered under %s", table[k].Kind(), k)
	}
}

// For returns the transformer of kind k. KindNone and out of range kinds report false.
func For(k model.Kind) (Transformer, bool) {
	if !k.Valid() {
		return nil, false
	}
	return table[k], true
}

// ErrMalformed marks records that are not a JSON object.
var ErrMalformed = errors.New("malformed record")

// DecodeError reports a persisted record that violates its shape.
type DecodeError struct {
	Kind    model.Kind
	Missing []string
	Err     error
}

func (e *DecodeError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("decode %s: missing required fields: %s", e.Kind.Collection(), strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("decode %s: %v", e.Kind.Collection(), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses a raw persisted record of kind k, failing when the record
// is not an object or lacks any required field (null counts as absent).
// id, created and updated are required for every kind.
func Decode[P any](k model.Kind, raw []byte) (P, error) {
	var out P
	if !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return out, &DecodeError{Kind: k, Err: ErrMalformed}
	}
	required := append([]string{"id", "created", "updated"}, schema.Persisted(k).Required...)
	results := gjson.GetManyBytes(raw, required...)
	var missing []string
	for i, r := range results {
		if !r.Exists() || r.Type == gjson.Null {
			missing = append(missing, required[i])
		}
	}
	if len(missing) > 0 {
		return out, &DecodeError{Kind: k, Missing: missing}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &DecodeError{Kind: k, Err: err}
	}
	return out, nil
}

// Merge applies a persisted partial onto a complete record and returns the
// result. base is not modified. Nested values keep their encoded key order.
func Merge[P any](base P, patch model.Patch) (P, error) {
	var out P
	raw, err := json.Marshal(base)
	if err != nil {
		return out, err
	}
	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return out, err
	}
	for k, v := range patch {
		if fields[k], err = json.Marshal(v); err != nil {
			return out, err
		}
	}
	merged, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(merged, &out)
	return out, err
}
