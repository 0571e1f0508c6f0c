// Package schema declares, for every entity kind, which fields the persisted
// and the display shape carry. It is the single source the structural
// validator and the decode boundary read from.
package schema

import (
	"fmt"
	"slices"

	"github.com/samber/lo"

	"github.com/rlaig/ezorder/internal/model"
)

// Base fields are accepted on either shape without being declared.
var BaseFields = []string{"id", "created", "updated", "createdAt", "updatedAt"}

// Descriptor lists the required and optional keys of one shape. Computed
// names the display-only derived keys; they are always part of Optional.
type Descriptor struct {
	Required []string
	Optional []string
	Computed []string
}

func newDescriptor(required, optional, computed []string) Descriptor {
	return Descriptor{
		Required: required,
		Optional: slices.Concat(optional, computed),
		Computed: computed,
	}
}

// Partial returns a copy where every field is optional. Update payloads are
// checked against it.
func (d Descriptor) Partial() Descriptor {
	return Descriptor{
		Optional: slices.Concat(d.Required, d.Optional),
		Computed: slices.Clone(d.Computed),
	}
}

// Allowed reports whether key may appear on an object of this shape.
func (d Descriptor) Allowed(key string) bool {
	return slices.Contains(d.Required, key) || slices.Contains(d.Optional, key) || slices.Contains(BaseFields, key)
}

// IsComputed reports whether key is a derived display field.
func (d Descriptor) IsComputed(key string) bool {
	return slices.Contains(d.Computed, key)
}

// Fields returns every declared key, required first.
func (d Descriptor) Fields() []string {
	return slices.Concat(d.Required, d.Optional)
}

type pair struct {
	persisted Descriptor
	display   Descriptor
}

var registry = [model.KindCount]pair{
	model.KindUser: {
		persisted: newDescriptor(
			[]string{"email", "name", "role", "verified"},
			[]string{"avatar", "password_hash"}, nil),
		display: newDescriptor(
			[]string{"email", "name", "role", "isVerified"},
			[]string{"avatar"},
			[]string{"displayName"}),
	},
	model.KindMerchant: {
		persisted: newDescriptor(
			[]string{"user_id", "business_name", "status"},
			[]string{"address", "phone", "gcash_number", "settings"}, nil),
		display: newDescriptor(
			[]string{"userId", "businessName", "status"},
			[]string{"address", "phone", "gcashNumber", "settings"},
			[]string{"displayName", "statusColor", "isActive"}),
	},
	model.KindMenuCategory: {
		persisted: newDescriptor(
			[]string{"merchant_id", "name", "sort_order", "enabled"},
			[]string{"description"}, nil),
		display: newDescriptor(
			[]string{"merchantId", "name", "sortOrder", "isEnabled"},
			[]string{"description"},
			[]string{"itemCount", "displayOrder"}),
	},
	model.KindMenuItem: {
		persisted: newDescriptor(
			[]string{"merchant_id", "category_id", "name", "price", "available", "featured", "sort_order"},
			[]string{"description", "image", "allergens", "dietary_info"}, nil),
		display: newDescriptor(
			[]string{"merchantId", "categoryId", "name", "price", "isAvailable", "isFeatured", "sortOrder"},
			[]string{"description", "imageUrl", "allergens", "dietaryInfo"},
			[]string{"formattedPrice", "availabilityStatus", "categoryName"}),
	},
	model.KindMenuModifier: {
		persisted: newDescriptor(
			[]string{"item_id", "name", "type", "options", "required"},
			[]string{"min_selections", "max_selections"}, nil),
		display: newDescriptor(
			[]string{"itemId", "name", "type", "options", "isRequired"},
			[]string{"minSelections", "maxSelections"},
			[]string{"typeLabel", "allowsMultiple", "optionCount"}),
	},
	model.KindQrCode: {
		persisted: newDescriptor(
			[]string{"merchant_id", "code", "active", "usage_count"},
			[]string{"table_identifier", "location_identifier", "last_used"}, nil),
		display: newDescriptor(
			[]string{"merchantId", "qrCode", "isActive", "usageCount"},
			[]string{"tableName", "locationName", "lastUsed"},
			[]string{"displayName", "qrCodeUrl", "statusColor", "formattedLastUsed"}),
	},
	model.KindCustomer: {
		persisted: newDescriptor(
			[]string{"name"},
			[]string{"phone", "preferences"}, nil),
		display: newDescriptor(
			[]string{"customerName"},
			[]string{"customerPhone", "preferences"},
			[]string{"displayName"}),
	},
	model.KindOrder: {
		persisted: newDescriptor(
			[]string{"merchant_id", "status", "total_amount"},
			[]string{"customer_id", "qr_code_id", "customer_name", "customer_phone", "tax_amount",
				"special_instructions", "estimated_ready_time", "completed_at"}, nil),
		display: newDescriptor(
			[]string{"merchantId", "status", "totalAmount"},
			[]string{"customerId", "qrCodeId", "customerName", "customerPhone", "taxAmount",
				"specialInstructions", "estimatedReadyTime", "completedAt"},
			[]string{"formattedTotal", "statusColor", "statusLabel", "orderNumber", "timeAgo",
				"canAdvanceStatus", "nextStatus", "items"}),
	},
	model.KindOrderItem: {
		persisted: newDescriptor(
			[]string{"order_id", "menu_item_id", "item_name", "quantity", "unit_price", "total_price"},
			[]string{"special_instructions"}, nil),
		display: newDescriptor(
			[]string{"orderId", "menuItemId", "itemName", "quantity", "unitPrice", "totalPrice"},
			[]string{"specialInstructions"},
			[]string{"formattedUnitPrice", "formattedTotalPrice", "modifiers"}),
	},
	model.KindOrderModifier: {
		persisted: newDescriptor(
			[]string{"order_item_id", "modifier_name", "option_name", "option_value", "price_adjustment"},
			[]string{"modifier_id"}, nil),
		display: newDescriptor(
			[]string{"orderItemId", "modifierName", "optionName", "optionValue", "priceAdjustment"},
			[]string{"modifierId"},
			[]string{"formattedPriceAdjustment"}),
	},
	model.KindPayment: {
		persisted: newDescriptor(
			[]string{"order_id", "method", "status", "amount"},
			[]string{"transaction_id", "metadata", "processed_at"}, nil),
		display: newDescriptor(
			[]string{"orderId", "method", "status", "amount"},
			[]string{"transactionId", "metadata", "processedAt"},
			[]string{"formattedAmount", "statusColor", "methodLabel"}),
	},
	model.KindReview: {
		persisted: newDescriptor(
			[]string{"order_id", "merchant_id", "rating"},
			[]string{"customer_id", "comment", "food_rating", "service_rating", "photos"}, nil),
		display: newDescriptor(
			[]string{"orderId", "merchantId", "rating"},
			[]string{"customerId", "comment", "foodRating", "serviceRating", "photos"},
			[]string{"stars", "photoCount"}),
	},
	model.KindLoyaltyPoint: {
		persisted: newDescriptor(
			[]string{"customer_id", "merchant_id", "type", "points", "description"},
			[]string{"order_id", "expires_at"}, nil),
		display: newDescriptor(
			[]string{"customerId", "merchantId", "type", "points", "description"},
			[]string{"orderId", "expiresAt"},
			[]string{"formattedPoints", "typeColor"}),
	},
	model.KindSupportTicket: {
		persisted: newDescriptor(
			[]string{"created_by", "category", "priority", "status", "subject", "description"},
			[]string{"order_id", "assigned_to", "resolved_at"}, nil),
		display: newDescriptor(
			[]string{"createdBy", "category", "priority", "status", "subject", "description"},
			[]string{"orderId", "assignedTo", "resolvedAt"},
			[]string{"statusColor", "statusLabel", "priorityColor", "isOpen"}),
	},
	model.KindAnalyticsEvent: {
		persisted: newDescriptor(
			[]string{"event_type", "session_id"},
			[]string{"merchant_id", "customer_id", "metadata", "user_agent", "ip_address"}, nil),
		display: newDescriptor(
			[]string{"eventType", "sessionId"},
			[]string{"merchantId", "customerId", "metadata", "userAgent", "ipAddress"},
			[]string{"eventLabel"}),
	},
}

func init() {
	for _, k := range model.Kinds() {
		lo.Assertf(len(registry[k].persisted.Required) > 0, "schema: no persisted descriptor for %s", k)
		lo.Assertf(len(registry[k].display.Required) > 0, "schema: no display descriptor for %s", k)
	}
}

// Persisted returns the persisted-shape descriptor of kind k.
func Persisted(k model.Kind) Descriptor {
	mustValid(k)
	return registry[k].persisted
}

// Display returns the display-shape descriptor of kind k.
func Display(k model.Kind) Descriptor {
	mustValid(k)
	return registry[k].display
}

// PersistedOnly returns the keys that only the persisted shape of k declares.
// A payload containing any of them is not a display object.
func PersistedOnly(k model.Kind) []string {
	p, d := Persisted(k), Display(k)
	return lo.Filter(p.Fields(), func(f string, _ int) bool { return !d.Allowed(f) })
}

// TypeName is the name used in validation messages, e.g. "Database.merchant".
func TypeName(k model.Kind, display bool) string {
	return fmt.Sprintf("%s.%s", lo.Ternary(display, "Frontend", "Database"), k)
}

func mustValid(k model.Kind) {
	lo.Assertf(k.Valid(), "schema: invalid kind %d", k)
}
