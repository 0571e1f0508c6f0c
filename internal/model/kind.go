package model

// Kind enumerates the entity kinds that have both a persisted and a display
// shape. KindNone means "no transformation" and is accepted everywhere a kind
// is optional.
type Kind uint8

const (
	KindNone Kind = iota
	KindUser
	KindMerchant
	KindMenuCategory
	KindMenuItem
	KindMenuModifier
	KindQrCode
	KindCustomer
	KindOrder
	KindOrderItem
	KindOrderModifier
	KindPayment
	KindReview
	KindLoyaltyPoint
	KindSupportTicket
	KindAnalyticsEvent
	kindEnd
)

// KindCount sizes kind-indexed tables. Index 0 is KindNone.
const KindCount = int(kindEnd)

// Collection names as stored in the datastore.
const (
	CollectionUsers           = "users"
	CollectionMerchants       = "merchants"
	CollectionMenuCategories  = "menu_categories"
	CollectionMenuItems       = "menu_items"
	CollectionMenuModifiers   = "menu_modifiers"
	CollectionQrCodes         = "qr_codes"
	CollectionCustomers       = "customers"
	CollectionOrders          = "orders"
	CollectionOrderItems      = "order_items"
	CollectionOrderModifiers  = "order_modifiers"
	CollectionPayments        = "payments"
	CollectionReviews         = "reviews"
	CollectionLoyaltyPoints   = "loyalty_points"
	CollectionSupportTickets  = "support_tickets"
	CollectionAnalyticsEvents = "analytics_events"
)

var kindNames = [KindCount]string{
	KindNone:           "",
	KindUser:           "user",
	KindMerchant:       "merchant",
	KindMenuCategory:   "menuCategory",
	KindMenuItem:       "menuItem",
	KindMenuModifier:   "menuModifier",
	KindQrCode:         "qrCode",
	KindCustomer:       "customer",
	KindOrder:          "order",
	KindOrderItem:      "orderItem",
	KindOrderModifier:  "orderModifier",
	KindPayment:        "payment",
	KindReview:         "review",
	KindLoyaltyPoint:   "loyaltyPoint",
	KindSupportTicket:  "supportTicket",
	KindAnalyticsEvent: "analyticsEvent",
}

var kindCollections = [KindCount]string{
	KindUser:           CollectionUsers,
	KindMerchant:       CollectionMerchants,
	KindMenuCategory:   CollectionMenuCategories,
	KindMenuItem:       CollectionMenuItems,
	KindMenuModifier:   CollectionMenuModifiers,
	KindQrCode:         CollectionQrCodes,
	KindCustomer:       CollectionCustomers,
	KindOrder:          CollectionOrders,
	KindOrderItem:      CollectionOrderItems,
	KindOrderModifier:  CollectionOrderModifiers,
	KindPayment:        CollectionPayments,
	KindReview:         CollectionReviews,
	KindLoyaltyPoint:   CollectionLoyaltyPoints,
	KindSupportTicket:  CollectionSupportTickets,
	KindAnalyticsEvent: CollectionAnalyticsEvents,
}

// String returns the transformer name of the kind ("merchant", "menuItem").
func (k Kind) String() string {
	if int(k) >= KindCount {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k names a real entity kind.
func (k Kind) Valid() bool { return k > KindNone && k < kindEnd }

// Collection returns the datastore collection that holds records of kind k.
func (k Kind) Collection() string {
	if !k.Valid() {
		return ""
	}
	return kindCollections[k]
}

// Kinds lists every valid kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, KindCount-1)
	for k := KindNone + 1; k < kindEnd; k++ {
		out = append(out, k)
	}
	return out
}

// ParseKind resolves a transformer name. The empty string yields KindNone.
func ParseKind(name string) (Kind, bool) {
	for i, n := range kindNames {
		if n == name {
			return Kind(i), true
		}
	}
	return KindNone, false
}

// KindForCollection resolves the kind stored in a collection.
func KindForCollection(collection string) (Kind, bool) {
	for i, c := range kindCollections {
		if c != "" && c == collection {
			return Kind(i), true
		}
	}
	return KindNone, false
}
