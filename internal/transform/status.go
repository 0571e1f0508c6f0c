package transform

import (
	"github.com/samber/mo"

	"github.com/rlaig/ezorder/internal/model"
)

// Neutral is returned for any status a color table does not know.
const Neutral = "gray"

var merchantColors = map[model.MerchantStatus]string{
	model.MerchantActive:    "green",
	model.MerchantPending:   "yellow",
	model.MerchantSuspended: "red",
	model.MerchantInactive:  "gray",
}

var orderColors = map[model.OrderStatus]string{
	model.OrderPlaced:    "blue",
	model.OrderConfirmed: "blue",
	model.OrderPreparing: "yellow",
	model.OrderReady:     "green",
	model.OrderCompleted: "gray",
	model.OrderCancelled: "red",
}

var paymentColors = map[model.PaymentStatus]string{
	model.PaymentPending:   "yellow",
	model.PaymentCompleted: "green",
	model.PaymentFailed:    "red",
	model.PaymentRefunded:  "blue",
}

var ticketColors = map[model.TicketStatus]string{
	model.TicketOpen:            "blue",
	model.TicketInProgress:      "yellow",
	model.TicketWaitingResponse: "yellow",
	model.TicketResolved:        "green",
	model.TicketClosed:          "gray",
}

var priorityColors = map[model.TicketPriority]string{
	model.PriorityLow:    "gray",
	model.PriorityMedium: "blue",
	model.PriorityHigh:   "yellow",
	model.PriorityUrgent: "red",
}

var loyaltyColors = map[model.LoyaltyType]string{
	model.LoyaltyEarned:   "green",
	model.LoyaltyRedeemed: "blue",
	model.LoyaltyExpired:  "gray",
}

func colorOf[K comparable](table map[K]string, k K) string {
	if c, ok := table[k]; ok {
		return c
	}
	return Neutral
}

func MerchantStatusColor(s model.MerchantStatus) string { return colorOf(merchantColors, s) }
func OrderStatusColor(s model.OrderStatus) string       { return colorOf(orderColors, s) }
func PaymentStatusColor(s model.PaymentStatus) string   { return colorOf(paymentColors, s) }
func TicketStatusColor(s model.TicketStatus) string     { return colorOf(ticketColors, s) }
func TicketPriorityColor(p model.TicketPriority) string { return colorOf(priorityColors, p) }
func LoyaltyTypeColor(t model.LoyaltyType) string       { return colorOf(loyaltyColors, t) }

// QRStatusColor is green for active codes.
func QRStatusColor(active bool) string {
	if active {
		return "green"
	}
	return Neutral
}

var orderFlow = map[model.OrderStatus]model.OrderStatus{
	model.OrderPlaced:    model.OrderConfirmed,
	model.OrderConfirmed: model.OrderPreparing,
	model.OrderPreparing: model.OrderReady,
	model.OrderReady:     model.OrderCompleted,
}

// NextStatus is the forward-only kitchen flow. Completed, cancelled and
// unknown statuses have no successor.
func NextStatus(s model.OrderStatus) mo.Option[model.OrderStatus] {
	if next, ok := orderFlow[s]; ok {
		return mo.Some(next)
	}
	return mo.None[model.OrderStatus]()
}

var methodLabels = map[model.PaymentMethod]string{
	model.PaymentCash:  "Cash",
	model.PaymentGcash: "GCash",
	model.PaymentCard:  "Card",
}

// MethodLabel falls back to the raw method for unknown values.
func MethodLabel(m model.PaymentMethod) string {
	if l, ok := methodLabels[m]; ok {
		return l
	}
	return string(m)
}

var modifierTypeLabels = map[model.ModifierType]string{
	model.ModifierSingleChoice:   "Single choice",
	model.ModifierMultipleChoice: "Multiple choice",
	model.ModifierTextInput:      "Text input",
}

func ModifierTypeLabel(t model.ModifierType) string {
	if l, ok := modifierTypeLabels[t]; ok {
		return l
	}
	return Label(string(t))
}

var eventLabels = map[model.EventType]string{
	model.EventQrScan:           "QR scan",
	model.EventMenuView:         "Menu view",
	model.EventItemView:         "Item view",
	model.EventAddToCart:        "Add to cart",
	model.EventCheckoutStart:    "Checkout started",
	model.EventOrderPlaced:      "Order placed",
	model.EventPaymentCompleted: "Payment completed",
	model.EventOrderCompleted:   "Order completed",
}

func EventLabel(t model.EventType) string {
	if l, ok := eventLabels[t]; ok {
		return l
	}
	return Label(string(t))
}
