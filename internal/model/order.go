package model

// OrderStatus is the kitchen-side lifecycle of an order.
type OrderStatus string

const (
	OrderPlaced    OrderStatus = "placed"
	OrderConfirmed OrderStatus = "confirmed"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

var OrderStatuses = []OrderStatus{OrderPlaced, OrderConfirmed, OrderPreparing, OrderReady, OrderCompleted, OrderCancelled}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderCompleted || s == OrderCancelled
}

type Order struct {
	Base
	MerchantID          string      `json:"merchant_id"`
	CustomerID          *string     `json:"customer_id,omitempty"`
	QrCodeID            *string     `json:"qr_code_id,omitempty"`
	CustomerName        *string     `json:"customer_name,omitempty"`
	CustomerPhone       *string     `json:"customer_phone,omitempty"`
	Status              OrderStatus `json:"status"`
	TotalAmount         float64     `json:"total_amount"`
	TaxAmount           *float64    `json:"tax_amount,omitempty"`
	SpecialInstructions *string     `json:"special_instructions,omitempty"`
	EstimatedReadyTime  *string     `json:"estimated_ready_time,omitempty"`
	CompletedAt         *string     `json:"completed_at,omitempty"`
}

// OrderItem is one line of an order. ItemName and UnitPrice are copied from
// the menu item at ordering time.
type OrderItem struct {
	Base
	OrderID             string  `json:"order_id"`
	MenuItemID          string  `json:"menu_item_id"`
	ItemName            string  `json:"item_name"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unit_price"`
	TotalPrice          float64 `json:"total_price"`
	SpecialInstructions *string `json:"special_instructions,omitempty"`
}

type OrderModifier struct {
	Base
	OrderItemID     string  `json:"order_item_id"`
	ModifierID      *string `json:"modifier_id,omitempty"`
	ModifierName    string  `json:"modifier_name"`
	OptionName      string  `json:"option_name"`
	OptionValue     string  `json:"option_value"`
	PriceAdjustment float64 `json:"price_adjustment"`
}
