package view

import "github.com/rlaig/ezorder/internal/model"

type Order struct {
	Entity
	MerchantID          string            `json:"merchantId"`
	CustomerID          *string           `json:"customerId,omitempty"`
	QRCodeID            *string           `json:"qrCodeId,omitempty"`
	CustomerName        *string           `json:"customerName,omitempty"`
	CustomerPhone       *string           `json:"customerPhone,omitempty"`
	Status              model.OrderStatus `json:"status"`
	TotalAmount         float64           `json:"totalAmount"`
	TaxAmount           *float64          `json:"taxAmount,omitempty"`
	SpecialInstructions *string           `json:"specialInstructions,omitempty"`
	EstimatedReadyTime  *string           `json:"estimatedReadyTime,omitempty"`
	CompletedAt         *string           `json:"completedAt,omitempty"`

	FormattedTotal   string             `json:"formattedTotal"`
	StatusColor      string             `json:"statusColor"`
	StatusLabel      string             `json:"statusLabel"`
	OrderNumber      string             `json:"orderNumber"`
	TimeAgo          string             `json:"timeAgo"`
	CanAdvanceStatus bool               `json:"canAdvanceStatus"`
	NextStatus       *model.OrderStatus `json:"nextStatus,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}

type OrderInput struct {
	MerchantID          *string            `json:"merchantId,omitempty"`
	CustomerID          *string            `json:"customerId,omitempty"`
	QRCodeID            *string            `json:"qrCodeId,omitempty"`
	CustomerName        *string            `json:"customerName,omitempty"`
	CustomerPhone       *string            `json:"customerPhone,omitempty"`
	Status              *model.OrderStatus `json:"status,omitempty"`
	TotalAmount         *float64           `json:"totalAmount,omitempty"`
	TaxAmount           *float64           `json:"taxAmount,omitempty"`
	SpecialInstructions *string            `json:"specialInstructions,omitempty"`
	EstimatedReadyTime  *string            `json:"estimatedReadyTime,omitempty"`
	CompletedAt         *string            `json:"completedAt,omitempty"`
}

type OrderItem struct {
	Entity
	OrderID             string  `json:"orderId"`
	MenuItemID          string  `json:"menuItemId"`
	ItemName            string  `json:"itemName"`
	Quantity            int     `json:"quantity"`
	UnitPrice           float64 `json:"unitPrice"`
	TotalPrice          float64 `json:"totalPrice"`
	SpecialInstructions *string `json:"specialInstructions,omitempty"`

	FormattedUnitPrice  string `json:"formattedUnitPrice"`
	FormattedTotalPrice string `json:"formattedTotalPrice"`

	Modifiers []OrderModifier `json:"modifiers,omitempty"`
}

type OrderItemInput struct {
	OrderID             *string  `json:"orderId,omitempty"`
	MenuItemID          *string  `json:"menuItemId,omitempty"`
	ItemName            *string  `json:"itemName,omitempty"`
	Quantity            *int     `json:"quantity,omitempty"`
	UnitPrice           *float64 `json:"unitPrice,omitempty"`
	TotalPrice          *float64 `json:"totalPrice,omitempty"`
	SpecialInstructions *string  `json:"specialInstructions,omitempty"`
}

type OrderModifier struct {
	Entity
	OrderItemID     string  `json:"orderItemId"`
	ModifierID      *string `json:"modifierId,omitempty"`
	ModifierName    string  `json:"modifierName"`
	OptionName      string  `json:"optionName"`
	OptionValue     string  `json:"optionValue"`
	PriceAdjustment float64 `json:"priceAdjustment"`

	FormattedPriceAdjustment string `json:"formattedPriceAdjustment"`
}

type OrderModifierInput struct {
	OrderItemID     *string  `json:"orderItemId,omitempty"`
	ModifierID      *string  `json:"modifierId,omitempty"`
	ModifierName    *string  `json:"modifierName,omitempty"`
	OptionName      *string  `json:"optionName,omitempty"`
	OptionValue     *string  `json:"optionValue,omitempty"`
	PriceAdjustment *float64 `json:"priceAdjustment,omitempty"`
}

type Payment struct {
	Entity
	OrderID       string              `json:"orderId"`
	Method        model.PaymentMethod `json:"method"`
	Status        model.PaymentStatus `json:"status"`
	Amount        float64             `json:"amount"`
	TransactionID *string             `json:"transactionId,omitempty"`
	Metadata      map[string]any      `json:"metadata,omitempty"`
	ProcessedAt   *string             `json:"processedAt,omitempty"`

	FormattedAmount string `json:"formattedAmount"`
	StatusColor     string `json:"statusColor"`
	MethodLabel     string `json:"methodLabel"`
}

type PaymentInput struct {
	OrderID       *string              `json:"orderId,omitempty"`
	Method        *model.PaymentMethod `json:"method,omitempty"`
	Status        *model.PaymentStatus `json:"status,omitempty"`
	Amount        *float64             `json:"amount,omitempty"`
	TransactionID *string              `json:"transactionId,omitempty"`
	Metadata      map[string]any       `json:"metadata,omitempty"`
	ProcessedAt   *string              `json:"processedAt,omitempty"`
}
