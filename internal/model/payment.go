package model

type PaymentMethod string

const (
	PaymentCash  PaymentMethod = "cash"
	PaymentGcash PaymentMethod = "gcash"
	PaymentCard  PaymentMethod = "card"
)

var PaymentMethods = []PaymentMethod{PaymentCash, PaymentGcash, PaymentCard}

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded}

type Payment struct {
	Base
	OrderID       string         `json:"order_id"`
	Method        PaymentMethod  `json:"method"`
	Status        PaymentStatus  `json:"status"`
	Amount        float64        `json:"amount"`
	TransactionID *string        `json:"transaction_id,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	ProcessedAt   *string        `json:"processed_at,omitempty"`
}
