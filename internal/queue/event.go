// Package queue defines the order event payload exchanged over RabbitMQ and
// the consumer that turns those events into analytics records.
package queue

import (
	"time"

	"github.com/google/uuid"

	"github.com/rlaig/ezorder/internal/model"
)

// OrderStatusChangedEvent is published after an order moves to a new status.
// It carries enough for consumers to record analytics without reading the
// order back.
type OrderStatusChangedEvent struct {
	MessageID   string            `json:"message_id"`
	OrderID     string            `json:"order_id"`
	MerchantID  string            `json:"merchant_id"`
	CustomerID  *string           `json:"customer_id,omitempty"`
	From        model.OrderStatus `json:"from"`
	To          model.OrderStatus `json:"to"`
	TotalAmount float64           `json:"total_amount"`
	ChangedAt   string            `json:"changed_at"`
}

// NewOrderStatusChanged builds an event for o, which already carries the new status.
func NewOrderStatusChanged(o model.Order, from model.OrderStatus, at time.Time) OrderStatusChangedEvent {
	return OrderStatusChangedEvent{
		MessageID:   uuid.NewString(),
		OrderID:     o.ID,
		MerchantID:  o.MerchantID,
		CustomerID:  o.CustomerID,
		From:        from,
		To:          o.Status,
		TotalAmount: o.TotalAmount,
		ChangedAt:   at.UTC().Format(time.RFC3339),
	}
}
