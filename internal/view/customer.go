package view

import "github.com/rlaig/ezorder/internal/model"

// Customer renames name/phone to match the customer fields on Order.
type Customer struct {
	Entity
	CustomerName  string         `json:"customerName"`
	CustomerPhone *string        `json:"customerPhone,omitempty"`
	Preferences   map[string]any `json:"preferences,omitempty"`

	DisplayName string `json:"displayName"`
}

type CustomerInput struct {
	CustomerName  *string        `json:"customerName,omitempty"`
	CustomerPhone *string        `json:"customerPhone,omitempty"`
	Preferences   map[string]any `json:"preferences,omitempty"`
}

type Review struct {
	Entity
	OrderID       string   `json:"orderId"`
	MerchantID    string   `json:"merchantId"`
	CustomerID    *string  `json:"customerId,omitempty"`
	Rating        int      `json:"rating"`
	Comment       *string  `json:"comment,omitempty"`
	FoodRating    *int     `json:"foodRating,omitempty"`
	ServiceRating *int     `json:"serviceRating,omitempty"`
	Photos        []string `json:"photos,omitempty"`

	Stars      string `json:"stars"`
	PhotoCount int    `json:"photoCount"`
}

type ReviewInput struct {
	OrderID       *string  `json:"orderId,omitempty"`
	MerchantID    *string  `json:"merchantId,omitempty"`
	CustomerID    *string  `json:"customerId,omitempty"`
	Rating        *int     `json:"rating,omitempty"`
	Comment       *string  `json:"comment,omitempty"`
	FoodRating    *int     `json:"foodRating,omitempty"`
	ServiceRating *int     `json:"serviceRating,omitempty"`
	Photos        []string `json:"photos,omitempty"`
}

type LoyaltyPoint struct {
	Entity
	CustomerID  string            `json:"customerId"`
	MerchantID  string            `json:"merchantId"`
	OrderID     *string           `json:"orderId,omitempty"`
	Type        model.LoyaltyType `json:"type"`
	Points      int               `json:"points"`
	Description string            `json:"description"`
	ExpiresAt   *string           `json:"expiresAt,omitempty"`

	FormattedPoints string `json:"formattedPoints"`
	TypeColor       string `json:"typeColor"`
}

type LoyaltyPointInput struct {
	CustomerID  *string            `json:"customerId,omitempty"`
	MerchantID  *string            `json:"merchantId,omitempty"`
	OrderID     *string            `json:"orderId,omitempty"`
	Type        *model.LoyaltyType `json:"type,omitempty"`
	Points      *int               `json:"points,omitempty"`
	Description *string            `json:"description,omitempty"`
	ExpiresAt   *string            `json:"expiresAt,omitempty"`
}

type SupportTicket struct {
	Entity
	CreatedBy   string               `json:"createdBy"`
	OrderID     *string              `json:"orderId,omitempty"`
	Category    model.TicketCategory `json:"category"`
	Priority    model.TicketPriority `json:"priority"`
	Status      model.TicketStatus   `json:"status"`
	Subject     string               `json:"subject"`
	Description string               `json:"description"`
	AssignedTo  *string              `json:"assignedTo,omitempty"`
	ResolvedAt  *string              `json:"resolvedAt,omitempty"`

	StatusColor   string `json:"statusColor"`
	StatusLabel   string `json:"statusLabel"`
	PriorityColor string `json:"priorityColor"`
	IsOpen        bool   `json:"isOpen"`
}

type SupportTicketInput struct {
	CreatedBy   *string               `json:"createdBy,omitempty"`
	OrderID     *string               `json:"orderId,omitempty"`
	Category    *model.TicketCategory `json:"category,omitempty"`
	Priority    *model.TicketPriority `json:"priority,omitempty"`
	Status      *model.TicketStatus   `json:"status,omitempty"`
	Subject     *string               `json:"subject,omitempty"`
	Description *string               `json:"description,omitempty"`
	AssignedTo  *string               `json:"assignedTo,omitempty"`
	ResolvedAt  *string               `json:"resolvedAt,omitempty"`
}

type AnalyticsEvent struct {
	Entity
	MerchantID *string         `json:"merchantId,omitempty"`
	CustomerID *string         `json:"customerId,omitempty"`
	EventType  model.EventType `json:"eventType"`
	SessionID  string          `json:"sessionId"`
	Metadata   map[string]any  `json:"metadata,omitempty"`
	UserAgent  *string         `json:"userAgent,omitempty"`
	IPAddress  *string         `json:"ipAddress,omitempty"`

	EventLabel string `json:"eventLabel"`
}

type AnalyticsEventInput struct {
	MerchantID *string          `json:"merchantId,omitempty"`
	CustomerID *string          `json:"customerId,omitempty"`
	EventType  *model.EventType `json:"eventType,omitempty"`
	SessionID  *string          `json:"sessionId,omitempty"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
	UserAgent  *string          `json:"userAgent,omitempty"`
	IPAddress  *string          `json:"ipAddress,omitempty"`
}
