package model

// Customer, Review, LoyaltyPoint, SupportTicket and AnalyticsEvent are the
// auxiliary collections. The dashboard mostly reads them.

type Customer struct {
	Base
	Name        string         `json:"name"`
	Phone       *string        `json:"phone,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
}

type Review struct {
	Base
	OrderID       string   `json:"order_id"`
	MerchantID    string   `json:"merchant_id"`
	CustomerID    *string  `json:"customer_id,omitempty"`
	Rating        int      `json:"rating"`
	Comment       *string  `json:"comment,omitempty"`
	FoodRating    *int     `json:"food_rating,omitempty"`
	ServiceRating *int     `json:"service_rating,omitempty"`
	Photos        []string `json:"photos,omitempty"`
}

type LoyaltyType string

const (
	LoyaltyEarned   LoyaltyType = "earned"
	LoyaltyRedeemed LoyaltyType = "redeemed"
	LoyaltyExpired  LoyaltyType = "expired"
)

var LoyaltyTypes = []LoyaltyType{LoyaltyEarned, LoyaltyRedeemed, LoyaltyExpired}

type LoyaltyPoint struct {
	Base
	CustomerID  string      `json:"customer_id"`
	MerchantID  string      `json:"merchant_id"`
	OrderID     *string     `json:"order_id,omitempty"`
	Type        LoyaltyType `json:"type"`
	Points      int         `json:"points"`
	Description string      `json:"description"`
	ExpiresAt   *string     `json:"expires_at,omitempty"`
}

type TicketCategory string

const (
	TicketOrderIssue     TicketCategory = "order_issue"
	TicketPaymentIssue   TicketCategory = "payment_issue"
	TicketTechnicalIssue TicketCategory = "technical_issue"
	TicketFeedback       TicketCategory = "feedback"
	TicketOther          TicketCategory = "other"
)

type TicketPriority string

const (
	PriorityLow    TicketPriority = "low"
	PriorityMedium TicketPriority = "medium"
	PriorityHigh   TicketPriority = "high"
	PriorityUrgent TicketPriority = "urgent"
)

var TicketPriorities = []TicketPriority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

type TicketStatus string

const (
	TicketOpen            TicketStatus = "open"
	TicketInProgress      TicketStatus = "in_progress"
	TicketWaitingResponse TicketStatus = "waiting_response"
	TicketResolved        TicketStatus = "resolved"
	TicketClosed          TicketStatus = "closed"
)

var TicketStatuses = []TicketStatus{TicketOpen, TicketInProgress, TicketWaitingResponse, TicketResolved, TicketClosed}

type SupportTicket struct {
	Base
	CreatedBy   string         `json:"created_by"`
	OrderID     *string        `json:"order_id,omitempty"`
	Category    TicketCategory `json:"category"`
	Priority    TicketPriority `json:"priority"`
	Status      TicketStatus   `json:"status"`
	Subject     string         `json:"subject"`
	Description string         `json:"description"`
	AssignedTo  *string        `json:"assigned_to,omitempty"`
	ResolvedAt  *string        `json:"resolved_at,omitempty"`
}

type EventType string

const (
	EventQrScan           EventType = "qr_scan"
	EventMenuView         EventType = "menu_view"
	EventItemView         EventType = "item_view"
	EventAddToCart        EventType = "add_to_cart"
	EventCheckoutStart    EventType = "checkout_start"
	EventOrderPlaced      EventType = "order_placed"
	EventPaymentCompleted EventType = "payment_completed"
	EventOrderCompleted   EventType = "order_completed"
)

type AnalyticsEvent struct {
	Base
	MerchantID *string        `json:"merchant_id,omitempty"`
	CustomerID *string        `json:"customer_id,omitempty"`
	EventType  EventType      `json:"event_type"`
	SessionID  string         `json:"session_id"`
	Metadata   map[string]any `json:"metadata,omitempty"`
	UserAgent  *string        `json:"user_agent,omitempty"`
	IPAddress  *string        `json:"ip_address,omitempty"`
}
