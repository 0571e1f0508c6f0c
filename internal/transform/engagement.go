package transform

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/view"
)

const maxStars = 5

// Stars renders a 0-5 rating as filled and empty stars. Out of range ratings are clamped.
func Stars(rating int) string {
	rating = min(max(rating, 0), maxStars)
	return strings.Repeat("★", rating) + strings.Repeat("☆", maxStars-rating)
}

func ReviewToFrontend(r model.Review, _ Env) view.Review {
	return view.Review{
		Entity:        entity(r.Base),
		OrderID:       r.OrderID,
		MerchantID:    r.MerchantID,
		CustomerID:    clone(r.CustomerID),
		Rating:        r.Rating,
		Comment:       clone(r.Comment),
		FoodRating:    clone(r.FoodRating),
		ServiceRating: clone(r.ServiceRating),
		Photos:        slices.Clone(r.Photos),
		Stars:         Stars(r.Rating),
		PhotoCount:    len(r.Photos),
	}
}

func ReviewToDatabase(in view.ReviewInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "order_id", in.OrderID)
	model.Put(p, "merchant_id", in.MerchantID)
	model.Put(p, "customer_id", in.CustomerID)
	model.Put(p, "rating", in.Rating)
	model.Put(p, "comment", in.Comment)
	model.Put(p, "food_rating", in.FoodRating)
	model.Put(p, "service_rating", in.ServiceRating)
	if in.Photos != nil {
		p["photos"] = slices.Clone(in.Photos)
	}
	return p
}

// FormattedPoints signs the balance change: earned points add, redeemed and
// expired points subtract.
func FormattedPoints(t model.LoyaltyType, points int) string {
	if points < 0 {
		points = -points
	}
	if t == model.LoyaltyEarned {
		return fmt.Sprintf("+%d", points)
	}
	return fmt.Sprintf("-%d", points)
}

func LoyaltyPointToFrontend(l model.LoyaltyPoint, _ Env) view.LoyaltyPoint {
	return view.LoyaltyPoint{
		Entity:          entity(l.Base),
		CustomerID:      l.CustomerID,
		MerchantID:      l.MerchantID,
		OrderID:         clone(l.OrderID),
		Type:            l.Type,
		Points:          l.Points,
		Description:     l.Description,
		ExpiresAt:       clone(l.ExpiresAt),
		FormattedPoints: FormattedPoints(l.Type, l.Points),
		TypeColor:       LoyaltyTypeColor(l.Type),
	}
}

func LoyaltyPointToDatabase(in view.LoyaltyPointInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "customer_id", in.CustomerID)
	model.Put(p, "merchant_id", in.MerchantID)
	model.Put(p, "order_id", in.OrderID)
	model.Put(p, "type", in.Type)
	model.Put(p, "points", in.Points)
	model.Put(p, "description", in.Description)
	model.Put(p, "expires_at", in.ExpiresAt)
	return p
}

func SupportTicketToFrontend(t model.SupportTicket, _ Env) view.SupportTicket {
	return view.SupportTicket{
		Entity:        entity(t.Base),
		CreatedBy:     t.CreatedBy,
		OrderID:       clone(t.OrderID),
		Category:      t.Category,
		Priority:      t.Priority,
		Status:        t.Status,
		Subject:       t.Subject,
		Description:   t.Description,
		AssignedTo:    clone(t.AssignedTo),
		ResolvedAt:    clone(t.ResolvedAt),
		StatusColor:   TicketStatusColor(t.Status),
		StatusLabel:   Label(string(t.Status)),
		PriorityColor: TicketPriorityColor(t.Priority),
		IsOpen:        t.Status != model.TicketResolved && t.Status != model.TicketClosed,
	}
}

func SupportTicketToDatabase(in view.SupportTicketInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "created_by", in.CreatedBy)
	model.Put(p, "order_id", in.OrderID)
	model.Put(p, "category", in.Category)
	model.Put(p, "priority", in.Priority)
	model.Put(p, "status", in.Status)
	model.Put(p, "subject", in.Subject)
	model.Put(p, "description", in.Description)
	model.Put(p, "assigned_to", in.AssignedTo)
	model.Put(p, "resolved_at", in.ResolvedAt)
	return p
}

func AnalyticsEventToFrontend(e model.AnalyticsEvent, _ Env) view.AnalyticsEvent {
	return view.AnalyticsEvent{
		Entity:     entity(e.Base),
		MerchantID: clone(e.MerchantID),
		CustomerID: clone(e.CustomerID),
		EventType:  e.EventType,
		SessionID:  e.SessionID,
		Metadata:   maps.Clone(e.Metadata),
		UserAgent:  clone(e.UserAgent),
		IPAddress:  clone(e.IPAddress),
		EventLabel: EventLabel(e.EventType),
	}
}

func AnalyticsEventToDatabase(in view.AnalyticsEventInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "merchant_id", in.MerchantID)
	model.Put(p, "customer_id", in.CustomerID)
	model.Put(p, "event_type", in.EventType)
	model.Put(p, "session_id", in.SessionID)
	model.PutMap(p, "metadata", in.Metadata)
	model.Put(p, "user_agent", in.UserAgent)
	model.Put(p, "ip_address", in.IPAddress)
	return p
}
