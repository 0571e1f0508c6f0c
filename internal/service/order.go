package service

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/docstore"
	"github.com/rlaig/ezorder/internal/filter"
	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/queue"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/view"
)

// ErrOrderClosed is returned when cancelling a completed or cancelled order.
var ErrOrderClosed = errors.New("order is already closed")

type OrderService struct {
	W      *access.Wrapper
	Events EventPublisher
	Log    *zap.Logger
	Now    func() time.Time
}

func NewOrderService(w *access.Wrapper, events EventPublisher, log *zap.Logger) *OrderService {
	if events == nil {
		events = NopPublisher{}
	}
	return &OrderService{W: w, Events: events, Log: log, Now: time.Now}
}

// List returns the merchant's orders newest first, optionally narrowed to one status.
func (s *OrderService) List(ctx context.Context, merchantID, status string, page, perPage int) (access.Page[view.Order], error) {
	f := filter.Eq("merchant_id", merchantID)
	if status != "" {
		if !slices.Contains(model.OrderStatuses, model.OrderStatus(status)) {
			return access.Page[view.Order]{}, invalid("status", "unknown order status")
		}
		f = filter.And(f, filter.Eq("status", status))
	}
	return access.GetList(ctx, s.W, transform.Orders, page, perPage, access.Options{Filter: f, Sort: "-created"})
}

// Detail returns an order with its items, each carrying its modifiers.
func (s *OrderService) Detail(ctx context.Context, merchantID, id string) (view.Order, error) {
	o, err := s.own(ctx, merchantID, id)
	if err != nil {
		return view.Order{}, err
	}
	out := transform.OrderToFrontend(o, s.W.Env())

	items, err := access.GetFullList(ctx, s.W, transform.OrderItems, access.Options{
		Filter: filter.Eq("order_id", id),
		Sort:   "created",
	})
	if err != nil {
		return view.Order{}, err
	}
	if len(items) > 0 {
		ids := lo.Map(items, func(it view.OrderItem, _ int) string { return filter.Eq("order_item_id", it.ID) })
		mods, err := access.GetFullList(ctx, s.W, transform.OrderModifiers, access.Options{
			Filter: strings.Join(ids, " || "),
			Sort:   "created",
		})
		if err != nil {
			return view.Order{}, err
		}
		byItem := lo.GroupBy(mods, func(m view.OrderModifier) string { return m.OrderItemID })
		for i := range items {
			items[i].Modifiers = byItem[items[i].ID]
		}
	}
	out.Items = items
	return out, nil
}

// Advance moves an order one step along placed → confirmed → preparing →
// ready → completed. Completion stamps completed_at.
func (s *OrderService) Advance(ctx context.Context, merchantID, id string) (view.Order, error) {
	o, err := s.own(ctx, merchantID, id)
	if err != nil {
		return view.Order{}, err
	}
	next, ok := transform.NextStatus(o.Status).Get()
	if !ok {
		return view.Order{}, ErrCannotAdvance
	}
	return s.setStatus(ctx, o, next)
}

func (s *OrderService) Cancel(ctx context.Context, merchantID, id string) (view.Order, error) {
	o, err := s.own(ctx, merchantID, id)
	if err != nil {
		return view.Order{}, err
	}
	if o.Status.Terminal() {
		return view.Order{}, ErrOrderClosed
	}
	return s.setStatus(ctx, o, model.OrderCancelled)
}

func (s *OrderService) setStatus(ctx context.Context, o model.Order, to model.OrderStatus) (view.Order, error) {
	now := s.Now()
	patch := model.Patch{"status": to}
	if to == model.OrderCompleted {
		patch["completed_at"] = docstore.Timestamp(now)
	}
	out, err := access.Patch(ctx, s.W, transform.Orders, o.ID, patch)
	if err != nil {
		return view.Order{}, err
	}
	from := o.Status
	o.Status = to
	// delivery problems are logged by the publisher
	_ = s.Events.PublishOrderStatusChanged(ctx, queue.NewOrderStatusChanged(o, from, now))
	s.Log.Info("order status changed",
		zap.String("order_id", o.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return out, nil
}

// OrderStats aggregates a merchant's orders over an optional creation window.
type OrderStats struct {
	TotalOrders       int                       `json:"totalOrders"`
	TotalRevenue      float64                   `json:"totalRevenue"`
	AverageOrderValue float64                   `json:"averageOrderValue"`
	OrdersByStatus    map[model.OrderStatus]int `json:"ordersByStatus"`
	FormattedRevenue  string                    `json:"formattedRevenue"`
	FormattedAverage  string                    `json:"formattedAverage"`
}

// Stats sums every order in the window regardless of status. A zero from or
// to leaves that side open.
func (s *OrderService) Stats(ctx context.Context, merchantID string, from, to time.Time) (OrderStats, error) {
	conds := []string{filter.Eq("merchant_id", merchantID)}
	if !from.IsZero() {
		conds = append(conds, "created >= "+filter.Quote(docstore.Timestamp(from)))
	}
	if !to.IsZero() {
		conds = append(conds, "created <= "+filter.Quote(docstore.Timestamp(to)))
	}
	orders, err := access.ListRecords(ctx, s.W, transform.Orders, access.Options{Filter: filter.And(conds...)})
	if err != nil {
		return OrderStats{}, err
	}

	total := lo.Reduce(orders, func(sum decimal.Decimal, o model.Order, _ int) decimal.Decimal {
		return sum.Add(decimal.NewFromFloat(o.TotalAmount))
	}, decimal.Zero).Round(2)
	avg := decimal.Zero
	if len(orders) > 0 {
		avg = total.Div(decimal.NewFromInt(int64(len(orders)))).Round(2)
	}
	return OrderStats{
		TotalOrders:       len(orders),
		TotalRevenue:      total.InexactFloat64(),
		AverageOrderValue: avg.InexactFloat64(),
		OrdersByStatus:    lo.CountValuesBy(orders, func(o model.Order) model.OrderStatus { return o.Status }),
		FormattedRevenue:  transform.FormatDecimal(total),
		FormattedAverage:  transform.FormatDecimal(avg),
	}, nil
}

func (s *OrderService) own(ctx context.Context, merchantID, id string) (model.Order, error) {
	o, err := access.GetRecord(ctx, s.W, transform.Orders, id)
	if err != nil {
		return model.Order{}, err
	}
	if o.MerchantID != merchantID {
		return model.Order{}, ErrForbidden
	}
	return o, nil
}
