package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/view"
)

// Consumer reads order events and records analytics events for them.
type Consumer struct {
	URL   string
	Queue string
	W     *access.Wrapper
	Log   *zap.Logger
}

func NewConsumer(url, queueName string, w *access.Wrapper, log *zap.Logger) *Consumer {
	return &Consumer{URL: url, Queue: queueName, W: w, Log: log}
}

// Run consumes until ctx is cancelled, reconnecting with exponential backoff
// (capped at 30s) whenever the broker connection drops.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		conn, err := amqp.Dial(c.URL)
		if err != nil {
			c.Log.Warn("order consumer: dial failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			backoff = min(backoff*2, 30*time.Second)
			continue
		}
		backoff = time.Second

		err = c.consume(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.Log.Warn("order consumer: loop ended, reconnecting", zap.Error(err))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.Log.Warn("order consumer: set QoS failed", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(c.Queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	msgs, err := ch.ConsumeWithContext(ctx, c.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for d := range msgs {
		if err := c.Handle(ctx, d.Body); err != nil {
			again := requeue(err)
			c.Log.Error("order consumer: handle message failed", zap.String("message_id", d.MessageId), zap.Bool("requeue", again), zap.Error(err))
			_ = d.Nack(false, again)
			continue
		}
		_ = d.Ack(false)
	}
	return errors.New("deliveries channel closed")
}

// requeue reports whether a failed message is worth another delivery. Only
// datastore transport failures are; undecodable or rejected events would
// fail the same way again.
func requeue(err error) bool {
	var ae *access.Error
	return errors.As(err, &ae) && ae.Kind == access.Transport
}

// Handle records one event. Transitions other than completion are
// acknowledged without a record.
func (c *Consumer) Handle(ctx context.Context, body []byte) error {
	var ev OrderStatusChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if ev.OrderID == "" || ev.MerchantID == "" {
		return errors.New("event without order or merchant id")
	}

	if ev.To != model.OrderCompleted {
		c.Log.Debug("order consumer: skipped transition", zap.String("order_id", ev.OrderID), zap.String("to", string(ev.To)))
		return nil
	}
	kind := model.EventOrderCompleted

	session := ev.MessageID
	if session == "" {
		session = ev.OrderID
	}
	_, err := access.Create(ctx, c.W, transform.AnalyticsEvents, view.AnalyticsEventInput{
		MerchantID: &ev.MerchantID,
		CustomerID: ev.CustomerID,
		EventType:  &kind,
		SessionID:  &session,
		Metadata: map[string]any{
			"order_id":     ev.OrderID,
			"from":         string(ev.From),
			"total_amount": ev.TotalAmount,
			"changed_at":   ev.ChangedAt,
		},
	})
	if err != nil {
		return err
	}
	c.Log.Info("order event recorded", zap.String("order_id", ev.OrderID), zap.String("event_type", string(kind)))
	return nil
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
