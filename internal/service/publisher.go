package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/rlaig/ezorder/internal/queue"
)

// EventPublisher delivers order events. Failures are the publisher's to log;
// callers never fail a request on them.
type EventPublisher interface {
	PublishOrderStatusChanged(ctx context.Context, ev queue.OrderStatusChangedEvent) error
}

// NopPublisher drops every event. It is used when the queue is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishOrderStatusChanged(context.Context, queue.OrderStatusChangedEvent) error {
	return nil
}

// AMQPPublisher publishes events to a durable RabbitMQ queue. Each publish
// dials its own connection so a broker restart needs no reconnect logic.
type AMQPPublisher struct {
	URL   string
	Queue string
	Log   *zap.Logger
}

func NewAMQPPublisher(url, queueName string, log *zap.Logger) *AMQPPublisher {
	return &AMQPPublisher{URL: url, Queue: queueName, Log: log}
}

func (p *AMQPPublisher) PublishOrderStatusChanged(ctx context.Context, ev queue.OrderStatusChangedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	err = p.publish(ctx, ev.MessageID, body)
	if err != nil {
		p.Log.Warn("publish order event failed",
			zap.String("queue", p.Queue),
			zap.String("order_id", ev.OrderID),
			zap.Error(err))
	}
	return err
}

func (p *AMQPPublisher) publish(ctx context.Context, messageID string, body []byte) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.Queue, true, false, false, false, nil); err != nil {
		return err
	}
	return ch.PublishWithContext(ctx, "", p.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    messageID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}
