package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadCapturedPayload is published whenever a new lead is created; the
// follow-up worker turns it into a welcome email.
type LeadCapturedPayload struct {
	EventID string `json:"event_id"`
	LeadID  int64  `json:"lead_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Program string `json:"program"`
}

type ProducerInterface interface {
	PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{Conn: conn, Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadCaptured(ctx context.Context, payload LeadCapturedPayload) error {
	if payload.EventID == "" {
		payload.EventID = uuid.New().String()
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshalling payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("publishing to RabbitMQ: %w", err)
	}

	return nil
}
