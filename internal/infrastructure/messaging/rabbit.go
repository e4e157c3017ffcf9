// Package messaging publica los eventos de ciclo de vida de usuarios en RabbitMQ.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
)

var _ provisioning.EventPublisher = (*RabbitPublisher)(nil)

// publisherChannel subconjunto de *amqp.Channel que usa el publicador.
type publisherChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitPublisher publica cada evento en un exchange direct con routing key = tipo de evento
// (user.created, user.registered, user.deleted).
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  publisherChannel
	exchange string
	appID    string
}

// NewRabbitPublisher abre conexión y canal y declara el exchange (durable).
func NewRabbitPublisher(amqpURL, exchange, appID string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("amqp dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeDirect, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("amqp exchange %q: %w", exchange, err)
	}
	return &RabbitPublisher{conn: conn, channel: ch, exchange: exchange, appID: appID}, nil
}

// Publish serializa el evento a JSON y lo publica como mensaje persistente.
func (r *RabbitPublisher) Publish(ctx context.Context, ev provisioning.UserEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}
	ts := ev.OccurredAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return r.channel.PublishWithContext(ctx, r.exchange, ev.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    ts,
		Type:         ev.Type,
		AppId:        r.appID,
		Body:         body,
	})
}

// Close cierra canal y conexión.
func (r *RabbitPublisher) Close() error {
	if err := r.channel.Close(); err != nil && r.conn != nil {
		r.conn.Close()
		return err
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
