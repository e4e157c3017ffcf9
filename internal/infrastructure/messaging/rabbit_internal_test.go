package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/torneos-admin-api/internal/application/provisioning"
)

type fakeChannel struct {
	exchange, key string
	msg           amqp.Publishing
	err           error
	closed        bool
}

func (f *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitPublisher_PublicaJSONConRoutingKey(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{channel: ch, exchange: "torneos.users", appID: "torneos-admin-api"}
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	err := p.Publish(context.Background(), provisioning.UserEvent{
		Type: provisioning.EventUserCreated, UserID: "u1", Email: "a@x.com", RoleID: 3, OccurredAt: at,
	})
	require.NoError(t, err)

	assert.Equal(t, "torneos.users", ch.exchange)
	assert.Equal(t, "user.created", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.Equal(t, at, ch.msg.Timestamp)

	var got provisioning.UserEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, 3, got.RoleID)
}

func TestRabbitPublisher_PropagaError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	p := &RabbitPublisher{channel: ch, exchange: "x"}

	err := p.Publish(context.Background(), provisioning.UserEvent{Type: provisioning.EventUserDeleted, UserID: "u1"})
	assert.EqualError(t, err, "channel closed")
	assert.False(t, ch.msg.Timestamp.IsZero())
}

func TestRabbitPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &RabbitPublisher{channel: ch}
	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}
