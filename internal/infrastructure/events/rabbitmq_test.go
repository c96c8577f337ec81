package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/product-catalog/internal/domain/entity"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublisher_PublishProductCreated(t *testing.T) {
	ch := &fakeChannel{}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	pub := newPublisher(ch, "catalog.events", func() time.Time { return at })

	err := pub.PublishProductCreated(context.Background(), &entity.Product{
		ID: 7, Name: "Widget", Price: decimal.RequireFromString("9.99"), Stock: 5,
	})
	require.NoError(t, err)

	assert.Equal(t, "catalog.events", ch.exchange)
	assert.Equal(t, RoutingKeyProductCreated, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(ch.msg.Body, &got))
	assert.Equal(t, "product.created", got["event"])
	product := got["product"].(map[string]interface{})
	assert.Equal(t, float64(7), product["id"])
	assert.Equal(t, "9.99", product["price"])
	assert.Nil(t, product["description"])
}

func TestPublisher_PublishError(t *testing.T) {
	ch := &fakeChannel{err: errors.New("channel closed")}
	pub := newPublisher(ch, "catalog.events", time.Now)

	err := pub.PublishProductCreated(context.Background(), &entity.Product{ID: 1, Name: "X"})
	assert.ErrorContains(t, err, "channel closed")
}

func TestPublisher_CanceledContext(t *testing.T) {
	ch := &fakeChannel{}
	pub := newPublisher(ch, "catalog.events", time.Now)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, pub.PublishProductCreated(ctx, &entity.Product{ID: 1}), context.Canceled)
	assert.Empty(t, ch.key)
}

func TestPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	pub := newPublisher(ch, "catalog.events", time.Now)
	require.NoError(t, pub.Close())
	assert.True(t, ch.closed)
}
