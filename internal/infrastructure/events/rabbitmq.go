package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/streadway/amqp"

	"github.com/jhoicas/product-catalog/internal/application/dto"
	"github.com/jhoicas/product-catalog/internal/domain/entity"
)

// RoutingKeyProductCreated clave con la que se publica el alta de un producto.
const RoutingKeyProductCreated = "product.created"

// ProductCreatedEvent cuerpo JSON del mensaje.
type ProductCreatedEvent struct {
	Event      string              `json:"event"`
	OccurredAt time.Time           `json:"occurred_at"`
	Product    dto.ProductResponse `json:"product"`
}

// channel subconjunto de *amqp.Channel que usa el publicador.
type channel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher publica eventos de catálogo en un exchange fanout de RabbitMQ.
// amqp.Channel no es seguro entre goroutines, por eso el mutex.
type Publisher struct {
	conn     *amqp.Connection
	mu       sync.Mutex
	ch       channel
	exchange string
	now      func() time.Time
}

// Dial conecta con RabbitMQ y declara el exchange (durable, fanout).
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("conectar RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("abrir canal: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declarar exchange %s: %w", exchange, err)
	}
	return &Publisher{conn: conn, ch: ch, exchange: exchange, now: time.Now}, nil
}

func newPublisher(ch channel, exchange string, now func() time.Time) *Publisher {
	return &Publisher{ch: ch, exchange: exchange, now: now}
}

// PublishProductCreated emite product.created con el producto ya persistido.
func (p *Publisher) PublishProductCreated(ctx context.Context, product *entity.Product) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(ProductCreatedEvent{
		Event:      RoutingKeyProductCreated,
		OccurredAt: p.now().UTC(),
		Product: dto.ProductResponse{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Stock:       product.Stock,
		},
	})
	if err != nil {
		return fmt.Errorf("serializar evento: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.ch.Publish(p.exchange, RoutingKeyProductCreated, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    p.now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publicar %s: %w", RoutingKeyProductCreated, err)
	}
	return nil
}

// Close cierra canal y conexión.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var firstErr error
	if p.ch != nil {
		firstErr = p.ch.Close()
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
