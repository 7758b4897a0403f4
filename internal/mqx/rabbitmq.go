// Package mqx publishes domain events to RabbitMQ.
package mqx

import (
	"context"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/lo"

	"portfolio-api/internal/config"
)

// Publisher sends a message body under a routing key.
type Publisher interface {
	Publish(ctx context.Context, routingKey string, body []byte) error
	Close() error
}

// Open connects to cfg.MQ.URL. It returns a nil Publisher when no URL is set.
func Open(cfg *config.Config) (Publisher, func(), error) {
	if cfg.MQ.URL == "" {
		return nil, func() {}, nil
	}
	pub, err := NewRabbitPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
	if err != nil {
		return nil, func() {}, err
	}
	return pub, func() {
		if err := pub.Close(); err != nil {
			mqLogger.Sugar().Warnf("close rabbitmq: %v", err)
		}
	}, nil
}

// RabbitPublisher publishes persistent JSON messages to a topic exchange.
type RabbitPublisher struct {
	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewRabbitPublisher(url string, exchange string) (*RabbitPublisher, error) {
	exchange = lo.Ternary(exchange != "", exchange, "events")
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &RabbitPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		Timestamp:    time.Now(),
		DeliveryMode: amqp.Persistent,
	})
}

func (p *RabbitPublisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
