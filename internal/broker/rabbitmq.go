package broker

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// OrdersExchange topic exchange для событий заказов.
const OrdersExchange = "orders"

// RabbitPublisher публикует JSON-сообщения в topic exchange
type RabbitPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	mu       sync.Mutex
}

// NewRabbitPublisher подключается к брокеру и объявляет durable topic exchange.
func NewRabbitPublisher(url, exchange string) (*RabbitPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("не удалось подключиться к RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("не удалось открыть канал: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("не удалось объявить exchange %s: %w", exchange, err)
	}

	return &RabbitPublisher{conn: conn, channel: channel, exchange: exchange}, nil
}

// Publish отправляет сообщение с заданным routing key
func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("не удалось опубликовать сообщение %s: %w", routingKey, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *RabbitPublisher) Close() {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NoopPublisher отбрасывает сообщения, когда брокер не настроен.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, []byte) error {
	return nil
}
