package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/zadania-app/task-manager/internal/models"
)

// PublishMessage публикует сообщение в RabbitMQ.
func PublishMessage(ch *amqp.Channel, exchange, routingKey, messageID string, message any) error {
	const op = "rabbitmq.PublishMessage"
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = ch.Publish(
		exchange,
		routingKey,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    messageID,
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Publisher публикует события задач в topic-обменник.
// Ключ маршрутизации совпадает с типом события.
type Publisher struct {
	conn     *amqp.Connection
	exchange string

	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher подключается к брокеру и объявляет обменник.
func NewPublisher(ctx context.Context, url, exchange string) (*Publisher, error) {
	const op = "rabbitmq.NewPublisher"

	conn, err := Connect(ctx, url, 3, connectDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := SetupChannel(conn, exchange)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: conn, exchange: exchange, ch: ch}, nil
}

// Publish отправляет событие. Канал AMQP не рассчитан на конкурентную
// публикацию, поэтому вызовы сериализуются.
func (p *Publisher) Publish(ctx context.Context, event models.TaskEvent) error {
	const op = "rabbitmq.Publish"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := PublishMessage(p.ch, p.exchange, string(event.Type), uuid.NewString(), NewTaskEventMessage(event)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	chErr := p.ch.Close()
	connErr := p.conn.Close()
	if chErr != nil {
		return chErr
	}
	return connErr
}

// Noop не публикует ничего. Используется, если RabbitMQ не настроен.
type Noop struct{}

func (Noop) Publish(context.Context, models.TaskEvent) error { return nil }
func (Noop) Close() error                                    { return nil }
