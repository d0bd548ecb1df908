package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"
)

// AllTaskEvents — ключ привязки, под который попадают все события задач.
const AllTaskEvents = "zadanie.#"

// ConsumeTaskEvents читает события задач из очереди и передаёт их handler.
// Сообщение подтверждается, если handler вернул nil, и возвращается
// в очередь в противном случае. Нечитаемые сообщения отбрасываются.
// Функция блокируется до отмены ctx или закрытия канала.
func ConsumeTaskEvents(ctx context.Context, ch *amqp.Channel, queueName string, handler func(TaskEventMessage) error) error {
	const op = "rabbitmq.ConsumeTaskEvents"
	delivery, err := ch.Consume(
		queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case d, ok := <-delivery:
			if !ok {
				return nil
			}
			var msg TaskEventMessage
			if err := json.Unmarshal(d.Body, &msg); err != nil {
				if nackErr := d.Nack(false, false); nackErr != nil {
					return fmt.Errorf("%s: %w", op, nackErr)
				}
				continue
			}
			if err := handler(msg); err != nil {
				if nackErr := d.Nack(false, true); nackErr != nil {
					return fmt.Errorf("%s: %w", op, nackErr)
				}
				continue
			}
			if ackErr := d.Ack(false); ackErr != nil {
				return fmt.Errorf("%s: %w", op, ackErr)
			}
		case <-ctx.Done():
			return nil
		}
	}
}
