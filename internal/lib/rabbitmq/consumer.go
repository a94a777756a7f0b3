package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/careconnect/internal/lib/sl"
)

// ErrPermanent помечает сообщение, повторная обработка которого не поможет.
// Такое сообщение отклоняется без возврата в очередь.
var ErrPermanent = errors.New("permanent message failure")

// maxInFlight ограничивает число одновременно обрабатываемых сообщений.
const maxInFlight = 10

// ConsumerMessage запускает потребителя очереди queueName. Успешно обработанное
// сообщение подтверждается, при ошибке возвращается в очередь.
func ConsumerMessage(ctx context.Context, ch *amqp.Channel, queueName string, handler func([]byte) error, log *slog.Logger) error {
	const op = "rabbitmq.ConsumerMessage"

	if err := ch.Qos(maxInFlight, 0, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
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

	log = log.With(slog.String("queue", queueName))
	sem := make(chan struct{}, maxInFlight)
	go func() {
		for {
			select {
			case d, ok := <-delivery:
				if !ok {
					log.Info("delivery channel closed")
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					settle(d, handler(d.Body), log)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return nil
}

// Acknowledger подтверждает или отклоняет доставку.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func settle(d Acknowledger, err error, log *slog.Logger) {
	if err == nil {
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack message", sl.Err(ackErr))
		}
		return
	}

	requeue := !errors.Is(err, ErrPermanent)
	log.Warn("message handling failed", sl.Err(err), slog.Bool("requeue", requeue))
	if nackErr := d.Nack(false, requeue); nackErr != nil {
		log.Error("failed to nack message", sl.Err(nackErr))
	}
}
