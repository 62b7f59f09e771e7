package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/gym-admin/internal/lib/sl"
)

// Handler обрабатывает тело сообщения. Ошибка возвращает сообщение в очередь.
type Handler func(body []byte) error

// ConsumerMessage запускает потребителя очереди queueName. Сообщения обрабатываются
// параллельно, не более prefetch одновременно. Возвращённый канал закрывается,
// когда потребитель остановлен отменой ctx или закрытием канала AMQP и все
// начатые обработчики завершились.
func ConsumerMessage(ctx context.Context, log *slog.Logger, ch *amqp.Channel, queueName string, handler Handler) (<-chan struct{}, error) {
	const op = "rabbitmq.ConsumerMessage"
	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	done := make(chan struct{})
	sem := make(chan struct{}, prefetch)
	var wg sync.WaitGroup

	go func() {
		defer close(done)
		defer wg.Wait()
		for {
			select {
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				sem <- struct{}{}
				wg.Add(1)
				go func(d amqp.Delivery) {
					defer wg.Done()
					defer func() { <-sem }()
					handle(log, d, handler)
				}(d)
			case <-ctx.Done():
				return
			}
		}
	}()
	return done, nil
}

func handle(log *slog.Logger, d amqp.Delivery, handler Handler) {
	if err := handler(d.Body); err != nil {
		log.Warn("message handling failed, requeue", sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}
