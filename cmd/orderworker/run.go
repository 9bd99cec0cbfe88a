// Package orderworker runs the queue consumer that advances orders through
// fulfillment. Deliveries are collected into small batches; the processor
// reports which messages failed and only those are nacked to the dead-letter
// queue, so one poisoned message never takes the batch down with it.
package orderworker

import (
	"context"
	"strconv"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	service "product-catalog/internal/app/orderworker"
	"product-catalog/internal/shared/config"
	"product-catalog/internal/shared/logger"
	pg "product-catalog/internal/shared/postgres"
	"product-catalog/internal/shared/rabbitmq"
)

// flushInterval bounds how long a partial batch waits before processing.
const flushInterval = 500 * time.Millisecond

func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger("order-worker")
	ctx = log.WithRequestID(ctx, "startup-001")

	pool, err := pg.NewPool(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "db_connection_failed", "Failed to initialize Postgres pool", err)
		return err
	}
	defer pool.Close()

	rmq, err := rabbitmq.Connect(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "rabbitmq_connection_failed", "Failed to connect to RabbitMQ", err)
		return err
	}
	defer rmq.Close()

	processor := service.NewProcessor(
		pg.NewOrdersRepo(pool),
		&rabbitmq.EventPublisher{Client: rmq},
		cfg.Worker.ProcessingDelay,
		nil,
		log,
	)

	log.Info(ctx, "service_started", "Order worker started", map[string]any{
		"batch_size": cfg.Worker.BatchSize,
		"prefetch":   cfg.Worker.Prefetch,
	})

	consume(ctx, log, rmq, processor, cfg.Worker.BatchSize, cfg.Worker.Prefetch)

	log.Info(ctx, "graceful_shutdown", "Order worker shutdown completed", nil)
	return nil
}

// consume (re)subscribes to the work queue with backoff until ctx is done.
func consume(
	ctx context.Context,
	log *logger.Logger,
	rmq *rabbitmq.Client,
	processor *service.Processor,
	batchSize, prefetch int,
) {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return
		}

		ch, err := rmq.NewConsumerChannel(prefetch)
		if err != nil {
			log.Error(ctx, "rabbitmq_channel_failed", "Failed to open consumer channel", err)
			if !sleepWithContext(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}

		deliveries, err := ch.Consume(rabbitmq.OrdersQueue, "order-worker", false, false, false, false, nil)
		if err != nil {
			_ = ch.Close()
			log.Error(ctx, "rabbitmq_consume_failed", "Failed to start consuming", err)
			if !sleepWithContext(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff)
			continue
		}

		backoff = time.Second

		if !readLoop(ctx, log, processor, deliveries, batchSize) {
			_ = ch.Cancel("order-worker", false)
			_ = ch.Close()
			return
		}

		// deliveries channel closed underneath us; resubscribe
		_ = ch.Close()
		if !sleepWithContext(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff)
	}
}

// readLoop gathers deliveries into batches and dispatches them. Returns false
// when ctx ended (terminal) and true when the broker channel closed
// (resubscribe).
func readLoop(
	ctx context.Context,
	log *logger.Logger,
	processor *service.Processor,
	deliveries <-chan amqp.Delivery,
	batchSize int,
) bool {
	var batch []amqp.Delivery
	flush := time.NewTicker(flushInterval)
	defer flush.Stop()

	dispatch := func() {
		if len(batch) == 0 {
			return
		}
		handleBatch(ctx, log, processor, batch)
		batch = nil
	}

	for {
		select {
		case <-ctx.Done():
			// in-flight unacked deliveries are requeued by the broker
			dispatch()
			return false

		case <-flush.C:
			dispatch()

		case d, ok := <-deliveries:
			if !ok {
				dispatch()
				return true
			}
			batch = append(batch, d)
			if len(batch) >= batchSize {
				dispatch()
			}
		}
	}
}

// handleBatch runs the processor and settles each delivery: ack on success,
// nack without requeue on failure so the broker dead-letters it for
// selective retry.
func handleBatch(ctx context.Context, log *logger.Logger, processor *service.Processor, batch []amqp.Delivery) {
	msgs := make([]service.Message, len(batch))
	for i, d := range batch {
		msgs[i] = service.Message{ID: deliveryID(d), Body: d.Body}
	}

	failed := processor.ProcessBatch(ctx, msgs)
	failedSet := make(map[int]struct{}, len(failed))
	for _, i := range failed {
		failedSet[i] = struct{}{}
	}

	// settle by batch position: producer-set message ids may repeat, and a
	// duplicate must never drag its twin's ack/nack decision along
	for i, d := range batch {
		if _, bad := failedSet[i]; bad {
			_ = d.Nack(false, false)
			continue
		}
		_ = d.Ack(false)
	}

	if len(failed) > 0 {
		log.Debug(ctx, "batch_partial_failure", "Some messages failed and were dead-lettered", map[string]any{
			"batch_size": len(batch),
			"failed":     len(failed),
		})
	}
}

// deliveryID prefers the broker message id and falls back to the delivery tag.
func deliveryID(d amqp.Delivery) string {
	if d.MessageId != "" {
		return d.MessageId
	}
	return strconv.FormatUint(d.DeliveryTag, 10)
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func nextBackoff(cur time.Duration) time.Duration {
	next := cur * 2
	if next > 30*time.Second {
		return 30 * time.Second
	}
	return next
}
