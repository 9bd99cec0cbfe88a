// Package notificationservice subscribes to the order_events fan-out and
// surfaces each event as a log entry plus a human-readable stdout line.
package notificationservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"product-catalog/internal/domain"
	"product-catalog/internal/shared/logger"
	"product-catalog/internal/shared/rabbitmq"
)

// ConsumeForever continuously (re)creates a channel and consumes from the
// durable events queue until ctx is cancelled.
func ConsumeForever(ctx context.Context, rmq *rabbitmq.Client, logger *logger.Logger) {
	const (
		prefetch       = 50
		retryBaseDelay = time.Second
		retryMaxDelay  = 30 * time.Second
	)

	backoff := retryBaseDelay
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		ch, err := rmq.NewConsumerChannel(prefetch)
		if err != nil {
			logger.Error(ctx, "rabbitmq_channel_open_failed", "Failed to open consumer channel", err)
			if !sleepWithContext(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, retryMaxDelay)
			continue
		}

		backoff = retryBaseDelay

		deliveries, err := ch.Consume(rabbitmq.EventsQueue, "", false, false, false, false, nil)
		if err != nil {
			_ = ch.Close()
			logger.Error(ctx, "rabbitmq_consume_failed", "Failed to start consuming events", err)
			if !sleepWithContext(ctx, backoff) {
				return
			}
			backoff = nextBackoff(backoff, retryMaxDelay)
			continue
		}

		closed := ch.NotifyClose(make(chan *amqp.Error, 1))

	consumption:
		for {
			select {
			case <-ctx.Done():
				_ = ch.Close()
				return

			case amqpErr := <-closed:
				if amqpErr != nil {
					logger.Error(ctx, "rabbitmq_channel_closed", "Consumer channel closed", amqpErr)
				} else {
					logger.Error(ctx, "rabbitmq_channel_closed", "Consumer channel closed", errors.New("unknown channel close"))
				}
				break consumption

			case d, ok := <-deliveries:
				if !ok {
					logger.Error(ctx, "rabbitmq_deliveries_closed", "Deliveries channel closed", errors.New("deliveries channel closed"))
					break consumption
				}
				handleDelivery(ctx, logger, d)
			}
		}

		if !sleepWithContext(ctx, backoff) {
			return
		}
		backoff = nextBackoff(backoff, retryMaxDelay)
	}
}

// handleDelivery parses the event JSON, prints, and acknowledges.
func handleDelivery(ctx context.Context, logger *logger.Logger, d amqp.Delivery) {
	var ev domain.Event
	if err := json.Unmarshal(d.Body, &ev); err != nil {
		logger.Error(ctx, "event_decode_failed", "Failed to decode event JSON", err)
		// malformed JSON cannot be recovered by redelivery - ack to drop it
		_ = d.Ack(false)
		return
	}

	logger.Debug(ctx, "event_received", "Received order event", map[string]any{
		"type":     string(ev.Type),
		"order_id": ev.Order.OrderID,
		"status":   string(ev.Order.Status),
	})

	fmt.Println(RenderHuman(ev))

	if err := d.Ack(false); err != nil {
		logger.Error(ctx, "rabbitmq_ack_failed", "Failed to ack event message", err)
	}
}

// RenderHuman formats one event as a single readable line.
func RenderHuman(ev domain.Event) string {
	return fmt.Sprintf("Notification %s for order %s: status '%s', user %s",
		ev.Type, ev.Order.OrderID, ev.Order.Status, ev.Order.UserID)
}

// sleepWithContext sleeps for d or returns false early if ctx is done.
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

// nextBackoff doubles the delay up to max.
func nextBackoff(cur, max time.Duration) time.Duration {
	next := cur * 2
	if next > max {
		return max
	}
	return next
}
