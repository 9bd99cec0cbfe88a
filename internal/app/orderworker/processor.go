// Package orderworker advances orders through the fulfillment state machine:
// PENDING -> PROCESSING -> COMPLETED, linear, no branching. Messages arrive
// at least once and possibly out of send order; redelivery of a completed
// order re-runs the walk idempotently with respect to final state, at the
// cost of duplicate notifications.
package orderworker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
	"product-catalog/internal/shared/logger"
)

// Message is one queue delivery: an opaque identifier for acknowledgment
// plus the serialized order payload produced at creation time.
type Message struct {
	ID   string
	Body []byte
}

// Sleeper simulates processing latency (time.Sleep in prod, no-op in tests).
type Sleeper func(ctx context.Context, d time.Duration)

// Processor consumes order-processing jobs batch by batch.
type Processor struct {
	store     ports.OrderStore
	publisher ports.EventPublisher
	delay     time.Duration
	sleep     Sleeper
	logger    *logger.Logger
}

// NewProcessor wires a Processor over its collaborators.
func NewProcessor(
	store ports.OrderStore,
	publisher ports.EventPublisher,
	delay time.Duration,
	sleep Sleeper,
	logger *logger.Logger,
) *Processor {
	if sleep == nil {
		sleep = sleepWithContext
	}
	return &Processor{
		store:     store,
		publisher: publisher,
		delay:     delay,
		sleep:     sleep,
		logger:    logger,
	}
}

// ProcessBatch handles each message independently and returns the batch
// positions of the ones that failed, for selective redelivery. Positions
// rather than IDs: message IDs are producer-set and may repeat within a
// batch, but each delivery still needs its own settlement. One poisoned or
// erroring message never blocks or fails the others in the batch.
func (p *Processor) ProcessBatch(ctx context.Context, msgs []Message) []int {
	var failed []int
	for i, msg := range msgs {
		if err := p.processOne(ctx, msg); err != nil {
			p.logger.Error(ctx, "order_processing_failed",
				fmt.Sprintf("Error processing order from message %s", msg.ID), err)
			failed = append(failed, i)
		}
	}
	return failed
}

// processOne runs the full walk for a single message. Every step can fail
// independently; a crash mid-walk leaves earlier transitions durably applied
// and relies on redelivery to finish the job.
func (p *Processor) processOne(ctx context.Context, msg Message) error {
	var order domain.Order
	if err := json.Unmarshal(msg.Body, &order); err != nil {
		return fmt.Errorf("decode order payload: %w", err)
	}

	// stand-in for real fulfillment latency (inventory, payment capture)
	if p.delay > 0 {
		p.sleep(ctx, p.delay)
	}

	if _, err := p.store.UpdateStatus(ctx, order.OrderID, domain.StatusProcessing); err != nil {
		return err
	}

	// business processing step would run here

	updated, err := p.store.UpdateStatus(ctx, order.OrderID, domain.StatusCompleted)
	if err != nil {
		return err
	}

	if err := p.publisher.Publish(ctx, domain.Event{Type: domain.EventOrderCompleted, Order: *updated}); err != nil {
		return err
	}

	p.logger.Debug(ctx, "order_completed", "Order processed", map[string]any{
		"order_id": order.OrderID,
	})
	return nil
}

// sleepWithContext waits for d or until ctx is done, whichever comes first.
func sleepWithContext(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
