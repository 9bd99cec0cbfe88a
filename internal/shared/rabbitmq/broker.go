package rabbitmq

import (
	"context"
	"encoding/json"

	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
)

// EventPublisher fans events out through the order_events exchange.
type EventPublisher struct {
	Client *Client
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

// Publish marshals the event and hands it to the fanout exchange.
// Fire-and-forget: subscriber-side retry belongs to the broker.
func (p *EventPublisher) Publish(ctx context.Context, ev domain.Event) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return &domain.PublishError{Err: err}
	}
	if err := p.Client.PublishMessage(EventsExchange, "", body); err != nil {
		return &domain.PublishError{Err: err}
	}
	return nil
}

// JobEnqueuer sends processing jobs to the orders work queue.
type JobEnqueuer struct {
	Client *Client
}

var _ ports.JobEnqueuer = (*JobEnqueuer)(nil)

// Enqueue marshals the full order payload onto the work queue via the
// default exchange.
func (q *JobEnqueuer) Enqueue(ctx context.Context, o domain.Order) error {
	body, err := json.Marshal(o)
	if err != nil {
		return &domain.EnqueueError{Err: err}
	}
	if err := q.Client.PublishMessage("", OrdersQueue, body); err != nil {
		return &domain.EnqueueError{Err: err}
	}
	return nil
}
