package memory

import (
	"context"
	"errors"
	"sync"

	"product-catalog/internal/domain"
	"product-catalog/internal/ports"
)

// EventPublisher records events instead of fanning them out. Local mode logs
// them; tests inspect them.
type EventPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

var _ ports.EventPublisher = (*EventPublisher)(nil)

func NewEventPublisher() *EventPublisher {
	return &EventPublisher{}
}

func (p *EventPublisher) Publish(ctx context.Context, ev domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

// Events returns a copy of everything published so far.
func (p *EventPublisher) Events() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Event, len(p.events))
	copy(out, p.events)
	return out
}

// JobQueue is a buffered in-process work queue. Enqueue fails once the buffer
// is full rather than blocking the request path.
type JobQueue struct {
	ch chan domain.Order
}

var _ ports.JobEnqueuer = (*JobQueue)(nil)

func NewJobQueue(size int) *JobQueue {
	return &JobQueue{ch: make(chan domain.Order, size)}
}

func (q *JobQueue) Enqueue(ctx context.Context, o domain.Order) error {
	select {
	case q.ch <- o:
		return nil
	case <-ctx.Done():
		return &domain.EnqueueError{Err: ctx.Err()}
	default:
		return &domain.EnqueueError{Err: errors.New("job queue is full")}
	}
}

// Jobs exposes the delivery side for the embedded worker loop.
func (q *JobQueue) Jobs() <-chan domain.Order {
	return q.ch
}
