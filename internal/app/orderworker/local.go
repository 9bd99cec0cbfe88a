package orderworker

import (
	"context"
	"encoding/json"

	"product-catalog/internal/domain"
	"product-catalog/internal/shared/logger"
)

// ConsumeJobs drains an in-process job channel, re-encoding each order into
// the same message shape the broker path delivers, until ctx is done. Local
// mode runs this instead of the AMQP consumer; everything downstream of the
// Message boundary is shared.
func ConsumeJobs(ctx context.Context, jobs <-chan domain.Order, p *Processor, log *logger.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case order := <-jobs:
			body, err := json.Marshal(order)
			if err != nil {
				log.Error(ctx, "job_encode_failed", "Failed to encode local job", err)
				continue
			}
			p.ProcessBatch(ctx, []Message{{ID: order.OrderID, Body: body}})
		}
	}
}
