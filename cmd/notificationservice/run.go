// Package notificationservice runs the fan-out subscriber.
package notificationservice

import (
	"context"
	"fmt"
	"sync"

	service "product-catalog/internal/app/notificationservice"
	"product-catalog/internal/shared/config"
	"product-catalog/internal/shared/logger"
	"product-catalog/internal/shared/rabbitmq"
)

func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger("notification-service")
	ctx = log.WithRequestID(ctx, "startup-001")

	rmq, err := rabbitmq.Connect(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "rabbitmq_connection_failed", "Failed to connect to RabbitMQ", err)
		return err
	}
	defer rmq.Close()

	log.Info(ctx, "service_started", "Notification service started", nil)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		service.ConsumeForever(ctx, rmq, log)
	}()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		// normal shutdown path
	case <-done:
		// on cancellation both branches can be ready; only a live context
		// makes the consumer stopping an error
		if err := exitErr(ctx); err != nil {
			return err
		}
	}

	log.Info(log.WithRequestID(context.Background(), "shutdown-001"), "graceful_shutdown", "Shutting down notification service", nil)

	wg.Wait()
	return nil
}

// exitErr classifies the consumer goroutine stopping: nil during shutdown,
// an error while the context is still live.
func exitErr(ctx context.Context) error {
	if ctx.Err() != nil {
		return nil
	}
	return fmt.Errorf("notification consumer exited unexpectedly")
}
