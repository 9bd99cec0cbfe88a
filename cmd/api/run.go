// Package api wires the HTTP service and blocks until ctx is cancelled.
package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	service "product-catalog/internal/app/api"
	"product-catalog/internal/app/orderworker"
	"product-catalog/internal/ports"
	"product-catalog/internal/shared/config"
	"product-catalog/internal/shared/logger"
	"product-catalog/internal/shared/memory"
	pg "product-catalog/internal/shared/postgres"
	"product-catalog/internal/shared/rabbitmq"
)

func Run(ctx context.Context, cfg *config.Config) error {
	log := logger.NewLogger("api")
	ctx = log.WithRequestID(ctx, "startup-001")

	var (
		productStore ports.ProductStore
		orderStore   ports.OrderStore
		publisher    ports.EventPublisher
		enqueuer     ports.JobEnqueuer
	)

	// resolve the dependency set once; handlers and services never branch on
	// the mode themselves
	if cfg.Mode == config.ModeLocal {
		productStore = memory.NewProductStore()
		orderStore = memory.NewOrderStore()
		publisher = memory.NewEventPublisher()

		queue := memory.NewJobQueue(1024)
		enqueuer = queue

		// local mode embeds the worker so the full lifecycle runs in-process
		workerLog := logger.NewLogger("order-worker")
		processor := orderworker.NewProcessor(orderStore, publisher, cfg.Worker.ProcessingDelay, nil, workerLog)
		go orderworker.ConsumeJobs(ctx, queue.Jobs(), processor, workerLog)

		log.Info(ctx, "local_mode", "Running with in-memory store and broker", nil)
	} else {
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

		productStore = pg.NewProductsRepo(pool)
		orderStore = pg.NewOrdersRepo(pool)
		publisher = &rabbitmq.EventPublisher{Client: rmq}
		enqueuer = &rabbitmq.JobEnqueuer{Client: rmq}
	}

	products := service.NewProductService(productStore, log)
	orders := service.NewOrderService(orderStore, publisher, enqueuer, log)
	router := service.NewRouter(products, orders, log)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	log.Info(ctx, "service_started",
		fmt.Sprintf("API service started on port %d", cfg.HTTPPort),
		map[string]any{"port": cfg.HTTPPort, "mode": cfg.Mode})

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		// drain keep-alives and in-flight requests
		shCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
