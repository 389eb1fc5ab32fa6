package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"furniture-delivery/internal/logx"
	"furniture-delivery/internal/mailbox"
	"furniture-delivery/internal/transport/grpchealth"
	"furniture-delivery/internal/transport/kafka"
)

// workerHealthService is the health service name the status worker reports.
const workerHealthService = "status-worker"

// WorkerRunner runs the status command worker
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the consumer using the provided DI container
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	pool *pgxpool.Pool,
	logger logx.Logger,
	consumer *kafka.Consumer,
	store mailbox.Store,
	health *grpchealth.Server,
) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: worker container misconfigured")
	}
	defer closeWorker(pool, logger, consumer, store, health)

	if err := health.Start(); err != nil {
		return err
	}
	health.SetServing(workerHealthService, true)

	logger.Info("status-worker started")
	err := consumer.Run(ctx)
	health.SetServing(workerHealthService, false)
	return err
}

func closeWorker(
	pool *pgxpool.Pool,
	logger logx.Logger,
	kafkaConsumer *kafka.Consumer,
	store mailbox.Store,
	health *grpchealth.Server,
) {
	if kafkaConsumer != nil {
		if err := kafkaConsumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	health.Stop()
	closeStore(store, logger)
	if pool != nil {
		pool.Close()
	}
}
