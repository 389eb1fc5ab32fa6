package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"furniture-delivery/internal/board"
	"furniture-delivery/internal/logx"
	"furniture-delivery/internal/mailbox"
	"furniture-delivery/internal/transport/grpchealth"
)

// Runner runs the HTTP API
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a new Runner
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := loggerFrom(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		panic(err)
	}
}

func loggerFrom(container *dig.Container) logx.Logger {
	var logger logx.Logger
	if err := container.Invoke(func(l logx.Logger) { logger = l }); err != nil || logger == nil {
		return logx.Nop()
	}
	return logger
}

type appIn struct {
	dig.In
	Ctx    context.Context
	Server *http.Server
	Pool   *pgxpool.Pool
	Logger logx.Logger
	Board  *board.Board       `optional:"true"`
	Store  mailbox.Store      `optional:"true"`
	Health *grpchealth.Server `optional:"true"`
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

func appRun(in appIn) error {
	defer closeResources(in)

	if err := in.Health.Start(); err != nil {
		return err
	}
	serveErr := startServer(in.Server, in.Logger)
	in.Health.SetServing("", true)

	select {
	case <-in.Ctx.Done():
	case err := <-serveErr:
		return fmt.Errorf("listen: %w", err)
	}

	in.Logger.Info("shutting down delivery-api...")
	in.Health.SetServing("", false)
	gracefulShutdown(in.Server, in.Logger, 15*time.Second)
	return in.Ctx.Err()
}

func startServer(server *http.Server, logger logx.Logger) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("delivery-api listening", logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	return errCh
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Error("graceful shutdown error", logx.Err(err))
	}
}

func closeResources(in appIn) {
	if err := in.Server.Close(); err != nil {
		in.Logger.Error("server close error", logx.Err(err))
	}
	in.Health.Stop()
	if in.Board != nil {
		in.Board.Close()
	}
	closeStore(in.Store, in.Logger)
	if in.Pool != nil {
		in.Pool.Close()
	}
}

func closeStore(store mailbox.Store, logger logx.Logger) {
	if store == nil {
		return
	}
	if err := store.Close(); err != nil {
		logger.Error("mailbox store close error", logx.Err(err))
	}
}
