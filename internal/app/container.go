package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"furniture-delivery/internal/board"
	"furniture-delivery/internal/clock"
	"furniture-delivery/internal/config"
	"furniture-delivery/internal/gateway/persistence"
	"furniture-delivery/internal/http/handlers"
	"furniture-delivery/internal/http/middleware"
	"furniture-delivery/internal/http/middleware/ratelimit"
	"furniture-delivery/internal/http/router"
	"furniture-delivery/internal/lifecycle"
	"furniture-delivery/internal/logx"
	"furniture-delivery/internal/mailbox"
	"furniture-delivery/internal/ordering"
	"furniture-delivery/internal/repository"
	"furniture-delivery/internal/service/delivery"
	"furniture-delivery/internal/service/driver"
	"furniture-delivery/internal/transport/grpchealth"
)

type dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)

type migrateFunc func(context.Context, *pgxpool.Pool) error

// serviceTimeout bounds a single use case call, store retries included.
type serviceTimeout time.Duration

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	migrate   migrateFunc
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		migrate:   repository.Migrate,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithMigrate sets the schema migration function
func (b *ContainerBuilder) WithMigrate(fn migrateFunc) *ContainerBuilder {
	if fn != nil {
		b.migrate = fn
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds and returns the API container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds and returns the status worker container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

// build builds the API container
func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

// buildWorker builds the status worker container
func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container, err := b.buildShared(ctx)
	if err != nil {
		return nil, err
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildShared(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerMetrics(container); err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	if err := registerDb(container, b.dbConnect, b.migrate); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerGateway(container); err != nil {
		return nil, fmt.Errorf("gateway: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds and returns the API container
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds and returns the status worker container
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
		func() clock.Clock { return clock.RealClock{} },
		func() serviceTimeout { return serviceTimeout(15 * time.Second) },
	)
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc, migrate migrateFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		pool, err := dbConnect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
		if err != nil {
			return nil, err
		}
		if err := migrate(ctx, pool); err != nil {
			if pool != nil {
				pool.Close()
			}
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pool, nil
	}
	return provideAll(container, providerDB)
}

type gatewayIn struct {
	dig.In
	Cfg     *config.Config
	Logger  logx.Logger
	Pool    *pgxpool.Pool
	Retries prometheus.Counter `name:"gateway_retries_total"`
	Dropped prometheus.Counter `name:"schema_dropped_columns_total"`
}

func registerGateway(container *dig.Container) error {
	return provideAll(container,
		func(in gatewayIn) *persistence.Retrier {
			return persistence.NewRetrier(in.Logger, in.Retries, persistence.RetryConfig{
				MaxAttempts: in.Cfg.Retry.MaxAttempts,
				BaseDelay:   in.Cfg.Retry.BaseDelay,
				MaxDelay:    in.Cfg.Retry.MaxDelay,
			})
		},
		func(in gatewayIn, retrier *persistence.Retrier) *persistence.Writer {
			catalog := persistence.NewCatalog(in.Pool, "public")
			return persistence.NewWriter(catalog, in.Pool, retrier, in.Logger, in.Dropped)
		},
		repository.NewDeliveryRepo,
		repository.NewDriverRepo,
	)
}

type deliveryServiceIn struct {
	dig.In
	Logger      logx.Logger
	Clock       clock.Clock
	Timeout     serviceTimeout
	Repo        *repository.DeliveryRepo
	Drivers     *driver.Service
	Mailbox     *mailbox.Mailbox
	Sorter      *ordering.Engine
	Transitions *prometheus.CounterVec `name:"status_transitions_total"`
	Rejected    prometheus.Counter     `name:"invalid_transitions_total"`
	Posts       *prometheus.CounterVec `name:"mailbox_posts_total"`
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(repo *repository.DriverRepo, timeout serviceTimeout) *driver.Service {
			return driver.NewService(repo, time.Duration(timeout))
		},
		func(cfg *config.Config) (*ordering.Engine, error) {
			return ordering.New(cfg.SortLocale)
		},
		func(ctx context.Context, cfg *config.Config) (mailbox.Store, error) {
			return mailbox.OpenStore(ctx, cfg.Mailbox.DSN)
		},
		func(store mailbox.Store, c clock.Clock, logger logx.Logger) *mailbox.Mailbox {
			return mailbox.New(store, c, logger)
		},
		func(in deliveryServiceIn) *delivery.Service {
			return delivery.NewDeliveryService(delivery.Deps{
				Repo:     in.Repo,
				Drivers:  in.Drivers,
				Machine:  lifecycle.NewMachine(in.Clock, time.Local),
				Sorter:   in.Sorter,
				Mailbox:  in.Mailbox,
				Tracking: delivery.NewTrackingFactory(),
				Clock:    in.Clock,
				Metrics: delivery.Metrics{
					Transitions:  in.Transitions,
					Rejected:     in.Rejected,
					MailboxPosts: in.Posts,
				},
			}, time.Duration(in.Timeout), in.Logger)
		},
		func(cfg *config.Config, logger logx.Logger) *grpchealth.Server {
			return grpchealth.New(cfg.GRPCHealthPort, logger)
		},
	)
}

func registerHTTP(container *dig.Container) error {
	boardProvider := func(
		cfg *config.Config,
		svc *delivery.Service,
		engine *ordering.Engine,
		mb *mailbox.Mailbox,
		c clock.Clock,
		logger logx.Logger,
	) *board.Board {
		return board.New(svc, engine, mb, c, logger, board.Options{
			Refresh: cfg.Board.RefreshInterval,
			MaxAge:  cfg.Mailbox.MaxAge,
		})
	}
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		boardProvider,
		handlers.New,
		handlers.NewDriverUsecase,
		handlers.NewDriverHandler,
		handlers.NewDeliveryUsecase,
		handlers.NewBoardReader,
		handlers.NewDeliveryHandler,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
	)
}

type routerIn struct {
	dig.In
	Logger     logx.Logger
	Base       *handlers.Handlers
	Drivers    *handlers.DriverHandler
	Deliveries *handlers.DeliveryHandler
	RateLimit  *ratelimit.Middleware
	Metrics    middleware.HTTPMetrics
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:     in.Logger,
		Base:       in.Base,
		Drivers:    in.Drivers,
		Deliveries: in.Deliveries,
		Metrics:    in.Metrics,
		RateLimit:  in.RateLimit.Handler(),
	})
}
