package app

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"furniture-delivery/internal/http/middleware"
	"furniture-delivery/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal    prometheus.Counter     `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal       prometheus.Counter     `name:"gateway_retries_total"`
	SchemaDroppedColumnsTotal prometheus.Counter     `name:"schema_dropped_columns_total"`
	InvalidTransitionsTotal   prometheus.Counter     `name:"invalid_transitions_total"`
	StatusTransitionsTotal    *prometheus.CounterVec `name:"status_transitions_total"`
	MailboxPostsTotal         *prometheus.CounterVec `name:"mailbox_posts_total"`
	CommandsTotal             *prometheus.CounterVec `name:"status_commands_total"`
	HTTP                      middleware.HTTPMetrics
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, provideMetrics)
}

// provideMetrics registers every collector with the default registerer.
// A collector registered earlier (tests, a second container) is reused.
func provideMetrics() (metricsOut, error) {
	reg := prometheus.DefaultRegisterer
	var (
		out metricsOut
		err error
	)
	if out.RateLimitExceededTotal, err = register(reg, metrics.NewRateLimitExceededTotal(), "rate_limit_exceeded_total"); err != nil {
		return metricsOut{}, err
	}
	if out.GatewayRetriesTotal, err = register(reg, metrics.NewGatewayRetriesTotal(), "gateway_retries_total"); err != nil {
		return metricsOut{}, err
	}
	if out.SchemaDroppedColumnsTotal, err = register(reg, metrics.NewSchemaDroppedColumnsTotal(), "schema_dropped_columns_total"); err != nil {
		return metricsOut{}, err
	}
	if out.InvalidTransitionsTotal, err = register(reg, metrics.NewInvalidTransitionsTotal(), "invalid_transitions_total"); err != nil {
		return metricsOut{}, err
	}
	if out.StatusTransitionsTotal, err = register(reg, metrics.NewStatusTransitionsTotal(), "status_transitions_total"); err != nil {
		return metricsOut{}, err
	}
	if out.MailboxPostsTotal, err = register(reg, metrics.NewMailboxPostsTotal(), "mailbox_posts_total"); err != nil {
		return metricsOut{}, err
	}
	if out.CommandsTotal, err = register(reg, metrics.NewCommandsTotal(), "status_commands_total"); err != nil {
		return metricsOut{}, err
	}
	if out.HTTP.Requests, err = register(reg, metrics.NewHTTPRequestsTotal(), "http_requests_total"); err != nil {
		return metricsOut{}, err
	}
	if out.HTTP.Duration, err = register(reg, metrics.NewHTTPRequestDuration(), "http_request_duration_seconds"); err != nil {
		return metricsOut{}, err
	}
	return out, nil
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
		}
		var zero T
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
