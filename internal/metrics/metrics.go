package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retry attempts performed against the database
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by the persistence gateway",
	})
}

// NewSchemaDroppedColumnsTotal counts fields left out of writes because the live table lacks the column
func NewSchemaDroppedColumnsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "schema_dropped_columns_total",
		Help: "Total number of write fields dropped because the column does not exist",
	})
}

// NewStatusTransitionsTotal counts committed status changes by target status
func NewStatusTransitionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "status_transitions_total",
		Help: "Total number of committed delivery status changes",
	}, []string{"status"})
}

// NewInvalidTransitionsTotal counts rejected status changes
func NewInvalidTransitionsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "invalid_transitions_total",
		Help: "Total number of status changes rejected by the lifecycle rules",
	})
}

// NewMailboxPostsTotal counts mailbox posts by outcome (ok, failed)
func NewMailboxPostsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mailbox_posts_total",
		Help: "Total number of status batches posted to the mailbox",
	}, []string{"outcome"})
}

// NewCommandsTotal counts processed status commands from the message stream by result
func NewCommandsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "status_commands_total",
		Help: "Total number of status commands consumed",
	}, []string{"action", "result"})
}

// NewHTTPRequestsTotal counts served HTTP requests by method, route pattern and status
func NewHTTPRequestsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
}

// NewHTTPRequestDuration observes HTTP request latency by method, route pattern and status
func NewHTTPRequestDuration() *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
}
