package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"furniture-delivery/internal/http/handlers"
	"furniture-delivery/internal/http/middleware"
	"furniture-delivery/internal/logx"
)

// Deps are the handlers and middleware the router mounts.
type Deps struct {
	Logger     logx.Logger
	Base       *handlers.Handlers
	Drivers    *handlers.DriverHandler
	Deliveries *handlers.DeliveryHandler
	Metrics    middleware.HTTPMetrics
	// RateLimit is optional.
	RateLimit func(http.Handler) http.Handler
	// MetricsHandler serves /metrics; promhttp.Handler() when nil.
	MetricsHandler http.Handler
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Observability(d.Logger, d.Metrics))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(20 * time.Second))

	metricsHandler := d.MetricsHandler
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Get("/statuses", d.Base.Statuses)

	r.Group(func(r chi.Router) {
		if d.RateLimit != nil {
			r.Use(d.RateLimit)
		}
		if d.Deliveries != nil {
			mountDeliveries(r, d.Deliveries)
		}
		if d.Drivers != nil {
			mountDrivers(r, d.Drivers)
		}
	})

	r.NotFound(http.HandlerFunc(d.Base.NotFound))

	return r
}

func mountDeliveries(r chi.Router, h *handlers.DeliveryHandler) {
	r.Get("/board", h.Board)

	r.Route("/deliveries", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		// статические пути раньше {id}
		r.Post("/status", h.BatchStatus)
		r.Put("/order", h.SaveOrder)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetByID)
			r.Post("/status", h.ChangeStatus)
			r.Post("/postpone", h.Postpone)
			r.Post("/cancel", h.Cancel)
			r.Put("/driver", h.AssignDriver)
			r.Delete("/driver", h.UnassignDriver)
		})
	})
}

func mountDrivers(r chi.Router, h *handlers.DriverHandler) {
	r.Route("/drivers", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Patch("/{id}", h.Update)
	})
}
