package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"furniture-delivery/internal/clock"
	"furniture-delivery/internal/config"
	"furniture-delivery/internal/http/middleware/ratelimit"
	"furniture-delivery/internal/logx"
)

func newRateLimiter(cfg *config.Config, clk clock.Clock) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketLimiter(clk, ratelimit.Config{
		Driver:     ratelimit.Policy{Rate: rl.DriverRate, Burst: rl.DriverBurst},
		Anonymous:  ratelimit.Policy{Rate: rl.Rate, Burst: rl.Burst},
		IdleTTL:    rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

type rateLimitIn struct {
	dig.In
	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

func newRateLimitMiddleware(in rateLimitIn) *ratelimit.Middleware {
	return ratelimit.New(in.Logger, in.Counter, in.Limiter)
}
