package ratelimit

// Class groups callers that share one rate policy.
type Class string

const (
	// ClassDriver is a driver app identified by its driver id.
	ClassDriver Class = "driver"
	// ClassAnonymous is any other caller, bucketed by client address.
	ClassAnonymous Class = "ip"
)

// Key identifies the bucket a request draws from.
type Key struct {
	Class Class
	ID    string
}

func (k Key) String() string { return string(k.Class) + ":" + k.ID }

// Limiter decides whether a request keyed by driver id or client address may proceed.
type Limiter interface {
	Allow(k Key) bool
}

// NopLimiter admits every request; used when RATE_LIMIT_ENABLED is off.
type NopLimiter struct{}

func (NopLimiter) Allow(Key) bool { return true }
