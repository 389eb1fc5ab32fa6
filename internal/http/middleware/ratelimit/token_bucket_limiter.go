package ratelimit

import (
	"sync"
	"time"

	"furniture-delivery/internal/clock"
)

// Policy shapes one class's buckets: Rate tokens per second, at most Burst held.
type Policy struct {
	Rate  float64
	Burst int
}

func (p Policy) orDefault(def Policy) Policy {
	if p.Rate <= 0 {
		p.Rate = def.Rate
	}
	if p.Burst <= 0 {
		p.Burst = def.Burst
	}
	return p
}

var minimalPolicy = Policy{Rate: 1, Burst: 1}

// Config stores TokenBucketLimiter settings.
// Drivers and anonymous callers are limited separately; an unset Driver
// policy falls back to the Anonymous one.
type Config struct {
	Driver     Policy
	Anonymous  Policy
	IdleTTL    time.Duration // idle buckets are swept after this long (0 keeps them)
	MaxBuckets int           // new callers are refused once the table holds this many (0 is unbounded)
}

// TokenBucketLimiter keeps one token bucket per Key.
type TokenBucketLimiter struct {
	clk        clock.Clock
	policies   map[Class]Policy
	idleTTL    time.Duration
	maxBuckets int

	mu        sync.Mutex
	buckets   map[Key]*bucket
	nextSweep time.Time
}

type bucket struct {
	tokens float64
	at     time.Time
}

// NewTokenBucketLimiter creates a limiter reading time from clk.
func NewTokenBucketLimiter(clk clock.Clock, cfg Config) *TokenBucketLimiter {
	if clk == nil {
		clk = clock.RealClock{}
	}
	anon := cfg.Anonymous.orDefault(minimalPolicy)
	maxBuckets := cfg.MaxBuckets
	if maxBuckets < 0 {
		maxBuckets = 0
	}
	return &TokenBucketLimiter{
		clk: clk,
		policies: map[Class]Policy{
			ClassAnonymous: anon,
			ClassDriver:    cfg.Driver.orDefault(anon),
		},
		idleTTL:    cfg.IdleTTL,
		maxBuckets: maxBuckets,
		buckets:    make(map[Key]*bucket),
	}
}

func (l *TokenBucketLimiter) policy(c Class) Policy {
	if p, ok := l.policies[c]; ok {
		return p
	}
	return l.policies[ClassAnonymous]
}

// Allow takes one token from k's bucket.
func (l *TokenBucketLimiter) Allow(k Key) bool {
	now := l.clk.Now()
	p := l.policy(k.Class)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweepLocked(now)
	b, ok := l.buckets[k]
	if !ok {
		if l.maxBuckets > 0 && len(l.buckets) >= l.maxBuckets {
			return false
		}
		b = &bucket{tokens: float64(p.Burst), at: now}
		l.buckets[k] = b
	}
	return b.take(now, p)
}

func (b *bucket) take(now time.Time, p Policy) bool {
	if elapsed := now.Sub(b.at); elapsed > 0 {
		b.tokens = min(b.tokens+elapsed.Seconds()*p.Rate, float64(p.Burst))
		b.at = now
	}
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// sweepLocked drops buckets untouched for idleTTL, at most once per idleTTL.
func (l *TokenBucketLimiter) sweepLocked(now time.Time) {
	if l.idleTTL <= 0 || now.Before(l.nextSweep) {
		return
	}
	for k, b := range l.buckets {
		if now.Sub(b.at) >= l.idleTTL {
			delete(l.buckets, k)
		}
	}
	l.nextSweep = now.Add(l.idleTTL)
}

// Len reports how many buckets are held.
func (l *TokenBucketLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}
