// Package mailbox relays status changes from the view that made them to views
// that are showing lists fetched earlier.
package mailbox

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"furniture-delivery/internal/clock"
	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/logx"
)

// DefaultKey is the single well-known slot.
const DefaultKey = "status_updates"

// DefaultMaxAge is how long a posted batch stays worth applying.
const DefaultMaxAge = 60 * time.Second

type envelope struct {
	PostedAt int64                 `json:"posted_at"` // unix milliseconds
	Updates  []domain.StatusUpdate `json:"updates"`
}

// DrainResult describes what a drain did.
type DrainResult struct {
	Applied int
	Ignored int
	Stale   bool
	Empty   bool
}

// Mailbox is a single-slot, last-write-wins relay.
type Mailbox struct {
	store     Store
	key       string
	clock     clock.Clock
	logger    logx.Logger
	observers *Observers

	// read-then-clear must not interleave with another drain or a post
	mu sync.Mutex
}

// New creates a Mailbox over store using DefaultKey.
func New(store Store, c clock.Clock, logger logx.Logger) *Mailbox {
	if c == nil {
		c = clock.RealClock{}
	}
	logger = logx.OrNop(logger)
	return &Mailbox{
		store:     store,
		key:       DefaultKey,
		clock:     c,
		logger:    logger,
		observers: NewObservers(),
	}
}

// Observers returns the registry notified after every successful post.
func (m *Mailbox) Observers() *Observers { return m.observers }

// Post stores updates stamped with the current time, replacing any pending batch.
func (m *Mailbox) Post(ctx context.Context, updates []domain.StatusUpdate) error {
	return m.PostAt(ctx, updates, m.clock.Now())
}

// PostAt stores updates stamped with at.
func (m *Mailbox) PostAt(ctx context.Context, updates []domain.StatusUpdate, at time.Time) error {
	if len(updates) == 0 {
		return nil
	}
	data, err := json.Marshal(envelope{PostedAt: at.UnixMilli(), Updates: updates})
	if err != nil {
		return fmt.Errorf("mailbox encode: %w", err)
	}

	m.mu.Lock()
	err = m.store.Set(ctx, m.key, data)
	m.mu.Unlock()
	if err != nil {
		return fmt.Errorf("mailbox post: %w", err)
	}

	m.logger.Debug("status batch posted", logx.Int("updates", len(updates)))
	m.observers.notify(ctx)
	return nil
}

// DrainIfFresh clears the slot, then applies the pending batch to target when
// it is at most maxAge old. Older batches are discarded unapplied. An empty mailbox is a no-op.
func (m *Mailbox) DrainIfFresh(ctx context.Context, maxAge time.Duration, target Applier) (DrainResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, ok, err := m.store.Get(ctx, m.key)
	if err != nil {
		return DrainResult{}, fmt.Errorf("mailbox read: %w", err)
	}
	if !ok {
		return DrainResult{Empty: true}, nil
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		m.logger.Warn("discarding unreadable status batch", logx.Err(err))
		return DrainResult{Stale: true}, m.clear(ctx)
	}

	age := m.clock.Now().Sub(time.UnixMilli(env.PostedAt))
	if age > maxAge {
		m.logger.Info("discarding stale status batch",
			logx.Duration("age", age),
			logx.Int("updates", len(env.Updates)),
		)
		return DrainResult{Stale: true, Ignored: len(env.Updates)}, m.clear(ctx)
	}

	// The slot is emptied before anything is applied; a batch that cannot be
	// cleared stays pending and unapplied.
	if err := m.clear(ctx); err != nil {
		return DrainResult{}, err
	}
	var res DrainResult
	for _, u := range env.Updates {
		if target != nil && target.ApplyStatus(u) {
			res.Applied++
		} else {
			res.Ignored++
		}
	}
	return res, nil
}

func (m *Mailbox) clear(ctx context.Context) error {
	if err := m.store.Remove(ctx, m.key); err != nil {
		return fmt.Errorf("mailbox clear: %w", err)
	}
	return nil
}
