// Package board keeps cached, ordered delivery lists that stay current by
// draining the status mailbox instead of re-reading the database.
package board

import (
	"context"
	"sync"
	"time"

	"furniture-delivery/internal/clock"
	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/logx"
	"furniture-delivery/internal/mailbox"
	"furniture-delivery/internal/ordering"
)

// DefaultRefresh is how long a cached list is served before a full reload.
const DefaultRefresh = 30 * time.Second

type lister interface {
	List(ctx context.Context, f domain.DeliveryFilter, mode ordering.Mode) ([]domain.Delivery, error)
}

type sorter interface {
	Sort(mode ordering.Mode, ds []domain.Delivery) []domain.Delivery
}

type statusSource interface {
	DrainIfFresh(ctx context.Context, maxAge time.Duration, target mailbox.Applier) (mailbox.DrainResult, error)
	Observers() *mailbox.Observers
}

// Scope selects a list: every delivery, or one driver's.
type Scope struct {
	DriverID int64
}

func (s Scope) filter() domain.DeliveryFilter {
	if s.DriverID <= 0 {
		return domain.DeliveryFilter{}
	}
	id := s.DriverID
	return domain.DeliveryFilter{DriverID: &id}
}

// Options tune a Board. Zero values take defaults.
type Options struct {
	Refresh time.Duration
	MaxAge  time.Duration
	Mode    ordering.Mode
}

type entry struct {
	list     mailbox.DeliveryList
	loadedAt time.Time
}

// Board serves cached delivery lists per Scope.
type Board struct {
	lister lister
	sorter sorter
	source statusSource
	clock  clock.Clock
	logger logx.Logger
	opts   Options

	mu      sync.Mutex
	entries map[Scope]*entry
	sub     *mailbox.Subscription
}

// New creates a Board and subscribes it to source. sorter may be nil.
func New(l lister, s sorter, source statusSource, c clock.Clock, logger logx.Logger, opts Options) *Board {
	if c == nil {
		c = clock.RealClock{}
	}
	logger = logx.OrNop(logger)
	if opts.Refresh <= 0 {
		opts.Refresh = DefaultRefresh
	}
	if opts.MaxAge <= 0 {
		opts.MaxAge = mailbox.DefaultMaxAge
	}
	if opts.Mode == "" {
		opts.Mode = ordering.ModeAuto
	}
	b := &Board{
		lister:  l,
		sorter:  s,
		source:  source,
		clock:   c,
		logger:  logger,
		opts:    opts,
		entries: make(map[Scope]*entry),
	}
	if source != nil {
		b.sub = source.Observers().Register(b.onPosted)
	}
	return b
}

// Read returns the list for scope. A list older than the refresh interval is
// reloaded; otherwise pending mailbox updates are applied to it.
// The reload runs without holding the board lock.
func (b *Board) Read(ctx context.Context, scope Scope) ([]domain.Delivery, error) {
	b.mu.Lock()
	if e, ok := b.entries[scope]; ok && b.clock.Now().Sub(e.loadedAt) < b.opts.Refresh {
		defer b.mu.Unlock()
		return b.snapshotLocked(ctx, e), nil
	}
	b.mu.Unlock()

	ds, err := b.lister.List(ctx, scope.filter(), b.opts.Mode)
	if err != nil {
		return nil, err
	}
	e := &entry{list: ds, loadedAt: b.clock.Now()}
	b.logger.Debug("board reloaded",
		logx.Int64("driver_id", scope.DriverID),
		logx.Int("deliveries", len(ds)),
	)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries[scope] = e
	return b.snapshotLocked(ctx, e), nil
}

func (b *Board) snapshotLocked(ctx context.Context, e *entry) []domain.Delivery {
	b.drainLocked(ctx)
	out := make([]domain.Delivery, len(e.list))
	copy(out, e.list)
	return out
}

// Invalidate drops the cached list for scope.
func (b *Board) Invalidate(scope Scope) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.entries, scope)
}

// Close unsubscribes from the mailbox and forgets every list.
func (b *Board) Close() {
	b.sub.Close()
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = make(map[Scope]*entry)
}

func (b *Board) onPosted(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.entries) == 0 {
		return
	}
	b.drainLocked(ctx)
}

// drainLocked applies one mailbox batch to every cached list.
func (b *Board) drainLocked(ctx context.Context) {
	if b.source == nil {
		return
	}
	targets := make(fanout, 0, len(b.entries))
	for _, e := range b.entries {
		targets = append(targets, e)
	}
	res, err := b.source.DrainIfFresh(ctx, b.opts.MaxAge, targets)
	if err != nil {
		b.logger.Warn("board drain failed", logx.Err(err))
		return
	}
	if res.Applied == 0 {
		return
	}
	if b.sorter != nil && b.opts.Mode == ordering.ModeAuto {
		for _, e := range b.entries {
			e.list = b.sorter.Sort(b.opts.Mode, e.list)
		}
	}
	b.logger.Debug("board updated from mailbox",
		logx.Int("applied", res.Applied),
		logx.Int("ignored", res.Ignored),
	)
}

// fanout applies an update to every list holding the delivery.
type fanout []*entry

func (f fanout) ApplyStatus(u domain.StatusUpdate) bool {
	matched := false
	for _, e := range f {
		if e.list.ApplyStatus(u) {
			matched = true
		}
	}
	return matched
}
