package mailbox

import (
	"context"
	"sync"
)

// Observers is the registry of callbacks run after each post, so a visible
// view can drain right away instead of waiting for its next focus event.
type Observers struct {
	mu   sync.Mutex
	next uint64
	fns  map[uint64]func(context.Context)
}

// NewObservers creates an empty registry.
func NewObservers() *Observers {
	return &Observers{fns: make(map[uint64]func(context.Context))}
}

// Subscription ties a callback to the lifetime of a view.
type Subscription struct {
	once sync.Once
	stop func()
}

// Close unregisters the callback. It is safe to call more than once.
func (s *Subscription) Close() {
	if s == nil {
		return
	}
	s.once.Do(s.stop)
}

// Register adds fn until the returned Subscription is closed.
func (o *Observers) Register(fn func(context.Context)) *Subscription {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.next++
	id := o.next
	o.fns[id] = fn
	return &Subscription{stop: func() {
		o.mu.Lock()
		delete(o.fns, id)
		o.mu.Unlock()
	}}
}

// Len returns the number of registered callbacks.
func (o *Observers) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.fns)
}

func (o *Observers) notify(ctx context.Context) {
	o.mu.Lock()
	fns := make([]func(context.Context), 0, len(o.fns))
	for _, fn := range o.fns {
		fns = append(fns, fn)
	}
	o.mu.Unlock()

	for _, fn := range fns {
		fn(ctx)
	}
}
