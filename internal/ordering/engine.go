// Package ordering sequences delivery lists for display.
package ordering

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/domain"
)

// Mode selects how a list is ordered.
type Mode string

// Display modes
const (
	ModeAuto   Mode = "auto"
	ModeManual Mode = "manual"
)

// ParseMode parses a mode name; empty means auto.
func ParseMode(raw string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeManual:
		return ModeManual, nil
	}
	return "", fmt.Errorf("ordering mode %q: %w", raw, apperr.Invalid)
}

// Engine orders deliveries. It keeps no state between calls apart from the collator.
type Engine struct {
	// collate.Collator is not safe for concurrent use.
	mu  sync.Mutex
	col *collate.Collator
}

// New builds an Engine comparing addresses with the collation rules of locale.
func New(locale string) (*Engine, error) {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return nil, fmt.Errorf("sort locale %q: %w", locale, err)
	}
	return &Engine{col: collate.New(tag, collate.Loose, collate.Numeric)}, nil
}

// Sort dispatches to Auto or Manual.
func (e *Engine) Sort(mode Mode, ds []domain.Delivery) []domain.Delivery {
	if mode == ModeManual {
		return Manual(ds)
	}
	return e.Auto(ds)
}

// Auto returns a copy of ds ordered by priority bucket, most recent action first,
// then address. Equal keys keep their input order.
func (e *Engine) Auto(ds []domain.Delivery) []domain.Delivery {
	out := make([]domain.Delivery, len(ds))
	copy(out, ds)

	e.mu.Lock()
	defer e.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool {
		return e.less(out[i], out[j])
	})
	return out
}

func (e *Engine) less(a, b domain.Delivery) bool {
	if pa, pb := domain.PriorityOf(a.Status), domain.PriorityOf(b.Status); pa != pb {
		return pa < pb
	}
	if a.Action.Date != b.Action.Date {
		return a.Action.Date > b.Action.Date
	}
	if a.Action.Time != b.Action.Time {
		return a.Action.Time > b.Action.Time
	}
	return e.col.CompareString(a.Address, b.Address) < 0
}

// Manual returns ds unchanged; user-driven order is persisted by the caller.
func Manual(ds []domain.Delivery) []domain.Delivery {
	return ds
}
