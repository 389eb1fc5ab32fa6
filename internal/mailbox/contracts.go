//go:generate mockgen -source=contracts.go -destination=store_mock_test.go -package=mailbox_test

package mailbox

import (
	"context"

	"furniture-delivery/internal/domain"
)

// Store is the local durable key-value store holding the mailbox slot.
type Store interface {
	// Get returns the value under key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	Close() error
}

// Applier is a consumer's local copy of a delivery list.
type Applier interface {
	// ApplyStatus updates the matching delivery and reports whether one matched.
	ApplyStatus(u domain.StatusUpdate) bool
}
