//go:generate mockgen -source=contracts.go -destination=commands_mocks_test.go -package=commands_test

package commands

import (
	"context"

	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/service/delivery"
)

// DeliveryPort abstracts the subset of delivery service operations
// needed by the Processor when applying status commands
type DeliveryPort interface {
	GetByTracking(ctx context.Context, tracking string) (*domain.Delivery, error)
	ChangeStatus(ctx context.Context, id int64, target domain.Status) (delivery.Outcome, error)
	Postpone(ctx context.Context, id int64, newDate, reason string) (delivery.Outcome, error)
	Cancel(ctx context.Context, id int64, reason string) (delivery.Outcome, error)
}
