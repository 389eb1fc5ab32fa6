//go:generate mockgen -source=contracts.go -destination=delivery_mocks_test.go -package=delivery_test

package delivery

import (
	"context"
	"time"

	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/gateway/persistence"
	"furniture-delivery/internal/ordering"
)

type deliveryRepository interface {
	Create(ctx context.Context, d *domain.Delivery) (persistence.WriteResult, error)
	Get(ctx context.Context, id int64) (*domain.Delivery, error)
	GetByTracking(ctx context.Context, tracking string) (*domain.Delivery, error)
	List(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, error)
	UpdateStatus(ctx context.Context, d *domain.Delivery, from domain.Status) (persistence.WriteResult, error)
	SetDriver(ctx context.Context, id int64, driverID *int64) error
	SaveOrder(ctx context.Context, ids []int64) error
}

type driverDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type statusMailbox interface {
	Post(ctx context.Context, updates []domain.StatusUpdate) error
}

type listSorter interface {
	Sort(mode ordering.Mode, ds []domain.Delivery) []domain.Delivery
}

// TrackingFactory issues tracking numbers for new deliveries.
type TrackingFactory interface {
	Next(now time.Time) string
}
