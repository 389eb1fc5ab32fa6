package handlers

import (
	"context"

	"furniture-delivery/internal/board"
	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/ordering"
	"furniture-delivery/internal/service/delivery"
	"furniture-delivery/internal/service/driver"
)

type driverUsecase interface {
	Get(ctx context.Context, id int64) (*domain.Driver, error)
	List(ctx context.Context, limit, offset *int) ([]domain.Driver, error)
	Create(ctx context.Context, d *domain.Driver) (int64, error)
	UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error)
}

// NewDriverUsecase wires a driver Service into a driverUsecase.
func NewDriverUsecase(service *driver.Service) driverUsecase {
	return service
}

type deliveryUsecase interface {
	Create(ctx context.Context, d *domain.Delivery) (*domain.Delivery, error)
	Get(ctx context.Context, id int64) (*domain.Delivery, error)
	GetByTracking(ctx context.Context, tracking string) (*domain.Delivery, error)
	List(ctx context.Context, f domain.DeliveryFilter, mode ordering.Mode) ([]domain.Delivery, error)
	ChangeStatus(ctx context.Context, id int64, target domain.Status) (delivery.Outcome, error)
	Postpone(ctx context.Context, id int64, newDate, reason string) (delivery.Outcome, error)
	Cancel(ctx context.Context, id int64, reason string) (delivery.Outcome, error)
	BatchChangeStatus(ctx context.Context, ids []int64, target domain.Status) (delivery.BatchOutcome, error)
	AssignDriver(ctx context.Context, id, driverID int64) (*domain.Delivery, error)
	UnassignDriver(ctx context.Context, id int64) error
	SaveManualOrder(ctx context.Context, ids []int64) error
}

// NewDeliveryUsecase wires a delivery Service into a deliveryUsecase.
func NewDeliveryUsecase(svc *delivery.Service) deliveryUsecase {
	return svc
}

type boardReader interface {
	Read(ctx context.Context, scope board.Scope) ([]domain.Delivery, error)
}

// NewBoardReader wires a Board into a boardReader. A nil Board disables /board.
func NewBoardReader(b *board.Board) boardReader {
	if b == nil {
		return nil
	}
	return b
}
