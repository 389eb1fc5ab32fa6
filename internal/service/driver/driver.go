package driver

import (
	"context"
	"errors"
	"strings"
	"time"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/domain"
)

// Service coordinates driver registry logic and orchestrates repository calls.
type Service struct {
	repo             driverRepository
	operationTimeout time.Duration
}

// NewService creates and configures a driver Service.
func NewService(r driverRepository, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{repo: r, operationTimeout: timeout}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// validateCreate validates a driver for creation and fills defaults.
func validateCreate(d *domain.Driver) error {
	if d == nil {
		return apperr.Invalid
	}
	if strings.TrimSpace(d.Name) == "" {
		return apperr.Invalid
	}
	if !domain.ValidatePhone(d.Phone) {
		return apperr.Invalid
	}
	if d.Status == "" {
		d.Status = domain.DriverAvailable
	}
	if !d.Status.Valid() {
		return apperr.Invalid
	}
	if d.Vehicle == "" {
		d.Vehicle = domain.VehicleTruck
	}
	if !d.Vehicle.Valid() {
		return apperr.Invalid
	}
	return nil
}

func validateUpdate(u *domain.PartialDriverUpdate) error {
	if u.ID <= 0 {
		return apperr.Invalid
	}
	if u.Name == nil && u.Phone == nil && u.Status == nil && u.Vehicle == nil {
		return apperr.Invalid
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return apperr.Invalid
	}
	if u.Phone != nil && !domain.ValidatePhone(*u.Phone) {
		return apperr.Invalid
	}
	if u.Status != nil && !u.Status.Valid() {
		return apperr.Invalid
	}
	if u.Vehicle != nil && !u.Vehicle.Valid() {
		return apperr.Invalid
	}
	return nil
}

// Get retrieves a driver by its ID.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	d, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, apperr.NotFound
	}
	return d, nil
}

// Exists reports whether a driver with id is registered.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	_, err := s.Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, apperr.NotFound):
		return false, nil
	default:
		return false, err
	}
}

// List returns drivers with optional pagination
func (s *Service) List(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
	if (limit != nil && *limit < 0) || (offset != nil && *offset < 0) {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.List(ctx, limit, offset)
}

// Create persists a new driver and returns its generated ID.
func (s *Service) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	if err := validateCreate(d); err != nil {
		return 0, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.Create(ctx, d)
}

// UpdatePartial applies a partial update to a driver. It returns true if a row was updated.
func (s *Service) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	if err := validateUpdate(&u); err != nil {
		return false, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.UpdatePartial(ctx, u)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, apperr.NotFound
	}
	return true, nil
}
