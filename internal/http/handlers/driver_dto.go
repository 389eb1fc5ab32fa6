package handlers

import "furniture-delivery/internal/domain"

type driverDTO struct {
	ID      int64               `json:"id"`
	Name    string              `json:"name"`
	Phone   string              `json:"phone"`
	Status  domain.DriverStatus `json:"status"`
	Vehicle domain.VehicleType  `json:"vehicle"`
}

type createDriverRequest struct {
	Name    string              `json:"name"`
	Phone   string              `json:"phone"`
	Status  domain.DriverStatus `json:"status"`
	Vehicle domain.VehicleType  `json:"vehicle"`
}

type updateDriverRequest struct {
	Name    *string              `json:"name,omitempty"`
	Phone   *string              `json:"phone,omitempty"`
	Status  *domain.DriverStatus `json:"status,omitempty"`
	Vehicle *domain.VehicleType  `json:"vehicle,omitempty"`
}
