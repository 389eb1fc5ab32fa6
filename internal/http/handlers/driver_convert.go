package handlers

import "furniture-delivery/internal/domain"

func (req createDriverRequest) toModel() *domain.Driver {
	return &domain.Driver{
		Name:    req.Name,
		Phone:   req.Phone,
		Status:  req.Status,
		Vehicle: req.Vehicle,
	}
}

func (req updateDriverRequest) toModel(id int64) domain.PartialDriverUpdate {
	return domain.PartialDriverUpdate{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Status:  req.Status,
		Vehicle: req.Vehicle,
	}
}

func driverToResponse(d domain.Driver) driverDTO {
	return driverDTO{
		ID:      d.ID,
		Name:    d.Name,
		Phone:   d.Phone,
		Status:  d.Status,
		Vehicle: d.Vehicle,
	}
}

func driversToResponse(list []domain.Driver) []driverDTO {
	out := make([]driverDTO, 0, len(list))
	for _, d := range list {
		out = append(out, driverToResponse(d))
	}
	return out
}
