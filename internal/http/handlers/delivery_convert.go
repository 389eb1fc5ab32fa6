package handlers

import (
	"strings"

	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/service/delivery"
)

func (req createDeliveryRequest) toModel() *domain.Delivery {
	return &domain.Delivery{
		RequestType:   domain.RequestType(strings.ToLower(strings.TrimSpace(req.RequestType))),
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Address:       strings.TrimSpace(req.Address),
		ProductName:   strings.TrimSpace(req.ProductName),
		Memo:          req.Memo,
		VisitDate:     strings.TrimSpace(req.VisitDate),
		VisitTime:     strings.TrimSpace(req.VisitTime),
		DriverID:      req.DriverID,
	}
}

func deliveryToResponse(d domain.Delivery) deliveryDTO {
	out := deliveryDTO{
		ID:             d.ID,
		TrackingNumber: d.TrackingNumber,
		RequestType:    string(d.RequestType),
		Status:         string(d.Status),
		StatusLabel:    domain.LabelFor(d.Status, d.RequestType),
		StatusColor:    domain.ColorFor(d.Status),
		ActionDate:     d.Action.Date,
		ActionTime:     d.Action.Time,
		VisitDate:      d.VisitDate,
		VisitTime:      d.VisitTime,
		CustomerName:   d.CustomerName,
		CustomerPhone:  d.CustomerPhone,
		Address:        d.Address,
		ProductName:    d.ProductName,
		Memo:           d.Memo,
		DriverID:       d.DriverID,
		SortOrder:      d.SortOrder,
	}
	if p := d.Postponement; p != nil {
		out.Postponement = &postponementDTO{VisitDate: p.NewDate, Reason: p.Reason, From: string(p.From)}
	}
	if c := d.Cancellation; c != nil {
		out.Cancellation = &cancellationDTO{Reason: c.Reason, At: c.At}
	}
	return out
}

func deliveriesToResponse(list []domain.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(list))
	for _, d := range list {
		out = append(out, deliveryToResponse(d))
	}
	return out
}

func outcomeToResponse(o delivery.Outcome) statusChangeResponse {
	resp := statusChangeResponse{
		Delivery:       deliveryToResponse(o.Delivery),
		Changed:        o.Changed,
		DroppedColumns: o.Dropped,
	}
	if o.MailboxErr != nil {
		resp.MailboxError = o.MailboxErr.Error()
	}
	return resp
}

func batchToResponse(b delivery.BatchOutcome) batchStatusResponse {
	resp := batchStatusResponse{
		Items:     make([]batchItemDTO, 0, len(b.Items)),
		Succeeded: b.Succeeded(),
	}
	for _, it := range b.Items {
		item := batchItemDTO{ID: it.DeliveryID, Status: string(it.Status)}
		if it.Err != nil {
			item.Error = it.Err.Error()
		}
		resp.Items = append(resp.Items, item)
	}
	if b.MailboxErr != nil {
		resp.MailboxError = b.MailboxErr.Error()
	}
	return resp
}
