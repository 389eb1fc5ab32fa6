package repository

import (
	"fmt"
	"time"

	"furniture-delivery/internal/domain"
)

// deliveryFromRow maps a row read with SELECT * onto a Delivery. Columns the
// table does not have are simply absent from the map.
func deliveryFromRow(row map[string]any) domain.Delivery {
	d := domain.Delivery{
		ID:             asInt64(row["id"]),
		TrackingNumber: asString(row["tracking_number"]),
		RequestType:    domain.RequestType(asString(row["request_type"])),
		Action: domain.ActionStamp{
			Date: asString(row["action_date"]),
			Time: asString(row["action_time"]),
		},
		VisitDate:     asDate(row["visit_date"]),
		VisitTime:     asString(row["visit_time"]),
		CustomerName:  asString(row["customer_name"]),
		CustomerPhone: asString(row["customer_phone"]),
		Address:       asString(row["address"]),
		ProductName:   asString(row["product_name"]),
		Memo:          asString(row["memo"]),
		SortOrder:     int(asInt64(row["sort_order"])),
		CreatedAt:     asTime(row["created_at"]),
	}
	d.Status, _ = domain.ParseStatus(asString(row["status"]))

	if v := row["driver_id"]; v != nil {
		id := asInt64(v)
		d.DriverID = &id
	}
	if d.Status == domain.StatusCancelled || row["cancelled_at"] != nil {
		d.Cancellation = &domain.Cancellation{
			Reason: asString(row["cancel_reason"]),
			At:     asTime(row["cancelled_at"]),
		}
	}
	if d.Status == domain.StatusPostponed {
		from, _ := domain.ParseStatus(asString(row["postponed_from"]))
		d.Postponement = &domain.Postponement{
			NewDate: d.VisitDate,
			Reason:  asString(row["postpone_reason"]),
			From:    from,
		}
	}
	return d
}

func asString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.Format(domain.ActionDateLayout)
	default:
		return fmt.Sprint(x)
	}
}

func asInt64(v any) int64 {
	switch x := v.(type) {
	case int64:
		return x
	case int32:
		return int64(x)
	case int16:
		return int64(x)
	case int:
		return int64(x)
	default:
		return 0
	}
}

func asTime(v any) time.Time {
	if t, ok := v.(time.Time); ok {
		return t
	}
	return time.Time{}
}

// asDate accepts both TEXT and DATE visit_date columns.
func asDate(v any) string {
	if t, ok := v.(time.Time); ok {
		return t.Format(domain.ActionDateLayout)
	}
	return asString(v)
}
