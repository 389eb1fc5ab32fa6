package handlers

import (
	"time"
)

type postponementDTO struct {
	VisitDate string `json:"visit_date,omitempty"`
	Reason    string `json:"reason,omitempty"`
	From      string `json:"from,omitempty"`
}

type cancellationDTO struct {
	Reason string    `json:"reason,omitempty"`
	At     time.Time `json:"at"`
}

type deliveryDTO struct {
	ID             int64            `json:"id"`
	TrackingNumber string           `json:"tracking_number"`
	RequestType    string           `json:"request_type"`
	Status         string           `json:"status"`
	StatusLabel    string           `json:"status_label"`
	StatusColor    string           `json:"status_color"`
	ActionDate     string           `json:"action_date,omitempty"`
	ActionTime     string           `json:"action_time,omitempty"`
	VisitDate      string           `json:"visit_date,omitempty"`
	VisitTime      string           `json:"visit_time,omitempty"`
	CustomerName   string           `json:"customer_name,omitempty"`
	CustomerPhone  string           `json:"customer_phone,omitempty"`
	Address        string           `json:"address"`
	ProductName    string           `json:"product_name,omitempty"`
	Memo           string           `json:"memo,omitempty"`
	DriverID       *int64           `json:"driver_id,omitempty"`
	SortOrder      int              `json:"sort_order"`
	Postponement   *postponementDTO `json:"postponement,omitempty"`
	Cancellation   *cancellationDTO `json:"cancellation,omitempty"`
}

type createDeliveryRequest struct {
	RequestType   string `json:"request_type"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
	ProductName   string `json:"product_name"`
	Memo          string `json:"memo"`
	VisitDate     string `json:"visit_date"`
	VisitTime     string `json:"visit_time"`
	DriverID      *int64 `json:"driver_id,omitempty"`
}

type changeStatusRequest struct {
	Status string `json:"status"`
}

type postponeRequest struct {
	VisitDate string `json:"visit_date"`
	Reason    string `json:"reason"`
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

type batchStatusRequest struct {
	IDs    []int64 `json:"ids"`
	Status string  `json:"status"`
}

type saveOrderRequest struct {
	IDs []int64 `json:"ids"`
}

type assignDriverRequest struct {
	DriverID int64 `json:"driver_id"`
}

type statusChangeResponse struct {
	Delivery       deliveryDTO `json:"delivery"`
	Changed        bool        `json:"changed"`
	DroppedColumns []string    `json:"dropped_columns,omitempty"`
	MailboxError   string      `json:"mailbox_error,omitempty"`
}

type batchItemDTO struct {
	ID     int64  `json:"id"`
	Status string `json:"status,omitempty"`
	Error  string `json:"error,omitempty"`
}

type batchStatusResponse struct {
	Items        []batchItemDTO `json:"items"`
	Succeeded    int            `json:"succeeded"`
	MailboxError string         `json:"mailbox_error,omitempty"`
}
