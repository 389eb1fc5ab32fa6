package domain

import "time"

// ActionStamp records when the current status was set, as stored by the apps.
type ActionStamp struct {
	Date string // 2006-01-02
	Time string // 15:04
}

// Layouts of ActionStamp parts.
const (
	ActionDateLayout = "2006-01-02"
	ActionTimeLayout = "15:04"
)

// NewActionStamp formats t as an ActionStamp.
func NewActionStamp(t time.Time) ActionStamp {
	return ActionStamp{Date: t.Format(ActionDateLayout), Time: t.Format(ActionTimeLayout)}
}

// IsZero reports an unset stamp.
func (a ActionStamp) IsZero() bool { return a.Date == "" && a.Time == "" }

// Cancellation is present once a delivery has been cancelled.
type Cancellation struct {
	Reason string
	At     time.Time
}

// Postponement carries the rescheduled visit and the status it interrupted.
type Postponement struct {
	NewDate string
	Reason  string
	From    Status
}

// Delivery - the central delivery record.
type Delivery struct {
	ID             int64
	TrackingNumber string
	RequestType    RequestType
	Status         Status
	Action         ActionStamp
	VisitDate      string
	VisitTime      string
	Cancellation   *Cancellation
	Postponement   *Postponement
	DriverID       *int64

	CustomerName  string
	CustomerPhone string
	Address       string
	ProductName   string
	Memo          string
	SortOrder     int
	CreatedAt     time.Time
}

// IsCancelled reports whether the delivery has reached cancellation.
func (d Delivery) IsCancelled() bool {
	return d.Status == StatusCancelled || d.Cancellation != nil
}

// StatusUpdate is one status change as relayed between views.
type StatusUpdate struct {
	DeliveryID int64  `json:"delivery_id"`
	Status     Status `json:"status"`
	ActionDate string `json:"action_date"`
	ActionTime string `json:"action_time"`
}

// UpdateOf builds the StatusUpdate describing d's current status.
func UpdateOf(d Delivery) StatusUpdate {
	return StatusUpdate{
		DeliveryID: d.ID,
		Status:     d.Status,
		ActionDate: d.Action.Date,
		ActionTime: d.Action.Time,
	}
}

// DeliveryFilter narrows a delivery listing.
type DeliveryFilter struct {
	DriverID    *int64
	RequestType *RequestType
	VisitDate   string
}

// ItemResult is the per-delivery outcome of a batch operation.
type ItemResult struct {
	DeliveryID int64
	Status     Status
	Err        error
}
