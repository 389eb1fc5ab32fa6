package commands

import (
	"time"
)

// Command is a single status command sent by a partner system or replayed
// from the mobile app's offline queue
type Command struct {
	TrackingNumber string    `json:"tracking_number"`
	Action         string    `json:"action"`
	Status         string    `json:"status,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	VisitDate      string    `json:"visit_date,omitempty"`
	SentAt         time.Time `json:"sent_at,omitempty"`
}

// Supported command actions.
const (
	ActionStatus   = "status"
	ActionPostpone = "postpone"
	ActionCancel   = "cancel"
)
