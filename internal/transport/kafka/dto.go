package kafka

import (
	"strings"
	"time"

	"furniture-delivery/internal/service/commands"
)

// CommandDTO is a data transfer object for commands.Command
type CommandDTO struct {
	TrackingNumber string    `json:"tracking_number"`
	Action         string    `json:"action"`
	Status         string    `json:"status,omitempty"`
	Reason         string    `json:"reason,omitempty"`
	VisitDate      string    `json:"visit_date,omitempty"`
	SentAt         time.Time `json:"sent_at,omitempty"`
}

// ToDomain converts CommandDTO to commands.Command
func ToDomain(dto CommandDTO) commands.Command {
	return commands.Command{
		TrackingNumber: strings.TrimSpace(dto.TrackingNumber),
		Action:         strings.ToLower(strings.TrimSpace(dto.Action)),
		Status:         strings.TrimSpace(dto.Status),
		Reason:         strings.TrimSpace(dto.Reason),
		VisitDate:      strings.TrimSpace(dto.VisitDate),
		SentAt:         dto.SentAt,
	}
}
