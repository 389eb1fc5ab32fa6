package delivery

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type uuidTrackingFactory struct{}

// NewTrackingFactory - creates a TrackingFactory issuing YYYYMMDD-XXXXXXXX numbers.
func NewTrackingFactory() TrackingFactory {
	return uuidTrackingFactory{}
}

// Next returns the intake date followed by eight random hex digits.
func (uuidTrackingFactory) Next(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return now.Format("20060102") + "-" + suffix
}
