package domain

import "strings"

type (
	// Status is a canonical delivery status code.
	Status string
	// RequestType selects the transition graph that governs a delivery.
	RequestType string
)

// List of canonical statuses
const (
	StatusOrderReceived       Status = "order_received"
	StatusDispatchCompleted   Status = "dispatch_completed"
	StatusInDelivery          Status = "in_delivery"
	StatusDeliveryCompleted   Status = "delivery_completed"
	StatusInCollection        Status = "in_collection"
	StatusCollectionCompleted Status = "collection_completed"
	StatusInProcessing        Status = "in_processing"
	StatusProcessingCompleted Status = "processing_completed"
	StatusPostponed           Status = "delivery_postponed"
	StatusCancelled           Status = "delivery_cancelled"
)

// List of request types
const (
	RequestGeneral     RequestType = "general"
	RequestCollection  RequestType = "collection"
	RequestRemediation RequestType = "remediation"
)

// Stage is the position of a status on the shared received → completed path.
type Stage int

// Stages of the main path. StageNone covers postponed, cancelled and unknown codes.
const (
	StageNone Stage = iota - 1
	StageReceived
	StageDispatched
	StageInProgress
	StageCompleted
)

// Path lists the main path of a request type in stage order.
type Path [4]Status

var paths = map[RequestType]Path{
	RequestGeneral:     {StatusOrderReceived, StatusDispatchCompleted, StatusInDelivery, StatusDeliveryCompleted},
	RequestCollection:  {StatusOrderReceived, StatusDispatchCompleted, StatusInCollection, StatusCollectionCompleted},
	RequestRemediation: {StatusOrderReceived, StatusDispatchCompleted, StatusInProcessing, StatusProcessingCompleted},
}

var allowedRequestTypes = [...]RequestType{
	RequestGeneral, RequestCollection, RequestRemediation,
}

// Valid checks if the RequestType is known
func (t RequestType) Valid() bool {
	for _, v := range allowedRequestTypes {
		if t == v {
			return true
		}
	}
	return false
}

// PathFor returns the main path for t.
func PathFor(t RequestType) (Path, bool) {
	p, ok := paths[t]
	return p, ok
}

// StageOf returns the position of s on t's path, or StageNone.
func StageOf(s Status, t RequestType) Stage {
	p, ok := paths[t]
	if !ok {
		return StageNone
	}
	for i, v := range p {
		if v == s {
			return Stage(i)
		}
	}
	return StageNone
}

// Valid reports whether s is one of the canonical codes.
func (s Status) Valid() bool {
	if s == StatusPostponed || s == StatusCancelled {
		return true
	}
	for _, p := range paths {
		for _, v := range p {
			if v == s {
				return true
			}
		}
	}
	return false
}

// IsTerminal is true for every completed status and for cancellation.
func IsTerminal(s Status) bool {
	switch s {
	case StatusDeliveryCompleted, StatusCollectionCompleted, StatusProcessingCompleted, StatusCancelled:
		return true
	}
	return false
}

// Display priority buckets, lower sorts first.
const (
	PriorityReceived   = 0
	PriorityDispatched = 1
	PriorityInProgress = 2
	PriorityUnknown    = 3
	PriorityInactive   = 4
)

// PriorityOf returns the display bucket of s.
func PriorityOf(s Status) int {
	switch s {
	case StatusOrderReceived:
		return PriorityReceived
	case StatusDispatchCompleted:
		return PriorityDispatched
	case StatusInDelivery, StatusInCollection, StatusInProcessing:
		return PriorityInProgress
	case StatusPostponed:
		return PriorityInactive
	}
	if IsTerminal(s) {
		return PriorityInactive
	}
	return PriorityUnknown
}

// legacyStatuses maps strings found in older rows and clients onto canonical codes.
var legacyStatuses = map[string]Status{
	"received":           StatusOrderReceived,
	"order received":     StatusOrderReceived,
	"접수완료":               StatusOrderReceived,
	"주문접수":               StatusOrderReceived,
	"dispatched":         StatusDispatchCompleted,
	"dispatch completed": StatusDispatchCompleted,
	"배차완료":               StatusDispatchCompleted,
	"delivering":         StatusInDelivery,
	"in delivery":        StatusInDelivery,
	"배송중":                StatusInDelivery,
	"delivered":          StatusDeliveryCompleted,
	"completed":          StatusDeliveryCompleted,
	"delivery completed": StatusDeliveryCompleted,
	"배송완료":               StatusDeliveryCompleted,
	"collecting":         StatusInCollection,
	"수거중":                StatusInCollection,
	"collected":          StatusCollectionCompleted,
	"수거완료":               StatusCollectionCompleted,
	"processing":         StatusInProcessing,
	"처리중":                StatusInProcessing,
	"processed":          StatusProcessingCompleted,
	"처리완료":               StatusProcessingCompleted,
	"postponed":          StatusPostponed,
	"배송연기":               StatusPostponed,
	"수거연기":               StatusPostponed,
	"처리연기":               StatusPostponed,
	"연기":                 StatusPostponed,
	"cancelled":          StatusCancelled,
	"canceled":           StatusCancelled,
	"delivery_canceled":  StatusCancelled,
	"배송취소":               StatusCancelled,
	"취소":                 StatusCancelled,
}

// ParseStatus normalises raw to a canonical code. Unrecognised input is returned
// unchanged with ok=false so it stays displayable.
func ParseStatus(raw string) (Status, bool) {
	s := strings.TrimSpace(raw)
	if Status(s).Valid() {
		return Status(s), true
	}
	key := strings.ToLower(strings.ReplaceAll(s, "_", " "))
	if v, ok := legacyStatuses[key]; ok {
		return v, true
	}
	if v, ok := legacyStatuses[strings.ToLower(s)]; ok {
		return v, true
	}
	return Status(s), false
}
