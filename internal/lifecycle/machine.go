// Package lifecycle validates and applies delivery status changes.
package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/clock"
	"furniture-delivery/internal/domain"
)

// Result is the outcome of an accepted status change.
type Result struct {
	Status       domain.Status
	Action       domain.ActionStamp
	Changed      bool
	Postponement *domain.Postponement
	Cancellation *domain.Cancellation
}

// Machine applies the per-request-type transition graphs.
type Machine struct {
	clock clock.Clock
	loc   *time.Location
}

// NewMachine creates a Machine stamping actions with c in loc.
func NewMachine(c clock.Clock, loc *time.Location) *Machine {
	if c == nil {
		c = clock.RealClock{}
	}
	if loc == nil {
		loc = time.Local
	}
	return &Machine{clock: c, loc: loc}
}

func (m *Machine) stamp() (time.Time, domain.ActionStamp) {
	now := m.clock.Now().In(m.loc)
	return now, domain.NewActionStamp(now)
}

func reject(d domain.Delivery, to domain.Status, reason string) error {
	return &apperr.TransitionError{From: string(d.Status), To: string(to), Reason: reason}
}

// guard rejects any change to a cancelled or completed delivery.
func guard(d domain.Delivery, to domain.Status) error {
	if d.IsCancelled() {
		return reject(d, to, "delivery is cancelled")
	}
	if domain.IsTerminal(d.Status) {
		return reject(d, to, "delivery is completed")
	}
	if !d.RequestType.Valid() {
		return reject(d, to, fmt.Sprintf("unknown request type %q", d.RequestType))
	}
	return nil
}

// Transition moves d along its request type's path.
func (m *Machine) Transition(d domain.Delivery, target domain.Status) (Result, error) {
	switch target {
	case domain.StatusCancelled:
		return m.Cancel(d, "")
	case domain.StatusPostponed:
		return m.Postpone(d, "", "")
	}
	if err := guard(d, target); err != nil {
		return Result{}, err
	}
	next := domain.StageOf(target, d.RequestType)
	if next == domain.StageNone {
		return Result{}, reject(d, target, fmt.Sprintf("not a %s status", d.RequestType))
	}
	if target == d.Status {
		return Result{Status: d.Status, Action: d.Action, Postponement: d.Postponement}, nil
	}

	if d.Status == domain.StatusPostponed {
		if !resumable(d, next) {
			return Result{}, reject(d, target, "not reachable from the postponed stage")
		}
	} else {
		cur := domain.StageOf(d.Status, d.RequestType)
		if cur == domain.StageNone {
			return Result{}, reject(d, target, "current status is not on the path")
		}
		if next != cur+1 {
			return Result{}, reject(d, target, "not the next step")
		}
	}

	var stamp domain.ActionStamp
	if target != domain.StatusOrderReceived {
		_, stamp = m.stamp()
	}
	return Result{Status: target, Action: stamp, Changed: true, Postponement: d.Postponement}, nil
}

// resumable: a postponed delivery may resume at the interrupted stage or the one after.
// Without a record of that stage every path stage past received is accepted.
func resumable(d domain.Delivery, next domain.Stage) bool {
	if d.Postponement == nil || d.Postponement.From == "" {
		return next > domain.StageReceived
	}
	from := domain.StageOf(d.Postponement.From, d.RequestType)
	if from == domain.StageNone {
		return next > domain.StageReceived
	}
	return next == from || next == from+1
}

// Postpone asserts delivery_postponed without moving the path position.
func (m *Machine) Postpone(d domain.Delivery, newDate, reason string) (Result, error) {
	if err := guard(d, domain.StatusPostponed); err != nil {
		return Result{}, err
	}
	newDate = strings.TrimSpace(newDate)
	if newDate != "" {
		if _, err := time.Parse(domain.ActionDateLayout, newDate); err != nil {
			return Result{}, fmt.Errorf("postpone date %q: %w", newDate, apperr.Invalid)
		}
	}

	from := d.Status
	if d.Status == domain.StatusPostponed && d.Postponement != nil {
		from = d.Postponement.From
	}
	_, stamp := m.stamp()
	return Result{
		Status:  domain.StatusPostponed,
		Action:  stamp,
		Changed: true,
		Postponement: &domain.Postponement{
			NewDate: newDate,
			Reason:  strings.TrimSpace(reason),
			From:    from,
		},
	}, nil
}

// Cancel ends the lifecycle.
func (m *Machine) Cancel(d domain.Delivery, reason string) (Result, error) {
	if d.IsCancelled() {
		return Result{}, reject(d, domain.StatusCancelled, "delivery is already cancelled")
	}
	if err := guard(d, domain.StatusCancelled); err != nil {
		return Result{}, err
	}
	now, stamp := m.stamp()
	return Result{
		Status:       domain.StatusCancelled,
		Action:       stamp,
		Changed:      true,
		Postponement: d.Postponement,
		Cancellation: &domain.Cancellation{Reason: strings.TrimSpace(reason), At: now},
	}, nil
}

// Apply writes r onto d.
func Apply(d *domain.Delivery, r Result) {
	d.Status = r.Status
	d.Action = r.Action
	d.Postponement = r.Postponement
	if r.Postponement != nil && r.Postponement.NewDate != "" {
		d.VisitDate = r.Postponement.NewDate
	}
	if r.Cancellation != nil {
		d.Cancellation = r.Cancellation
	}
}
