package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/clock"
	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/gateway/persistence"
	"furniture-delivery/internal/lifecycle"
	"furniture-delivery/internal/logx"
	"furniture-delivery/internal/ordering"
)

const trackingAttempts = 3

// Metrics are the counters the service updates. Nil fields are skipped.
type Metrics struct {
	Transitions  *prometheus.CounterVec // by target status
	Rejected     prometheus.Counter
	MailboxPosts *prometheus.CounterVec // by outcome: ok, failed
}

// Deps are the collaborators of Service.
type Deps struct {
	Repo     deliveryRepository
	Drivers  driverDirectory
	Machine  *lifecycle.Machine
	Sorter   listSorter
	Mailbox  statusMailbox
	Tracking TrackingFactory
	Clock    clock.Clock
	Metrics  Metrics
}

// Service runs delivery intake and status changes: validate against the
// lifecycle, persist through the gateway, then relay to other views.
type Service struct {
	Deps
	operationTimeout time.Duration
	logger           logx.Logger
}

// Outcome is the result of a single status change.
type Outcome struct {
	Delivery domain.Delivery
	Changed  bool
	Dropped  []string
	// MailboxErr is set when the change was committed but could not be relayed.
	MailboxErr error
}

// BatchOutcome is the result of a batch status change.
type BatchOutcome struct {
	Items      []domain.ItemResult
	MailboxErr error
}

// Succeeded counts the items without an error.
func (b BatchOutcome) Succeeded() int {
	n := 0
	for _, it := range b.Items {
		if it.Err == nil {
			n++
		}
	}
	return n
}

// NewDeliveryService - creates a new delivery Service.
func NewDeliveryService(d Deps, timeout time.Duration, logger logx.Logger) *Service {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	if d.Clock == nil {
		d.Clock = clock.RealClock{}
	}
	if d.Machine == nil {
		d.Machine = lifecycle.NewMachine(d.Clock, nil)
	}
	if d.Tracking == nil {
		d.Tracking = NewTrackingFactory()
	}
	return &Service{Deps: d, operationTimeout: timeout, logger: logger}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create registers a new delivery at the start of its path.
func (s *Service) Create(ctx context.Context, d *domain.Delivery) (*domain.Delivery, error) {
	if err := validateCreate(d); err != nil {
		return nil, err
	}
	d.Status = domain.StatusOrderReceived
	d.Action = domain.ActionStamp{}
	d.Cancellation = nil
	d.Postponement = nil

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var err error
	for attempt := 1; attempt <= trackingAttempts; attempt++ {
		d.TrackingNumber = s.Tracking.Next(s.Clock.Now())
		var wr persistence.WriteResult
		wr, err = s.Repo.Create(ctx, d)
		if err == nil {
			s.logger.Info("delivery created",
				logx.String("event", "delivery_created"),
				logx.Int64("delivery_id", d.ID),
				logx.String("tracking_number", d.TrackingNumber),
				logx.String("request_type", string(d.RequestType)),
				logx.Strings("dropped_columns", wr.Dropped),
			)
			return d, nil
		}
		if !errors.Is(err, apperr.Conflict) {
			return nil, err
		}
	}
	return nil, err
}

func validateCreate(d *domain.Delivery) error {
	if d == nil {
		return apperr.Invalid
	}
	if !d.RequestType.Valid() {
		return fmt.Errorf("unknown request type %q: %w", d.RequestType, apperr.Invalid)
	}
	if strings.TrimSpace(d.Address) == "" {
		return fmt.Errorf("address is required: %w", apperr.Invalid)
	}
	if d.VisitDate != "" {
		if _, err := time.Parse(domain.ActionDateLayout, d.VisitDate); err != nil {
			return fmt.Errorf("visit date %q: %w", d.VisitDate, apperr.Invalid)
		}
	}
	if d.DriverID != nil && *d.DriverID <= 0 {
		return fmt.Errorf("driver id: %w", apperr.Invalid)
	}
	return nil
}

// Get returns a delivery by id.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Delivery, error) {
	if id <= 0 {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.Get(ctx, id)
}

// GetByTracking returns a delivery by tracking number.
func (s *Service) GetByTracking(ctx context.Context, tracking string) (*domain.Delivery, error) {
	tracking = strings.TrimSpace(tracking)
	if tracking == "" {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.GetByTracking(ctx, tracking)
}

// List returns the deliveries matching f in display order.
func (s *Service) List(ctx context.Context, f domain.DeliveryFilter, mode ordering.Mode) ([]domain.Delivery, error) {
	if f.RequestType != nil && !f.RequestType.Valid() {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ds, err := s.Repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	if s.Sorter == nil {
		return ds, nil
	}
	return s.Sorter.Sort(mode, ds), nil
}

// ChangeStatus moves a delivery to target.
func (s *Service) ChangeStatus(ctx context.Context, id int64, target domain.Status) (Outcome, error) {
	return s.change(ctx, id, func(d domain.Delivery) (lifecycle.Result, error) {
		return s.Machine.Transition(d, target)
	})
}

// Postpone reschedules a delivery to newDate.
func (s *Service) Postpone(ctx context.Context, id int64, newDate, reason string) (Outcome, error) {
	return s.change(ctx, id, func(d domain.Delivery) (lifecycle.Result, error) {
		return s.Machine.Postpone(d, newDate, reason)
	})
}

// Cancel cancels a delivery.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (Outcome, error) {
	return s.change(ctx, id, func(d domain.Delivery) (lifecycle.Result, error) {
		return s.Machine.Cancel(d, reason)
	})
}

func (s *Service) change(ctx context.Context, id int64, decide func(domain.Delivery) (lifecycle.Result, error)) (Outcome, error) {
	if id <= 0 {
		return Outcome{}, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, w, err := s.commit(ctx, id, decide)
	if err != nil {
		return Outcome{}, err
	}
	out := Outcome{Delivery: *d}
	if w == nil {
		return out, nil
	}
	out.Changed = true
	out.Dropped = w.columns
	out.MailboxErr = s.relay(ctx, []domain.StatusUpdate{domain.UpdateOf(*d)})
	return out, nil
}

// written is non-nil when a change was persisted.
type written struct{ columns []string }

// commitAttempts bounds how often a change is re-decided after losing a
// race against a concurrent writer.
const commitAttempts = 3

// commit loads, decides and persists one change. A decided no-op returns a nil *written.
// The write only lands if the stored status is still the one decided against;
// otherwise the row is re-read and the change decided again.
func (s *Service) commit(ctx context.Context, id int64, decide func(domain.Delivery) (lifecycle.Result, error)) (*domain.Delivery, *written, error) {
	var err error
	for attempt := 1; attempt <= commitAttempts; attempt++ {
		var (
			d *domain.Delivery
			w *written
		)
		d, w, err = s.commitOnce(ctx, id, decide)
		if !errors.Is(err, apperr.Conflict) {
			return d, w, err
		}
		s.logger.Warn("status changed concurrently, deciding again",
			logx.Int64("delivery_id", id),
			logx.Int("attempt", attempt),
			logx.Err(err),
		)
	}
	return nil, nil, err
}

func (s *Service) commitOnce(ctx context.Context, id int64, decide func(domain.Delivery) (lifecycle.Result, error)) (*domain.Delivery, *written, error) {
	d, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	from := d.Status
	res, err := decide(*d)
	if err != nil {
		if errors.Is(err, apperr.InvalidTransition) {
			if s.Metrics.Rejected != nil {
				s.Metrics.Rejected.Inc()
			}
			s.logger.Warn("status change rejected",
				logx.Int64("delivery_id", id),
				logx.String("from", string(from)),
				logx.Err(err),
			)
		}
		return nil, nil, err
	}
	if !res.Changed {
		return d, nil, nil
	}

	lifecycle.Apply(d, res)
	wr, err := s.Repo.UpdateStatus(ctx, d, from)
	if errors.Is(err, apperr.Conflict) {
		return nil, nil, err
	}
	if err != nil {
		s.logger.Error("status change not persisted",
			logx.Int64("delivery_id", id),
			logx.String("status", string(d.Status)),
			logx.String("error_kind", apperr.Kind(err)),
			logx.Err(err),
		)
		return nil, nil, err
	}
	if s.Metrics.Transitions != nil {
		s.Metrics.Transitions.WithLabelValues(string(d.Status)).Inc()
	}
	s.logger.Info("status changed",
		logx.String("event", "status_changed"),
		logx.Int64("delivery_id", id),
		logx.String("from", string(from)),
		logx.String("to", string(d.Status)),
	)
	return d, &written{columns: wr.Dropped}, nil
}

// relay posts updates to the mailbox. Failures are reported, never escalated.
func (s *Service) relay(ctx context.Context, updates []domain.StatusUpdate) error {
	if s.Mailbox == nil || len(updates) == 0 {
		return nil
	}
	err := s.Mailbox.Post(ctx, updates)
	outcome := "ok"
	if err != nil {
		outcome = "failed"
		s.logger.Warn("status relay failed",
			logx.Int("updates", len(updates)),
			logx.Err(err),
		)
	}
	if s.Metrics.MailboxPosts != nil {
		s.Metrics.MailboxPosts.WithLabelValues(outcome).Inc()
	}
	return err
}

// BatchChangeStatus moves every delivery in ids to target. Items fail
// independently; the committed ones are relayed as one batch.
func (s *Service) BatchChangeStatus(ctx context.Context, ids []int64, target domain.Status) (BatchOutcome, error) {
	if len(ids) == 0 {
		return BatchOutcome{}, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	out := BatchOutcome{Items: make([]domain.ItemResult, 0, len(ids))}
	var updates []domain.StatusUpdate
	for _, id := range ids {
		item := domain.ItemResult{DeliveryID: id}
		if id <= 0 {
			item.Err = apperr.Invalid
			out.Items = append(out.Items, item)
			continue
		}
		d, w, err := s.commit(ctx, id, func(d domain.Delivery) (lifecycle.Result, error) {
			return s.Machine.Transition(d, target)
		})
		if err != nil {
			item.Err = err
		} else {
			item.Status = d.Status
			if w != nil {
				updates = append(updates, domain.UpdateOf(*d))
			}
		}
		out.Items = append(out.Items, item)
	}
	out.MailboxErr = s.relay(ctx, updates)
	return out, nil
}

// AssignDriver hands a delivery to a registered driver.
func (s *Service) AssignDriver(ctx context.Context, id, driverID int64) (*domain.Delivery, error) {
	if id <= 0 || driverID <= 0 {
		return nil, apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	d, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.IsCancelled() {
		return nil, fmt.Errorf("delivery %d is cancelled: %w", id, apperr.Conflict)
	}
	if s.Drivers != nil {
		ok, err := s.Drivers.Exists(ctx, driverID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("driver %d: %w", driverID, apperr.NotFound)
		}
	}
	if err := s.Repo.SetDriver(ctx, id, &driverID); err != nil {
		return nil, err
	}
	d.DriverID = &driverID
	s.logger.Info("driver assigned",
		logx.String("event", "driver_assigned"),
		logx.Int64("delivery_id", id),
		logx.Int64("driver_id", driverID),
	)
	return d, nil
}

// UnassignDriver clears the driver of a delivery.
func (s *Service) UnassignDriver(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperr.Invalid
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.SetDriver(ctx, id, nil)
}

// SaveManualOrder stores the drag-and-drop order of a list.
func (s *Service) SaveManualOrder(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return apperr.Invalid
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return apperr.Invalid
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("delivery %d listed twice: %w", id, apperr.Invalid)
		}
		seen[id] = struct{}{}
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.Repo.SaveOrder(ctx, ids)
}
