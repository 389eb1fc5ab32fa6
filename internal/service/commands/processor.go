package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/logx"
)

// ErrPermanent marks a command that will never succeed on redelivery.
var ErrPermanent = errors.New("permanent command failure")

// Processor applies status commands to deliveries
type Processor struct {
	delivery DeliveryPort
	factory  *actionFactory
	logger   logx.Logger
	total    *prometheus.CounterVec
}

// NewProcessor creates a new commands.Processor. total may be nil.
func NewProcessor(deliverySvc DeliveryPort, logger logx.Logger, total *prometheus.CounterVec) *Processor {
	logger = logx.OrNop(logger)
	p := &Processor{
		delivery: deliverySvc,
		logger:   logger,
		total:    total,
	}
	p.factory = newActionFactory(p.onStatus, p.onPostpone, p.onCancel)
	return p
}

// IsPermanent reports whether err came from a command that must not be retried.
func IsPermanent(err error) bool {
	return errors.Is(err, ErrPermanent)
}

func permanent(err error) error {
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// Handle applies a single Command.
// Unknown actions, unknown deliveries, rejected transitions and writes the
// schema cannot hold are permanent; anything else is returned as is so the
// message is redelivered.
func (p *Processor) Handle(ctx context.Context, c Command) error {
	action := strings.ToLower(strings.TrimSpace(c.Action))
	err := p.handle(ctx, c)
	p.count(action, err)
	if err == nil || !IsPermanent(err) {
		return err
	}
	if errors.Is(err, apperr.SchemaIncompatible) {
		p.logger.Error("status command dropped, schema incompatible",
			logx.String("tracking_number", c.TrackingNumber),
			logx.String("action", action),
			logx.String("error_kind", apperr.Kind(err)),
			logx.Err(err),
		)
		return err
	}
	p.logger.Warn("status command dropped",
		logx.String("tracking_number", c.TrackingNumber),
		logx.String("action", action),
		logx.Err(err),
	)
	return err
}

func (p *Processor) handle(ctx context.Context, c Command) error {
	fn, ok := p.factory.get(c.Action)
	if !ok {
		return permanent(fmt.Errorf("unknown action %q: %w", c.Action, apperr.Invalid))
	}
	tracking := strings.TrimSpace(c.TrackingNumber)
	if tracking == "" {
		return permanent(fmt.Errorf("tracking number is required: %w", apperr.Invalid))
	}

	d, err := p.delivery.GetByTracking(ctx, tracking)
	if err != nil {
		return classify(err)
	}
	return classify(fn(ctx, d.ID, c))
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperr.NotFound),
		errors.Is(err, apperr.Invalid),
		errors.Is(err, apperr.InvalidTransition),
		errors.Is(err, apperr.Conflict),
		errors.Is(err, apperr.SchemaIncompatible):
		return permanent(err)
	}
	return err
}

func (p *Processor) count(action string, err error) {
	if p.total == nil {
		return
	}
	result := "ok"
	switch {
	case err == nil:
	case IsPermanent(err):
		result = "dropped"
	default:
		result = "retry"
	}
	if _, known := p.factory.get(action); !known {
		action = "unknown"
	}
	p.total.WithLabelValues(action, result).Inc()
}

func (p *Processor) onStatus(ctx context.Context, id int64, c Command) error {
	target, ok := domain.ParseStatus(c.Status)
	if !ok {
		return fmt.Errorf("unknown status %q: %w", c.Status, apperr.Invalid)
	}
	out, err := p.delivery.ChangeStatus(ctx, id, target)
	if err != nil {
		return err
	}
	p.applied(c, out.Delivery.Status, out.Changed)
	return nil
}

func (p *Processor) onPostpone(ctx context.Context, id int64, c Command) error {
	out, err := p.delivery.Postpone(ctx, id, c.VisitDate, c.Reason)
	if err != nil {
		return err
	}
	p.applied(c, out.Delivery.Status, out.Changed)
	return nil
}

func (p *Processor) onCancel(ctx context.Context, id int64, c Command) error {
	out, err := p.delivery.Cancel(ctx, id, c.Reason)
	if err != nil {
		return err
	}
	p.applied(c, out.Delivery.Status, out.Changed)
	return nil
}

func (p *Processor) applied(c Command, st domain.Status, changed bool) {
	p.logger.Info("status command applied",
		logx.String("tracking_number", c.TrackingNumber),
		logx.String("status", string(st)),
		logx.Bool("changed", changed),
	)
}
