package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/gateway/persistence"
)

var (
	deliveryInsert = persistence.Table{
		Name:      deliveriesTable,
		Required:  []string{"tracking_number", "request_type", "status"},
		Returning: "id",
	}
	deliveryStatus = persistence.Table{
		Name:     deliveriesTable,
		Required: []string{"status"},
	}
	deliveryDriver = persistence.Table{
		Name:     deliveriesTable,
		Required: []string{"driver_id"},
	}
	deliveryOrder = persistence.Table{
		Name:     deliveriesTable,
		Required: []string{"sort_order"},
	}
)

// DeliveryRepo represents delivery repository. Writes go through the
// schema-tolerant gateway writer, reads select every column the table has.
type DeliveryRepo struct {
	db      *pgxpool.Pool
	writer  *persistence.Writer
	retrier *persistence.Retrier
}

// NewDeliveryRepo creates a new DeliveryRepo.
func NewDeliveryRepo(db *pgxpool.Pool, writer *persistence.Writer, retrier *persistence.Retrier) *DeliveryRepo {
	return &DeliveryRepo{db: db, writer: writer, retrier: retrier}
}

// Create inserts d and sets its ID.
func (r *DeliveryRepo) Create(ctx context.Context, d *domain.Delivery) (persistence.WriteResult, error) {
	fields := []persistence.Field{
		persistence.F("tracking_number", d.TrackingNumber),
		persistence.F("request_type", string(d.RequestType)),
		persistence.F("status", string(d.Status)),
		persistence.F("action_date", nullable(d.Action.Date)),
		persistence.F("action_time", nullable(d.Action.Time)),
		persistence.F("visit_date", nullable(d.VisitDate)),
		persistence.F("visit_time", nullable(d.VisitTime)),
		persistence.F("customer_name", d.CustomerName),
		persistence.F("customer_phone", d.CustomerPhone),
		persistence.F("address", d.Address),
		persistence.F("product_name", d.ProductName),
		persistence.F("memo", d.Memo),
		persistence.F("driver_id", d.DriverID),
	}
	res, err := r.writer.Insert(ctx, deliveryInsert, fields)
	if err != nil {
		return res, err
	}
	d.ID = res.ID
	return res, nil
}

// UpdateStatus persists the status, action stamp and the postponement or
// cancellation details of d, provided the stored status is still from.
// A row whose status moved on since it was read is a Conflict.
func (r *DeliveryRepo) UpdateStatus(ctx context.Context, d *domain.Delivery, from domain.Status) (persistence.WriteResult, error) {
	where := []persistence.Field{
		persistence.F("id", d.ID),
		persistence.F("request_type", string(d.RequestType)),
		persistence.F("status", string(from)),
	}
	res, err := r.writer.Update(ctx, deliveryStatus, where, statusFields(d))
	if errors.Is(err, apperr.NotFound) {
		return res, r.staleOrMissing(ctx, d)
	}
	return res, err
}

// staleOrMissing tells a vanished row from one whose status was changed concurrently.
func (r *DeliveryRepo) staleOrMissing(ctx context.Context, d *domain.Delivery) error {
	cur, err := r.Get(ctx, d.ID)
	if err != nil {
		return err
	}
	if cur.RequestType != d.RequestType {
		return fmt.Errorf("delivery %d: %w", d.ID, apperr.NotFound)
	}
	return fmt.Errorf("delivery %d is now %s: %w", d.ID, cur.Status, apperr.Conflict)
}

func statusFields(d *domain.Delivery) []persistence.Field {
	set := []persistence.Field{
		persistence.F("status", string(d.Status)),
		persistence.F("action_date", nullable(d.Action.Date)),
		persistence.F("action_time", nullable(d.Action.Time)),
	}
	if p := d.Postponement; p != nil {
		set = append(set,
			persistence.F("visit_date", nullable(d.VisitDate)),
			persistence.F("postpone_reason", nullable(p.Reason)),
			persistence.F("postponed_from", nullable(string(p.From))),
		)
	} else {
		set = append(set, persistence.F("postponed_from", nil))
	}
	if c := d.Cancellation; c != nil {
		set = append(set,
			persistence.F("cancel_reason", nullable(c.Reason)),
			persistence.F("cancelled_at", c.At),
		)
	}
	return append(set, persistence.F("updated_at", time.Now()))
}

// SetDriver assigns (or clears, when driverID is nil) the driver of a delivery.
func (r *DeliveryRepo) SetDriver(ctx context.Context, id int64, driverID *int64) error {
	_, err := r.writer.Update(ctx, deliveryDriver,
		[]persistence.Field{persistence.F("id", id)},
		[]persistence.Field{persistence.F("driver_id", driverID), persistence.F("updated_at", time.Now())},
	)
	return err
}

// SaveOrder stores ids' positions as the manual display order in one transaction.
func (r *DeliveryRepo) SaveOrder(ctx context.Context, ids []int64) error {
	return r.retrier.Do(ctx, "save order", func(ctx context.Context) error {
		return r.WithTx(ctx, func(tx pgx.Tx) error {
			w := r.writer.WithExecer(tx)
			for i, id := range ids {
				_, err := w.Update(ctx, deliveryOrder,
					[]persistence.Field{persistence.F("id", id)},
					[]persistence.Field{persistence.F("sort_order", i+1)},
				)
				if err != nil {
					return fmt.Errorf("delivery %d: %w", id, err)
				}
			}
			return nil
		})
	})
}

// WithTx opens a transaction and executes fn within it.
func (r *DeliveryRepo) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// откатываем при панике
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rollback tx: %w (original error: %s)", rbErr, err.Error())
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// Get returns the delivery with id.
func (r *DeliveryRepo) Get(ctx context.Context, id int64) (*domain.Delivery, error) {
	return r.getOne(ctx, fmt.Sprintf("get delivery %d", id), "id", id)
}

// GetByTracking returns the delivery with the tracking number.
func (r *DeliveryRepo) GetByTracking(ctx context.Context, tracking string) (*domain.Delivery, error) {
	return r.getOne(ctx, fmt.Sprintf("get delivery %q", tracking), "tracking_number", tracking)
}

func (r *DeliveryRepo) getOne(ctx context.Context, op, column string, value any) (*domain.Delivery, error) {
	q := fmt.Sprintf("SELECT * FROM %s WHERE %s = $1",
		pgx.Identifier{deliveriesTable}.Sanitize(), pgx.Identifier{column}.Sanitize())
	row, err := persistence.DoValue(ctx, r.retrier, op, func(ctx context.Context) (map[string]any, error) {
		rows, err := r.db.Query(ctx, q, value)
		if err != nil {
			return nil, err
		}
		return pgx.CollectOneRow(rows, pgx.RowToMap)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	d := deliveryFromRow(row)
	return &d, nil
}

// List returns the deliveries matching f in stored display order.
func (r *DeliveryRepo) List(ctx context.Context, f domain.DeliveryFilter) ([]domain.Delivery, error) {
	var (
		conds []string
		args  []any
	)
	if f.DriverID != nil {
		args = append(args, *f.DriverID)
		conds = append(conds, fmt.Sprintf("driver_id = $%d", len(args)))
	}
	if f.RequestType != nil {
		args = append(args, string(*f.RequestType))
		conds = append(conds, fmt.Sprintf("request_type = $%d", len(args)))
	}
	if f.VisitDate != "" {
		args = append(args, f.VisitDate)
		conds = append(conds, fmt.Sprintf("visit_date = $%d", len(args)))
	}
	q := "SELECT * FROM " + pgx.Identifier{deliveriesTable}.Sanitize()
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY id"

	rows, err := persistence.DoValue(ctx, r.retrier, "list deliveries", func(ctx context.Context) ([]map[string]any, error) {
		rows, err := r.db.Query(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		return pgx.CollectRows(rows, pgx.RowToMap)
	})
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}

	out := make([]domain.Delivery, 0, len(rows))
	for _, row := range rows {
		out = append(out, deliveryFromRow(row))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
