package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/domain"
	"furniture-delivery/internal/gateway/persistence"
)

// DriverRepo represents driver repository.
type DriverRepo struct {
	db      *pgxpool.Pool
	retrier *persistence.Retrier
}

// NewDriverRepo creates a new DriverRepo.
func NewDriverRepo(db *pgxpool.Pool, retrier *persistence.Retrier) *DriverRepo {
	return &DriverRepo{db: db, retrier: retrier}
}

type driverRow struct {
	ID      int64  `db:"id"`
	Name    string `db:"name"`
	Phone   string `db:"phone"`
	Status  string `db:"status"`
	Vehicle string `db:"vehicle"`
}

func (r driverRow) toDomain() domain.Driver {
	return domain.Driver{
		ID:      r.ID,
		Name:    r.Name,
		Phone:   r.Phone,
		Status:  domain.DriverStatus(r.Status),
		Vehicle: domain.VehicleType(r.Vehicle),
	}
}

// Get returns driver by its ID, or nil when there is none.
func (r *DriverRepo) Get(ctx context.Context, id int64) (*domain.Driver, error) {
	row, err := persistence.DoValue(ctx, r.retrier, "get driver", func(ctx context.Context) (driverRow, error) {
		rows, err := r.db.Query(ctx,
			`SELECT id, name, phone, status, vehicle FROM drivers WHERE id=$1`, id)
		if err != nil {
			return driverRow{}, err
		}
		return pgx.CollectOneRow(rows, pgx.RowToStructByName[driverRow])
	})
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get driver %d: %w", id, err)
	}
	d := row.toDomain()
	return &d, nil
}

// List returns drivers ordered by id. If limit/offset are nil, returns the full list.
func (r *DriverRepo) List(ctx context.Context, limit, offset *int) ([]domain.Driver, error) {
	q := `SELECT id, name, phone, status, vehicle FROM drivers ORDER BY id`
	args := make([]any, 0, 2)
	if limit != nil {
		q += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, *limit)
	}
	if offset != nil {
		q += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, *offset)
	}

	rows, err := persistence.DoValue(ctx, r.retrier, "list drivers", func(ctx context.Context) ([]driverRow, error) {
		rows, err := r.db.Query(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		return pgx.CollectRows(rows, pgx.RowToStructByName[driverRow])
	})
	if err != nil {
		return nil, fmt.Errorf("list drivers: %w", err)
	}
	out := make([]domain.Driver, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

// Create - creates a new driver.
func (r *DriverRepo) Create(ctx context.Context, d *domain.Driver) (int64, error) {
	id, err := persistence.DoValue(ctx, r.retrier, "create driver", func(ctx context.Context) (int64, error) {
		var id int64
		err := r.db.QueryRow(ctx,
			`INSERT INTO drivers(name,phone,status,vehicle) VALUES($1,$2,$3,$4) RETURNING id`,
			d.Name, d.Phone, string(d.Status), string(d.Vehicle)).Scan(&id)
		return id, err
	})
	if err != nil {
		if IsDuplicate(err) {
			return 0, apperr.Conflict
		}
		return 0, fmt.Errorf("create driver: %w", err)
	}
	return id, nil
}

// UpdatePartial applies a partial update to a driver and returns true if a row was affected.
func (r *DriverRepo) UpdatePartial(ctx context.Context, u domain.PartialDriverUpdate) (bool, error) {
	var status, vehicle *string
	if u.Status != nil {
		s := string(*u.Status)
		status = &s
	}
	if u.Vehicle != nil {
		v := string(*u.Vehicle)
		vehicle = &v
	}
	affected, err := persistence.DoValue(ctx, r.retrier, "update driver", func(ctx context.Context) (int64, error) {
		ct, err := r.db.Exec(ctx, `
            UPDATE drivers
            SET
                name       = COALESCE($2, name),
                phone      = COALESCE($3, phone),
                status     = COALESCE($4, status),
                vehicle    = COALESCE($5, vehicle),
                updated_at = now()
            WHERE id = $1
        `, u.ID, u.Name, u.Phone, status, vehicle)
		return ct.RowsAffected(), err
	})
	if err != nil {
		if IsDuplicate(err) {
			return false, apperr.Conflict
		}
		return false, fmt.Errorf("update driver %d: %w", u.ID, err)
	}
	return affected > 0, nil
}
