package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Table names.
const (
	deliveriesTable = "deliveries"
	driversTable    = "drivers"
)

// Schema is the current layout of the service tables. Older deployments may lack
// the optional delivery columns (action stamp, postponement, cancellation, sort order);
// writes drop them and reads leave the matching fields empty.
const Schema = `
CREATE TABLE IF NOT EXISTS drivers (
    id         BIGSERIAL PRIMARY KEY,
    name       TEXT NOT NULL,
    phone      TEXT NOT NULL UNIQUE,
    status     TEXT NOT NULL,
    vehicle    TEXT NOT NULL,
    created_at TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL,
    updated_at TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL
);

CREATE TABLE IF NOT EXISTS deliveries (
    id              BIGSERIAL PRIMARY KEY,
    tracking_number TEXT NOT NULL UNIQUE,
    request_type    TEXT NOT NULL,
    status          TEXT NOT NULL,
    action_date     TEXT,
    action_time     TEXT,
    visit_date      TEXT,
    visit_time      TEXT,
    customer_name   TEXT,
    customer_phone  TEXT,
    address         TEXT,
    product_name    TEXT,
    memo            TEXT,
    driver_id       BIGINT REFERENCES drivers(id) ON DELETE SET NULL,
    sort_order      INTEGER NOT NULL DEFAULT 0,
    postpone_reason TEXT,
    postponed_from  TEXT,
    cancel_reason   TEXT,
    cancelled_at    TIMESTAMP WITHOUT TIME ZONE,
    created_at      TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL,
    updated_at      TIMESTAMP WITHOUT TIME ZONE DEFAULT now() NOT NULL
);
`

// Migrate creates missing tables. Existing tables are left as they are.
func Migrate(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
