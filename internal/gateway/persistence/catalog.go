package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"furniture-delivery/internal/apperr"
)

// ColumnSet is the set of columns a table currently has.
type ColumnSet map[string]struct{}

// Has reports whether col exists.
func (s ColumnSet) Has(col string) bool {
	_, ok := s[col]
	return ok
}

// ColumnSource reports the live columns of a table.
type ColumnSource interface {
	Columns(ctx context.Context, table string) (ColumnSet, error)
}

type rowsQuerier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// Catalog reads column sets from information_schema on every call.
type Catalog struct {
	db     rowsQuerier
	schema string
}

// NewCatalog creates a Catalog for tables in schema ("public" when empty).
func NewCatalog(db rowsQuerier, schema string) *Catalog {
	if schema == "" {
		schema = "public"
	}
	return &Catalog{db: db, schema: schema}
}

// Columns returns the live column set of table. A missing table is SchemaIncompatible.
func (c *Catalog) Columns(ctx context.Context, table string) (ColumnSet, error) {
	rows, err := c.db.Query(ctx, `
        SELECT column_name
        FROM information_schema.columns
        WHERE table_schema = $1 AND table_name = $2
    `, c.schema, table)
	if err != nil {
		return nil, fmt.Errorf("schema columns %s: %w", table, err)
	}
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("schema columns %s: %w", table, err)
	}
	if len(names) == 0 {
		return nil, &apperr.StoreError{
			Kind: apperr.KindSchema,
			Op:   "schema columns " + table,
			Err:  fmt.Errorf("table %s.%s does not exist", c.schema, table),
		}
	}
	set := make(ColumnSet, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set, nil
}
