package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"furniture-delivery/internal/apperr"
	"furniture-delivery/internal/logx"
)

// Field is one candidate column value.
type Field struct {
	Column string
	Value  any
}

// F builds a Field.
func F(column string, value any) Field { return Field{Column: column, Value: value} }

// Table describes a write target. Required columns must survive schema filtering.
type Table struct {
	Name      string
	Required  []string
	Returning string
}

// WriteResult reports which candidates were written and which were dropped.
type WriteResult struct {
	ID      int64
	Written []string
	Dropped []string
}

type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Writer builds INSERT and UPDATE statements from the columns that exist at call time.
type Writer struct {
	cols    ColumnSource
	db      execer
	retrier *Retrier
	logger  logx.Logger
	dropped counter
}

// NewWriter creates a Writer. dropped counts discarded candidate columns and may be nil.
func NewWriter(cols ColumnSource, db execer, retrier *Retrier, logger logx.Logger, dropped counter) *Writer {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Writer{cols: cols, db: db, retrier: retrier, logger: logger, dropped: dropped}
}

// WithExecer returns a Writer issuing statements through db, e.g. a transaction.
// Statements are tried once; a failed transaction is retried as a whole by the caller.
func (w *Writer) WithExecer(db execer) *Writer {
	cp := *w
	cp.db = db
	cp.retrier = w.retrier.Single()
	return &cp
}

func (w *Writer) liveColumns(ctx context.Context, table string) (ColumnSet, error) {
	return DoValue(ctx, w.retrier, "schema columns "+table, func(ctx context.Context) (ColumnSet, error) {
		return w.cols.Columns(ctx, table)
	})
}

// filter keeps the candidates present in live, first occurrence wins.
func filter(live ColumnSet, fields []Field) (kept []Field, dropped []string) {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if _, dup := seen[f.Column]; dup {
			continue
		}
		seen[f.Column] = struct{}{}
		if live.Has(f.Column) {
			kept = append(kept, f)
		} else {
			dropped = append(dropped, f.Column)
		}
	}
	return kept, dropped
}

func missingRequired(required []string, kept ...[]Field) []string {
	have := make(map[string]struct{})
	for _, group := range kept {
		for _, f := range group {
			have[f.Column] = struct{}{}
		}
	}
	var missing []string
	for _, r := range required {
		if _, ok := have[r]; !ok {
			missing = append(missing, r)
		}
	}
	return missing
}

func (w *Writer) reportDropped(table string, dropped []string) {
	if len(dropped) == 0 {
		return
	}
	if w.dropped != nil {
		for range dropped {
			w.dropped.Inc()
		}
	}
	w.logger.Warn("columns missing from schema, writing without them",
		logx.String("table", table),
		logx.Strings("columns", dropped),
	)
}

func columnNames(fields []Field) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Column)
	}
	return out
}

func ident(name string) string { return pgx.Identifier{name}.Sanitize() }

// Insert writes the candidates that exist in the live schema as a new row.
func (w *Writer) Insert(ctx context.Context, t Table, fields []Field) (WriteResult, error) {
	live, err := w.liveColumns(ctx, t.Name)
	if err != nil {
		return WriteResult{}, err
	}
	kept, dropped := filter(live, fields)
	if missing := missingRequired(t.Required, kept); len(missing) > 0 {
		return WriteResult{}, &apperr.StoreError{Kind: apperr.KindSchema, Op: "insert " + t.Name, Missing: missing}
	}
	w.reportDropped(t.Name, dropped)

	sql, args := buildInsert(t, kept, live)
	res := WriteResult{Written: columnNames(kept), Dropped: dropped}

	if t.Returning != "" && live.Has(t.Returning) {
		res.ID, err = DoValue(ctx, w.retrier, "insert "+t.Name, func(ctx context.Context) (int64, error) {
			var id int64
			err := w.db.QueryRow(ctx, sql, args...).Scan(&id)
			return id, err
		})
	} else {
		err = w.retrier.Do(ctx, "insert "+t.Name, func(ctx context.Context) error {
			_, err := w.db.Exec(ctx, sql, args...)
			return err
		})
	}
	if err != nil {
		return WriteResult{}, fmt.Errorf("insert %s: %w", t.Name, err)
	}
	return res, nil
}

func buildInsert(t Table, kept []Field, live ColumnSet) (string, []any) {
	cols := make([]string, 0, len(kept))
	marks := make([]string, 0, len(kept))
	args := make([]any, 0, len(kept))
	for i, f := range kept {
		cols = append(cols, ident(f.Column))
		marks = append(marks, fmt.Sprintf("$%d", i+1))
		args = append(args, f.Value)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES (%s)",
		ident(t.Name), strings.Join(cols, ", "), strings.Join(marks, ", "))
	if t.Returning != "" && live.Has(t.Returning) {
		fmt.Fprintf(&b, " RETURNING %s", ident(t.Returning))
	}
	return b.String(), args
}

// Update sets the surviving candidates on the rows matching every where field.
// Where columns are never dropped; a missing one makes the write SchemaIncompatible.
// No matching row is NotFound.
func (w *Writer) Update(ctx context.Context, t Table, where []Field, set []Field) (WriteResult, error) {
	if len(where) == 0 {
		return WriteResult{}, fmt.Errorf("update %s without key: %w", t.Name, apperr.Invalid)
	}
	live, err := w.liveColumns(ctx, t.Name)
	if err != nil {
		return WriteResult{}, err
	}
	keys, missingKeys := filter(live, where)
	kept, dropped := filter(live, set)

	missing := append(missingKeys, missingRequired(t.Required, keys, kept)...)
	if len(kept) == 0 && len(missing) == 0 {
		missing = dropped
	}
	if len(missing) > 0 {
		return WriteResult{}, &apperr.StoreError{Kind: apperr.KindSchema, Op: "update " + t.Name, Missing: dedupe(missing)}
	}
	w.reportDropped(t.Name, dropped)

	sql, args := buildUpdate(t, keys, kept)
	tag, err := DoValue(ctx, w.retrier, "update "+t.Name, func(ctx context.Context) (pgconn.CommandTag, error) {
		return w.db.Exec(ctx, sql, args...)
	})
	if err != nil {
		return WriteResult{}, fmt.Errorf("update %s: %w", t.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return WriteResult{}, fmt.Errorf("update %s: %w", t.Name, apperr.NotFound)
	}
	return WriteResult{Written: columnNames(kept), Dropped: dropped}, nil
}

func buildUpdate(t Table, keys, set []Field) (string, []any) {
	args := make([]any, 0, len(keys)+len(set))
	assigns := make([]string, 0, len(set))
	for _, f := range set {
		args = append(args, f.Value)
		assigns = append(assigns, fmt.Sprintf("%s = $%d", ident(f.Column), len(args)))
	}
	conds := make([]string, 0, len(keys))
	for _, f := range keys {
		args = append(args, f.Value)
		conds = append(conds, fmt.Sprintf("%s = $%d", ident(f.Column), len(args)))
	}
	sql := fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		ident(t.Name), strings.Join(assigns, ", "), strings.Join(conds, " AND "))
	return sql, args
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := in[:0]
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
