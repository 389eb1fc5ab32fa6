package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"furniture-delivery/internal/apperr"
)

// SQLSTATE codes with a fixed meaning for the gateway.
const (
	codeUniqueViolation = "23505"
	codeUndefinedColumn = "42703"
	codeUndefinedTable  = "42P01"
	codeFeatureNotSupp  = "0A000"
)

var transientCodes = map[string]struct{}{
	"40001": {}, // serialization_failure
	"40P01": {}, // deadlock_detected
	"53300": {}, // too_many_connections
	"55P03": {}, // lock_not_available
	"57P01": {}, // admin_shutdown
	"57P02": {}, // crash_shutdown
	"57P03": {}, // cannot_connect_now
}

// Classify maps a driver error onto the gateway taxonomy. Errors already
// classified, and unknown errors, are returned as they are.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperr.NotFound) || errors.Is(err, apperr.Conflict) ||
		errors.Is(err, apperr.SchemaIncompatible) || errors.Is(err, apperr.TransientStore) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return errors.Join(apperr.NotFound, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return errors.Join(apperr.Conflict, err)
		case pgErr.Code == codeUndefinedColumn || pgErr.Code == codeUndefinedTable:
			return &apperr.StoreError{Kind: apperr.KindSchema, Op: "query", Err: err}
		case pgErr.Code == codeFeatureNotSupp && strings.Contains(pgErr.Message, "cached plan must not change result type"):
			// a column changed under a cached statement; the driver drops the cache entry
			return &apperr.StoreError{Kind: apperr.KindTransient, Err: err}
		case strings.HasPrefix(pgErr.Code, "08"):
			return &apperr.StoreError{Kind: apperr.KindTransient, Err: err}
		}
		if _, ok := transientCodes[pgErr.Code]; ok {
			return &apperr.StoreError{Kind: apperr.KindTransient, Err: err}
		}
		return err
	}

	if errors.Is(err, context.Canceled) {
		return err
	}
	if pgconn.Timeout(err) || pgconn.SafeToRetry(err) {
		return &apperr.StoreError{Kind: apperr.KindTransient, Err: err}
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return &apperr.StoreError{Kind: apperr.KindTransient, Err: err}
	}
	return err
}

// IsTransient reports whether err is worth another attempt.
func IsTransient(err error) bool {
	var se *apperr.StoreError
	return errors.As(err, &se) && se.Kind == apperr.KindTransient
}
