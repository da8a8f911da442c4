package services

import (
	"fmt"

	"gorm.io/gorm"

	apperrors "magictravel/internal/errors"
	"magictravel/internal/logger"
	"magictravel/internal/metrics"
	"magictravel/internal/registry"
)

// Operation names used in failure logs and metrics.
const (
	opList     = "list"
	opCount    = "count"
	opActors   = "actors"
	opTimeline = "timeline"
	opRecord   = "record"
	opPurge    = "purge"
)

var operationDescriptions = map[string]string{
	opList:     "consultar los registros de auditoría",
	opCount:    "contar los registros de auditoría",
	opActors:   "agrupar la actividad por usuario",
	opTimeline: "calcular la actividad diaria",
	opRecord:   "obtener el registro de auditoría",
	opPurge:    "eliminar registros de auditoría",
}

// tableAttempt is the outcome of one per-table operation during a fan-out.
type tableAttempt[T any] struct {
	Table registry.Table
	Value T
	Err   error
}

// runAttempts calls fn once per table, in order, and collects every outcome.
// It never stops early.
func runAttempts[T any](tables []registry.Table, fn func(registry.Table) (T, error)) []tableAttempt[T] {
	out := make([]tableAttempt[T], 0, len(tables))
	for _, tbl := range tables {
		v, err := fn(tbl)
		out = append(out, tableAttempt[T]{Table: tbl, Value: v, Err: err})
	}
	return out
}

// absorbFailures logs and counts failed attempts and returns the successful
// ones in their original order.
func absorbFailures[T any](operation string, attempts []tableAttempt[T]) []tableAttempt[T] {
	ok := make([]tableAttempt[T], 0, len(attempts))
	for _, a := range attempts {
		if a.Err != nil {
			logger.Get().Warnw("audit table query failed, skipping",
				"table", a.Table.Name,
				"operation", operation,
				"error", a.Err,
			)
			metrics.TableFailures.WithLabelValues(a.Table.Name, operation).Inc()
			continue
		}
		ok = append(ok, a)
	}
	return ok
}

// firstError returns the first attempt error, if any.
func firstError[T any](attempts []tableAttempt[T]) error {
	for _, a := range attempts {
		if a.Err != nil {
			return a.Err
		}
	}
	return nil
}

// escalate turns a fan-out where every table failed into a fatal error when
// storage itself is unreachable. Otherwise the failures stay absorbed.
func escalate[T any](db *gorm.DB, operation string, attempts []tableAttempt[T]) error {
	if len(attempts) == 0 {
		return nil
	}
	for _, a := range attempts {
		if a.Err == nil {
			return nil
		}
	}

	pingErr := ping(db)
	if pingErr == nil {
		return nil
	}

	logger.Get().Errorw("audit storage unreachable",
		"operation", operation,
		"error", firstError(attempts),
		"ping_error", pingErr,
	)
	return fatal(operation, firstError(attempts))
}

func ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// fatal wraps err as an internal error whose message carries the cause.
func fatal(operation string, err error) *apperrors.AppError {
	desc, ok := operationDescriptions[operation]
	if !ok {
		desc = operation
	}
	appErr := apperrors.WithMessage(apperrors.ErrInternalServer,
		fmt.Sprintf("Error al %s: %v", desc, err))
	appErr.Internal = err
	return appErr
}
