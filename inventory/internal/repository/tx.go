package repository

import (
	"context"
	"database/sql"
	"math/rand"
	"strings"
	"time"

	"github.com/Astemirdum/inventory-service/inventory/internal/errs"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultMaxAttempts  = 3
	defaultBaseDelay    = 10 * time.Millisecond
	defaultJitterFactor = 0.3
)

func (r *repository) RunExclusive(ctx context.Context, fn func(repo Repository) error) error {
	if r.inTx {
		return fn(r)
	}

	var err error
	for attempt := 0; attempt < r.maxAttempts; attempt++ {
		if attempt > 0 {
			delay := r.baseDelay * time.Duration(1<<(attempt-1))
			delay += time.Duration(rand.Float64() * float64(delay) * defaultJitterFactor) //nolint:gosec
			r.log.Debug("RunExclusive retry", zap.Int("attempt", attempt), zap.Duration("delay", delay), zap.Error(err))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err = r.runTx(ctx, fn); err == nil || !isRetryable(err) {
			return err
		}
	}
	return errors.Wrapf(err, "gave up after %d attempts", r.maxAttempts)
}

func (r *repository) runTx(ctx context.Context, fn func(repo Repository) error) (err error) {
	tx, err := r.db.BeginTxx(ctx, r.txOpts)
	if err != nil {
		return errors.Wrap(mapErr(err), "BeginTxx")
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				r.log.Error("tx.Rollback", zap.Error(rbErr))
			}
		}
	}()

	txRepo := &repository{
		db:     r.db,
		q:      tx,
		qb:     r.qb,
		log:    r.log,
		txOpts: r.txOpts,
		inTx:   true,
	}
	if err = fn(txRepo); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return errors.Wrap(mapErr(err), "tx.Commit")
	}
	return nil
}

// mapErr translates driver errors into errs sentinels where one applies.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errs.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classify(pgErr.Code, pgErr.ConstraintName, err)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return classify(string(pqErr.Code), pqErr.Constraint, err)
	}

	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return errors.Wrap(errs.ErrNotFound, liteErr.Error())
		case sqlite3.ErrConstraintCheck:
			if strings.Contains(liteErr.Error(), "quantity") {
				return errors.Wrap(errs.ErrOutOfStock, liteErr.Error())
			}
			return errors.Wrap(errs.ErrValidation, liteErr.Error())
		case sqlite3.ErrConstraintNotNull:
			return errors.Wrap(errs.ErrValidation, liteErr.Error())
		}
	}
	return err
}

func classify(code, constraint string, err error) error {
	switch code {
	case pgerrcode.ForeignKeyViolation:
		return errors.Wrap(errs.ErrNotFound, err.Error())
	case pgerrcode.CheckViolation:
		if constraint == "items_quantity_check" {
			return errors.Wrap(errs.ErrOutOfStock, err.Error())
		}
		return errors.Wrap(errs.ErrValidation, err.Error())
	case pgerrcode.NotNullViolation, pgerrcode.NumericValueOutOfRange:
		return errors.Wrap(errs.ErrValidation, err.Error())
	}
	return err
}

func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.SerializationFailure || pgErr.Code == pgerrcode.DeadlockDetected
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgerrcode.SerializationFailure || pqErr.Code == pgerrcode.DeadlockDetected
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code == sqlite3.ErrBusy || liteErr.Code == sqlite3.ErrLocked
	}
	return false
}
