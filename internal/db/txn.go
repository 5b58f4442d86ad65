package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	apperrors "github.com/jwhan/playgrid-backend/internal/errors"
	"github.com/jwhan/playgrid-backend/pkg/logger"
	"gorm.io/gorm"
)

// Default bounds for a unit of work: how long a statement may wait on a lock
// and how long the whole transaction may run.
const (
	DefaultLockWait   = 5 * time.Second
	DefaultTxnTimeout = 10 * time.Second
)

var (
	lockWait   = DefaultLockWait
	txnTimeout = DefaultTxnTimeout
)

// ConfigureTxnBounds overrides the transaction bounds, normally once at startup.
func ConfigureTxnBounds(wait, timeout time.Duration) {
	if wait > 0 {
		lockWait = wait
	}
	if timeout > 0 {
		txnTimeout = timeout
	}
}

// RunAtomically executes fn inside one local transaction. Every read and
// write issued through the tx handle observes one snapshot; if fn returns an
// error it propagates unchanged and nothing fn wrote persists. Exceeding the
// lock wait or total execution bound aborts the unit of work with an
// Internal error and no partial effect.
func RunAtomically(gdb *gorm.DB, fn func(tx *gorm.DB) error) (err error) {
	ctx, cancel := context.WithTimeout(context.Background(), txnTimeout)
	defer cancel()

	tx := gdb.WithContext(ctx).Begin()
	if tx.Error != nil {
		logger.Error("Failed to begin transaction", tx.Error)
		return apperrors.Classify(tx.Error, "transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic inside transaction, rolled back", fmt.Errorf("panic: %v", r))
			err = apperrors.Internal(fmt.Errorf("panic: %v", r), "transaction aborted")
		}
	}()

	// Lock acquisition bound; SET LOCAL is scoped to this transaction.
	// The statement bound backs up the client-side context deadline.
	if tx.Dialector.Name() == "postgres" {
		if err := tx.Exec(fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", lockWait.Milliseconds())).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to set transaction lock timeout", err)
			return apperrors.Classify(err, "transaction")
		}
		if err := tx.Exec(fmt.Sprintf("SET LOCAL statement_timeout = '%dms'", txnTimeout.Milliseconds())).Error; err != nil {
			tx.Rollback()
			logger.Error("Failed to set transaction statement timeout", err)
			return apperrors.Classify(err, "transaction")
		}
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			logger.Error("Transaction exceeded execution bound, rolled back", err, map[string]interface{}{
				"timeout": txnTimeout.String(),
			})
			return apperrors.Classify(ctx.Err(), "transaction")
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit transaction", err)
		return apperrors.Classify(err, "transaction")
	}
	return nil
}
