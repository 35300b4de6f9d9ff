package importer

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Key is a natural key: comparable and printable for the report.
type Key interface {
	comparable
	fmt.Stringer
}

// KeyedStore is the persistence a Reconciler upserts into.
type KeyedStore[K Key, R any] interface {
	// FindByKey returns (nil, nil) when no record has the key.
	FindByKey(ctx context.Context, key K) (*R, error)
	Insert(ctx context.Context, record R) (*R, error)
	// Update overwrites every field of the record stored under key.
	Update(ctx context.Context, key K, record R) (*R, error)
}

// Normalizer validates a raw row and turns it into a key and a record.
// It returns a *ledger.ValidationError for bad rows and ErrSkipRow for
// rows with no data.
type Normalizer[K Key, R any] func(RawRow) (K, R, error)

// Reconciler upserts parsed rows one at a time, in file order, and keeps
// going when a row fails.
type Reconciler[K Key, R any] struct {
	store     KeyedStore[K, R]
	normalize Normalizer[K, R]
	logger    logrus.FieldLogger
}

func NewReconciler[K Key, R any](store KeyedStore[K, R], normalize Normalizer[K, R], logger logrus.FieldLogger) *Reconciler[K, R] {
	return &Reconciler[K, R]{
		store:     store,
		normalize: normalize,
		logger:    logger,
	}
}

// Reconcile processes rows and reports an outcome for each. The error is
// only ever the context error, returned alongside the rows finished so far.
func (r *Reconciler[K, R]) Reconcile(ctx context.Context, rows []RawRow) (*ImportBatchResult, error) {
	result := &ImportBatchResult{Outcomes: make([]ImportOutcome, 0, len(rows))}

	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			r.logger.WithError(err).WithField("row", row.Number).Warn("Reconciler.Reconcile.cancelled")
			return result, err
		}

		outcome, skipped := r.reconcileRow(ctx, row)
		if skipped {
			result.SkippedCount++
			r.logger.WithField("row", row.Number).Debugf("Reconciler.Reconcile.%s", ActionSkipped)
			continue
		}
		result.record(outcome)
	}

	r.logger.WithFields(logrus.Fields{
		"successCount": result.SuccessCount,
		"failureCount": result.FailureCount,
		"skippedCount": result.SkippedCount,
	}).Info("Reconciler.Reconcile.complete")

	return result, nil
}

func (r *Reconciler[K, R]) reconcileRow(ctx context.Context, row RawRow) (ImportOutcome, bool) {
	outcome := ImportOutcome{RowNumber: row.Number}

	if row.Err != nil {
		return failed(outcome, row.Err), false
	}

	key, record, err := r.normalize(row)
	if errors.Is(err, ErrSkipRow) {
		return outcome, true
	}
	if err != nil {
		return failed(outcome, err), false
	}
	outcome.Key = key.String()

	existing, err := r.store.FindByKey(ctx, key)
	if err != nil {
		return failed(outcome, &StoreError{Op: "find", Err: err}), false
	}

	if existing == nil {
		if _, err := r.store.Insert(ctx, record); err != nil {
			return failed(outcome, &StoreError{Op: "insert", Err: err}), false
		}
		outcome.Action = ActionCreated
		return outcome, false
	}

	if _, err := r.store.Update(ctx, key, record); err != nil {
		return failed(outcome, &StoreError{Op: "update", Err: err}), false
	}
	outcome.Action = ActionUpdated
	return outcome, false
}

func failed(outcome ImportOutcome, err error) ImportOutcome {
	outcome.Action = ActionFailed
	outcome.ErrorMessage = err.Error()
	return outcome
}
