package operator

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stephenafamo/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

var errNoDatabase = errors.New("no database")

// fakeTx records how a unit of work finished and fails every query.
type fakeTx struct {
	mu        sync.Mutex
	commits   int
	rollbacks int
}

func (f *fakeTx) QueryContext(context.Context, string, ...any) (scan.Rows, error) {
	return nil, errNoDatabase
}

func (f *fakeTx) ExecContext(context.Context, string, ...any) (sql.Result, error) {
	return nil, errNoDatabase
}

func (f *fakeTx) Commit(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commits++
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rollbacks++
	return nil
}

type fakeOpener struct {
	tx  *fakeTx
	err error
}

func (o *fakeOpener) Write(context.Context) (*storage.Writer, error) {
	if o.err != nil {
		return nil, o.err
	}
	logger, _ := test.NewNullLogger()
	return storage.NewWriter(o.tx, logger), nil
}

type funcAction func(ctx context.Context, writer *storage.Writer) error

func (f funcAction) Perform(ctx context.Context, writer *storage.Writer) error {
	return f(ctx, writer)
}

func startDelegator(t *testing.T, opener WriteOpener) *OperatorDelegator {
	t.Helper()
	delegator := NewOperatorDelegator(opener, 2)
	delegator.Start()
	t.Cleanup(delegator.Stop)
	return delegator
}

func TestProcess_CommitsOnSuccess(t *testing.T) {
	tx := &fakeTx{}
	delegator := startDelegator(t, &fakeOpener{tx: tx})

	err := delegator.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))

	require.NoError(t, err)
	assert.Equal(t, 1, tx.commits)
	assert.Equal(t, 0, tx.rollbacks)
}

func TestProcess_RollsBackOnActionError(t *testing.T) {
	tx := &fakeTx{}
	delegator := startDelegator(t, &fakeOpener{tx: tx})

	err := delegator.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return errors.New("boom")
	}))

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 0, tx.commits)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestProcess_OpenError(t *testing.T) {
	delegator := startDelegator(t, &fakeOpener{err: errors.New("pool exhausted")})

	err := delegator.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		t.Fatal("action must not run")
		return nil
	}))

	assert.EqualError(t, err, "pool exhausted")
}

func TestProcess_AfterStop(t *testing.T) {
	delegator := NewOperatorDelegator(&fakeOpener{tx: &fakeTx{}}, 1)
	delegator.Start()
	delegator.Stop()

	err := delegator.Process(context.Background(), funcAction(func(context.Context, *storage.Writer) error {
		return nil
	}))

	assert.ErrorIs(t, err, ErrStopped)
}

func TestProcess_CancelledContext(t *testing.T) {
	delegator := startDelegator(t, &fakeOpener{tx: &fakeTx{}})
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := delegator.Process(ctx, funcAction(func(ctx context.Context, _ *storage.Writer) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCreatePettyCash_InvalidNeverTouchesStorage(t *testing.T) {
	tx := &fakeTx{}
	delegator := startDelegator(t, &fakeOpener{tx: tx})
	action := &actions.CreatePettyCash{Transaction: ledger.Transaction{Name: "Tisu", Category: "ATK", Quantity: 0}}

	err := delegator.Process(context.Background(), action)

	var validationErr *ledger.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, ledger.FieldQuantity, validationErr.Field)
	assert.Nil(t, action.Created)
	assert.Equal(t, 1, tx.rollbacks)
}

func TestCreatePettyCash_StorageErrorRollsBack(t *testing.T) {
	tx := &fakeTx{}
	delegator := startDelegator(t, &fakeOpener{tx: tx})
	action := &actions.CreatePettyCash{Transaction: ledger.Transaction{
		Name:      "Tisu",
		Category:  "ATK",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(5000),
		Date:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}}

	err := delegator.Process(context.Background(), action)

	assert.ErrorIs(t, err, errNoDatabase)
	assert.Equal(t, 1, tx.rollbacks)
	assert.Equal(t, 0, tx.commits)
}
