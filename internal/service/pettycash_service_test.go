package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/aggregate"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/pettycash"
)

func newTestPettyCashService(t *testing.T) (*PettyCashService, *mockPettyCashReader, *mockProcessor, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	reader := new(mockPettyCashReader)
	processor := new(mockProcessor)
	return NewPettyCashService(reader, processor, logger), reader, processor, hook
}

func validTransaction() ledger.Transaction {
	return ledger.Transaction{
		Name:      "Es Batu",
		Category:  "Bahan Baku",
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("5000"),
		Date:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
		CreatedBy: "kasir1",
	}
}

// -- CreateTransaction tests --

func TestCreateTransaction_Success(t *testing.T) {
	svc, _, processor, _ := newTestPettyCashService(t)
	id := uuid.Must(uuid.NewV4())

	processor.On("Process", mock.Anything, mock.MatchedBy(func(a actions.IAction) bool {
		create, ok := a.(*actions.CreatePettyCash)
		return ok && create.Transaction.Name == "Es Batu"
	})).Run(func(args mock.Arguments) {
		create := args.Get(1).(*actions.CreatePettyCash)
		created := create.Transaction
		created.ID = id
		create.Created = &created
	}).Return(nil)

	created, err := svc.CreateTransaction(context.Background(), validTransaction())

	require.NoError(t, err)
	assert.Equal(t, id, created.ID)
	assert.True(t, created.Total().Equal(decimal.NewFromInt(10000)))
	processor.AssertExpectations(t)
}

func TestCreateTransaction_InvalidSkipsOperator(t *testing.T) {
	svc, _, processor, _ := newTestPettyCashService(t)
	tx := validTransaction()
	tx.Category = ""

	_, err := svc.CreateTransaction(context.Background(), tx)

	var validationErr *ledger.ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, ledger.FieldCategory, validationErr.Field)
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything)
}

func TestCreateTransaction_OperatorError(t *testing.T) {
	svc, _, processor, _ := newTestPettyCashService(t)
	processor.On("Process", mock.Anything, mock.Anything).Return(errors.New("connection refused"))

	created, err := svc.CreateTransaction(context.Background(), validTransaction())

	assert.EqualError(t, err, "connection refused")
	assert.Nil(t, created)
}

// -- ListTransactions tests --

func makeRows(n int, createdAt time.Time) []ledger.Transaction {
	rows := make([]ledger.Transaction, n)
	for i := range rows {
		rows[i] = validTransaction()
		rows[i].ID = uuid.Must(uuid.NewV4())
		rows[i].CreatedAt = createdAt
	}
	return rows
}

func TestListTransactions_NoResults(t *testing.T) {
	svc, reader, _, _ := newTestPettyCashService(t)
	reader.On("List", mock.Anything, mock.Anything).Return([]ledger.Transaction{}, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "", nil)

	assert.NoError(t, err)
	assert.Nil(t, txs)
	assert.Nil(t, nextCursor)
}

func TestListTransactions_SinglePageFilteredByCashier(t *testing.T) {
	svc, reader, _, _ := newTestPettyCashService(t)
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	rows := makeRows(2, now)

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *pettycash.Filter) bool {
		return f.Limit == defaultLimit && f.Offset == 0 && f.MaxCreationTime == nil &&
			f.CreatedBy != nil && *f.CreatedBy == "kasir1"
	})).Return(rows, nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "kasir1", nil)

	assert.NoError(t, err)
	assert.Len(t, txs, 2)
	assert.Nil(t, nextCursor)
	assert.Equal(t, rows[0].ID, txs[0].ID)
}

func TestListTransactions_HasNextPage(t *testing.T) {
	svc, reader, _, _ := newTestPettyCashService(t)
	now := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)
	reader.On("List", mock.Anything, mock.Anything).Return(makeRows(defaultLimit+1, now), nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "", nil)

	assert.NoError(t, err)
	assert.Len(t, txs, defaultLimit)
	require.NotNil(t, nextCursor)
	assert.Equal(t, defaultLimit, nextCursor.Position)
	assert.Equal(t, defaultLimit, nextCursor.Limit)
	assert.True(t, now.Equal(nextCursor.MaxCreationTime))
}

func TestListTransactions_CursorKeepsMaxCreationTime(t *testing.T) {
	svc, reader, _, _ := newTestPettyCashService(t)
	locked := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	cursor := &Cursor{Position: 5, Limit: 5, MaxCreationTime: locked}

	reader.On("List", mock.Anything, mock.MatchedBy(func(f *pettycash.Filter) bool {
		return f.Limit == 5 && f.Offset == 5 && f.MaxCreationTime != nil && f.MaxCreationTime.Equal(locked)
	})).Return(makeRows(6, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)), nil)

	txs, nextCursor, err := svc.ListTransactions(context.Background(), "", cursor)

	assert.NoError(t, err)
	assert.Len(t, txs, 5)
	require.NotNil(t, nextCursor)
	assert.Equal(t, 10, nextCursor.Position)
	assert.True(t, locked.Equal(nextCursor.MaxCreationTime))
}

func TestListTransactions_StorageError(t *testing.T) {
	svc, reader, _, _ := newTestPettyCashService(t)
	reader.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))

	_, _, err := svc.ListTransactions(context.Background(), "", nil)

	assert.EqualError(t, err, "timeout")
}

// -- Dashboard tests --

func TestDashboard_AggregatesAndLogsUndated(t *testing.T) {
	svc, reader, _, hook := newTestPettyCashService(t)
	dated := validTransaction()
	undated := validTransaction()
	undated.Date = time.Time{}
	reader.On("ListByCreator", mock.Anything, "kasir1").Return([]ledger.Transaction{dated, undated}, nil)

	dashboard, err := svc.Dashboard(context.Background(), aggregate.DashboardQuery{
		CreatedBy:     "kasir1",
		ReferenceDate: time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
	}, aggregate.Indonesian)

	require.NoError(t, err)
	assert.Equal(t, 1, dashboard.Summary.TotalTransactions)
	require.Len(t, dashboard.Weekly, 1)
	assert.Equal(t, "Minggu 1", dashboard.Weekly[0].Label)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, "Aggregator.excludedUndated", hook.LastEntry().Message)
}

func TestDashboard_StorageError(t *testing.T) {
	svc, reader, _, _ := newTestPettyCashService(t)
	reader.On("ListByCreator", mock.Anything, "").Return(nil, errors.New("timeout"))

	_, err := svc.Dashboard(context.Background(), aggregate.DashboardQuery{}, aggregate.English)

	assert.EqualError(t, err, "timeout")
}
