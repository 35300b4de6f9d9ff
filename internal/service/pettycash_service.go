package service

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/aggregate"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage/pettycash"
)

const defaultLimit = 20

// Cursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type Cursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

type pettyCashReader interface {
	List(ctx context.Context, filter *pettycash.Filter) ([]ledger.Transaction, error)
	ListByCreator(ctx context.Context, createdBy string) ([]ledger.Transaction, error)
}

// PettyCashService handles petty-cash business logic.
type PettyCashService struct {
	reader   pettyCashReader
	operator actionProcessor
	logger   logrus.FieldLogger
}

// NewPettyCashService creates a new PettyCashService.
func NewPettyCashService(reader pettyCashReader, op actionProcessor, logger logrus.FieldLogger) *PettyCashService {
	return &PettyCashService{reader: reader, operator: op, logger: logger}
}

// CreateTransaction validates and stores a transaction through the operator.
func (s *PettyCashService) CreateTransaction(ctx context.Context, tx ledger.Transaction) (*ledger.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return nil, err
	}

	action := &actions.CreatePettyCash{Transaction: tx}
	if err := s.operator.Process(ctx, action); err != nil {
		return nil, err
	}
	return action.Created, nil
}

// ListTransactions returns a page of transactions using cursor-based pagination.
func (s *PettyCashService) ListTransactions(ctx context.Context, createdBy string, cursor *Cursor) ([]ledger.Transaction, *Cursor, error) {
	limit := defaultLimit
	offset := 0
	var maxCreationTime *time.Time
	if cursor != nil {
		if cursor.Limit > 0 {
			limit = cursor.Limit
		}
		offset = cursor.Position
		maxCreationTime = &cursor.MaxCreationTime
	}

	filter := &pettycash.Filter{
		Limit:           limit,
		Offset:          offset,
		MaxCreationTime: maxCreationTime,
	}
	if createdBy != "" {
		filter.CreatedBy = &createdBy
	}

	rows, err := s.reader.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	if len(rows) == 0 {
		return nil, nil, nil
	}

	var nextCursor *Cursor
	if len(rows) > limit {
		rows = rows[:limit]

		cursorMaxCreationTime := rows[0].CreatedAt
		if maxCreationTime != nil {
			cursorMaxCreationTime = *maxCreationTime
		}

		nextCursor = &Cursor{
			Position:        offset + limit,
			Limit:           limit,
			MaxCreationTime: cursorMaxCreationTime,
		}
	}

	return rows, nextCursor, nil
}

// Dashboard loads the transactions of one cashier, or everyone when
// query.CreatedBy is empty, and aggregates them.
func (s *PettyCashService) Dashboard(ctx context.Context, query aggregate.DashboardQuery, locale aggregate.Locale) (aggregate.Dashboard, error) {
	txs, err := s.reader.ListByCreator(ctx, query.CreatedBy)
	if err != nil {
		return aggregate.Dashboard{}, err
	}
	return aggregatorFor(locale, s.logger).Dashboard(txs, query), nil
}
