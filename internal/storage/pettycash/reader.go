package pettycash

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

const defaultLimit = 20

type Reader struct {
	exec   bob.Executor
	logger logrus.FieldLogger
}

func NewReader(exec bob.Executor, logger logrus.FieldLogger) *Reader {
	return &Reader{exec: exec, logger: logger}
}

func (r *Reader) selectRows(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) ([]ledger.Transaction, error) {
	queryMods = append([]bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}, queryMods...)

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}

	result := make([]ledger.Transaction, len(rows))
	for i := range rows {
		result[i] = rows[i].toTransaction(r.logger)
	}
	return result, nil
}

func (r *Reader) selectOne(ctx context.Context, queryMods ...bob.Mod[*dialect.SelectQuery]) (*ledger.Transaction, error) {
	rows, err := r.selectRows(ctx, append(queryMods, sm.Limit(1))...)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// FindByID returns nil when no transaction has the id.
func (r *Reader) FindByID(ctx context.Context, id uuid.UUID) (*ledger.Transaction, error) {
	return r.selectOne(ctx, sm.Where(psql.Quote("id").EQ(psql.Arg(id))))
}

// FindByComposite finds the oldest transaction matching the name, category
// and date of key.
func (r *Reader) FindByComposite(ctx context.Context, key ledger.TransactionKey) (*ledger.Transaction, error) {
	return r.selectOne(ctx,
		sm.Where(psql.And(
			psql.Quote("name").EQ(psql.Arg(key.Name)),
			psql.Quote("category").EQ(psql.Arg(key.Category)),
			psql.Quote("transaction_date").EQ(psql.Arg(key.Date)),
		)),
		sm.OrderBy(psql.Quote("created_at")).Asc(),
	)
}

// FindByKey resolves a natural key, preferring the explicit id.
func (r *Reader) FindByKey(ctx context.Context, key ledger.TransactionKey) (*ledger.Transaction, error) {
	if key.HasID() {
		return r.FindByID(ctx, key.ID)
	}
	return r.FindByComposite(ctx, key)
}

// List returns a page of transactions, newest first. It fetches one extra
// row so callers can tell whether another page exists.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]ledger.Transaction, error) {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	limit := defaultLimit
	if filter != nil {
		if filter.CreatedBy != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_by").EQ(psql.Arg(*filter.CreatedBy))))
		}
		if filter.MaxCreationTime != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("created_at").LTE(psql.Arg(*filter.MaxCreationTime))))
		}
		if filter.Limit > 0 {
			limit = filter.Limit
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods,
		sm.Limit(limit+1),
		sm.OrderBy(psql.Quote("created_at")).Desc(),
		sm.OrderBy(psql.Quote("id")).Desc(),
	)
	return r.selectRows(ctx, queryMods...)
}

// ListByCreator returns every transaction, optionally only those recorded by
// createdBy, for aggregation.
func (r *Reader) ListByCreator(ctx context.Context, createdBy string) ([]ledger.Transaction, error) {
	var queryMods []bob.Mod[*dialect.SelectQuery]
	if createdBy != "" {
		queryMods = append(queryMods, sm.Where(psql.Quote("created_by").EQ(psql.Arg(createdBy))))
	}
	queryMods = append(queryMods, sm.OrderBy(psql.Quote("transaction_date")).Asc())
	return r.selectRows(ctx, queryMods...)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
