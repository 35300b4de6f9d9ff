package inventory

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dialect"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

type Reader struct {
	exec bob.Executor
}

func NewReader(exec bob.Executor) *Reader {
	return &Reader{exec: exec}
}

// FindByKey returns nil when no item has the id.
func (r *Reader) FindByKey(ctx context.Context, id ledger.ItemID) (*ledger.InventoryItem, error) {
	query := psql.Select(
		sm.Columns(columns...),
		sm.From(tableName),
		sm.Where(psql.Quote("id_item").EQ(psql.Arg(string(id)))),
		sm.Limit(1),
	)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	item := rows[0].toItem()
	return &item, nil
}

// List returns items ordered by id.
func (r *Reader) List(ctx context.Context, filter *Filter) ([]ledger.InventoryItem, error) {
	queryMods := []bob.Mod[*dialect.SelectQuery]{
		sm.Columns(columns...),
		sm.From(tableName),
	}
	if filter != nil {
		if filter.Category != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("category").EQ(psql.Arg(*filter.Category))))
		}
		if filter.Status != nil {
			queryMods = append(queryMods, sm.Where(psql.Quote("status").EQ(psql.Arg(*filter.Status))))
		}
		if filter.Limit > 0 {
			queryMods = append(queryMods, sm.Limit(filter.Limit))
		}
		if filter.Offset > 0 {
			queryMods = append(queryMods, sm.Offset(filter.Offset))
		}
	}
	queryMods = append(queryMods, sm.OrderBy(psql.Quote("id_item")).Asc())

	rows, err := bob.All(ctx, r.exec, psql.Select(queryMods...), scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}
	items := make([]ledger.InventoryItem, len(rows))
	for i := range rows {
		items[i] = rows[i].toItem()
	}
	return items, nil
}
