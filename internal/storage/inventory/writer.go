package inventory

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

var ErrNotFound = errors.New("inventory item not found")

type Writer struct {
	Reader
}

func NewWriter(exec bob.Executor) *Writer {
	return &Writer{
		Reader: Reader{exec: exec},
	}
}

func (w *Writer) Insert(ctx context.Context, item ledger.InventoryItem) (*ledger.InventoryItem, error) {
	query := psql.Insert(
		im.Into(tableName,
			"id_item", "name", "category", "purchase_date", "cost_price",
			"quantity", "status", "description", "updated_at"),
		im.Values(psql.Arg(
			string(item.ID), item.Name, item.Category, purchaseDateArg(item), item.CostPrice,
			item.Quantity, item.Status, null.FromPtr(item.Description), time.Now().UTC(),
		)),
		im.Returning(columns...),
	)
	inserted, err := bob.One(ctx, w.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}
	result := inserted.toItem()
	return &result, nil
}

// Update overwrites every column of the item stored under id.
func (w *Writer) Update(ctx context.Context, id ledger.ItemID, item ledger.InventoryItem) (*ledger.InventoryItem, error) {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("name").ToArg(item.Name),
		um.SetCol("category").ToArg(item.Category),
		um.SetCol("purchase_date").ToArg(purchaseDateArg(item)),
		um.SetCol("cost_price").ToArg(item.CostPrice),
		um.SetCol("quantity").ToArg(item.Quantity),
		um.SetCol("status").ToArg(item.Status),
		um.SetCol("description").ToArg(null.FromPtr(item.Description)),
		um.SetCol("updated_at").ToArg(time.Now().UTC()),
		um.Where(psql.Quote("id_item").EQ(psql.Arg(string(id)))),
		um.Returning(columns...),
	)
	updated, err := bob.One(ctx, w.exec, query, scan.StructMapper[row]())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	result := updated.toItem()
	return &result, nil
}
