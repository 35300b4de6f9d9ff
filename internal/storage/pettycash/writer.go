package pettycash

import (
	"context"
	"errors"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/um"
	"github.com/stephenafamo/scan"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

var ErrNotFound = errors.New("petty cash transaction not found")

// Writer writes petty-cash transactions. Inside the operator it runs on a
// transaction, for imports on the plain database handle.
type Writer struct {
	Reader
}

func NewWriter(exec bob.Executor, logger logrus.FieldLogger) *Writer {
	return &Writer{
		Reader: Reader{exec: exec, logger: logger},
	}
}

// Insert stores tx with a server computed total. A nil ID gets a new one.
func (w *Writer) Insert(ctx context.Context, tx ledger.Transaction) (*ledger.Transaction, error) {
	if tx.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		tx.ID = id
	}
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}

	query := psql.Insert(
		im.Into(tableName,
			"id", "name", "category", "quantity", "unit_price", "total",
			"transaction_date", "image_ref", "created_by", "created_at"),
		im.Values(psql.Arg(
			tx.ID, tx.Name, tx.Category, tx.Quantity, tx.UnitPrice, tx.Total(),
			tx.Date.Format(ledger.DateLayout), null.FromPtr(tx.ImageRef), tx.CreatedBy, tx.CreatedAt,
		)),
		im.Returning(columns...),
	)
	inserted, err := bob.One(ctx, w.exec, query, scan.StructMapper[row]())
	if err != nil {
		return nil, err
	}
	result := inserted.toTransaction(w.logger)
	return &result, nil
}

// UpdateByID overwrites every field except id and created_at.
func (w *Writer) UpdateByID(ctx context.Context, id uuid.UUID, tx ledger.Transaction) (*ledger.Transaction, error) {
	query := psql.Update(
		um.Table(tableName),
		um.SetCol("name").ToArg(tx.Name),
		um.SetCol("category").ToArg(tx.Category),
		um.SetCol("quantity").ToArg(tx.Quantity),
		um.SetCol("unit_price").ToArg(tx.UnitPrice),
		um.SetCol("total").ToArg(tx.Total()),
		um.SetCol("transaction_date").ToArg(tx.Date.Format(ledger.DateLayout)),
		um.SetCol("image_ref").ToArg(null.FromPtr(tx.ImageRef)),
		um.SetCol("created_by").ToArg(tx.CreatedBy),
		um.Where(psql.Quote("id").EQ(psql.Arg(id))),
		um.Returning(columns...),
	)
	updated, err := bob.One(ctx, w.exec, query, scan.StructMapper[row]())
	if isNoRows(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	result := updated.toTransaction(w.logger)
	return &result, nil
}

// Update overwrites the transaction stored under key.
func (w *Writer) Update(ctx context.Context, key ledger.TransactionKey, tx ledger.Transaction) (*ledger.Transaction, error) {
	id := key.ID
	if !key.HasID() {
		existing, err := w.FindByComposite(ctx, key)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, ErrNotFound
		}
		id = existing.ID
	}
	return w.UpdateByID(ctx, id, tx)
}
