package pettycash

import (
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

const tableName = "petty_cash"

var columns = []any{
	"id", "name", "category", "quantity", "unit_price", "total",
	"transaction_date", "image_ref", "created_by", "created_at",
}

// row is one record of the petty_cash table.
type row struct {
	ID              uuid.UUID        `db:"id"`
	Name            string           `db:"name"`
	Category        string           `db:"category"`
	Quantity        int              `db:"quantity"`
	UnitPrice       decimal.Decimal  `db:"unit_price"`
	Total           decimal.Decimal  `db:"total"`
	TransactionDate time.Time        `db:"transaction_date"`
	ImageRef        null.Val[string] `db:"image_ref"`
	CreatedBy       string           `db:"created_by"`
	CreatedAt       time.Time        `db:"created_at"`
}

// Filter specifies filters for listing petty-cash transactions.
type Filter struct {
	CreatedBy       *string
	Limit           int
	Offset          int
	MaxCreationTime *time.Time
}

// Cursor identifies a position in a paginated result set
// and carries the limit and maxCreationTime so subsequent pages are consistent.
type Cursor struct {
	Position        int
	Limit           int
	MaxCreationTime time.Time
}

// ListResult contains a page of transactions and an optional next cursor.
type ListResult struct {
	Transactions []ledger.Transaction
	NextCursor   *Cursor
}

// toTransaction converts a stored row. The stored total is informational
// only; a mismatch with quantity * unit_price is logged and ignored.
func (r *row) toTransaction(logger logrus.FieldLogger) ledger.Transaction {
	tx := ledger.Transaction{
		ID:        r.ID,
		Name:      r.Name,
		Category:  r.Category,
		Quantity:  r.Quantity,
		UnitPrice: r.UnitPrice,
		Date:      ledger.DateOf(r.TransactionDate),
		ImageRef:  r.ImageRef.Ptr(),
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
	}
	if !r.Total.Equal(tx.Total()) {
		logger.WithFields(logrus.Fields{
			"id":          r.ID.String(),
			"storedTotal": r.Total.String(),
			"total":       tx.Total().String(),
		}).Warn("PettyCash.toTransaction.totalMismatch")
	}
	return tx
}
