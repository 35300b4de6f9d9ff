package storage

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/inventory"
	"github.com/carson-networks/ledger-server/internal/storage/pettycash"
)

// Transaction is the part of bob.Tx a Writer needs.
type Transaction interface {
	bob.Executor
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type Writer struct {
	tx        Transaction
	PettyCash *pettycash.Writer
	Inventory *inventory.Writer
}

func NewWriter(tx Transaction, logger logrus.FieldLogger) *Writer {
	return &Writer{
		tx:        tx,
		PettyCash: pettycash.NewWriter(tx, logger),
		Inventory: inventory.NewWriter(tx),
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
