package storage

import (
	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/bob"

	"github.com/carson-networks/ledger-server/internal/storage/inventory"
	"github.com/carson-networks/ledger-server/internal/storage/pettycash"
)

type Reader struct {
	PettyCash *pettycash.Reader
	Inventory *inventory.Reader
}

func NewReader(exec bob.Executor, logger logrus.FieldLogger) *Reader {
	return &Reader{
		PettyCash: pettycash.NewReader(exec, logger),
		Inventory: inventory.NewReader(exec),
	}
}
