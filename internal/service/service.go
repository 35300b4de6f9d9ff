package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/aggregate"
	"github.com/carson-networks/ledger-server/internal/notify"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// actionProcessor runs a write action inside its own database transaction.
type actionProcessor interface {
	Process(ctx context.Context, action actions.IAction) error
}

// Service holds all business logic services.
type Service struct {
	PettyCash *PettyCashService
	Inventory *InventoryService
	Import    *ImportService
}

// NewService creates a new Service with the given storage.
func NewService(store *storage.Storage, op actionProcessor, publisher notify.Publisher, logger logrus.FieldLogger) *Service {
	return &Service{
		PettyCash: NewPettyCashService(store.Read().PettyCash, op, logger),
		Inventory: NewInventoryService(op),
		Import:    NewImportService(store.Inventory, store.PettyCash, publisher, logger),
	}
}

// aggregatorFor builds an Aggregator that logs undated transactions.
func aggregatorFor(locale aggregate.Locale, logger logrus.FieldLogger) aggregate.Aggregator {
	return aggregate.New(locale, func(warning *aggregate.DateParseError) {
		logger.WithField("count", len(warning.TransactionIDs)).WithError(warning).Warn("Aggregator.excludedUndated")
	})
}
