package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// CreatePettyCash records one manually entered transaction. The total is
// always recomputed from quantity and unit price.
type CreatePettyCash struct {
	Transaction ledger.Transaction

	// Created is set once Perform succeeds.
	Created *ledger.Transaction
	IAction
}

func (c *CreatePettyCash) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := c.Transaction.Validate(); err != nil {
		return err
	}

	created, err := writer.PettyCash.Insert(ctx, c.Transaction)
	if err != nil {
		return err
	}

	c.Created = created
	return nil
}
