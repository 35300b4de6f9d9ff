package actions

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage"
)

// UpsertInventoryItem creates or fully overwrites one inventory item by id.
type UpsertInventoryItem struct {
	Item ledger.InventoryItem

	Created bool
	IAction
}

func (u *UpsertInventoryItem) Perform(ctx context.Context, writer *storage.Writer) error {
	if err := u.Item.Validate(); err != nil {
		return err
	}

	existing, err := writer.Inventory.FindByKey(ctx, u.Item.ID)
	if err != nil {
		return err
	}

	if existing == nil {
		_, err = writer.Inventory.Insert(ctx, u.Item)
		u.Created = err == nil
		return err
	}

	_, err = writer.Inventory.Update(ctx, u.Item.ID, u.Item)
	return err
}
