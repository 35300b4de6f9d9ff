package service

import (
	"context"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/operator/actions"
)

// InventoryService handles single inventory item writes.
type InventoryService struct {
	operator actionProcessor
}

func NewInventoryService(op actionProcessor) *InventoryService {
	return &InventoryService{operator: op}
}

// UpsertItem creates the item or overwrites the one with the same id.
// It reports whether a new item was created.
func (s *InventoryService) UpsertItem(ctx context.Context, item ledger.InventoryItem) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	action := &actions.UpsertInventoryItem{Item: item}
	if err := s.operator.Process(ctx, action); err != nil {
		return false, err
	}
	return action.Created, nil
}
