// Package memory holds in-process keyed stores used for dry-run imports and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/storage/inventory"
	"github.com/carson-networks/ledger-server/internal/storage/pettycash"
)

type InventoryStore struct {
	mu    sync.Mutex
	items map[ledger.ItemID]ledger.InventoryItem
	order []ledger.ItemID
}

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{items: make(map[ledger.ItemID]ledger.InventoryItem)}
}

func (s *InventoryStore) FindByKey(_ context.Context, id ledger.ItemID) (*ledger.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (s *InventoryStore) Insert(_ context.Context, item ledger.InventoryItem) (*ledger.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[item.ID]; !ok {
		s.order = append(s.order, item.ID)
	}
	item.UpdatedAt = time.Now().UTC()
	s.items[item.ID] = item
	return &item, nil
}

func (s *InventoryStore) Update(_ context.Context, id ledger.ItemID, item ledger.InventoryItem) (*ledger.InventoryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return nil, inventory.ErrNotFound
	}
	item.ID = id
	item.UpdatedAt = time.Now().UTC()
	s.items[id] = item
	return &item, nil
}

// List returns items in insertion order.
func (s *InventoryStore) List() []ledger.InventoryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]ledger.InventoryItem, 0, len(s.order))
	for _, id := range s.order {
		items = append(items, s.items[id])
	}
	return items
}

type PettyCashStore struct {
	mu  sync.Mutex
	txs []ledger.Transaction
}

func NewPettyCashStore(seed ...ledger.Transaction) *PettyCashStore {
	return &PettyCashStore{txs: append([]ledger.Transaction(nil), seed...)}
}

func (s *PettyCashStore) indexOf(key ledger.TransactionKey) int {
	for i, tx := range s.txs {
		if key.HasID() {
			if tx.ID == key.ID {
				return i
			}
			continue
		}
		if ledger.CompositeKey(tx.Name, tx.Category, tx.Date) == key {
			return i
		}
	}
	return -1
}

func (s *PettyCashStore) FindByKey(_ context.Context, key ledger.TransactionKey) (*ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(key)
	if i < 0 {
		return nil, nil
	}
	tx := s.txs[i]
	return &tx, nil
}

func (s *PettyCashStore) Insert(_ context.Context, tx ledger.Transaction) (*ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
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
	s.txs = append(s.txs, tx)
	return &tx, nil
}

func (s *PettyCashStore) Update(_ context.Context, key ledger.TransactionKey, tx ledger.Transaction) (*ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(key)
	if i < 0 {
		return nil, pettycash.ErrNotFound
	}
	tx.ID = s.txs[i].ID
	tx.CreatedAt = s.txs[i].CreatedAt
	s.txs[i] = tx
	return &tx, nil
}

// ListByCreator mirrors the database reader for dashboards built in memory.
func (s *PettyCashStore) ListByCreator(_ context.Context, createdBy string) ([]ledger.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []ledger.Transaction
	for _, tx := range s.txs {
		if createdBy == "" || tx.CreatedBy == createdBy {
			result = append(result, tx)
		}
	}
	return result, nil
}
