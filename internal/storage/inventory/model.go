package inventory

import (
	"time"

	"github.com/aarondl/opt/null"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

const tableName = "inventory"

var columns = []any{
	"id_item", "name", "category", "purchase_date", "cost_price",
	"quantity", "status", "description", "updated_at",
}

// row is one record of the inventory table.
type row struct {
	ID           string              `db:"id_item"`
	Name         string              `db:"name"`
	Category     string              `db:"category"`
	PurchaseDate null.Val[time.Time] `db:"purchase_date"`
	CostPrice    decimal.Decimal     `db:"cost_price"`
	Quantity     int                 `db:"quantity"`
	Status       string              `db:"status"`
	Description  null.Val[string]    `db:"description"`
	UpdatedAt    time.Time           `db:"updated_at"`
}

// Filter specifies filters for listing inventory items.
type Filter struct {
	Category *string
	Status   *string
	Limit    int
	Offset   int
}

func (r *row) toItem() ledger.InventoryItem {
	item := ledger.InventoryItem{
		ID:          ledger.ItemID(r.ID),
		Name:        r.Name,
		Category:    r.Category,
		CostPrice:   r.CostPrice,
		Quantity:    r.Quantity,
		Status:      r.Status,
		Description: r.Description.Ptr(),
		UpdatedAt:   r.UpdatedAt,
	}
	if purchaseDate, ok := r.PurchaseDate.Get(); ok {
		item.PurchaseDate = ledger.DateOf(purchaseDate)
	}
	return item
}

func purchaseDateArg(item ledger.InventoryItem) null.Val[string] {
	if item.PurchaseDate.IsZero() {
		return null.Val[string]{}
	}
	return null.From(item.PurchaseDate.Format(ledger.DateLayout))
}
