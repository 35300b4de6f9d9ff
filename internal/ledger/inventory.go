package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem is a stock item keyed by its externally assigned item id.
type InventoryItem struct {
	ID           ItemID
	Name         string
	Category     string
	PurchaseDate time.Time // zero when unknown
	CostPrice    decimal.Decimal
	Quantity     int
	Status       string
	Description  *string
	UpdatedAt    time.Time
}

// Validate checks the fields an inventory item needs before it can be stored.
func (i InventoryItem) Validate() error {
	if err := RequireText(FieldID, string(i.ID)); err != nil {
		return err
	}
	if err := RequireText(FieldName, i.Name); err != nil {
		return err
	}
	if err := RequireText(FieldCategory, i.Category); err != nil {
		return err
	}
	if i.Quantity < 1 {
		return NewValidationError(FieldQuantity, "must be a positive integer")
	}
	if i.CostPrice.IsNegative() {
		return NewValidationError(FieldUnitPrice, "must not be negative")
	}
	return RequireText(FieldStatus, i.Status)
}
