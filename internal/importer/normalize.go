package importer

import (
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// InventoryNormalizer turns a row into an inventory item keyed by its item id.
// Fields are checked in the order id, name, category, quantity, unit_price,
// date, status.
func InventoryNormalizer(row RawRow) (ledger.ItemID, ledger.InventoryItem, error) {
	var item ledger.InventoryItem
	if row.Blank() {
		return "", item, ErrSkipRow
	}

	id := ledger.ItemID(row.Get(ledger.FieldID))
	if err := ledger.RequireText(ledger.FieldID, string(id)); err != nil {
		return id, item, err
	}
	item.ID = id
	item.Name = row.Get(ledger.FieldName)
	if err := ledger.RequireText(ledger.FieldName, item.Name); err != nil {
		return id, item, err
	}
	item.Category = row.Get(ledger.FieldCategory)
	if err := ledger.RequireText(ledger.FieldCategory, item.Category); err != nil {
		return id, item, err
	}

	item.Quantity = 1
	if raw := row.Get(ledger.FieldQuantity); raw != "" {
		quantity, err := ledger.ParseQuantity(ledger.FieldQuantity, raw)
		if err != nil {
			return id, item, err
		}
		item.Quantity = quantity
	}

	costPrice, err := ledger.ParseAmount(ledger.FieldUnitPrice, row.Get(ledger.FieldUnitPrice))
	if err != nil {
		return id, item, err
	}
	item.CostPrice = costPrice

	if raw := row.Get(ledger.FieldDate); raw != "" {
		purchaseDate, err := ledger.ParseDate(ledger.FieldDate, raw)
		if err != nil {
			return id, item, err
		}
		item.PurchaseDate = purchaseDate
	}

	item.Status = row.Get(ledger.FieldStatus)
	if err := ledger.RequireText(ledger.FieldStatus, item.Status); err != nil {
		return id, item, err
	}

	item.Description = optional(row.Get(ledger.FieldDescription))
	return id, item, item.Validate()
}

// PettyCashNormalizer turns a row into a transaction. The key is the id
// column when present, otherwise name, category and date together.
func PettyCashNormalizer(row RawRow) (ledger.TransactionKey, ledger.Transaction, error) {
	var tx ledger.Transaction
	var key ledger.TransactionKey
	if row.Blank() {
		return key, tx, ErrSkipRow
	}

	if raw := row.Get(ledger.FieldID); raw != "" {
		id, err := uuid.FromString(raw)
		if err != nil {
			return key, tx, ledger.NewValidationError(ledger.FieldID, "is not a valid id: "+raw)
		}
		tx.ID = id
	}

	tx.Name = row.Get(ledger.FieldName)
	if err := ledger.RequireText(ledger.FieldName, tx.Name); err != nil {
		return key, tx, err
	}
	tx.Category = row.Get(ledger.FieldCategory)
	if err := ledger.RequireText(ledger.FieldCategory, tx.Category); err != nil {
		return key, tx, err
	}

	quantity, err := ledger.ParseQuantity(ledger.FieldQuantity, row.Get(ledger.FieldQuantity))
	if err != nil {
		return key, tx, err
	}
	tx.Quantity = quantity

	unitPrice, err := ledger.ParseAmount(ledger.FieldUnitPrice, row.Get(ledger.FieldUnitPrice))
	if err != nil {
		return key, tx, err
	}
	tx.UnitPrice = unitPrice

	date, err := ledger.ParseDate(ledger.FieldDate, row.Get(ledger.FieldDate))
	if err != nil {
		return key, tx, err
	}
	tx.Date = date

	tx.ImageRef = optional(row.Get(ledger.FieldImageRef))
	tx.CreatedBy = row.Get(ledger.FieldCreatedBy)

	if tx.ID != uuid.Nil {
		key = ledger.TransactionKey{ID: tx.ID}
	} else {
		key = ledger.CompositeKey(tx.Name, tx.Category, tx.Date)
	}
	return key, tx, tx.Validate()
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
