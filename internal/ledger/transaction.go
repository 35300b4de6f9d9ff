package ledger

import (
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction is one recorded petty-cash expense.
// The total is never stored on the value; Total derives it from quantity and unit price.
type Transaction struct {
	ID        uuid.UUID
	Name      string
	Category  string
	Quantity  int
	UnitPrice decimal.Decimal
	Date      time.Time
	ImageRef  *string
	CreatedBy string
	CreatedAt time.Time
}

// Total returns Quantity * UnitPrice rounded to two decimal places.
func (t Transaction) Total() decimal.Decimal {
	return t.UnitPrice.Mul(decimal.NewFromInt(int64(t.Quantity))).Round(2)
}

// HasDate reports whether the transaction carries a usable calendar date.
func (t Transaction) HasDate() bool {
	return !t.Date.IsZero()
}

// Validate checks the fields a transaction needs before it can be stored.
// Fields are checked in a fixed order so the first failing field is reported.
func (t Transaction) Validate() error {
	if err := RequireText(FieldName, t.Name); err != nil {
		return err
	}
	if err := RequireText(FieldCategory, t.Category); err != nil {
		return err
	}
	if t.Quantity < 1 {
		return NewValidationError(FieldQuantity, "must be a positive integer")
	}
	if t.UnitPrice.IsNegative() {
		return NewValidationError(FieldUnitPrice, "must not be negative")
	}
	if !t.HasDate() {
		return NewValidationError(FieldDate, "is required")
	}
	return nil
}

// Key returns the natural key of a stored transaction, which is always its ID.
func (t Transaction) Key() TransactionKey {
	return TransactionKey{ID: t.ID}
}
