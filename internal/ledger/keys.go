package ledger

import (
	"strings"
	"time"

	"github.com/gofrs/uuid/v5"
)

// ItemID is the natural key of an inventory item (the id_item column).
type ItemID string

func (id ItemID) String() string {
	return string(id)
}

// TransactionKey identifies a petty-cash transaction.
// When ID is set it wins; otherwise the composite of name, category and date is used.
type TransactionKey struct {
	ID       uuid.UUID
	Name     string
	Category string
	Date     string // YYYY-MM-DD
}

// CompositeKey builds the name+category+date key used when an import row has no id.
func CompositeKey(name, category string, date time.Time) TransactionKey {
	return TransactionKey{
		Name:     name,
		Category: category,
		Date:     date.Format(DateLayout),
	}
}

// HasID reports whether the key refers to an explicit transaction id.
func (k TransactionKey) HasID() bool {
	return k.ID != uuid.Nil
}

func (k TransactionKey) String() string {
	if k.HasID() {
		return k.ID.String()
	}
	return strings.Join([]string{k.Name, k.Category, k.Date}, "|")
}
