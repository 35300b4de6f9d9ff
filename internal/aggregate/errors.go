package aggregate

import (
	"fmt"

	"github.com/gofrs/uuid/v5"
)

// DateParseError reports transactions left out of an aggregation because
// they carry no usable date. It is delivered to the warning callback and
// never returned.
type DateParseError struct {
	Operation      string
	TransactionIDs []uuid.UUID
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("%s: excluded %d transaction(s) without a valid date", e.Operation, len(e.TransactionIDs))
}
