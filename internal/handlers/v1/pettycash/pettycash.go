package pettycash

import (
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Transaction is the API response model for a petty-cash transaction.
// It is used only for responses, not for request bodies.
type Transaction struct {
	ID        string  `json:"id" doc:"Transaction UUID"`
	Name      string  `json:"name" doc:"Item bought"`
	Category  string  `json:"category" doc:"Spending category"`
	Quantity  int     `json:"quantity" doc:"Number of units"`
	UnitPrice string  `json:"unitPrice" doc:"Decimal price per unit"`
	Total     string  `json:"total" doc:"Quantity multiplied by unit price"`
	Date      string  `json:"date" doc:"Transaction date, YYYY-MM-DD"`
	ImageRef  *string `json:"imageRef,omitempty" doc:"Receipt image reference"`
	CreatedBy string  `json:"createdBy,omitempty" doc:"Cashier who recorded the transaction"`
	CreatedAt string  `json:"createdAt" doc:"RFC3339 time the transaction was recorded"`
}

func toResponse(tx ledger.Transaction) Transaction {
	return Transaction{
		ID:        tx.ID.String(),
		Name:      tx.Name,
		Category:  tx.Category,
		Quantity:  tx.Quantity,
		UnitPrice: tx.UnitPrice.StringFixed(2),
		Total:     tx.Total().StringFixed(2),
		Date:      tx.Date.Format(ledger.DateLayout),
		ImageRef:  tx.ImageRef,
		CreatedBy: tx.CreatedBy,
		CreatedAt: tx.CreatedAt.Format(time.RFC3339),
	}
}

// validationStatus maps a field validation failure to a 400 and anything else to a 500.
func validationStatus(err error, message string) error {
	var validationErr *ledger.ValidationError
	if errors.As(err, &validationErr) {
		return huma.NewError(http.StatusBadRequest, validationErr.Error(), err)
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}
