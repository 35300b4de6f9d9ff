package pettycash

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// CreatePettyCashBody is the request body for recording a transaction.
type CreatePettyCashBody struct {
	Name      string `json:"name" required:"true" doc:"Item bought"`
	Category  string `json:"category" required:"true" doc:"Spending category"`
	Quantity  int    `json:"quantity" required:"true" doc:"Number of units, at least 1"`
	UnitPrice string `json:"unitPrice" required:"true" doc:"Decimal price per unit"`
	Date      string `json:"date" required:"true" doc:"Transaction date, YYYY-MM-DD"`
	ImageRef  string `json:"imageRef,omitempty" doc:"Receipt image reference"`
	CreatedBy string `json:"createdBy,omitempty" doc:"Cashier recording the transaction"`
	Total     string `json:"total,omitempty" doc:"Ignored. The stored total is always quantity * unitPrice"`
}

// CreatePettyCashInput is the Huma input for recording a transaction.
type CreatePettyCashInput struct {
	Body CreatePettyCashBody
}

// CreatePettyCashOutput is the Huma output for recording a transaction.
type CreatePettyCashOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   Transaction
}

// pettyCashCreator is the interface for recording transactions.
type pettyCashCreator interface {
	CreateTransaction(ctx context.Context, tx ledger.Transaction) (*ledger.Transaction, error)
}

// CreatePettyCashHandler handles POST /v1/pettycash.
type CreatePettyCashHandler struct {
	PettyCashService pettyCashCreator
}

// NewCreatePettyCashHandler creates a new CreatePettyCashHandler.
func NewCreatePettyCashHandler(svc pettyCashCreator) *CreatePettyCashHandler {
	return &CreatePettyCashHandler{PettyCashService: svc}
}

// Register registers the create petty cash endpoint with the Huma API.
func (h *CreatePettyCashHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "create-petty-cash",
		Method:      http.MethodPost,
		Path:        "/v1/pettycash",
		Summary:     "Record petty cash",
		Description: "Records a petty-cash purchase. The total is computed from quantity and unit price.",
		Tags:        []string{"PettyCash"},
	}, h.handle)
}

// parseCreatePettyCashInput turns the request body into a transaction.
// Any caller supplied total is dropped.
func parseCreatePettyCashInput(input *CreatePettyCashInput) (ledger.Transaction, error) {
	tx := ledger.Transaction{
		Name:      strings.TrimSpace(input.Body.Name),
		Category:  strings.TrimSpace(input.Body.Category),
		Quantity:  input.Body.Quantity,
		CreatedBy: strings.TrimSpace(input.Body.CreatedBy),
	}
	if imageRef := strings.TrimSpace(input.Body.ImageRef); imageRef != "" {
		tx.ImageRef = &imageRef
	}

	unitPrice, err := ledger.ParseAmount(ledger.FieldUnitPrice, input.Body.UnitPrice)
	if err != nil {
		return tx, huma.NewError(http.StatusBadRequest, "invalid unitPrice", err)
	}
	tx.UnitPrice = unitPrice

	date, err := ledger.ParseDate(ledger.FieldDate, input.Body.Date)
	if err != nil {
		return tx, huma.NewError(http.StatusBadRequest, "invalid date", err)
	}
	tx.Date = date

	return tx, nil
}

func (h *CreatePettyCashHandler) handle(ctx context.Context, input *CreatePettyCashInput) (*CreatePettyCashOutput, error) {
	tx, err := parseCreatePettyCashInput(input)
	if err != nil {
		return nil, err
	}

	logData := logging.GetLogData(ctx)
	if logData != nil && input.Body.Total != "" && input.Body.Total != tx.Total().String() {
		logData.AddData("ignoredTotal", input.Body.Total)
	}

	created, err := h.PettyCashService.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, validationStatus(err, "failed to record petty cash")
	}

	return &CreatePettyCashOutput{Status: http.StatusCreated, Body: toResponse(*created)}, nil
}
