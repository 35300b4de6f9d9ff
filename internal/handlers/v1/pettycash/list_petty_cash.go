package pettycash

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ListPettyCashCursor represents a pagination cursor in request and response bodies.
// It bundles position, limit, and maxCreationTime so subsequent pages use consistent parameters.
type ListPettyCashCursor struct {
	Position        int    `json:"position" minimum:"0" doc:"Numeric offset position for the next page"`
	Limit           int    `json:"limit" minimum:"1" maximum:"100" doc:"Page size used for this cursor"`
	MaxCreationTime string `json:"maxCreationTime" format:"date-time" doc:"Upper bound on created_at locked in from the first page"`
}

// ListPettyCashBody is the request body for listing transactions.
type ListPettyCashBody struct {
	CreatedBy string               `json:"createdBy,omitempty" doc:"Only list transactions recorded by this cashier"`
	Cursor    *ListPettyCashCursor `json:"cursor,omitempty" doc:"Cursor from a previous response to fetch the next page"`
}

// ListPettyCashInput is the Huma input for listing transactions.
type ListPettyCashInput struct {
	Body ListPettyCashBody
}

// ListPettyCashResponseBody is the response body for listing transactions.
type ListPettyCashResponseBody struct {
	Transactions []Transaction        `json:"transactions" doc:"Page of transactions"`
	NextCursor   *ListPettyCashCursor `json:"nextCursor,omitempty" doc:"Cursor to fetch the next page, absent on the last page"`
}

// ListPettyCashOutput is the Huma output for listing transactions.
type ListPettyCashOutput struct {
	Body ListPettyCashResponseBody
}

// pettyCashLister is the interface for listing transactions.
type pettyCashLister interface {
	ListTransactions(ctx context.Context, createdBy string, cursor *service.Cursor) ([]ledger.Transaction, *service.Cursor, error)
}

// ListPettyCashHandler handles POST /v1/pettycash/list.
type ListPettyCashHandler struct {
	PettyCashService pettyCashLister
}

// NewListPettyCashHandler creates a new ListPettyCashHandler.
func NewListPettyCashHandler(svc pettyCashLister) *ListPettyCashHandler {
	return &ListPettyCashHandler{PettyCashService: svc}
}

// Register registers the list petty cash endpoint with the Huma API.
func (h *ListPettyCashHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-petty-cash",
		Method:      http.MethodPost,
		Path:        "/v1/pettycash/list",
		Summary:     "List petty cash",
		Description: "Returns a paginated list of petty-cash transactions using cursor-based pagination.",
		Tags:        []string{"PettyCash"},
	}, h.handle)
}

// parseListPettyCashInput parses and validates the API input.
// When a cursor is provided, limit and maxCreationTime come from it.
// Without a cursor, the service uses its default limit.
func parseListPettyCashInput(input *ListPettyCashInput) (*service.Cursor, error) {
	if input.Body.Cursor == nil {
		return nil, nil
	}

	if input.Body.Cursor.Position < 0 {
		return nil, huma.NewError(http.StatusBadRequest, "cursor position must be non-negative")
	}

	maxCreationTime, err := time.Parse(time.RFC3339, input.Body.Cursor.MaxCreationTime)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, "invalid cursor maxCreationTime", err)
	}

	return &service.Cursor{
		Position:        input.Body.Cursor.Position,
		Limit:           input.Body.Cursor.Limit,
		MaxCreationTime: maxCreationTime,
	}, nil
}

func (h *ListPettyCashHandler) handle(ctx context.Context, input *ListPettyCashInput) (*ListPettyCashOutput, error) {
	logData := logging.GetLogData(ctx)
	requestCursor, err := parseListPettyCashInput(input)
	if err != nil {
		return nil, err
	}

	var stopTimer func()
	if logData != nil {
		stopTimer = logData.AddTiming("listPettyCashMs")
	}
	transactions, nextCursor, err := h.PettyCashService.ListTransactions(ctx, input.Body.CreatedBy, requestCursor)
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		return nil, huma.NewError(http.StatusInternalServerError, "failed to list petty cash", err)
	}

	if logData != nil {
		logData.AddData("transactionCount", len(transactions))
	}

	resp := ListPettyCashResponseBody{
		Transactions: make([]Transaction, len(transactions)),
	}
	for i, tx := range transactions {
		resp.Transactions[i] = toResponse(tx)
	}

	if nextCursor != nil {
		resp.NextCursor = &ListPettyCashCursor{
			Position:        nextCursor.Position,
			Limit:           nextCursor.Limit,
			MaxCreationTime: nextCursor.MaxCreationTime.Format(time.RFC3339),
		}
	}

	return &ListPettyCashOutput{Body: resp}, nil
}
