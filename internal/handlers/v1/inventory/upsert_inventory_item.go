package inventory

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/logging"
)

// UpsertInventoryItemBody is the request body for writing one inventory item.
type UpsertInventoryItemBody struct {
	ID           string `json:"id" minLength:"1" doc:"Externally assigned item id"`
	Name         string `json:"name" minLength:"1"`
	Category     string `json:"category" minLength:"1"`
	Quantity     int    `json:"quantity" doc:"Units in stock, at least 1"`
	CostPrice    string `json:"costPrice" doc:"Decimal cost per unit"`
	Status       string `json:"status" minLength:"1"`
	PurchaseDate string `json:"purchaseDate,omitempty" doc:"Purchase date, YYYY-MM-DD"`
	Description  string `json:"description,omitempty"`
}

type UpsertInventoryItemInput struct {
	Body UpsertInventoryItemBody
}

type UpsertInventoryItemResponse struct {
	ID      string `json:"id"`
	Created bool   `json:"created" doc:"True when the item did not exist before"`
}

type UpsertInventoryItemOutput struct {
	Status int `json:"status"`
	Body   UpsertInventoryItemResponse
}

type inventoryUpserter interface {
	UpsertItem(ctx context.Context, item ledger.InventoryItem) (bool, error)
}

// UpsertInventoryItemHandler handles POST /v1/inventory.
type UpsertInventoryItemHandler struct {
	InventoryService inventoryUpserter
}

func NewUpsertInventoryItemHandler(svc inventoryUpserter) *UpsertInventoryItemHandler {
	return &UpsertInventoryItemHandler{InventoryService: svc}
}

// Register registers the upsert inventory endpoint with the Huma API.
func (h *UpsertInventoryItemHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "upsert-inventory-item",
		Method:      http.MethodPost,
		Path:        "/v1/inventory",
		Summary:     "Write inventory item",
		Description: "Creates an inventory item, or replaces the item with the same id.",
		Tags:        []string{"Inventory"},
	}, h.handle)
}

func parseUpsertInventoryItemInput(input *UpsertInventoryItemInput) (ledger.InventoryItem, error) {
	item := ledger.InventoryItem{
		ID:       ledger.ItemID(strings.TrimSpace(input.Body.ID)),
		Name:     strings.TrimSpace(input.Body.Name),
		Category: strings.TrimSpace(input.Body.Category),
		Quantity: input.Body.Quantity,
		Status:   strings.TrimSpace(input.Body.Status),
	}
	if description := strings.TrimSpace(input.Body.Description); description != "" {
		item.Description = &description
	}

	costPrice, err := ledger.ParseAmount(ledger.FieldUnitPrice, input.Body.CostPrice)
	if err != nil {
		return item, huma.NewError(http.StatusBadRequest, "invalid costPrice", err)
	}
	item.CostPrice = costPrice

	if strings.TrimSpace(input.Body.PurchaseDate) != "" {
		date, err := ledger.ParseDate(ledger.FieldDate, input.Body.PurchaseDate)
		if err != nil {
			return item, huma.NewError(http.StatusBadRequest, "invalid purchaseDate", err)
		}
		item.PurchaseDate = date
	}
	return item, nil
}

func (h *UpsertInventoryItemHandler) handle(ctx context.Context, input *UpsertInventoryItemInput) (*UpsertInventoryItemOutput, error) {
	item, err := parseUpsertInventoryItemInput(input)
	if err != nil {
		return nil, err
	}

	created, err := h.InventoryService.UpsertItem(ctx, item)
	if err != nil {
		var validationErr *ledger.ValidationError
		if errors.As(err, &validationErr) {
			return nil, huma.NewError(http.StatusBadRequest, validationErr.Error(), err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to write inventory item", err)
	}

	if logData := logging.GetLogData(ctx); logData != nil {
		logData.AddData("itemCreated", created)
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	return &UpsertInventoryItemOutput{
		Status: status,
		Body:   UpsertInventoryItemResponse{ID: string(item.ID), Created: created},
	}, nil
}
