package pettycash

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

type mockPettyCashService struct {
	mock.Mock
}

func (m *mockPettyCashService) CreateTransaction(ctx context.Context, tx ledger.Transaction) (*ledger.Transaction, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Transaction), args.Error(1)
}

func newCreateTestAPI(t *testing.T, svc pettyCashCreator) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewCreatePettyCashHandler(svc).Register(api)
	return api
}

// stored mimics what the service returns after a successful insert.
func stored(tx ledger.Transaction) *ledger.Transaction {
	tx.ID = uuid.Must(uuid.NewV4())
	tx.CreatedAt = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)
	return &tx
}

func TestParseCreatePettyCashInput_ValidInput(t *testing.T) {
	input := &CreatePettyCashInput{
		Body: CreatePettyCashBody{
			Name:      " Pen ",
			Category:  "ATK",
			Quantity:  2,
			UnitPrice: "7500",
			Date:      "2025-10-01",
			ImageRef:  "receipts/1.jpg",
			CreatedBy: "dina",
		},
	}

	tx, err := parseCreatePettyCashInput(input)
	require.NoError(t, err)
	assert.Equal(t, "Pen", tx.Name)
	assert.Equal(t, "ATK", tx.Category)
	assert.Equal(t, 2, tx.Quantity)
	assert.True(t, tx.UnitPrice.Equal(decimal.NewFromInt(7500)))
	assert.Equal(t, time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC), tx.Date)
	require.NotNil(t, tx.ImageRef)
	assert.Equal(t, "receipts/1.jpg", *tx.ImageRef)
	assert.Equal(t, "dina", tx.CreatedBy)
}

func TestParseCreatePettyCashInput_BlankImageRef(t *testing.T) {
	input := &CreatePettyCashInput{
		Body: CreatePettyCashBody{
			Name:      "Pen",
			Category:  "ATK",
			Quantity:  1,
			UnitPrice: "1000",
			Date:      "2025-10-01",
			ImageRef:  "   ",
		},
	}

	tx, err := parseCreatePettyCashInput(input)
	require.NoError(t, err)
	assert.Nil(t, tx.ImageRef)
}

func TestHTTP_CreatePettyCash_Success(t *testing.T) {
	mockSvc := new(mockPettyCashService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.MatchedBy(func(tx ledger.Transaction) bool {
		return tx.Name == "Paper" && tx.Quantity == 3 && tx.UnitPrice.Equal(decimal.NewFromInt(25000))
	})).Return(stored(ledger.Transaction{
		Name:      "Paper",
		Category:  "ATK",
		Quantity:  3,
		UnitPrice: decimal.NewFromInt(25000),
		Date:      time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC),
	}), nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/pettycash", CreatePettyCashBody{
		Name:      "Paper",
		Category:  "ATK",
		Quantity:  3,
		UnitPrice: "25000",
		Date:      "2025-10-01",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "75000.00", body.Total)
	assert.Equal(t, "2025-10-01", body.Date)
	assert.NotEmpty(t, body.ID)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreatePettyCash_IgnoresSuppliedTotal(t *testing.T) {
	mockSvc := new(mockPettyCashService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).Return(stored(ledger.Transaction{
		Name:      "Tea",
		Category:  "Pantry",
		Quantity:  2,
		UnitPrice: decimal.NewFromInt(5000),
		Date:      time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
	}), nil)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/pettycash", CreatePettyCashBody{
		Name:      "Tea",
		Category:  "Pantry",
		Quantity:  2,
		UnitPrice: "5000",
		Date:      "2025-10-02",
		Total:     "999999",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	var body Transaction
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "10000.00", body.Total)
}

func TestHTTP_CreatePettyCash_MissingRequiredFields(t *testing.T) {
	mockSvc := new(mockPettyCashService)

	// Huma schema validation rejects the request before the handler runs.
	resp := newCreateTestAPI(t, mockSvc).Post("/v1/pettycash", map[string]any{
		"name": "Pen",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreatePettyCash_InvalidUnitPrice(t *testing.T) {
	mockSvc := new(mockPettyCashService)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/pettycash", CreatePettyCashBody{
		Name:      "Pen",
		Category:  "ATK",
		Quantity:  1,
		UnitPrice: "abc",
		Date:      "2025-10-01",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreatePettyCash_InvalidDate(t *testing.T) {
	mockSvc := new(mockPettyCashService)

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/pettycash", CreatePettyCashBody{
		Name:      "Pen",
		Category:  "ATK",
		Quantity:  1,
		UnitPrice: "1000",
		Date:      "next tuesday",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertNotCalled(t, "CreateTransaction")
}

func TestHTTP_CreatePettyCash_ValidationError(t *testing.T) {
	mockSvc := new(mockPettyCashService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, ledger.NewValidationError(ledger.FieldQuantity, "must be at least 1"))

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/pettycash", CreatePettyCashBody{
		Name:      "Pen",
		Category:  "ATK",
		Quantity:  0,
		UnitPrice: "1000",
		Date:      "2025-10-01",
	})

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	mockSvc.AssertExpectations(t)
}

func TestHTTP_CreatePettyCash_ServiceError(t *testing.T) {
	mockSvc := new(mockPettyCashService)
	mockSvc.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, errors.New("database unavailable"))

	resp := newCreateTestAPI(t, mockSvc).Post("/v1/pettycash", CreatePettyCashBody{
		Name:      "Pen",
		Category:  "ATK",
		Quantity:  1,
		UnitPrice: "1000",
		Date:      "2025-10-01",
	})

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	mockSvc.AssertExpectations(t)
}
