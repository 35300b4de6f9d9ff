package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"20000", "20000", true},
		{"12.5", "12.5", true},
		{"12,50", "12.5", true},
		{"1.250,75", "1250.75", true},
		{"1,250.75", "1250.75", true},
		{"1,000,000", "1000000", true},
		{"Rp 15000", "15000", true},
		{"0", "0", true},
		{"1.005", "1005", true},
		{"1.500.000", "1500000", true},
		{"Rp 1.500.000", "1500000", true},
		{"Rp1.500.000,50", "1500000.5", true},
		{"15.000", "15000", true},
		{"1,000", "1000", true},
		{"12.3456", "12.35", true},
		{"-1", "", false},
		{"abc", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(FieldUnitPrice, tc.in)
		if !tc.ok {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "%q parsed to %s", tc.in, got)
	}
}

func TestParseAmount_ReportsField(t *testing.T) {
	_, err := ParseAmount("harga", "-5")

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, "harga", validationErr.Field)
}

func TestParseQuantity(t *testing.T) {
	q, err := ParseQuantity(FieldQuantity, " 3 ")
	assert.NoError(t, err)
	assert.Equal(t, 3, q)

	for _, bad := range []string{"0", "-1", "1.5", "", "x"} {
		_, err := ParseQuantity(FieldQuantity, bad)
		assert.Error(t, err, bad)
		assert.Contains(t, err.Error(), FieldQuantity)
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2025-10-01", "2025-10-01T13:45:00+07:00", "01/10/2025", "2025/10/01", "2025-10-01 08:00:00"} {
		got, err := ParseDate(FieldDate, in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%q parsed to %s", in, got)
	}

	_, err := ParseDate(FieldDate, "yesterday")
	assert.Error(t, err)
	_, err = ParseDate(FieldDate, "")
	assert.Error(t, err)
}

func TestTransactionTotal_RecomputedFromQuantityAndPrice(t *testing.T) {
	tx := Transaction{Quantity: 3, UnitPrice: decimal.RequireFromString("2500.333")}
	assert.True(t, tx.Total().Equal(decimal.RequireFromString("7501")))
}

func TestTransactionValidate_FirstFailingField(t *testing.T) {
	date := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	good := Transaction{Name: "Es Batu", Category: "Bahan Baku", Quantity: 1, UnitPrice: decimal.NewFromInt(5000), Date: date}
	assert.NoError(t, good.Validate())

	bad := good
	bad.Name = " "
	bad.Quantity = 0
	err := bad.Validate()
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, FieldName, validationErr.Field)

	bad = good
	bad.Quantity = -1
	require.True(t, errors.As(bad.Validate(), &validationErr))
	assert.Equal(t, FieldQuantity, validationErr.Field)

	bad = good
	bad.Date = time.Time{}
	require.True(t, errors.As(bad.Validate(), &validationErr))
	assert.Equal(t, FieldDate, validationErr.Field)
}

func TestTransactionKey_String(t *testing.T) {
	key := CompositeKey("Tisu", "ATK", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	assert.False(t, key.HasID())
	assert.Equal(t, "Tisu|ATK|2025-01-02", key.String())
}

func TestInventoryItemValidate(t *testing.T) {
	item := InventoryItem{ID: "INV-1", Name: "Kopi", Category: "Minuman", Quantity: 1, CostPrice: decimal.NewFromInt(10), Status: "available"}
	assert.NoError(t, item.Validate())

	item.Status = ""
	err := item.Validate()
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Equal(t, FieldStatus, validationErr.Field)
}
