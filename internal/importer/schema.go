package importer

import (
	"strings"

	"github.com/carson-networks/ledger-server/internal/ledger"
)

// Schema names an importable entity and the headers its file must carry.
type Schema struct {
	Entity   string
	Required []string
}

var (
	InventorySchema = Schema{
		Entity: "inventory",
		Required: []string{
			ledger.FieldID,
			ledger.FieldName,
			ledger.FieldCategory,
			ledger.FieldUnitPrice,
			ledger.FieldStatus,
		},
	}
	PettyCashSchema = Schema{
		Entity: "pettycash",
		Required: []string{
			ledger.FieldName,
			ledger.FieldCategory,
			ledger.FieldQuantity,
			ledger.FieldUnitPrice,
			ledger.FieldDate,
		},
	}
)

// headerAliases maps lower-cased header text to canonical field names.
var headerAliases = map[string]string{
	"id":                ledger.FieldID,
	"id_item":           ledger.FieldID,
	"name":              ledger.FieldName,
	"nama":              ledger.FieldName,
	"nama_produk":       ledger.FieldName,
	"category":          ledger.FieldCategory,
	"kategori":          ledger.FieldCategory,
	"unit_price":        ledger.FieldUnitPrice,
	"harga":             ledger.FieldUnitPrice,
	"harga_modal":       ledger.FieldUnitPrice,
	"quantity":          ledger.FieldQuantity,
	"jumlah":            ledger.FieldQuantity,
	"date":              ledger.FieldDate,
	"tanggal":           ledger.FieldDate,
	"tanggal_pembelian": ledger.FieldDate,
	"status":            ledger.FieldStatus,
	"description":       ledger.FieldDescription,
	"deskripsi":         ledger.FieldDescription,
	"image_ref":         ledger.FieldImageRef,
	"gambar_url":        ledger.FieldImageRef,
	"gambarurl":         ledger.FieldImageRef,
	"created_by":        ledger.FieldCreatedBy,
	"dibuat_oleh":       ledger.FieldCreatedBy,
}

// CanonicalField resolves a header cell to its canonical field name.
// Unknown headers return "".
func CanonicalField(header string) string {
	header = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header, "\uFEFF")))
	return headerAliases[header]
}

// SchemaFor returns the schema of a named entity.
func SchemaFor(entity string) (Schema, bool) {
	switch strings.ToLower(strings.TrimSpace(entity)) {
	case InventorySchema.Entity:
		return InventorySchema, true
	case PettyCashSchema.Entity, "petty_cash", "petty-cash":
		return PettyCashSchema, true
	}
	return Schema{}, false
}
