package imports

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
)

const pettyCashCSV = "nama,kategori,jumlah,harga,tanggal,dibuat_oleh\n" +
	"Kertas,ATK,2,25000,2025-10-01,dina\n" +
	"Teh,Pantry,0,5000,2025-10-01,dina\n" +
	"Gula,Pantry,1,12000,2025-10-02,dina\n"

type failingImporter struct {
	err error
}

func (f failingImporter) Import(context.Context, service.ImportRequest) (*service.ImportSummary, error) {
	return nil, f.err
}

func newTestAPI(t *testing.T, svc fileImporter, schema importer.Schema) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	NewImportFileHandler(svc, schema, 1<<20).Register(api)
	return api
}

func newMemoryImportService() (*service.ImportService, *memory.InventoryStore, *memory.PettyCashStore) {
	logger, _ := test.NewNullLogger()
	inventory := memory.NewInventoryStore()
	pettyCash := memory.NewPettyCashStore()
	return service.NewImportService(inventory, pettyCash, nil, logger), inventory, pettyCash
}

func decode(t *testing.T, body io.Reader) ImportFileResponse {
	t.Helper()
	var resp ImportFileResponse
	require.NoError(t, json.NewDecoder(body).Decode(&resp))
	return resp
}

func TestHTTP_ImportPettyCash_PartialFailure(t *testing.T) {
	svc, _, pettyCash := newMemoryImportService()
	api := newTestAPI(t, svc, importer.PettyCashSchema)

	resp := api.Post("/v1/pettycash/import?filename=kas.csv", "Content-Type: text/csv", strings.NewReader(pettyCashCSV))

	require.Equal(t, http.StatusOK, resp.Code)
	body := decode(t, resp.Body)
	assert.Equal(t, "pettycash", body.Entity)
	assert.Equal(t, 2, body.SuccessCount)
	assert.Equal(t, 1, body.FailureCount)
	assert.Equal(t, 3, body.TotalProcessed)
	assert.Equal(t, 2, body.CreatedCount)
	assert.Equal(t, "Import finished: 2 succeeded, 1 failed", body.Message)
	require.Len(t, body.FailureSamples, 1)
	assert.Equal(t, 3, body.FailureSamples[0].RowNumber)
	assert.Contains(t, body.FailureSamples[0].ErrorMessage, "quantity")

	stored, err := pettyCash.ListByCreator(context.Background(), "dina")
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestHTTP_ImportInventory_RetryUpdates(t *testing.T) {
	svc, inventory, _ := newMemoryImportService()
	api := newTestAPI(t, svc, importer.InventorySchema)
	file := "id_item,nama_produk,kategori,harga_modal,status\nINV-1,Kopi,Minuman,15000,available\n"

	first := api.Post("/v1/inventory/import?format=csv", strings.NewReader(file))
	second := api.Post("/v1/inventory/import?format=csv", strings.NewReader(file))

	require.Equal(t, http.StatusOK, first.Code)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, 1, decode(t, first.Body).CreatedCount)
	retry := decode(t, second.Body)
	assert.Equal(t, 0, retry.CreatedCount)
	assert.Equal(t, 1, retry.UpdatedCount)
	assert.Len(t, inventory.List(), 1)
}

func TestHTTP_Import_MissingRequiredHeader(t *testing.T) {
	svc, _, _ := newMemoryImportService()
	api := newTestAPI(t, svc, importer.InventorySchema)

	resp := api.Post("/v1/inventory/import?format=csv", strings.NewReader("nama_produk,kategori\nKopi,Minuman\n"))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_Import_UnknownFormat(t *testing.T) {
	svc, _, _ := newMemoryImportService()
	api := newTestAPI(t, svc, importer.InventorySchema)

	resp := api.Post("/v1/inventory/import?filename=stock.pdf", strings.NewReader("anything"))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_Import_EmptyBody(t *testing.T) {
	svc, _, _ := newMemoryImportService()
	api := newTestAPI(t, svc, importer.InventorySchema)

	resp := api.Post("/v1/inventory/import?format=csv", strings.NewReader(""))

	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestHTTP_Import_ServiceError(t *testing.T) {
	api := newTestAPI(t, failingImporter{err: errors.New("context canceled")}, importer.InventorySchema)

	resp := api.Post("/v1/inventory/import?format=csv", strings.NewReader("id_item\nINV-1\n"))

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
}

func TestToResponse_NonNilSamples(t *testing.T) {
	resp := toResponse(&service.ImportSummary{Entity: "inventory"})
	assert.NotNil(t, resp.FailureSamples)
	assert.NotNil(t, resp.SuccessSamples)
	assert.Equal(t, "Import finished: 0 succeeded, 0 failed", resp.Message)
}
