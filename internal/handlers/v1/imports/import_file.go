package imports

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

// ImportFileInput is the Huma input for a bulk import. The file is the raw request body.
type ImportFileInput struct {
	Format   string `query:"format" doc:"csv or xlsx. Defaults to the filename extension"`
	Filename string `query:"filename" doc:"Original file name, used for the format fallback and in events"`
	RawBody  []byte
}

// ImportFileResponse is the response body for a bulk import.
type ImportFileResponse struct {
	Entity         string                   `json:"entity"`
	Message        string                   `json:"message"`
	SuccessCount   int                      `json:"successCount"`
	FailureCount   int                      `json:"failureCount"`
	SkippedCount   int                      `json:"skippedCount" doc:"Blank rows that were ignored"`
	TotalProcessed int                      `json:"totalProcessed"`
	CreatedCount   int                      `json:"createdCount"`
	UpdatedCount   int                      `json:"updatedCount"`
	FailureSamples []importer.ImportOutcome `json:"failureSamples"`
	SuccessSamples []importer.ImportOutcome `json:"successSamples"`
}

type ImportFileOutput struct {
	Body ImportFileResponse
}

type fileImporter interface {
	Import(ctx context.Context, req service.ImportRequest) (*service.ImportSummary, error)
}

// ImportFileHandler handles POST /v1/{entity}/import for one import schema.
type ImportFileHandler struct {
	ImportService fileImporter
	Schema        importer.Schema
	MaxBodyBytes  int64
}

func NewImportFileHandler(svc fileImporter, schema importer.Schema, maxBodyBytes int64) *ImportFileHandler {
	return &ImportFileHandler{ImportService: svc, Schema: schema, MaxBodyBytes: maxBodyBytes}
}

// Register registers the import endpoint for the handler's schema.
func (h *ImportFileHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "import-" + h.Schema.Entity,
		Method:       http.MethodPost,
		Path:         "/v1/" + h.Schema.Entity + "/import",
		Summary:      "Bulk import " + h.Schema.Entity,
		Description:  "Reconciles a CSV or XLSX file row by row against stored records. Bad rows are reported, not fatal.",
		Tags:         []string{"Import"},
		MaxBodyBytes: h.MaxBodyBytes,
	}, h.handle)
}

func (h *ImportFileHandler) handle(ctx context.Context, input *ImportFileInput) (*ImportFileOutput, error) {
	if len(input.RawBody) == 0 {
		return nil, huma.NewError(http.StatusBadRequest, "import file is empty")
	}

	format, err := importer.ParseFormat(input.Format, input.Filename)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, err.Error(), err)
	}

	logData := logging.GetLogData(ctx)
	var stopTimer func()
	if logData != nil {
		logData.AddData("importBytes", len(input.RawBody))
		stopTimer = logData.AddTiming("importMs")
	}
	summary, err := h.ImportService.Import(ctx, service.ImportRequest{
		Schema:   h.Schema,
		Format:   format,
		Filename: input.Filename,
		Body:     bytes.NewReader(input.RawBody),
	})
	if stopTimer != nil {
		stopTimer()
	}
	if err != nil {
		var parseErr *importer.ParseError
		if errors.As(err, &parseErr) {
			return nil, huma.NewError(http.StatusBadRequest, parseErr.Error(), err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to process import file", err)
	}

	if logData != nil {
		logData.AddData("importSuccess", summary.SuccessCount)
		logData.AddData("importFailure", summary.FailureCount)
	}

	return &ImportFileOutput{Body: toResponse(summary)}, nil
}

func toResponse(summary *service.ImportSummary) ImportFileResponse {
	resp := ImportFileResponse{
		Entity:         summary.Entity,
		Message:        fmt.Sprintf("Import finished: %d succeeded, %d failed", summary.SuccessCount, summary.FailureCount),
		SuccessCount:   summary.SuccessCount,
		FailureCount:   summary.FailureCount,
		SkippedCount:   summary.SkippedCount,
		TotalProcessed: summary.SuccessCount + summary.FailureCount,
		CreatedCount:   summary.CreatedCount,
		UpdatedCount:   summary.UpdatedCount,
		FailureSamples: summary.FailureSamples,
		SuccessSamples: summary.SuccessSamples,
	}
	if resp.FailureSamples == nil {
		resp.FailureSamples = []importer.ImportOutcome{}
	}
	if resp.SuccessSamples == nil {
		resp.SuccessSamples = []importer.ImportOutcome{}
	}
	return resp
}
