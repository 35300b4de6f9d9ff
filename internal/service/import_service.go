package service

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/ledger"
	"github.com/carson-networks/ledger-server/internal/notify"
)

const sampleSize = 3

type (
	inventoryStore = importer.KeyedStore[ledger.ItemID, ledger.InventoryItem]
	pettyCashStore = importer.KeyedStore[ledger.TransactionKey, ledger.Transaction]
)

// ImportRequest is one uploaded file.
type ImportRequest struct {
	Schema   importer.Schema
	Format   importer.Format
	Filename string
	Body     io.Reader
}

// ImportSummary is what callers see of an import: counts and small samples.
type ImportSummary struct {
	Entity         string
	SuccessCount   int
	FailureCount   int
	SkippedCount   int
	CreatedCount   int
	UpdatedCount   int
	FailureSamples []importer.ImportOutcome
	SuccessSamples []importer.ImportOutcome
	Result         *importer.ImportBatchResult
}

// ImportService parses import files, reconciles them against storage and
// announces the outcome.
type ImportService struct {
	inventory inventoryStore
	pettyCash pettyCashStore
	publisher notify.Publisher
	logger    logrus.FieldLogger
}

func NewImportService(inventory inventoryStore, pettyCash pettyCashStore, publisher notify.Publisher, logger logrus.FieldLogger) *ImportService {
	return &ImportService{
		inventory: inventory,
		pettyCash: pettyCash,
		publisher: publisher,
		logger:    logger,
	}
}

// Import returns a *importer.ParseError when the file is rejected as a
// whole. Row level problems are only reported in the summary. When ctx ends
// mid-file the summary of the rows already processed is returned with the
// context error.
func (s *ImportService) Import(ctx context.Context, req ImportRequest) (*ImportSummary, error) {
	logger := s.logger.WithFields(logrus.Fields{
		"entity":   req.Schema.Entity,
		"filename": req.Filename,
		"format":   string(req.Format),
	})

	rows, err := importer.Parse(req.Body, req.Format, req.Schema)
	if err != nil {
		logger.WithError(err).Warn("ImportService.Import.parseError")
		s.publish(ctx, notify.NewEvent(notify.EventImportError, req.Schema.Entity, map[string]string{
			"filename": req.Filename,
			"error":    err.Error(),
		}))
		return nil, err
	}

	var result *importer.ImportBatchResult
	switch req.Schema.Entity {
	case importer.PettyCashSchema.Entity:
		result, err = importer.NewReconciler(s.pettyCash, importer.PettyCashNormalizer, logger).Reconcile(ctx, rows)
	default:
		result, err = importer.NewReconciler(s.inventory, importer.InventoryNormalizer, logger).Reconcile(ctx, rows)
	}
	if err != nil {
		if result == nil {
			return nil, err
		}
		// Rows before the interruption are already stored, report them with the error
		partial := summarize(req.Schema.Entity, result)
		logger.WithError(err).WithFields(logrus.Fields{
			"successCount": partial.SuccessCount,
			"failureCount": partial.FailureCount,
			"createdCount": partial.CreatedCount,
			"updatedCount": partial.UpdatedCount,
		}).Warn("ImportService.Import.interrupted")
		return partial, err
	}

	summary := summarize(req.Schema.Entity, result)
	if summary.SuccessCount > 0 {
		s.publish(ctx, notify.NewEvent(notify.EventImport, req.Schema.Entity, map[string]interface{}{
			"filename":     req.Filename,
			"successCount": summary.SuccessCount,
			"failureCount": summary.FailureCount,
			"createdCount": summary.CreatedCount,
			"updatedCount": summary.UpdatedCount,
		}))
	}
	return summary, nil
}

func (s *ImportService) publish(ctx context.Context, event notify.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WithError(err).WithField("type", event.Type).Warn("ImportService.publish.failed")
	}
}

func summarize(entity string, result *importer.ImportBatchResult) *ImportSummary {
	return &ImportSummary{
		Entity:         entity,
		SuccessCount:   result.SuccessCount,
		FailureCount:   result.FailureCount,
		SkippedCount:   result.SkippedCount,
		CreatedCount:   result.Created(),
		UpdatedCount:   result.Updated(),
		FailureSamples: result.FailureSample(sampleSize),
		SuccessSamples: result.SuccessSample(sampleSize),
		Result:         result,
	}
}
