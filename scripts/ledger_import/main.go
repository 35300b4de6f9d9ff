package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	server_config "github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/memory"
)

func main() {
	app := &cli.App{
		Name:  "ledger-import",
		Usage: "reconcile a CSV or XLSX file into the ledger database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "entity",
				Usage:    "what the file holds: inventory or pettycash",
				Required: true,
			},
			&cli.PathFlag{
				Name:      "file",
				Aliases:   []string{"f"},
				Usage:     "path of the file to import",
				Required:  true,
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "csv or xlsx, defaults to the file extension",
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "reconcile against an empty in-memory store instead of the database",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "dump every row outcome",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("ledger-import")
	}
}

func run(c *cli.Context) error {
	env, err := server_config.ProcessEnvironmentVariables()
	if err != nil {
		return err
	}
	logger := logging.SetupLogging(env.LogLevel)

	schema, ok := importer.SchemaFor(c.String("entity"))
	if !ok {
		return fmt.Errorf("unknown entity %q", c.String("entity"))
	}

	path := c.Path("file")
	format, err := importer.ParseFormat(c.String("format"), path)
	if err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	svc, closeStore, err := newImportService(c.Bool("dry-run"), env, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	summary, err := svc.Import(ctx, service.ImportRequest{
		Schema:   schema,
		Format:   format,
		Filename: path,
		Body:     file,
	})
	if err != nil {
		if summary != nil {
			logger.WithFields(logrus.Fields{
				"entity":  summary.Entity,
				"success": summary.SuccessCount,
				"failure": summary.FailureCount,
				"created": summary.CreatedCount,
				"updated": summary.UpdatedCount,
			}).Warn("LedgerImport.interrupted")
		}
		return err
	}

	logger.WithFields(logrus.Fields{
		"entity":  summary.Entity,
		"success": summary.SuccessCount,
		"failure": summary.FailureCount,
		"skipped": summary.SkippedCount,
		"created": summary.CreatedCount,
		"updated": summary.UpdatedCount,
		"dryRun":  c.Bool("dry-run"),
	}).Info("LedgerImport.complete")

	for _, outcome := range summary.FailureSamples {
		logger.WithFields(logrus.Fields{
			"row": outcome.RowNumber,
			"key": outcome.Key,
		}).Warn("LedgerImport.failed: " + outcome.ErrorMessage)
	}

	if c.Bool("verbose") {
		spew.Fdump(c.App.Writer, summary.Result)
	}
	return nil
}

// newImportService wires the import service to either the database or
// throwaway memory stores. No events are published from the command line.
func newImportService(dryRun bool, env *server_config.Config, logger *logrus.Logger) (*service.ImportService, func(), error) {
	if dryRun {
		return service.NewImportService(memory.NewInventoryStore(), memory.NewPettyCashStore(), nil, logger), func() {}, nil
	}

	store, err := storage.NewStorage(env, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := store.Ping(context.Background()); err != nil {
		_ = store.Close()
		return nil, nil, fmt.Errorf("connect to database: %w", err)
	}

	closeStore := func() {
		if err := store.Close(); err != nil {
			logger.WithError(err).Warn("LedgerImport.close")
		}
	}
	return service.NewImportService(store.Inventory, store.PettyCash, nil, logger), closeStore, nil
}
