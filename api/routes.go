package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/internal/handlers/v1/dashboard"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/imports"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/inventory"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/pettycash"
	"github.com/carson-networks/ledger-server/internal/handlers/v1/status"
	"github.com/carson-networks/ledger-server/internal/importer"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/service"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type Rest struct {
	Logger         *logrus.Logger
	Port           string
	Service        *service.Service
	Storage        pinger
	Events         http.Handler
	MaxImportBytes int64
}

// Routes builds the mux with every endpoint registered.
func (r *Rest) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))
	if r.Events != nil {
		mux.Handle("/v1/events", r.Events)
	}

	api := humago.New(mux, huma.DefaultConfig("Ledger Server", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))

	pettycash.NewCreatePettyCashHandler(r.Service.PettyCash).Register(api)
	pettycash.NewListPettyCashHandler(r.Service.PettyCash).Register(api)
	dashboard.NewGetDashboardHandler(r.Service.PettyCash).Register(api)
	inventory.NewUpsertInventoryItemHandler(r.Service.Inventory).Register(api)
	imports.NewImportFileHandler(r.Service.Import, importer.InventorySchema, r.MaxImportBytes).Register(api)
	imports.NewImportFileHandler(r.Service.Import, importer.PettyCashSchema, r.MaxImportBytes).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then shuts the server down.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Routes(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
	return nil
}
