package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/notify"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("ledger-server starting")

	dbStorage, err := storage.NewStorage(envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	hub := notify.NewHub(logger)
	publishers := notify.Publishers{hub}
	if envConfig.AMQPURL != "" {
		amqpPublisher, err := notify.NewAMQPPublisher(envConfig.AMQPURL, envConfig.AMQPExchange)
		if err != nil {
			logger.WithError(err).Fatal("notify.NewAMQPPublisher")
			return
		}
		defer amqpPublisher.Close()
		publishers = append(publishers, amqpPublisher)
	}

	svc := service.NewService(dbStorage, delegator, publishers, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return hub.Run(ctx)
	})
	group.Go(func() error {
		httpRest := api.Rest{
			Logger:         logger,
			Port:           envConfig.Port,
			Service:        svc,
			Storage:        dbStorage,
			Events:         hub,
			MaxImportBytes: envConfig.MaxImportBytes,
		}
		return httpRest.Serve(ctx)
	})

	if err := group.Wait(); err != nil {
		logger.WithError(err).Error("ledger-server stopped with error")
		return
	}
	logger.Info("ledger-server stopped")
}
