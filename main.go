package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/AdarshXGupta07/Finance-DashBoard/api"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/importer"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/logging"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/operator"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/queries"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.WithField("dialect", envConfig.Dialect).Info("finance-dashboard starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := storage.CreateStore(ctx, envConfig); err != nil {
		logger.WithError(err).Fatal("storage.CreateStore")
		return
	}

	dbStorage, err := storage.Open(ctx, envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.Open")
		return
	}
	defer dbStorage.Close()

	delegator := operator.NewOperatorDelegator(dbStorage, 1)
	delegator.Start()
	defer delegator.Stop()

	resolver := &queries.Lazy{Path: envConfig.QueriesFile, Dialect: envConfig.Dialect}
	svc := service.NewService(envConfig, dbStorage, delegator, resolver)

	scheduler, err := importer.New(envConfig.ImportDir, svc.Pipeline).Schedule(ctx, envConfig.ImportInterval)
	if err != nil {
		logger.WithError(err).Fatal("importer.Schedule")
		return
	}
	defer scheduler.Stop()

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTPPort,
		Service: svc,
	}
	httpRest.Serve(ctx)
}
