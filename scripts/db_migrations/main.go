package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/logging"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

func main() {
	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("ProcessEnvironmentVariables")
		return
	}
	logging.SetupLogging(env.LogLevel)

	result, err := storage.CreateStore(context.Background(), env)
	if err != nil {
		logrus.WithError(err).WithField("dialect", env.Dialect).Fatal("storage.CreateStore")
		return
	}

	logrus.WithFields(logrus.Fields{
		"dialect":              env.Dialect,
		"database":             env.DatabaseName(),
		"preMigrationVersion":  result.PreMigrationVersion,
		"postMigrationVersion": result.PostMigrationVersion,
	}).Info("Migration status")
}
