package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/logging"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/operator"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/queries"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

// globalOptions are the persistent flags; set ones override the environment.
type globalOptions struct {
	dialect     string
	sqlitePath  string
	queriesFile string
}

// config resolves the configuration and sends logs to the command's stderr so
// stdout carries only command output.
func (o *globalOptions) config(cmd *cobra.Command) (*config.Config, error) {
	env, err := config.ProcessEnvironmentVariables()
	if err != nil {
		return nil, err
	}
	if o.dialect != "" {
		env.Dialect = o.dialect
	}
	if o.sqlitePath != "" {
		env.SQLitePath = o.sqlitePath
	}
	if o.queriesFile != "" {
		env.QueriesFile = o.queriesFile
	}
	logging.SetupLogging(env.LogLevel)
	logrus.SetOutput(cmd.ErrOrStderr())
	return env, nil
}

// withService opens the store, runs fn and releases everything on every path.
func (o *globalOptions) withService(cmd *cobra.Command, fn func(svc *service.Service) error) error {
	ctx := cmd.Context()
	env, err := o.config(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(ctx, env)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	delegator := operator.NewOperatorDelegator(store, 1)
	delegator.Start()
	defer delegator.Stop()

	resolver := &queries.Lazy{Path: env.QueriesFile, Dialect: env.Dialect}
	return fn(service.NewService(env, store, delegator, resolver))
}
