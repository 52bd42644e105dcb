package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

func newSetupCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Create the database and apply schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := opts.config(cmd)
			if err != nil {
				return err
			}
			result, err := storage.CreateStore(cmd.Context(), env)
			if err != nil {
				return fmt.Errorf("setup failed: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Store %q ready (schema version %d -> %d)\n",
				env.DatabaseName(), result.PreMigrationVersion, result.PostMigrationVersion)
			return nil
		},
	}
}

func newPingCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withService(cmd, func(svc *service.Service) error {
				if err := svc.Loader.Ping(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Connection successful")
				return nil
			})
		},
	}
}

func newClearCommand(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Drop the raw and cleaned transaction tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			return opts.withService(cmd, func(svc *service.Service) error {
				if err := svc.Loader.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Cleared transaction data")
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm dropping all loaded transactions")
	return cmd
}
