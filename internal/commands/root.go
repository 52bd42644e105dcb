package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "financectl",
		Short: "Load personal finance exports and query the results",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.dialect, "dialect", "", "store dialect: mysql, postgres or sqlite (default from FINANCE_DB_DIALECT)")
	rootCmd.PersistentFlags().StringVar(&opts.sqlitePath, "sqlite-path", "", "SQLite database file (default from SQLITE_PATH)")
	rootCmd.PersistentFlags().StringVar(&opts.queriesFile, "queries", "", "query definitions file (default: built-in queries)")

	rootCmd.AddCommand(
		newSetupCommand(opts),
		newPingCommand(opts),
		newValidateCommand(),
		newUploadCommand(opts),
		newQueryCommand(opts),
		newHistoryCommand(opts),
		newExportCommand(opts),
		newClearCommand(opts),
	)

	return rootCmd
}
