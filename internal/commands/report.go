package commands

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/queries"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/rawtransaction"
)

func newQueryCommand(opts *globalOptions) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "query <name>",
		Short: "Run a named report query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withService(cmd, func(svc *service.Service) error {
				var result *queries.Result
				if strict {
					var err error
					if result, err = svc.Query.Query(cmd.Context(), args[0]); err != nil {
						return err
					}
				} else {
					result = svc.Query.QueryLenient(cmd.Context(), args[0])
				}
				return printResult(cmd.OutOrStdout(), result)
			})
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "fail instead of printing an empty result")
	return cmd
}

func newHistoryCommand(opts *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent uploads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.withService(cmd, func(svc *service.Service) error {
				runs, err := svc.Query.History(cmd.Context(), limit)
				if err != nil {
					return err
				}

				rows := make([][]string, len(runs))
				for i, run := range runs {
					rows[i] = []string{
						run.StartedAt.Local().Format("2006-01-02 15:04:05"),
						string(run.Status),
						run.Mode,
						run.Source,
						strconv.Itoa(run.RawRows),
						strconv.Itoa(run.CleanedRows),
						run.Error,
					}
				}
				return printTable(cmd.OutOrStdout(),
					[]string{"STARTED", "STATUS", "MODE", "SOURCE", "RAW", "CLEANED", "ERROR"}, rows)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of uploads to list, 0 for all")
	return cmd
}

func newExportCommand(opts *globalOptions) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export [table]",
		Short: "Write a stored table as CSV",
		Long:  "Write a stored table as CSV. The table defaults to " + rawtransaction.TableName + ".",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table := rawtransaction.TableName
			if len(args) == 1 {
				table = args[0]
			}

			return opts.withService(cmd, func(svc *service.Service) error {
				var w io.Writer = cmd.OutOrStdout()
				if outPath != "" {
					f, err := os.Create(outPath)
					if err != nil {
						return err
					}
					defer f.Close()
					w = f
				}

				n, err := svc.Query.Export(cmd.Context(), table, w)
				if err != nil {
					return err
				}
				if outPath != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "Exported %d rows to %s\n", n, outPath)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: stdout)")
	return cmd
}
