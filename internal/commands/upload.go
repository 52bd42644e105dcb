package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/extract"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/validate"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file.csv>",
		Short: "Check a CSV export against the schema contract without loading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := extract.ExtractFile(args[0])
			if err != nil {
				return err
			}

			report := validate.Validate(table)
			out := cmd.OutOrStdout()
			if err := printPreview(out, table); err != nil {
				return err
			}
			fmt.Fprintln(out)
			printReport(out, report)
			return report.Err()
		},
	}
}

func newUploadCommand(opts *globalOptions) *cobra.Command {
	var (
		mode   string
		source string
	)

	cmd := &cobra.Command{
		Use:   "upload <file.csv>",
		Short: "Validate a CSV export and load it into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loadMode, err := model.ParseLoadMode(mode)
			if err != nil {
				return err
			}
			if source == "" {
				source = filepath.Base(args[0])
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			return opts.withService(cmd, func(svc *service.Service) error {
				result, err := svc.Pipeline.Upload(cmd.Context(), service.UploadRequest{
					Body:   f,
					Source: source,
					Mode:   loadMode,
				})
				out := cmd.OutOrStdout()
				if result != nil && result.Report != nil {
					printReport(out, result.Report)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Loaded %d raw rows, %d cleaned rows (run %s)\n",
					result.RawRows, result.CleanedRows, result.RunID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(model.ModeAppend), "load mode: append or replace")
	cmd.Flags().StringVar(&source, "source", "", "label recorded in upload history (default: file name)")
	return cmd
}
