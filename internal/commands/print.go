package commands

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/queries"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/validate"
)

func printTable(w io.Writer, columns []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func printPreview(w io.Writer, t *model.Table) error {
	fmt.Fprintf(w, "Preview (%d of %d rows):\n", len(t.Head(10).Rows), t.Len())
	return printTable(w, t.Columns, t.Head(10).Rows)
}

func printResult(w io.Writer, result *queries.Result) error {
	columns := append([]string{""}, result.Columns...)
	rows := make([][]string, len(result.Rows))
	for i, row := range result.Rows {
		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, fmt.Sprint(row.Index))
		for _, v := range row.Values {
			cells = append(cells, sqlconfig.CellText(v))
		}
		rows[i] = cells
	}
	return printTable(w, columns, rows)
}

func printReport(w io.Writer, report *validate.Report) {
	s := report.Summary
	fmt.Fprintf(w, "Rows: %d (reconciled: %d)\n", s.TotalRows, s.ReconciledRows)
	if s.FirstDate != nil && s.LastDate != nil {
		fmt.Fprintf(w, "Dates: %s to %s\n", s.FirstDate.Format(model.DateLayout), s.LastDate.Format(model.DateLayout))
	}
	if s.TotalRows > 0 {
		fmt.Fprintf(w, "Total amount: %s\n", s.TotalAmount.StringFixed(2))
	}

	for _, issue := range report.Errors {
		fmt.Fprintf(w, "ERROR   %s\n", issue)
	}
	for _, issue := range report.Warnings {
		fmt.Fprintf(w, "WARNING %s\n", issue)
	}
	if report.Valid {
		fmt.Fprintln(w, "Validation passed")
	} else {
		fmt.Fprintln(w, "Validation failed")
	}
}
