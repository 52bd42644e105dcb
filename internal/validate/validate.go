package validate

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
)

// headerOffset converts a 0-based data row index into its 1-based line in the file.
const headerOffset = 2

// Issue is one finding against the input. Row is the file line, or 0 for findings
// about the table as a whole.
type Issue struct {
	Row     int    `json:"row,omitempty"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Row == 0 {
		return i.Message
	}
	return fmt.Sprintf("Row %d: %s", i.Row, i.Message)
}

// Summary describes the parseable content of a table.
type Summary struct {
	TotalRows      int             `json:"totalRows"`
	ReconciledRows int             `json:"reconciledRows"`
	TypeCounts     map[string]int  `json:"typeCounts"`
	FirstDate      *time.Time      `json:"firstDate,omitempty"`
	LastDate       *time.Time      `json:"lastDate,omitempty"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
}

// Report is the outcome of validating a table. Errors block loading, warnings do not.
type Report struct {
	Valid         bool    `json:"valid"`
	Errors        []Issue `json:"errors"`
	Warnings      []Issue `json:"warnings"`
	DuplicateRows int     `json:"duplicateRows"`
	Summary       Summary `json:"summary"`

	schemaErr *model.SchemaError
}

// Err returns the blocking failure of the report: a *model.SchemaError when
// required columns are missing, a *ContentValidationError when rows are invalid.
func (r *Report) Err() error {
	if r.schemaErr != nil {
		return r.schemaErr
	}
	if len(r.Errors) > 0 {
		return &ContentValidationError{Issues: r.Errors, Warnings: r.Warnings}
	}
	return nil
}

// ContentValidationError carries every row-level error found in a table.
type ContentValidationError struct {
	Issues   []Issue
	Warnings []Issue
}

func (e *ContentValidationError) Error() string {
	messages := make([]string, len(e.Issues))
	for i, issue := range e.Issues {
		messages[i] = issue.String()
	}
	return fmt.Sprintf("%d validation errors: %s", len(e.Issues), strings.Join(messages, "; "))
}

// Validate checks t against the transaction contract. A structural failure stops
// validation; otherwise every row is checked and every finding is collected.
// t is never modified.
func Validate(t *model.Table) *Report {
	report := &Report{
		Errors:   []Issue{},
		Warnings: []Issue{},
		Summary:  Summary{TypeCounts: map[string]int{}},
	}

	if missing := model.MissingColumns(t); len(missing) > 0 {
		report.schemaErr = &model.SchemaError{Missing: missing}
		report.Errors = append(report.Errors, Issue{Message: report.schemaErr.Error()})
		return report
	}

	if t.IsEmpty() {
		report.Errors = append(report.Errors, Issue{Message: "CSV file is empty"})
		return report
	}

	for i := range t.Rows {
		checkRow(t, i, report)
	}

	report.DuplicateRows = countDuplicates(t)
	if report.DuplicateRows > 0 {
		report.Warnings = append(report.Warnings, Issue{
			Message: fmt.Sprintf("Found %d duplicate rows", report.DuplicateRows),
		})
	}

	report.Summary.TotalRows = t.Len()
	report.Valid = len(report.Errors) == 0
	return report
}

func checkRow(t *model.Table, i int, report *Report) {
	row := i + headerOffset
	addError := func(format string, args ...any) {
		report.Errors = append(report.Errors, Issue{Row: row, Message: fmt.Sprintf(format, args...)})
	}

	txType := t.Value(i, model.ColumnType)
	switch {
	case strings.TrimSpace(txType) == "":
		addError("Missing Type")
	case !model.TransactionType(txType).Valid():
		addError("Invalid Type '%s'", txType)
	default:
		report.Summary.TypeCounts[txType]++
	}

	dateText := t.Value(i, model.ColumnDate)
	if strings.TrimSpace(dateText) == "" {
		addError("Missing Date")
	} else if date, err := model.ParseDate(dateText); err != nil {
		addError("Invalid Date format '%s'", dateText)
	} else {
		report.Summary.observeDate(date)
	}

	amountText := t.Value(i, model.ColumnAmount)
	if strings.TrimSpace(amountText) == "" {
		addError("Missing Amount")
	} else if amount, err := model.ParseAmount(amountText); err != nil {
		addError("Invalid Amount '%s'", amountText)
	} else {
		report.Summary.TotalAmount = report.Summary.TotalAmount.Add(amount)
	}

	for _, field := range []string{model.ColumnName, model.ColumnCategory, model.ColumnAccount} {
		if strings.TrimSpace(t.Value(i, field)) == "" {
			addError("Missing %s", field)
		}
	}

	status := t.Value(i, model.ColumnStatus)
	if status == model.StatusReconciled {
		report.Summary.ReconciledRows++
	}
	if strings.TrimSpace(status) != "" && !model.KnownStatus(status) {
		report.Warnings = append(report.Warnings, Issue{
			Row:     row,
			Message: fmt.Sprintf("Unusual Status '%s'", status),
		})
	}
}

func (s *Summary) observeDate(date time.Time) {
	if s.FirstDate == nil || date.Before(*s.FirstDate) {
		d := date
		s.FirstDate = &d
	}
	if s.LastDate == nil || date.After(*s.LastDate) {
		d := date
		s.LastDate = &d
	}
}

// countDuplicates counts rows equal, cell for cell, to an earlier row.
func countDuplicates(t *model.Table) int {
	seen := make(map[string]struct{}, t.Len())
	duplicates := 0
	for _, row := range t.Rows {
		key := strings.Join(row, "\x1f")
		if _, ok := seen[key]; ok {
			duplicates++
			continue
		}
		seen[key] = struct{}{}
	}
	return duplicates
}
