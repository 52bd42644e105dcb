package transform

import (
	"errors"
	"fmt"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
)

// TransformError reports a retained row whose date or amount could not be coerced.
type TransformError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("transform row %d: invalid %s %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// Transform keeps the reconciled rows of t and converts them into cleaned records.
// Extra columns are ignored and text fields are passed through untouched. Any
// retained row that fails coercion aborts the whole transform.
func Transform(t *model.Table) ([]model.CleanedTransaction, error) {
	if err := model.CheckColumns(t); err != nil {
		return nil, err
	}

	selected := t.Select(model.RequiredColumns...)
	cleaned := make([]model.CleanedTransaction, 0, selected.Len())
	for i := range selected.Rows {
		if selected.Value(i, model.ColumnStatus) != model.StatusReconciled {
			continue
		}

		raw, err := model.NewRawTransaction(selected, i)
		if err != nil {
			transformErr := &TransformError{Row: i + 2, Err: err}
			var fieldErr *model.FieldError
			if errors.As(err, &fieldErr) {
				transformErr.Column = fieldErr.Column
				transformErr.Value = fieldErr.Value
				transformErr.Err = fieldErr.Err
			}
			return nil, transformErr
		}
		cleaned = append(cleaned, raw.Clean())
	}

	return cleaned, nil
}

// Table renders cleaned records with the lowercase cleaned column names.
func Table(rows []model.CleanedTransaction) *model.Table {
	table := model.NewTable(model.CleanedColumns...)
	for _, row := range rows {
		table.Rows = append(table.Rows, row.Values())
	}
	return table
}

// ToRawTable renders cleaned records back under the source column names so the
// output can be fed to Transform again.
func ToRawTable(rows []model.CleanedTransaction) *model.Table {
	table := Table(rows)
	table.Columns = append([]string(nil), model.RequiredColumns...)
	return table
}

// TableToTable is Transform for callers working on tables only.
func TableToTable(t *model.Table) (*model.Table, error) {
	rows, err := Transform(t)
	if err != nil {
		return model.NewTable(model.CleanedColumns...), err
	}
	return Table(rows), nil
}
