package rawtransaction

import (
	"context"
	"fmt"

	"github.com/stephenafamo/bob"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
)

// Writer loads extracted tables into raw tables. DML runs on exec; DDL runs on
// ddl, which is the same transaction on backends with transactional DDL.
type Writer struct {
	Reader
	ddl bob.Executor
}

func NewWriter(exec bob.Executor, ddl bob.Executor, dialect sqlconfig.Dialect) *Writer {
	return &Writer{
		Reader: Reader{exec: exec, dialect: dialect},
		ddl:    ddl,
	}
}

// Load writes t into table. Replace drops and recreates the table with a schema
// inferred from t; append creates it only when absent. Returns the rows written.
func (w *Writer) Load(ctx context.Context, t *model.Table, table string, mode model.LoadMode) (int, error) {
	columns := InferColumns(t)

	switch mode {
	case model.ModeReplace:
		if _, err := w.ddl.ExecContext(ctx, sqlconfig.DropTableSQL(w.dialect, table)); err != nil {
			return 0, fmt.Errorf("drop %s: %w", table, err)
		}
	case model.ModeAppend:
	default:
		return 0, fmt.Errorf("unknown load mode %q", mode)
	}

	if len(columns) == 0 {
		return 0, fmt.Errorf("load %s: table has no columns", table)
	}
	if _, err := w.ddl.ExecContext(ctx, sqlconfig.CreateTableSQL(w.dialect, table, columns)); err != nil {
		return 0, fmt.Errorf("create %s: %w", table, err)
	}

	names := make([]string, len(columns))
	for i, c := range columns {
		names[i] = c.Name
	}

	batch := w.dialect.MaxParams() / len(columns)
	if batch < 1 {
		batch = 1
	}

	for start := 0; start < t.Len(); start += batch {
		end := start + batch
		if end > t.Len() {
			end = t.Len()
		}

		values := make([][]any, 0, end-start)
		for _, row := range t.Rows[start:end] {
			rowValues := make([]any, len(columns))
			for i, c := range columns {
				rowValues[i] = cellValue(row[i], c.Kind)
			}
			values = append(values, rowValues)
		}

		if _, err := bob.Exec(ctx, w.exec, w.dialect.Insert(table, names, values)); err != nil {
			return start, fmt.Errorf("insert into %s: %w", table, err)
		}
	}

	return t.Len(), nil
}
