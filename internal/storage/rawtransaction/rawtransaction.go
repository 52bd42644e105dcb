package rawtransaction

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
)

// TableName is the default destination of raw uploads.
const TableName = "raw_transactions"

// InferColumns picks a storage kind per column. Contract columns are pinned:
// Amount is decimal and the rest are text, so text such as "007" survives the
// round trip unchanged. Amount falls back to text when a cell is not numeric.
// Extra columns are integer when every non-empty cell is an integer, decimal
// when every non-empty cell is numeric, text otherwise. Empty cells are ignored
// and an all-empty column is text.
func InferColumns(t *model.Table) []sqlconfig.Column {
	columns := make([]sqlconfig.Column, len(t.Columns))
	for i, name := range t.Columns {
		columns[i] = sqlconfig.Column{Name: name, Kind: columnKind(t, i, name)}
	}
	return columns
}

func columnKind(t *model.Table, col int, name string) sqlconfig.ColumnKind {
	switch {
	case name == model.ColumnAmount:
		if inferKind(t, col) == sqlconfig.KindText {
			return sqlconfig.KindText
		}
		return sqlconfig.KindDecimal
	case slices.Contains(model.RequiredColumns, name):
		return sqlconfig.KindText
	default:
		return inferKind(t, col)
	}
}

func inferKind(t *model.Table, col int) sqlconfig.ColumnKind {
	seen := false
	kind := sqlconfig.KindInteger
	for _, row := range t.Rows {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		seen = true
		if kind == sqlconfig.KindInteger {
			if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
				continue
			}
			kind = sqlconfig.KindDecimal
		}
		if _, err := decimal.NewFromString(cell); err != nil {
			return sqlconfig.KindText
		}
	}
	if !seen {
		return sqlconfig.KindText
	}
	return kind
}

// cellValue converts a cell into the bind value for a column of the given kind.
func cellValue(cell string, kind sqlconfig.ColumnKind) any {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return nil
	}
	switch kind {
	case sqlconfig.KindInteger:
		v, _ := strconv.ParseInt(trimmed, 10, 64)
		return v
	case sqlconfig.KindDecimal:
		return decimal.RequireFromString(trimmed)
	default:
		return cell
	}
}

// Reader reads raw tables back as text tables.
type Reader struct {
	exec    bob.Executor
	dialect sqlconfig.Dialect
}

func NewReader(exec bob.Executor, dialect sqlconfig.Dialect) *Reader {
	return &Reader{exec: exec, dialect: dialect}
}

// ReadAll returns every row of table with each value rendered as cell text.
func (r *Reader) ReadAll(ctx context.Context, table string) (*model.Table, error) {
	rows, err := r.exec.QueryContext(ctx, "SELECT * FROM "+r.dialect.QuoteIdent(table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	result := model.NewTable(columns...)
	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for i := range values {
		pointers[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(pointers...); err != nil {
			return nil, err
		}
		cells := make([]string, len(columns))
		for i, v := range values {
			cells[i] = sqlconfig.CellText(v)
		}
		result.Rows = append(result.Rows, cells)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Count returns the number of rows in table.
func (r *Reader) Count(ctx context.Context, table string) (int, error) {
	rows, err := r.exec.QueryContext(ctx, "SELECT COUNT(*) FROM "+r.dialect.QuoteIdent(table))
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, err
		}
	}
	return count, rows.Err()
}
