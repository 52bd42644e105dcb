package model

import (
	"fmt"
	"strings"
)

// Source column names of a transaction export.
const (
	ColumnType     = "Type"
	ColumnDate     = "Date"
	ColumnName     = "Name"
	ColumnAmount   = "Amount"
	ColumnCurrency = "Currency"
	ColumnCategory = "Category"
	ColumnAccount  = "Account"
	ColumnStatus   = "Status"
)

// RequiredColumns is the ordered set of columns every export must carry.
var RequiredColumns = []string{
	ColumnType,
	ColumnDate,
	ColumnName,
	ColumnAmount,
	ColumnCurrency,
	ColumnCategory,
	ColumnAccount,
	ColumnStatus,
}

// CleanedColumns are the target names of RequiredColumns, position for position.
var CleanedColumns = []string{
	"type",
	"date",
	"item",
	"amount",
	"currency",
	"category",
	"account",
	"status",
}

// CleanedName maps a source column to its cleaned name.
func CleanedName(column string) (string, bool) {
	for i, c := range RequiredColumns {
		if c == column {
			return CleanedColumns[i], true
		}
	}
	return "", false
}

// SourceName maps a cleaned column back to its source name.
func SourceName(column string) (string, bool) {
	for i, c := range CleanedColumns {
		if c == column {
			return RequiredColumns[i], true
		}
	}
	return "", false
}

// MissingColumns returns the required columns absent from t, in contract order.
func MissingColumns(t *Table) []string {
	var missing []string
	for _, c := range RequiredColumns {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}

// CheckColumns returns a *SchemaError when t lacks any required column.
func CheckColumns(t *Table) error {
	missing := MissingColumns(t)
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// SchemaError reports required columns absent from an input table.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("Missing required columns: %s", strings.Join(e.Missing, ", "))
}
