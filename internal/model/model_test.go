package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullTable() *Table {
	return &Table{
		Columns: append([]string{"Notes"}, RequiredColumns...),
		Rows: [][]string{
			{"n1", "Expense", "01/15/2024", "Coffee", "-4.50", "PHP", "Food", "Cash", "Reconciled"},
		},
	}
}

// -- contract --

func TestMissingColumns_None(t *testing.T) {
	assert.Empty(t, MissingColumns(fullTable()))
	assert.NoError(t, CheckColumns(fullTable()))
}

func TestMissingColumns_ContractOrder(t *testing.T) {
	table := NewTable("Status", "Name", "Type", "Amount")

	missing := MissingColumns(table)
	assert.Equal(t, []string{"Date", "Currency", "Category", "Account"}, missing)

	var schemaErr *SchemaError
	require.ErrorAs(t, CheckColumns(table), &schemaErr)
	assert.Equal(t, missing, schemaErr.Missing)
	assert.Equal(t, "Missing required columns: Date, Currency, Category, Account", schemaErr.Error())
}

func TestCleanedName_RoundTrip(t *testing.T) {
	for _, c := range RequiredColumns {
		cleaned, ok := CleanedName(c)
		require.True(t, ok)
		source, ok := SourceName(cleaned)
		require.True(t, ok)
		assert.Equal(t, c, source)
	}
	_, ok := CleanedName("Notes")
	assert.False(t, ok)
}

// -- table --

func TestTable_Select(t *testing.T) {
	selected := fullTable().Select("Name", "Missing")

	assert.Equal(t, []string{"Name", "Missing"}, selected.Columns)
	assert.Equal(t, [][]string{{"Coffee", ""}}, selected.Rows)
}

func TestTable_Head(t *testing.T) {
	table := fullTable()
	assert.Equal(t, 1, table.Head(10).Len())
	assert.Equal(t, 0, table.Head(0).Len())
}

// -- parsing --

func TestParseDate_Layouts(t *testing.T) {
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2024-01-15", "01/15/2024", "2024-01-15 18:30:00", " Jan 15, 2024 ", "15/01/2024"} {
		got, err := ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}
}

func TestParseDate_AmbiguousIsMonthFirst(t *testing.T) {
	got, err := ParseDate("02/03/2024")
	require.NoError(t, err)
	assert.True(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC).Equal(got))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("not-a-date")
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	amount, err := ParseAmount(" -12.50 ")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("-12.5").Equal(amount))

	_, err = ParseAmount("twelve")
	assert.Error(t, err)
}

// -- records --

func TestNewRawTransaction_Clean(t *testing.T) {
	raw, err := NewRawTransaction(fullTable(), 0)
	require.NoError(t, err)

	cleaned := raw.Clean()
	assert.Equal(t, TransactionTypeExpense, cleaned.Type)
	assert.Equal(t, "Coffee", cleaned.Item)
	assert.Equal(t, []string{"Expense", "2024-01-15", "Coffee", "-4.5", "PHP", "Food", "Cash", "Reconciled"}, cleaned.Values())
}

func TestNewRawTransaction_BadAmount(t *testing.T) {
	table := fullTable()
	table.Rows[0][4] = "abc"

	_, err := NewRawTransaction(table, 0)
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, ColumnAmount, fieldErr.Column)
	assert.Equal(t, "abc", fieldErr.Value)
}

func TestTransactionType_Valid(t *testing.T) {
	assert.True(t, TransactionTypeTransfer.Valid())
	assert.False(t, TransactionType("income").Valid())
	assert.True(t, KnownStatus("Cleared"))
	assert.False(t, KnownStatus("reconciled"))
}
