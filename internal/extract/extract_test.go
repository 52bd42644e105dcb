package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Type,Date,Name,Amount,Currency,Category,Account,Status,Notes
Expense,2024-01-15,Coffee,-4.50,PHP,Food,Cash,Reconciled,
Income,2024-01-31,"Salary, January",50000,PHP,Salary,Bank,Pending,monthly
`

func TestExtract_PreservesColumnsAndCells(t *testing.T) {
	table, err := Extract(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, []string{"Type", "Date", "Name", "Amount", "Currency", "Category", "Account", "Status", "Notes"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "-4.50", table.Value(0, "Amount"))
	assert.Equal(t, "Salary, January", table.Value(1, "Name"))
	assert.Equal(t, "monthly", table.Value(1, "Notes"))
}

func TestExtract_StripsBOM(t *testing.T) {
	table, err := Extract(strings.NewReader("\xEF\xBB\xBFType,Date\nIncome,2024-01-01\n"))
	require.NoError(t, err)
	assert.Equal(t, "Type", table.Columns[0])
}

func TestExtract_PadsShortRows(t *testing.T) {
	table, err := Extract(strings.NewReader("A,B,C\n1,2\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", ""}, table.Rows[0])
}

func TestExtract_SkipsBlankRows(t *testing.T) {
	table, err := Extract(strings.NewReader("A,B\n1,2\n\n   \n3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestExtract_KeepsDelimiterOnlyRows(t *testing.T) {
	table, err := Extract(strings.NewReader("A,B,C\n1,2,3\n,,\n , ,\n"))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())
	assert.Equal(t, []string{"", "", ""}, table.Rows[1])
	assert.Equal(t, []string{" ", " ", ""}, table.Rows[2])
}

func TestExtract_DuplicateHeaders(t *testing.T) {
	table, err := Extract(strings.NewReader("A,A,B,A\n1,2,3,4\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "A.1", "B", "A.2"}, table.Columns)
}

func TestExtract_EmptyInput(t *testing.T) {
	table, err := Extract(strings.NewReader(""))

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.ErrorIs(t, err, ErrEmptyInput)
	require.NotNil(t, table)
	assert.True(t, table.IsEmpty())
}

func TestExtract_LongRow(t *testing.T) {
	table, err := Extract(strings.NewReader("A,B\n1,2\n1,2,3\n"))

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Contains(t, err.Error(), "line 3")
	assert.True(t, table.IsEmpty())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestExtract_UnreadableSource(t *testing.T) {
	table, err := Extract(failingReader{})

	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.True(t, table.IsEmpty())
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o600))

	table, err := ExtractFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestExtractFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.csv")

	table, err := ExtractFile(path)
	var extractErr *ExtractionError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, path, extractErr.Source)
	assert.True(t, table.IsEmpty())
}
