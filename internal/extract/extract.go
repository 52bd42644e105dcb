package extract

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrEmptyInput is returned when the source has no header row.
var ErrEmptyInput = errors.New("CSV file is empty")

// ExtractionError reports a source that could not be read as delimited text.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// ExtractFile reads the CSV file at path. See Extract.
func ExtractFile(path string) (*model.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.NewTable(), &ExtractionError{Source: path, Err: err}
	}
	defer f.Close()

	return extract(path, f)
}

// Extract reads comma separated text with a header row into a table. Cells keep
// their original text. On failure the returned table is empty and the error is an
// *ExtractionError.
func Extract(r io.Reader) (*model.Table, error) {
	return extract("input", r)
}

func extract(source string, r io.Reader) (*model.Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.NewTable(), &ExtractionError{Source: source, Err: err}
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return model.NewTable(), &ExtractionError{Source: source, Err: ErrEmptyInput}
	}
	if err != nil {
		return model.NewTable(), &ExtractionError{Source: source, Err: err}
	}

	table := &model.Table{
		Columns: dedupeHeader(header),
		Rows:    [][]string{},
	}

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return model.NewTable(), &ExtractionError{Source: source, Err: err}
		}
		if isBlank(record) {
			continue
		}
		if len(record) > len(table.Columns) {
			line, _ := reader.FieldPos(0)
			return model.NewTable(), &ExtractionError{
				Source: source,
				Err:    fmt.Errorf("line %d: expected %d fields, found %d", line, len(table.Columns), len(record)),
			}
		}
		for len(record) < len(table.Columns) {
			record = append(record, "")
		}
		table.Rows = append(table.Rows, record)
	}

	return table, nil
}

// dedupeHeader suffixes repeated column names as Name.1, Name.2 ...
func dedupeHeader(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, name := range header {
		n, ok := seen[name]
		if !ok {
			seen[name] = 1
			out[i] = name
			continue
		}
		seen[name] = n + 1
		out[i] = name + "." + strconv.Itoa(n)
	}
	return out
}

// isBlank reports a whitespace-only line. A record of empty cells between
// delimiters is a row and is kept.
func isBlank(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}
