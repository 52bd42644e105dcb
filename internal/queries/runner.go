package queries

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/stephenafamo/scan"
)

// Queryer is the read side of the store.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (scan.Rows, error)
}

// Row is one result row. Index counts from 1.
type Row struct {
	Index  int   `json:"index"`
	Values []any `json:"values"`
}

// Result is the tabular output of a named query.
type Result struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Len returns the number of rows.
func (r *Result) Len() int {
	return len(r.Rows)
}

// Runner executes named queries.
type Runner struct {
	resolver Resolver
	queryer  Queryer
}

func NewRunner(resolver Resolver, queryer Queryer) *Runner {
	return &Runner{resolver: resolver, queryer: queryer}
}

// Execute resolves and runs name. Lookup and store errors are returned as is.
func (r *Runner) Execute(ctx context.Context, name string) (*Result, error) {
	query, err := r.resolver.Resolve(name)
	if err != nil {
		return nil, err
	}

	rows, err := r.queryer.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}

	result := &Result{Name: name, Columns: columns, Rows: []Row{}}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("query %s: %w", name, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		result.Rows = append(result.Rows, Row{Index: len(result.Rows) + 1, Values: values})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query %s: %w", name, err)
	}

	return result, nil
}

// ExecuteLenient behaves like Execute but logs any failure and returns an
// empty result in its place.
func (r *Runner) ExecuteLenient(ctx context.Context, name string) *Result {
	result, err := r.Execute(ctx, name)
	if err != nil {
		logrus.WithError(err).WithField("query", name).Warn("queries.execute.failed")
		return &Result{Name: name, Columns: []string{}, Rows: []Row{}}
	}
	return result
}
