package storage

import (
	"context"
	"database/sql"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/scan"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
)

// FaultInjector is consulted before every statement issued by a Writer. A non-nil
// return fails the statement with that error instead of sending it to the store.
type FaultInjector func(query string) error

// executor classifies driver errors and applies the fault injector.
type executor struct {
	bob.Executor
	dialect sqlconfig.Dialect
	fault   FaultInjector
}

func (e executor) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if e.fault != nil {
		if err := e.fault(query); err != nil {
			return nil, err
		}
	}
	res, err := e.Executor.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError(e.dialect, err)
	}
	return res, nil
}

func (e executor) QueryContext(ctx context.Context, query string, args ...any) (scan.Rows, error) {
	if e.fault != nil {
		if err := e.fault(query); err != nil {
			return nil, err
		}
	}
	rows, err := e.Executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError(e.dialect, err)
	}
	return rows, nil
}
