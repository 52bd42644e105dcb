package storage

import (
	"context"

	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/scan"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/rawtransaction"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/transaction"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/uploadrun"
)

type Reader struct {
	exec bob.Executor

	RawTransactions *rawtransaction.Reader
	Transactions    *transaction.Reader
	UploadRuns      *uploadrun.Reader
}

func NewReader(exec bob.Executor, dialect sqlconfig.Dialect) *Reader {
	return &Reader{
		exec:            exec,
		RawTransactions: rawtransaction.NewReader(exec, dialect),
		Transactions:    transaction.NewReader(exec, dialect),
		UploadRuns:      uploadrun.NewReader(exec, dialect),
	}
}

// QueryContext runs an arbitrary read-only statement.
func (r *Reader) QueryContext(ctx context.Context, query string, args ...any) (scan.Rows, error) {
	return r.exec.QueryContext(ctx, query, args...)
}
