package storage

import (
	"context"

	"github.com/stephenafamo/bob"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/rawtransaction"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/transaction"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/uploadrun"
)

type Writer struct {
	tx      bob.Tx
	ddl     bob.Executor
	dialect sqlconfig.Dialect

	RawTransactions *rawtransaction.Writer
	Transactions    *transaction.Writer
	UploadRuns      *uploadrun.Writer
}

func NewWriter(tx bob.Tx, exec bob.Executor, ddl bob.Executor, dialect sqlconfig.Dialect) *Writer {
	return &Writer{
		tx:              tx,
		ddl:             ddl,
		dialect:         dialect,
		RawTransactions: rawtransaction.NewWriter(exec, ddl, dialect),
		Transactions:    transaction.NewWriter(exec, ddl, dialect),
		UploadRuns:      uploadrun.NewWriter(exec, dialect),
	}
}

// DropTable removes table. Dropping a missing table succeeds.
func (w *Writer) DropTable(ctx context.Context, table string) error {
	_, err := w.ddl.ExecContext(ctx, sqlconfig.DropTableSQL(w.dialect, table))
	return err
}

func (w *Writer) Commit() error {
	return classifyError(w.dialect, w.tx.Commit(context.Background()))
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
