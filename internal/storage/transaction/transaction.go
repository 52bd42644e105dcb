package transaction

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/scan"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
)

// TableName is the cleaned transactions table.
const TableName = "transactions"

// Transaction is a stored cleaned record.
type Transaction struct {
	ID int64
	model.CleanedTransaction
	CreatedAt time.Time
}

type transactionRow struct {
	ID        int64              `db:"id"`
	Type      string             `db:"type"`
	Date      sqlconfig.Date     `db:"date"`
	Item      string             `db:"item"`
	Amount    decimal.Decimal    `db:"amount"`
	Currency  string             `db:"currency"`
	Category  string             `db:"category"`
	Account   string             `db:"account"`
	Status    string             `db:"status"`
	CreatedAt sqlconfig.NullTime `db:"created_at"`
}

var selectColumns = []string{"id", "type", "date", "item", "amount", "currency", "category", "account", "status", "created_at"}

func (r transactionRow) toTransaction() Transaction {
	return Transaction{
		ID: r.ID,
		CleanedTransaction: model.CleanedTransaction{
			Type:     model.TransactionType(r.Type),
			Date:     r.Date.Time,
			Item:     r.Item,
			Amount:   r.Amount,
			Currency: r.Currency,
			Category: r.Category,
			Account:  r.Account,
			Status:   r.Status,
		},
		CreatedAt: r.CreatedAt.Time,
	}
}

type Reader struct {
	exec    bob.Executor
	dialect sqlconfig.Dialect
}

func NewReader(exec bob.Executor, dialect sqlconfig.Dialect) *Reader {
	return &Reader{exec: exec, dialect: dialect}
}

// List returns every cleaned row in insertion order.
func (r *Reader) List(ctx context.Context) ([]Transaction, error) {
	query := r.dialect.Select(TableName, selectColumns, "id", false, 0)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[transactionRow]())
	if err != nil {
		return nil, err
	}

	result := make([]Transaction, len(rows))
	for i, row := range rows {
		result[i] = row.toTransaction()
	}
	return result, nil
}

// Writer rebuilds the cleaned table.
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

// EnsureTable creates the cleaned table and its indexes when absent.
func (w *Writer) EnsureTable(ctx context.Context) error {
	for _, stmt := range w.dialect.TransactionsDDL(TableName) {
		if _, err := w.ddl.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DeleteAll removes every cleaned row and returns how many were removed.
func (w *Writer) DeleteAll(ctx context.Context) (int64, error) {
	res, err := bob.Exec(ctx, w.exec, w.dialect.DeleteAll(TableName))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

var insertColumns = []string{"type", "date", "item", "amount", "currency", "category", "account", "status"}

// InsertAll writes rows in batches sized to the dialect's parameter limit.
func (w *Writer) InsertAll(ctx context.Context, rows []model.CleanedTransaction) error {
	batch := w.dialect.MaxParams() / len(insertColumns)

	for start := 0; start < len(rows); start += batch {
		end := start + batch
		if end > len(rows) {
			end = len(rows)
		}

		values := make([][]any, 0, end-start)
		for _, row := range rows[start:end] {
			values = append(values, []any{
				string(row.Type),
				w.dialect.DateArg(row.Date),
				row.Item,
				row.Amount,
				row.Currency,
				row.Category,
				row.Account,
				row.Status,
			})
		}

		if _, err := bob.Exec(ctx, w.exec, w.dialect.Insert(TableName, insertColumns, values)); err != nil {
			return err
		}
	}
	return nil
}
