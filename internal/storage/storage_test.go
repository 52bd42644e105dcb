package storage_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/config"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/rawtransaction"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/storagetest"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/transaction"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/uploadrun"
)

var errInjected = errors.New("injected store failure")

func mustDialect(t *testing.T, name string) sqlconfig.Dialect {
	t.Helper()
	d, err := sqlconfig.Lookup(name)
	require.NoError(t, err)
	return d
}

func rawTable(rows ...[]string) *model.Table {
	return &model.Table{Columns: append([]string(nil), model.RequiredColumns...), Rows: rows}
}

func cleaned(item string, amount string) model.CleanedTransaction {
	return model.CleanedTransaction{
		Type:     model.TransactionTypeExpense,
		Date:     time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		Item:     item,
		Amount:   decimal.RequireFromString(amount),
		Currency: "PHP",
		Category: "Food",
		Account:  "Cash",
		Status:   model.StatusReconciled,
	}
}

// inTx runs fn in a write transaction and commits it when fn succeeds.
func inTx(t *testing.T, s *storage.Storage, fn func(w *storage.Writer) error) error {
	t.Helper()
	w, err := s.Write(context.Background())
	require.NoError(t, err)

	if err := fn(w); err != nil {
		require.NoError(t, w.Rollback())
		return err
	}
	return w.Commit()
}

// -- raw tables --

func TestRawTransactions_ReplaceRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	first := rawTable(
		[]string{"Expense", "2024-05-01", "Lunch", "-250.5", "PHP", "Food", "Cash", "Reconciled"},
		[]string{"Income", "2024-05-02", "Pay", "1000", "PHP", "Salary", "Bank", "Pending"},
	)
	second := rawTable(
		[]string{"Transfer", "2024-06-01", "Move", "-75", "PHP", "Transfer", "Bank", "Reconciled"},
	)

	for _, table := range []*model.Table{first, second} {
		err := inTx(t, s, func(w *storage.Writer) error {
			_, err := w.RawTransactions.Load(ctx, table, rawtransaction.TableName, model.ModeReplace)
			return err
		})
		require.NoError(t, err)
	}

	got, err := s.Reader().RawTransactions.ReadAll(ctx, rawtransaction.TableName)
	require.NoError(t, err)
	assert.Equal(t, second.Columns, got.Columns)
	assert.Equal(t, second.Rows, got.Rows, spew.Sdump(got))
}

func TestRawTransactions_AppendAccumulates(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)
	row := []string{"Expense", "2024-05-01", "Lunch", "-250.5", "PHP", "Food", "Cash", "Reconciled"}

	n := rawTable(row, row, row)
	m := rawTable(row, row)

	for _, table := range []*model.Table{n, m} {
		err := inTx(t, s, func(w *storage.Writer) error {
			_, err := w.RawTransactions.Load(ctx, table, rawtransaction.TableName, model.ModeAppend)
			return err
		})
		require.NoError(t, err)
	}

	count, err := s.Reader().RawTransactions.Count(ctx, rawtransaction.TableName)
	require.NoError(t, err)
	assert.Equal(t, n.Len()+m.Len(), count)
}

func TestRawTransactions_EmptyCellsAreNull(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)
	table := &model.Table{
		Columns: []string{"Amount", "Notes"},
		Rows:    [][]string{{"12", ""}, {"", "memo"}},
	}

	err := inTx(t, s, func(w *storage.Writer) error {
		_, err := w.RawTransactions.Load(ctx, table, "raw_notes", model.ModeReplace)
		return err
	})
	require.NoError(t, err)

	rows, err := s.Reader().QueryContext(ctx, `SELECT COUNT(*) FROM "raw_notes" WHERE "Amount" IS NULL OR "Notes" IS NULL`)
	require.NoError(t, err)
	defer rows.Close()
	require.True(t, rows.Next())
	var nulls int
	require.NoError(t, rows.Scan(&nulls))
	assert.Equal(t, 2, nulls)
}

func TestRawTransactions_LargeLoadIsChunked(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	table := rawTable()
	for i := 0; i < 5000; i++ {
		table.Rows = append(table.Rows, []string{"Expense", "2024-05-01", "Item", "-1", "PHP", "Food", "Cash", "Reconciled"})
	}

	err := inTx(t, s, func(w *storage.Writer) error {
		written, err := w.RawTransactions.Load(ctx, table, rawtransaction.TableName, model.ModeReplace)
		assert.Equal(t, 5000, written)
		return err
	})
	require.NoError(t, err)

	count, err := s.Reader().RawTransactions.Count(ctx, rawtransaction.TableName)
	require.NoError(t, err)
	assert.Equal(t, 5000, count)
}

func TestInferColumns(t *testing.T) {
	table := &model.Table{
		Columns: []string{"Int", "Dec", "Text", "Empty", "Mixed"},
		Rows: [][]string{
			{"1", "1.5", "a", "", "1"},
			{"-20", "3", "b", "", "x"},
			{"", "", "", "", ""},
		},
	}

	kinds := map[string]string{}
	for _, c := range rawtransaction.InferColumns(table) {
		kinds[c.Name] = c.Kind.String()
	}
	assert.Equal(t, map[string]string{
		"Int":   "integer",
		"Dec":   "decimal",
		"Text":  "text",
		"Empty": "text",
		"Mixed": "text",
	}, kinds)
}

func TestInferColumns_ContractColumnsArePinned(t *testing.T) {
	table := model.NewTable(append(append([]string{}, model.RequiredColumns...), "Ref")...)
	table.Rows = [][]string{
		{"Expense", "20240103", "007", "-12", "840", "1e2", "0012", "1", "42"},
	}

	kinds := map[string]string{}
	for _, c := range rawtransaction.InferColumns(table) {
		kinds[c.Name] = c.Kind.String()
	}
	assert.Equal(t, "decimal", kinds[model.ColumnAmount])
	for _, name := range []string{model.ColumnDate, model.ColumnName, model.ColumnCurrency,
		model.ColumnCategory, model.ColumnAccount, model.ColumnStatus} {
		assert.Equal(t, "text", kinds[name], name)
	}
	assert.Equal(t, "integer", kinds["Ref"])

	table.Rows[0][3] = "abc"
	for _, c := range rawtransaction.InferColumns(table) {
		if c.Name == model.ColumnAmount {
			assert.Equal(t, "text", c.Kind.String())
		}
	}
}

func TestLoad_NumericLookingTextSurvives(t *testing.T) {
	s := storagetest.New(t)
	ctx := context.Background()

	table := model.NewTable(model.RequiredColumns...)
	table.Rows = [][]string{{"Expense", "2024-01-03", "007", "-12.50", "PHP", "1e2", "0012", "Reconciled"}}
	require.NoError(t, inTx(t, s, func(w *storage.Writer) error {
		_, err := w.RawTransactions.Load(ctx, table, rawtransaction.TableName, model.ModeReplace)
		return err
	}))

	read, err := s.Reader().RawTransactions.ReadAll(ctx, rawtransaction.TableName)
	require.NoError(t, err)
	require.Equal(t, 1, read.Len())
	assert.Equal(t, "007", read.Value(0, model.ColumnName))
	assert.Equal(t, "1e2", read.Value(0, model.ColumnCategory))
	assert.Equal(t, "0012", read.Value(0, model.ColumnAccount))
}

// -- drop --

func TestDropTable_Idempotent(t *testing.T) {
	s := storagetest.New(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		err := inTx(t, s, func(w *storage.Writer) error {
			return w.DropTable(ctx, "never_created")
		})
		assert.NoError(t, err)
	}
}

// -- cleaned table --

func TestTransactions_DeleteAndInsert(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	err := inTx(t, s, func(w *storage.Writer) error {
		if err := w.Transactions.EnsureTable(ctx); err != nil {
			return err
		}
		return w.Transactions.InsertAll(ctx, []model.CleanedTransaction{cleaned("a", "-1.25"), cleaned("b", "-2")})
	})
	require.NoError(t, err)

	err = inTx(t, s, func(w *storage.Writer) error {
		deleted, err := w.Transactions.DeleteAll(ctx)
		assert.Equal(t, int64(2), deleted)
		if err != nil {
			return err
		}
		return w.Transactions.InsertAll(ctx, []model.CleanedTransaction{cleaned("c", "-3.5")})
	})
	require.NoError(t, err)

	rows, err := s.Reader().Transactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "c", rows[0].Item)
	assert.True(t, decimal.RequireFromString("-3.5").Equal(rows[0].Amount))
	assert.True(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC).Equal(rows[0].Date))
	assert.False(t, rows[0].CreatedAt.IsZero())
}

func TestTransactions_FaultAfterDeleteRollsBack(t *testing.T) {
	ctx := context.Background()
	failInserts := false
	s := storagetest.New(t, storage.WithFaultInjector(func(query string) error {
		if failInserts && strings.Contains(query, "INSERT") && strings.Contains(query, transaction.TableName) {
			return errInjected
		}
		return nil
	}))

	err := inTx(t, s, func(w *storage.Writer) error {
		if err := w.Transactions.EnsureTable(ctx); err != nil {
			return err
		}
		return w.Transactions.InsertAll(ctx, []model.CleanedTransaction{cleaned("prior", "-1")})
	})
	require.NoError(t, err)

	failInserts = true
	err = inTx(t, s, func(w *storage.Writer) error {
		if _, err := w.Transactions.DeleteAll(ctx); err != nil {
			return err
		}
		return w.Transactions.InsertAll(ctx, []model.CleanedTransaction{cleaned("new", "-2")})
	})
	require.ErrorIs(t, err, errInjected)

	rows, err := s.Reader().Transactions.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "prior", rows[0].Item)
}

func TestTransactions_InvalidTypeIsConstraintError(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	bad := cleaned("bad", "-1")
	bad.Type = "Refund"

	err := inTx(t, s, func(w *storage.Writer) error {
		if err := w.Transactions.EnsureTable(ctx); err != nil {
			return err
		}
		if err := w.Transactions.InsertAll(ctx, []model.CleanedTransaction{cleaned("ok", "-1")}); err != nil {
			return err
		}
		return w.Transactions.InsertAll(ctx, []model.CleanedTransaction{bad})
	})

	var constraintErr *storage.ConstraintError
	require.ErrorAs(t, err, &constraintErr)

	// the earlier insert of the same transaction is gone as well
	err = inTx(t, s, func(w *storage.Writer) error {
		return w.Transactions.EnsureTable(ctx)
	})
	require.NoError(t, err)
	rows, err := s.Reader().Transactions.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestTransactions_OverlongItemIsConstraintError(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)

	err := inTx(t, s, func(w *storage.Writer) error {
		if err := w.Transactions.EnsureTable(ctx); err != nil {
			return err
		}
		return w.Transactions.InsertAll(ctx, []model.CleanedTransaction{cleaned(strings.Repeat("x", 300), "-1")})
	})

	var constraintErr *storage.ConstraintError
	assert.ErrorAs(t, err, &constraintErr)
}

// -- upload runs --

func TestUploadRuns_InsertAndList(t *testing.T) {
	ctx := context.Background()
	s := storagetest.New(t)
	start := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)

	for i, status := range []uploadrun.Status{uploadrun.StatusSucceeded, uploadrun.StatusRejected} {
		run := &uploadrun.Run{
			Source:      "export.csv",
			Mode:        string(model.ModeAppend),
			Status:      status,
			RawRows:     10 + i,
			CleanedRows: 5,
			StartedAt:   start.Add(time.Duration(i) * time.Hour),
			FinishedAt:  start.Add(time.Duration(i)*time.Hour + time.Second),
		}
		if status == uploadrun.StatusRejected {
			run.Error = "Row 2: Missing Date"
		}
		err := inTx(t, s, func(w *storage.Writer) error {
			return w.UploadRuns.Insert(ctx, run)
		})
		require.NoError(t, err)
		assert.NotEqual(t, "", run.ID.String())
	}

	runs, err := s.Reader().UploadRuns.List(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 2, spew.Sdump(runs))
	assert.Equal(t, uploadrun.StatusRejected, runs[0].Status)
	assert.Equal(t, "Row 2: Missing Date", runs[0].Error)
	assert.True(t, start.Add(time.Hour).Equal(runs[0].StartedAt), runs[0].StartedAt)
	assert.Equal(t, "", runs[1].Error)
	assert.Equal(t, 10, runs[1].RawRows)

	limited, err := s.Reader().UploadRuns.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

// -- lifecycle --

func TestCreateStore_Idempotent(t *testing.T) {
	env := storagetest.Config(t)

	first, err := storage.CreateStore(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.PostMigrationVersion)

	second, err := storage.CreateStore(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, uint(1), second.PreMigrationVersion)
	assert.Equal(t, uint(1), second.PostMigrationVersion)
}

func TestOpen_UnreachableMySQL(t *testing.T) {
	env := &config.Config{
		Dialect:       "mysql",
		MySQLHost:     "127.0.0.1",
		MySQLPort:     "1",
		MySQLUser:     "root",
		MySQLDatabase: "personal_finance_dashboard",
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := storage.Open(ctx, env)
	var connErr *storage.ConnectionError
	assert.ErrorAs(t, err, &connErr)
}

func TestDataSourceName(t *testing.T) {
	env := &config.Config{
		MySQLHost:        "db",
		MySQLPort:        "3306",
		MySQLUser:        "root",
		MySQLPassword:    "pw",
		MySQLDatabase:    "finance",
		PostgresAddress:  "pg",
		PostgresPort:     "5433",
		PostgresDB:       "finance",
		PostgresUsername: "postgres",
		PostgresPassword: "secret",
		SQLitePath:       "/tmp/f.db",
	}

	mysqlDSN := storage.DataSourceName(env, mustDialect(t, "mysql"), true)
	assert.Contains(t, mysqlDSN, "root:pw@tcp(db:3306)/finance")
	assert.Contains(t, mysqlDSN, "parseTime=true")
	assert.Contains(t, storage.DataSourceName(env, mustDialect(t, "mysql"), false), "@tcp(db:3306)/?")

	assert.Equal(t, "postgres://postgres:secret@pg:5433/finance?sslmode=disable",
		storage.DataSourceName(env, mustDialect(t, "postgres"), true))
	assert.Equal(t, "postgres://postgres:secret@pg:5433/postgres?sslmode=disable",
		storage.DataSourceName(env, mustDialect(t, "postgres"), false))
	assert.True(t, strings.HasPrefix(storage.DataSourceName(env, mustDialect(t, "sqlite"), true), "file:/tmp/f.db?"))
}
