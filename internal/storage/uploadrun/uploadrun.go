package uploadrun

import (
	"context"
	"database/sql"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/scan"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/sqlconfig"
)

// TableName is created by the schema migrations.
const TableName = "upload_runs"

type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
	StatusRejected  Status = "rejected"
)

// Run records one upload attempt.
type Run struct {
	ID          uuid.UUID
	Source      string
	Mode        string
	Status      Status
	RawRows     int
	CleanedRows int
	Error       string
	StartedAt   time.Time
	FinishedAt  time.Time
}

type runRow struct {
	ID          uuid.UUID          `db:"id"`
	Source      string             `db:"source"`
	Mode        string             `db:"mode"`
	Status      string             `db:"status"`
	RawRows     int                `db:"raw_rows"`
	CleanedRows int                `db:"cleaned_rows"`
	Error       sql.NullString     `db:"error_message"`
	StartedAt   sqlconfig.NullTime `db:"started_at"`
	FinishedAt  sqlconfig.NullTime `db:"finished_at"`
}

var columns = []string{"id", "source", "mode", "status", "raw_rows", "cleaned_rows", "error_message", "started_at", "finished_at"}

type Reader struct {
	exec    bob.Executor
	dialect sqlconfig.Dialect
}

func NewReader(exec bob.Executor, dialect sqlconfig.Dialect) *Reader {
	return &Reader{exec: exec, dialect: dialect}
}

// List returns the most recent runs first. A limit of zero returns every run.
func (r *Reader) List(ctx context.Context, limit int) ([]Run, error) {
	query := r.dialect.Select(TableName, columns, "started_at", true, limit)
	rows, err := bob.All(ctx, r.exec, query, scan.StructMapper[runRow]())
	if err != nil {
		return nil, err
	}

	runs := make([]Run, len(rows))
	for i, row := range rows {
		runs[i] = Run{
			ID:          row.ID,
			Source:      row.Source,
			Mode:        row.Mode,
			Status:      Status(row.Status),
			RawRows:     row.RawRows,
			CleanedRows: row.CleanedRows,
			Error:       row.Error.String,
			StartedAt:   row.StartedAt.Time,
			FinishedAt:  row.FinishedAt.Time,
		}
	}
	return runs, nil
}

type Writer struct {
	Reader
}

func NewWriter(exec bob.Executor, dialect sqlconfig.Dialect) *Writer {
	return &Writer{Reader: Reader{exec: exec, dialect: dialect}}
}

// Insert stores run, assigning an ID when it has none.
func (w *Writer) Insert(ctx context.Context, run *Run) error {
	if run.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return err
		}
		run.ID = id
	}

	var errMessage any
	if run.Error != "" {
		errMessage = run.Error
	}

	query := w.dialect.Insert(TableName, columns, [][]any{{
		run.ID.String(),
		run.Source,
		run.Mode,
		string(run.Status),
		run.RawRows,
		run.CleanedRows,
		errMessage,
		w.dialect.TimeArg(run.StartedAt),
		w.dialect.TimeArg(run.FinishedAt),
	}})
	_, err := bob.Exec(ctx, w.exec, query)
	return err
}
