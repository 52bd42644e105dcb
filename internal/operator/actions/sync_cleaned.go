package actions

import (
	"context"
	"fmt"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/rawtransaction"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/transform"
)

// SyncCleaned rebuilds the cleaned table from the current raw table. The delete
// and the inserts share the caller's transaction.
type SyncCleaned struct {
	// Source is the raw table to read. Empty means raw_transactions.
	Source string

	Deleted  int64
	Inserted int
}

func (s *SyncCleaned) Perform(ctx context.Context, writer *storage.Writer) error {
	source := s.Source
	if source == "" {
		source = rawtransaction.TableName
	}

	if err := writer.Transactions.EnsureTable(ctx); err != nil {
		return fmt.Errorf("ensure cleaned table: %w", err)
	}

	raw, err := writer.RawTransactions.ReadAll(ctx, source)
	if err != nil {
		return fmt.Errorf("read %s: %w", source, err)
	}

	cleaned, err := transform.Transform(raw)
	if err != nil {
		return err
	}

	deleted, err := writer.Transactions.DeleteAll(ctx)
	if err != nil {
		return fmt.Errorf("clear cleaned table: %w", err)
	}

	if err := writer.Transactions.InsertAll(ctx, cleaned); err != nil {
		return fmt.Errorf("insert cleaned rows: %w", err)
	}

	s.Deleted = deleted
	s.Inserted = len(cleaned)
	return nil
}
