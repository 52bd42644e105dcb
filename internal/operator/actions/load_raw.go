package actions

import (
	"context"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/rawtransaction"
)

// LoadRaw writes an extracted table into a raw table.
type LoadRaw struct {
	Table       *model.Table
	Destination string
	Mode        model.LoadMode

	// Loaded is set to the number of rows written once Perform succeeds.
	Loaded int
}

func (l *LoadRaw) Perform(ctx context.Context, writer *storage.Writer) error {
	destination := l.Destination
	if destination == "" {
		destination = rawtransaction.TableName
	}

	loaded, err := writer.RawTransactions.Load(ctx, l.Table, destination, l.Mode)
	if err != nil {
		return err
	}
	l.Loaded = loaded
	return nil
}
