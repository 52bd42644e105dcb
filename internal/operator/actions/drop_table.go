package actions

import (
	"context"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

// DropTable drops each named table. Missing tables are not an error.
type DropTable struct {
	Names []string
}

func (d *DropTable) Perform(ctx context.Context, writer *storage.Writer) error {
	for _, name := range d.Names {
		if err := writer.DropTable(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
