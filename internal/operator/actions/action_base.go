package actions

import (
	"context"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// Sequence performs its actions in order inside the same transaction.
type Sequence []IAction

func (s Sequence) Perform(ctx context.Context, writer *storage.Writer) error {
	for _, action := range s {
		if err := action.Perform(ctx, writer); err != nil {
			return err
		}
	}
	return nil
}
