package actions

import (
	"context"
	"time"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/uploadrun"
)

// RecordUpload stores an upload history entry. Load and Sync, when set, are the
// actions that ran earlier in the same Sequence; their row counts are copied
// onto Run before it is written.
type RecordUpload struct {
	Run  *uploadrun.Run
	Load *LoadRaw
	Sync *SyncCleaned
}

func (r *RecordUpload) Perform(ctx context.Context, writer *storage.Writer) error {
	if r.Load != nil {
		r.Run.RawRows = r.Load.Loaded
	}
	if r.Sync != nil {
		r.Run.CleanedRows = r.Sync.Inserted
	}
	if r.Run.FinishedAt.IsZero() {
		r.Run.FinishedAt = time.Now().UTC()
	}
	return writer.UploadRuns.Insert(ctx, r.Run)
}
