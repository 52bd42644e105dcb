package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/extract"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/logging"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/operator/actions"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage/uploadrun"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/transform"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/validate"
)

const (
	// PreviewRows is how many extracted rows an upload echoes back.
	PreviewRows = 10

	maxSourceLength = 255
	maxErrorLength  = 4000
)

// UploadRequest is one CSV upload.
type UploadRequest struct {
	Body   io.Reader
	Source string
	Mode   model.LoadMode
}

// UploadResult describes a finished or rejected upload. Report and Preview are
// set once the input has been extracted.
type UploadResult struct {
	RunID       uuid.UUID
	Report      *validate.Report
	Preview     *model.Table
	RawRows     int
	CleanedRows int
}

// PipelineService runs extract, validate, transform and load as one upload.
type PipelineService struct {
	loader *LoaderService
}

func NewPipelineService(loader *LoaderService) *PipelineService {
	return &PipelineService{loader: loader}
}

// Validate extracts r and checks it against the schema contract without
// writing anything.
func (s *PipelineService) Validate(ctx context.Context, r io.Reader) (*model.Table, *validate.Report, error) {
	stopExtract := logging.StartTiming(ctx, "extractMs")
	table, err := extract.Extract(r)
	stopExtract()
	if err != nil {
		return table, nil, err
	}

	stopValidate := logging.StartTiming(ctx, "validateMs")
	report := validate.Validate(table)
	stopValidate()

	logging.AddData(ctx, "rows", table.Len())
	logging.AddData(ctx, "valid", report.Valid)
	return table, report, nil
}

// Upload validates the input completely, then loads it into raw_transactions
// and rebuilds the cleaned table in one transaction. Every attempt, rejected
// or not, is recorded in the upload history.
func (s *PipelineService) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	mode := req.Mode
	if mode == "" {
		mode = model.ModeAppend
	}
	if mode != model.ModeAppend && mode != model.ModeReplace {
		return nil, fmt.Errorf("unknown load mode %q", req.Mode)
	}

	run := &uploadrun.Run{
		Source:    truncate(req.Source, maxSourceLength),
		Mode:      string(mode),
		StartedAt: time.Now().UTC(),
	}
	logging.AddData(ctx, "source", run.Source)
	logging.AddData(ctx, "mode", run.Mode)

	table, report, err := s.Validate(ctx, req.Body)
	if err != nil {
		s.record(ctx, run, uploadrun.StatusRejected, err)
		return nil, err
	}

	result := &UploadResult{Report: report, Preview: table.Head(PreviewRows)}
	run.RawRows = table.Len()

	if err := report.Err(); err != nil {
		s.record(ctx, run, uploadrun.StatusRejected, err)
		result.RunID = run.ID
		return result, err
	}

	// A retained row that cannot be coerced fails the upload before any write.
	stopTransform := logging.StartTiming(ctx, "transformMs")
	_, err = transform.Transform(table)
	stopTransform()
	if err != nil {
		s.record(ctx, run, uploadrun.StatusRejected, err)
		result.RunID = run.ID
		return result, err
	}

	load := &actions.LoadRaw{Table: table, Mode: mode}
	sync := &actions.SyncCleaned{}
	run.Status = uploadrun.StatusSucceeded

	stopLoad := logging.StartTiming(ctx, "loadMs")
	err = s.loader.delegator.Process(ctx, actions.Sequence{
		load,
		sync,
		&actions.RecordUpload{Run: run, Load: load, Sync: sync},
	})
	stopLoad()
	if err != nil {
		run.RawRows, run.CleanedRows = table.Len(), 0
		s.record(ctx, run, uploadrun.StatusFailed, err)
		result.RunID = run.ID
		return result, err
	}

	result.RunID = run.ID
	result.RawRows = load.Loaded
	result.CleanedRows = sync.Inserted
	logging.AddData(ctx, "runID", run.ID.String())
	logging.AddData(ctx, "cleanedRows", sync.Inserted)
	return result, nil
}

// record stores a run that did not complete. Failing to record it is logged
// and does not replace the upload's own error.
func (s *PipelineService) record(ctx context.Context, run *uploadrun.Run, status uploadrun.Status, cause error) {
	run.Status = status
	run.Error = truncate(cause.Error(), maxErrorLength)
	run.FinishedAt = time.Now().UTC()

	if err := s.loader.delegator.Process(context.WithoutCancel(ctx), &actions.RecordUpload{Run: run}); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"source": run.Source,
			"status": string(status),
		}).Warn("pipeline.record.failed")
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
