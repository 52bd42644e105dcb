package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/extract"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/logging"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/transform"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/validate"
)

// maxBodyBytes bounds an uploaded CSV export.
const maxBodyBytes = 32 << 20

// Preview is the first rows of an uploaded file, as extracted.
type Preview struct {
	Columns []string   `json:"columns" doc:"Header of the uploaded file"`
	Rows    [][]string `json:"rows" doc:"First rows of the uploaded file"`
}

func newPreview(t *model.Table) *Preview {
	if t == nil {
		return nil
	}
	return &Preview{Columns: t.Columns, Rows: t.Rows}
}

// UploadInput is the Huma input for uploading a CSV export.
type UploadInput struct {
	Mode    string `query:"mode" enum:"append,replace" default:"append" doc:"append adds rows, replace swaps the raw table"`
	Source  string `query:"source" maxLength:"255" doc:"Name recorded in the upload history"`
	RawBody []byte `contentType:"text/csv"`
}

// UploadResponseBody is the response body for a completed upload.
type UploadResponseBody struct {
	RunID       string           `json:"runID" doc:"Upload history entry UUID"`
	RawRows     int              `json:"rawRows" doc:"Rows written to the raw table"`
	CleanedRows int              `json:"cleanedRows" doc:"Rows in the cleaned table after the sync"`
	Report      *validate.Report `json:"report" doc:"Validation report of the uploaded file"`
	Preview     *Preview         `json:"preview" doc:"First rows of the uploaded file"`
}

// UploadOutput is the Huma output for uploading a CSV export.
type UploadOutput struct {
	Body UploadResponseBody
}

// uploader is the interface for running an upload.
type uploader interface {
	Upload(ctx context.Context, req service.UploadRequest) (*service.UploadResult, error)
}

// UploadHandler handles POST /v1/upload.
type UploadHandler struct {
	PipelineService uploader
}

func NewUploadHandler(svc uploader) *UploadHandler {
	return &UploadHandler{PipelineService: svc}
}

// Register registers the upload endpoint with the Huma API.
func (h *UploadHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "upload-transactions",
		Method:       http.MethodPost,
		Path:         "/v1/upload",
		Summary:      "Upload a transactions CSV",
		Description:  "Validates the file, loads it into the raw table and rebuilds the cleaned table. Nothing is written when validation fails.",
		Tags:         []string{"Upload"},
		MaxBodyBytes: maxBodyBytes,
	}, h.handle)
}

func (h *UploadHandler) handle(ctx context.Context, input *UploadInput) (*UploadOutput, error) {
	mode, err := model.ParseLoadMode(input.Mode)
	if err != nil {
		return nil, huma.NewError(http.StatusBadRequest, err.Error())
	}

	source := input.Source
	if source == "" {
		source = "http-upload"
	}

	result, err := h.PipelineService.Upload(ctx, service.UploadRequest{
		Body:   bytes.NewReader(input.RawBody),
		Source: source,
		Mode:   mode,
	})
	if err != nil {
		return nil, errorResponse(err)
	}

	logging.AddData(ctx, "rawRows", result.RawRows)

	return &UploadOutput{Body: UploadResponseBody{
		RunID:       result.RunID.String(),
		RawRows:     result.RawRows,
		CleanedRows: result.CleanedRows,
		Report:      result.Report,
		Preview:     newPreview(result.Preview),
	}}, nil
}

// issueDetail renders a validation finding; Value tells errors from warnings.
func issueDetail(issue validate.Issue, severity string) *huma.ErrorDetail {
	location := "body"
	if issue.Row > 0 {
		location = fmt.Sprintf("body.row[%d]", issue.Row)
	}
	return &huma.ErrorDetail{Message: issue.String(), Location: location, Value: severity}
}

// errorResponse maps pipeline failures onto HTTP errors. Row-level findings are
// returned as individual error details.
func errorResponse(err error) error {
	var (
		extractErr    *extract.ExtractionError
		schemaErr     *model.SchemaError
		contentErr    *validate.ContentValidationError
		transformErr  *transform.TransformError
		connErr       *storage.ConnectionError
		constraintErr *storage.ConstraintError
	)

	switch {
	case errors.As(err, &extractErr):
		return huma.NewError(http.StatusBadRequest, extractErr.Error())
	case errors.As(err, &schemaErr):
		details := make([]error, len(schemaErr.Missing))
		for i, column := range schemaErr.Missing {
			details[i] = &huma.ErrorDetail{Message: "missing required column", Location: "body.header", Value: column}
		}
		return huma.NewError(http.StatusUnprocessableEntity, schemaErr.Error(), details...)
	case errors.As(err, &contentErr):
		details := make([]error, 0, len(contentErr.Issues)+len(contentErr.Warnings))
		for _, issue := range contentErr.Issues {
			details = append(details, issueDetail(issue, "error"))
		}
		for _, issue := range contentErr.Warnings {
			details = append(details, issueDetail(issue, "warning"))
		}
		return huma.NewError(http.StatusUnprocessableEntity, "validation failed", details...)
	case errors.As(err, &transformErr):
		return huma.NewError(http.StatusUnprocessableEntity, transformErr.Error())
	case errors.As(err, &connErr):
		return huma.NewError(http.StatusServiceUnavailable, "store unreachable", err)
	case errors.As(err, &constraintErr):
		return huma.NewError(http.StatusConflict, "rejected by the store", err)
	default:
		return huma.NewError(http.StatusInternalServerError, "upload failed", err)
	}
}
