package upload

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/extract"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/validate"
)

// ValidateInput is the Huma input for validating a CSV export.
type ValidateInput struct {
	RawBody []byte `contentType:"text/csv"`
}

// ValidateResponseBody is the report of a dry run.
type ValidateResponseBody struct {
	Report  *validate.Report `json:"report" doc:"Validation report"`
	Preview *Preview         `json:"preview" doc:"First rows of the file"`
}

// ValidateOutput is the Huma output for validating a CSV export.
type ValidateOutput struct {
	Body ValidateResponseBody
}

// fileValidator is the interface for validating without loading.
type fileValidator interface {
	Validate(ctx context.Context, r io.Reader) (*model.Table, *validate.Report, error)
}

// ValidateHandler handles POST /v1/validate.
type ValidateHandler struct {
	PipelineService fileValidator
}

func NewValidateHandler(svc fileValidator) *ValidateHandler {
	return &ValidateHandler{PipelineService: svc}
}

// Register registers the validate endpoint with the Huma API.
func (h *ValidateHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:  "validate-transactions",
		Method:       http.MethodPost,
		Path:         "/v1/validate",
		Summary:      "Validate a transactions CSV",
		Description:  "Checks a file against the transaction schema and reports every error and warning. Nothing is written.",
		Tags:         []string{"Upload"},
		MaxBodyBytes: maxBodyBytes,
	}, h.handle)
}

func (h *ValidateHandler) handle(ctx context.Context, input *ValidateInput) (*ValidateOutput, error) {
	table, report, err := h.PipelineService.Validate(ctx, bytes.NewReader(input.RawBody))
	if err != nil {
		var extractErr *extract.ExtractionError
		if errors.As(err, &extractErr) {
			return nil, huma.NewError(http.StatusBadRequest, extractErr.Error())
		}
		return nil, huma.NewError(http.StatusInternalServerError, "validation failed", err)
	}

	return &ValidateOutput{Body: ValidateResponseBody{
		Report:  report,
		Preview: newPreview(table.Head(service.PreviewRows)),
	}}, nil
}
