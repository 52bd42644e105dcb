package report

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/logging"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/queries"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

// GetReportInput is the Huma input for running a named query.
type GetReportInput struct {
	Name   string `path:"name" minLength:"1" doc:"Name of the query, e.g. monthly_expenses"`
	Strict bool   `query:"strict" doc:"Fail on errors instead of returning an empty report"`
}

// GetReportOutput is the Huma output for running a named query.
type GetReportOutput struct {
	Body *queries.Result
}

// reportRunner is the interface for running named queries.
type reportRunner interface {
	Query(ctx context.Context, name string) (*queries.Result, error)
	QueryLenient(ctx context.Context, name string) *queries.Result
}

// GetReportHandler handles GET /v1/report/{name}.
type GetReportHandler struct {
	QueryService reportRunner
}

func NewGetReportHandler(svc reportRunner) *GetReportHandler {
	return &GetReportHandler{QueryService: svc}
}

// Register registers the report endpoint with the Huma API.
func (h *GetReportHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-report",
		Method:      http.MethodGet,
		Path:        "/v1/report/{name}",
		Summary:     "Run a named report",
		Description: "Runs a named aggregate query over the stored transactions. Rows are numbered from 1. Without strict, a failing query yields an empty report.",
		Tags:        []string{"Reports"},
	}, h.handle)
}

func (h *GetReportHandler) handle(ctx context.Context, input *GetReportInput) (*GetReportOutput, error) {
	logging.AddData(ctx, "report", input.Name)
	stopTimer := logging.StartTiming(ctx, "queryMs")
	defer stopTimer()

	if !input.Strict {
		result := h.QueryService.QueryLenient(ctx, input.Name)
		logging.AddData(ctx, "rowCount", result.Len())
		return &GetReportOutput{Body: result}, nil
	}

	result, err := h.QueryService.Query(ctx, input.Name)
	if err != nil {
		var notFound *queries.QueryNotFoundError
		var connErr *storage.ConnectionError
		switch {
		case errors.As(err, &notFound):
			return nil, huma.NewError(http.StatusNotFound, notFound.Error())
		case errors.As(err, &connErr):
			return nil, huma.NewError(http.StatusServiceUnavailable, "store unreachable", err)
		default:
			return nil, huma.NewError(http.StatusInternalServerError, "failed to run report", err)
		}
	}

	logging.AddData(ctx, "rowCount", result.Len())
	return &GetReportOutput{Body: result}, nil
}
