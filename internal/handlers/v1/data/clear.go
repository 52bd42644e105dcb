package data

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/storage"
)

// ClearDataOutput is the Huma output for clearing stored transactions.
type ClearDataOutput struct {
	Body struct {
		Cleared bool `json:"cleared" doc:"True once the raw and cleaned tables are gone"`
	}
}

// dataClearer is the interface for dropping stored transactions.
type dataClearer interface {
	Clear(ctx context.Context) error
}

// ClearDataHandler handles DELETE /v1/data.
type ClearDataHandler struct {
	LoaderService dataClearer
}

func NewClearDataHandler(svc dataClearer) *ClearDataHandler {
	return &ClearDataHandler{LoaderService: svc}
}

// Register registers the clear endpoint with the Huma API.
func (h *ClearDataHandler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "clear-data",
		Method:      http.MethodDelete,
		Path:        "/v1/data",
		Summary:     "Clear stored transactions",
		Description: "Drops the raw and cleaned transaction tables. Upload history is kept. Safe to repeat.",
		Tags:        []string{"Data"},
	}, h.handle)
}

func (h *ClearDataHandler) handle(ctx context.Context, _ *struct{}) (*ClearDataOutput, error) {
	if err := h.LoaderService.Clear(ctx); err != nil {
		var connErr *storage.ConnectionError
		if errors.As(err, &connErr) {
			return nil, huma.NewError(http.StatusServiceUnavailable, "store unreachable", err)
		}
		return nil, huma.NewError(http.StatusInternalServerError, "failed to clear data", err)
	}

	out := &ClearDataOutput{}
	out.Body.Cleared = true
	return out, nil
}
