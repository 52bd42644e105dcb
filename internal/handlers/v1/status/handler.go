package status

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/logging"
)

// pinger reports whether the store is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	Store   pinger
	Timeout time.Duration
}

func NewHandler(store pinger) Handler {
	return Handler{Store: store, Timeout: 2 * time.Second}
}

// Handler answers 200 when the store responds and 503 when it does not.
func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != http.MethodGet {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if h.Store != nil {
		ctx, cancel := context.WithTimeout(req.Context(), h.Timeout)
		defer cancel()

		endTimer := logData.AddTiming("pingMs")
		err := h.Store.Ping(ctx)
		endTimer()
		if err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return err
		}
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
