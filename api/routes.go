package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humamux"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/handlers/v1/data"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/handlers/v1/report"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/handlers/v1/status"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/handlers/v1/upload"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/logging"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Service *service.Service
}

// Router builds the HTTP routes: the plain status probe plus the huma API.
func (r *Rest) Router() http.Handler {
	router := mux.NewRouter()

	statusHandler := status.NewHandler(r.Service.Loader)
	router.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humamux.New(router, huma.DefaultConfig("Finance Dashboard API", "1.0.0"))
	api.UseMiddleware(logging.Middleware(r.Logger))

	report.NewGetReportHandler(r.Service.Query).Register(api)
	upload.NewUploadHandler(r.Service.Pipeline).Register(api)
	upload.NewValidateHandler(r.Service.Pipeline).Register(api)
	data.NewClearDataHandler(r.Service.Loader).Register(api)

	return router
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Router(),
		ReadTimeout:       time.Duration(60) * time.Second,
		WriteTimeout:      time.Duration(60) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		}
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
	}
	r.Logger.Info("HttpServer.Serve.shutting down")
}
