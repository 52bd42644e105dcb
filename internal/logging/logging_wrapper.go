package logging

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/sirupsen/logrus"
)

// LoggingWrapper adapts a plain handler: each request gets its own LogData,
// reachable through GetLogData on the request context, and one summary entry.
func LoggingWrapper(
	loggingName string,
	log *logrus.Logger,
	handler func(http.ResponseWriter, *http.Request, *LogData) error,
) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		logData := NewLogData(log)
		logData.AddData("method", req.Method)
		logData.AddData("path", req.URL.Path)
		req = req.WithContext(WithLogData(req.Context(), logData))

		endTimer := logData.AddTiming("durationMs")
		err := handler(w, req, logData)
		endTimer()
		if err != nil {
			logData.Log().WithError(err).Errorf("Handler.%v.Error", loggingName)
			return
		}

		logData.Log().Infof("Handler.%v.Complete", loggingName)
	}
}

// Middleware is the huma counterpart of LoggingWrapper, keyed by operation ID.
func Middleware(log *logrus.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		logData := NewLogData(log)
		logData.AddData("method", ctx.Method())
		logData.AddData("path", ctx.URL().Path)

		ctx = huma.WithContext(ctx, WithLogData(ctx.Context(), logData))

		endTimer := logData.AddTiming("durationMs")
		next(ctx)
		endTimer()

		status := ctx.Status()
		logData.AddData("status", status)

		name := "unknown"
		if op := ctx.Operation(); op != nil {
			name = op.OperationID
		}

		entry := logData.Log()
		switch {
		case status >= http.StatusInternalServerError:
			entry.Errorf("Handler.%v.Error", name)
		case status >= http.StatusBadRequest:
			entry.Warnf("Handler.%v.Rejected", name)
		default:
			entry.Infof("Handler.%v.Complete", name)
		}
	}
}
