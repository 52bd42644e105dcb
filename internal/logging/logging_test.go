package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bufferLogger(buf *bytes.Buffer) *logrus.Logger {
	logger := SetupLogging(logrus.DebugLevel)
	logger.Out = buf
	return logger
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	entry := map[string]any{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

// -- LogData --

func TestLogData_CollectsTimingsAndData(t *testing.T) {
	var buf bytes.Buffer
	logData := NewLogData(bufferLogger(&buf))

	stop := logData.AddTiming("extractMs")
	stop()
	logData.AddData("rows", 5)

	_, ok := logData.Timing("extractMs")
	assert.True(t, ok)
	rows, ok := logData.Data("rows")
	assert.True(t, ok)
	assert.Equal(t, 5, rows)

	logData.Log().Info("pipeline.upload.complete")
	entry := lastEntry(t, &buf)
	assert.Equal(t, "info", entry["loglevel"])
	assert.Equal(t, float64(5), entry["rows"])
	assert.Contains(t, entry, "extractMs")
}

func TestLogData_AddToExistingTiming(t *testing.T) {
	logData := NewLogData(nil)
	logData.AddToExistingTiming("loadMs")()
	logData.AddToExistingTiming("loadMs")()

	_, ok := logData.Timing("loadMs")
	assert.True(t, ok)
}

func TestContextHelpers_NoLogData(t *testing.T) {
	ctx := context.Background()
	assert.Nil(t, GetLogData(ctx))

	// must not panic without a LogData
	StartTiming(ctx, "x")()
	AddData(ctx, "k", "v")
}

func TestContextHelpers_WithLogData(t *testing.T) {
	logData := NewLogData(nil)
	ctx := WithLogData(context.Background(), logData)

	StartTiming(ctx, "validateMs")()
	AddData(ctx, "source", "export.csv")

	_, ok := logData.Timing("validateMs")
	assert.True(t, ok)
	source, _ := logData.Data("source")
	assert.Equal(t, "export.csv", source)
}

// -- LoggingWrapper --

func TestLoggingWrapper_Complete(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingWrapper("Status", bufferLogger(&buf), func(w http.ResponseWriter, req *http.Request, logData *LogData) error {
		assert.Same(t, logData, GetLogData(req.Context()))
		w.WriteHeader(http.StatusOK)
		return nil
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	entry := lastEntry(t, &buf)
	assert.Equal(t, "Handler.Status.Complete", entry["msg"])
	assert.Equal(t, "/status", entry["path"])
}

func TestLoggingWrapper_Error(t *testing.T) {
	var buf bytes.Buffer
	handler := LoggingWrapper("Status", bufferLogger(&buf), func(w http.ResponseWriter, _ *http.Request, _ *LogData) error {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("bad method")
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/status", nil))

	entry := lastEntry(t, &buf)
	assert.Equal(t, "error", entry["loglevel"])
	assert.Equal(t, "bad method", entry["error"])
}

// -- Middleware --

type pingOutput struct {
	Body struct {
		HasLogData bool `json:"hasLogData"`
	}
}

func TestMiddleware_AttachesLogData(t *testing.T) {
	var buf bytes.Buffer
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(bufferLogger(&buf)))

	huma.Register(api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
	}, func(ctx context.Context, _ *struct{}) (*pingOutput, error) {
		out := &pingOutput{}
		out.Body.HasLogData = GetLogData(ctx) != nil
		AddData(ctx, "answer", 42)
		return out, nil
	})

	resp := api.Get("/ping")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"hasLogData":true`)

	entry := lastEntry(t, &buf)
	assert.Equal(t, "Handler.ping.Complete", entry["msg"])
	assert.Equal(t, float64(42), entry["answer"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}
