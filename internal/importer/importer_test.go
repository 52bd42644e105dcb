package importer

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
)

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, req service.UploadRequest) (*service.UploadResult, error) {
	body, _ := io.ReadAll(req.Body)
	args := m.Called(req.Source, req.Mode, string(body))
	result, _ := args.Get(0).(*service.UploadResult)
	return result, args.Error(1)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestPending_OnlyCSV(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", "x")
	writeFile(t, dir, "a.CSV", "x")
	writeFile(t, dir, "notes.txt", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, ProcessedDir), 0o755))

	files, err := New(dir, nil).Pending()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.CSV", "b.csv"}, files)
}

func TestPending_MissingDir(t *testing.T) {
	files, err := New(filepath.Join(t.TempDir(), "absent"), nil).Pending()
	assert.NoError(t, err)
	assert.Empty(t, files)
}

func TestScan_MovesFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.csv", "good")
	writeFile(t, dir, "bad.csv", "bad")

	up := new(mockUploader)
	up.On("Upload", "good.csv", model.ModeAppend, "good").Return(&service.UploadResult{}, nil)
	up.On("Upload", "bad.csv", model.ModeAppend, "bad").Return(nil, errors.New("Row 2: Missing Date"))

	result, err := New(dir, up).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{Imported: 1, Failed: 1}, result)

	assert.FileExists(t, filepath.Join(dir, ProcessedDir, "good.csv"))
	assert.FileExists(t, filepath.Join(dir, FailedDir, "bad.csv"))
	assert.NoFileExists(t, filepath.Join(dir, "good.csv"))
	up.AssertExpectations(t)

	// nothing is left to import
	result, err = New(dir, up).Scan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Result{}, result)
}

func TestScan_NameCollisionKeepsBoth(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ProcessedDir), 0o755))
	writeFile(t, filepath.Join(dir, ProcessedDir), "march.csv", "old")
	writeFile(t, dir, "march.csv", "new")

	up := new(mockUploader)
	up.On("Upload", "march.csv", model.ModeAppend, "new").Return(&service.UploadResult{}, nil)

	_, err := New(dir, up).Scan(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(filepath.Join(dir, ProcessedDir))
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSchedule_RunsScan(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "jan.csv", "jan")

	up := new(mockUploader)
	up.On("Upload", "jan.csv", model.ModeAppend, "jan").Return(&service.UploadResult{}, nil)

	scheduler, err := New(dir, up).Schedule(context.Background(), time.Hour)
	require.NoError(t, err)
	defer scheduler.Stop()

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, ProcessedDir, "jan.csv"))
		return err == nil
	}, 5*time.Second, 20*time.Millisecond)
}
