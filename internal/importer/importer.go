// Package importer uploads CSV exports dropped into a watched directory.
package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/AdarshXGupta07/Finance-DashBoard/internal/model"
	"github.com/AdarshXGupta07/Finance-DashBoard/internal/service"
)

const (
	ProcessedDir = "processed"
	FailedDir    = "failed"
)

type uploader interface {
	Upload(ctx context.Context, req service.UploadRequest) (*service.UploadResult, error)
}

// Result counts the files handled by one scan.
type Result struct {
	Imported int
	Failed   int
}

// Importer appends every *.csv file found in Dir and moves it to processed/
// on success or failed/ otherwise, so each file is attempted once.
type Importer struct {
	Dir      string
	uploader uploader
}

func New(dir string, up uploader) *Importer {
	return &Importer{Dir: dir, uploader: up}
}

// Pending lists the CSV files waiting in Dir, sorted by name.
func (i *Importer) Pending() ([]string, error) {
	entries, err := os.ReadDir(i.Dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read import dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)
	return files, nil
}

// Scan uploads the pending files one at a time.
func (i *Importer) Scan(ctx context.Context) (Result, error) {
	var result Result

	files, err := i.Pending()
	if err != nil {
		return result, err
	}

	for _, name := range files {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		log := logrus.WithField("file", name)
		uploadErr := i.importFile(ctx, name)

		target := ProcessedDir
		if uploadErr != nil {
			target = FailedDir
			result.Failed++
			log.WithError(uploadErr).Warn("importer.scan.failed")
		} else {
			result.Imported++
			log.Info("importer.scan.imported")
		}

		if err := i.move(name, target); err != nil {
			return result, err
		}
	}

	return result, nil
}

func (i *Importer) importFile(ctx context.Context, name string) error {
	f, err := os.Open(filepath.Join(i.Dir, name))
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = i.uploader.Upload(ctx, service.UploadRequest{
		Body:   f,
		Source: name,
		Mode:   model.ModeAppend,
	})
	return err
}

func (i *Importer) move(name, target string) error {
	dir := filepath.Join(i.Dir, target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	dest := filepath.Join(dir, name)
	if _, err := os.Stat(dest); err == nil {
		ext := filepath.Ext(name)
		dest = filepath.Join(dir, fmt.Sprintf("%s-%d%s", strings.TrimSuffix(name, ext), time.Now().UnixNano(), ext))
	}

	if err := os.Rename(filepath.Join(i.Dir, name), dest); err != nil {
		return fmt.Errorf("move %s: %w", name, err)
	}
	return nil
}

// Schedule runs Scan every interval until the returned scheduler is stopped.
// A scan still running when the next one is due is not overlapped.
func (i *Importer) Schedule(ctx context.Context, interval time.Duration) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)
	scheduler.SingletonModeAll()

	_, err := scheduler.Every(interval).Do(func() {
		result, err := i.Scan(ctx)
		if err != nil {
			logrus.WithError(err).Error("importer.schedule.scan")
			return
		}
		if result.Imported+result.Failed > 0 {
			logrus.WithFields(logrus.Fields{
				"imported": result.Imported,
				"failed":   result.Failed,
			}).Info("importer.schedule.complete")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule import: %w", err)
	}

	scheduler.StartAsync()
	return scheduler, nil
}
