package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"go-pos-inventory/internal/config"
)

// Exporter writes the whole-database document.
type Exporter interface {
	ExportDatabase(w io.Writer) error
}

// Job periodically writes database-<timestamp>.json files into a directory.
type Job struct {
	source Exporter
	dir    string
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewJob(source Exporter, dir string, log logrus.FieldLogger) *Job {
	return &Job{source: source, dir: dir, log: log, now: time.Now}
}

// Run writes one backup and returns its path.
func (j *Job) Run() (string, error) {
	if err := os.MkdirAll(j.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}

	name := fmt.Sprintf("database-%s.json", j.now().Format("20060102-150405"))
	path := filepath.Join(j.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create backup file: %w", err)
	}
	if err := j.source.ExportDatabase(f); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close backup file: %w", err)
	}
	return path, nil
}

func (j *Job) runLogged() {
	path, err := j.Run()
	if err != nil {
		config.LogError(j.log, "backup", "Run", "scheduled backup failed", j.dir, err)
		return
	}
	j.log.WithField("path", path).Info("database backup written")
}

// Start schedules the job every interval and returns the running scheduler.
func (j *Job) Start(interval time.Duration) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.Local)
	if _, err := s.Every(interval).WaitForSchedule().Do(j.runLogged); err != nil {
		return nil, fmt.Errorf("schedule backup: %w", err)
	}
	s.StartAsync()
	return s, nil
}
