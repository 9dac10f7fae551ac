package jobs

import (
	"context"
	"io"

	"github.com/ice-solution/bniwedding-application/internal/config"
	"github.com/ice-solution/bniwedding-application/internal/logger"
	"github.com/ice-solution/bniwedding-application/internal/repository"
)

// RosterUploader receives the generated roster workbook. Satisfied by
// mirror.DriveUploader.
type RosterUploader interface {
	Upload(ctx context.Context, name, mimeType string, content io.Reader) (string, error)
}

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	repo     repository.MemberRepository
	uploader RosterUploader
	config   *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(repo repository.MemberRepository, uploader RosterUploader, cfg *config.Config) *JobRunner {
	return &JobRunner{
		repo:     repo,
		uploader: uploader,
		config:   cfg,
	}
}

// Config exposes the loaded configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
