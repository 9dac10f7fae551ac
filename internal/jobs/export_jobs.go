package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/ice-solution/bniwedding-application/internal/logger"
	"github.com/ice-solution/bniwedding-application/internal/mirror"
)

const xlsxMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportRoster builds the full member roster workbook and pushes it to
// the configured Drive folder. Registered as a nightly cron job.
func (jr *JobRunner) ExportRoster() {
	jr.runWithRecovery("ExportRoster", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		members, err := jr.repo.List(ctx)
		if err != nil {
			logger.Error("roster export: failed to load members", "error", err)
			return
		}

		buf, err := mirror.BuildRosterWorkbook(members)
		if err != nil {
			logger.Error("roster export: failed to build workbook", "error", err)
			return
		}

		name := fmt.Sprintf("bni-members-roster-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
		fileID, err := jr.uploader.Upload(ctx, name, xlsxMimeType, buf)
		if err != nil {
			logger.Error("roster export: drive upload failed", "error", err)
			return
		}

		logger.Info("roster exported", "members", len(members), "driveFileId", fileID)
	})
}
