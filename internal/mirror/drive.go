package mirror

import (
	"context"
	"fmt"
	"io"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/ice-solution/bniwedding-application/internal/domain"
	"github.com/ice-solution/bniwedding-application/internal/logger"
)

// DriveUploader pushes generated files into a Drive folder. Service
// accounts only have quota inside shared drives, so every call sets
// SupportsAllDrives.
type DriveUploader struct {
	svc      *drive.Service
	folderID string
}

func NewDriveUploader(ctx context.Context, credentialsFile, folderID string) (*DriveUploader, error) {
	svc, err := drive.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(drive.DriveFileScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}
	return &DriveUploader{svc: svc, folderID: folderID}, nil
}

// Upload creates the file inside the configured folder and returns the
// Drive file ID.
func (d *DriveUploader) Upload(ctx context.Context, name, mimeType string, content io.Reader) (string, error) {
	logger.ExternalServiceCall("drive", "upload", "name", name)

	meta := &drive.File{
		Name:    name,
		Parents: []string{d.folderID},
	}

	file, err := d.svc.Files.Create(meta).
		Media(content, googleapi.ContentType(mimeType)).
		Fields("id").
		SupportsAllDrives(true).
		Context(ctx).
		Do()

	logger.ExternalServiceResult("drive", "upload", err)
	if err != nil {
		return "", &domain.ExternalServiceError{Service: "drive", Err: err}
	}
	if file.Id == "" {
		err := fmt.Errorf("drive returned no file id for %s", name)
		return "", &domain.ExternalServiceError{Service: "drive", Err: err}
	}
	return file.Id, nil
}
