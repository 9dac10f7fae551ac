package jobs

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ice-solution/bniwedding-application/internal/config"
	"github.com/ice-solution/bniwedding-application/internal/domain"
)

type stubRepo struct {
	members []domain.Member
	listErr error
}

func (r *stubRepo) Create(ctx context.Context, m *domain.Member) error          { return nil }
func (r *stubRepo) AttachFile(ctx context.Context, f *domain.MemberFile) error  { return nil }
func (r *stubRepo) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	return nil, domain.ErrNotFound
}
func (r *stubRepo) List(ctx context.Context) ([]domain.Member, error) {
	return r.members, r.listErr
}
func (r *stubRepo) ListFiles(ctx context.Context, memberID int32) ([]domain.MemberFile, error) {
	return nil, nil
}
func (r *stubRepo) UpdateStatus(ctx context.Context, id int32, status domain.MemberStatus) error {
	return nil
}

type stubUploader struct {
	name     string
	mimeType string
	size     int64
	err      error
	calls    int
}

func (u *stubUploader) Upload(ctx context.Context, name, mimeType string, content io.Reader) (string, error) {
	u.calls++
	u.name = name
	u.mimeType = mimeType
	n, _ := io.Copy(io.Discard, content)
	u.size = n
	if u.err != nil {
		return "", u.err
	}
	return "drive-file-id", nil
}

func TestExportRoster(t *testing.T) {
	repo := &stubRepo{members: []domain.Member{
		{ID: 1, EnglishName: "Alice", Status: domain.MemberStatusApproved},
	}}
	uploader := &stubUploader{}
	jr := NewJobRunner(repo, uploader, &config.Config{})

	jr.ExportRoster()

	assert.Equal(t, 1, uploader.calls)
	assert.True(t, strings.HasPrefix(uploader.name, "bni-members-roster-"))
	assert.True(t, strings.HasSuffix(uploader.name, ".xlsx"))
	assert.Equal(t, xlsxMimeType, uploader.mimeType)
	assert.Greater(t, uploader.size, int64(0))
}

func TestExportRoster_ListFailureSkipsUpload(t *testing.T) {
	repo := &stubRepo{listErr: &domain.PersistenceError{Op: "list members", Err: assert.AnError}}
	uploader := &stubUploader{}
	jr := NewJobRunner(repo, uploader, &config.Config{})

	jr.ExportRoster()

	assert.Zero(t, uploader.calls)
}
