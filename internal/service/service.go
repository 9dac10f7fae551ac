package service

import (
	"context"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

// Notifier tells the admin about a new submission. Failures are logged
// and swallowed by the caller; a submission never fails because an email
// did.
type Notifier interface {
	NotifySubmission(ctx context.Context, m *domain.Member, files []domain.MemberFile) error
}

// SubmissionMirror copies an accepted submission into an external side
// channel such as a Google Sheet. Same best-effort contract as Notifier.
type SubmissionMirror interface {
	MirrorSubmission(ctx context.Context, m *domain.Member, files []domain.MemberFile) error
}
