package service

import (
	"context"

	"github.com/ice-solution/bniwedding-application/internal/domain"
	"github.com/ice-solution/bniwedding-application/internal/logger"
	"github.com/ice-solution/bniwedding-application/internal/repository"
	"github.com/ice-solution/bniwedding-application/internal/validation"
)

// MemberDetail bundles a member with its uploaded proof files for the
// admin detail view.
type MemberDetail struct {
	Member *domain.Member      `json:"member"`
	Files  []domain.MemberFile `json:"files"`
}

// MemberService implements the registration and review workflow on top of
// the repository. Notifier and mirror are optional; either may be nil when
// the deployment has not configured them.
type MemberService struct {
	repo     repository.MemberRepository
	notifier Notifier
	mirror   SubmissionMirror
}

func NewMemberService(repo repository.MemberRepository, notifier Notifier, mirror SubmissionMirror) *MemberService {
	return &MemberService{
		repo:     repo,
		notifier: notifier,
		mirror:   mirror,
	}
}

// Submit validates the submission, persists the member with its three
// files, then fires the notification and sheet mirror. The side channels
// are best effort: their failures are logged and the submission still
// succeeds.
func (s *MemberService) Submit(ctx context.Context, sub validation.Submission) (*domain.Member, error) {
	logger.EnterMethod("MemberService.Submit", "email", sub.Email)

	member, files, err := validation.Normalize(sub)
	if err != nil {
		logger.ExitMethodWithError("MemberService.Submit", err)
		return nil, err
	}

	if err := s.repo.Create(ctx, member); err != nil {
		logger.ExitMethodWithError("MemberService.Submit", err)
		return nil, err
	}

	for i := range files {
		files[i].MemberID = member.ID
		if err := s.repo.AttachFile(ctx, &files[i]); err != nil {
			logger.ExitMethodWithError("MemberService.Submit", err)
			return nil, err
		}
	}

	if s.notifier != nil {
		if err := s.notifier.NotifySubmission(ctx, member, files); err != nil {
			logger.Error("admin notification failed", "memberId", member.ID, "error", err)
		}
	}

	if s.mirror != nil {
		if err := s.mirror.MirrorSubmission(ctx, member, files); err != nil {
			logger.Error("sheet mirror failed", "memberId", member.ID, "error", err)
		}
	}

	logger.ExitMethod("MemberService.Submit", "memberId", member.ID)
	return member, nil
}

// List returns all members, newest first.
func (s *MemberService) List(ctx context.Context) ([]domain.Member, error) {
	return s.repo.List(ctx)
}

// GetByID returns one member with its files.
func (s *MemberService) GetByID(ctx context.Context, id int32) (*MemberDetail, error) {
	member, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	files, err := s.repo.ListFiles(ctx, id)
	if err != nil {
		return nil, err
	}

	return &MemberDetail{Member: member, Files: files}, nil
}

// UpdateStatus moves a member to the given review status.
func (s *MemberService) UpdateStatus(ctx context.Context, id int32, status domain.MemberStatus) error {
	if !status.IsValid() {
		return &domain.ValidationError{Fields: map[string]string{
			"status": "must be one of pending, approved, rejected",
		}}
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	logger.Info("member status updated", "memberId", id, "status", string(status))
	return nil
}
