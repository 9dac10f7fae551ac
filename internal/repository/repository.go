package repository

import (
	"context"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

// MemberRepository owns the members and member_files tables. No other
// component writes to them. Authorization is enforced by callers.
type MemberRepository interface {
	// Create inserts one member with status forced to pending and fills in
	// the generated id and timestamps.
	Create(ctx context.Context, m *domain.Member) error

	// AttachFile inserts one file row referencing an existing member. Called
	// once per uploaded file, in any order.
	AttachFile(ctx context.Context, f *domain.MemberFile) error

	GetByID(ctx context.Context, id int32) (*domain.Member, error)

	// List returns all members ordered by insertion recency.
	List(ctx context.Context) ([]domain.Member, error)

	ListFiles(ctx context.Context, memberID int32) ([]domain.MemberFile, error)

	// UpdateStatus overwrites status and refreshes updated_at. Returns
	// domain.ErrNotFound when no such member exists.
	UpdateStatus(ctx context.Context, id int32, status domain.MemberStatus) error
}
