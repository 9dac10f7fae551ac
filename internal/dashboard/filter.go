package dashboard

import (
	"strings"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

// StatusFilter selects which review statuses the dashboard shows.
// StatusAll matches everything.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusPending  StatusFilter = StatusFilter(domain.MemberStatusPending)
	StatusApproved StatusFilter = StatusFilter(domain.MemberStatusApproved)
	StatusRejected StatusFilter = StatusFilter(domain.MemberStatusRejected)
)

// ParseStatusFilter maps a query parameter onto a filter. Empty and
// unknown values mean no status filtering.
func ParseStatusFilter(s string) StatusFilter {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending
	case StatusApproved:
		return StatusApproved
	case StatusRejected:
		return StatusRejected
	default:
		return StatusAll
	}
}

// Filter returns the members matching both the free-text query and the
// status filter. The query matches case-insensitively against name, email
// and profession. Input order is preserved.
func Filter(members []domain.Member, query string, status StatusFilter) []domain.Member {
	query = strings.ToLower(strings.TrimSpace(query))

	out := make([]domain.Member, 0, len(members))
	for _, m := range members {
		if status != StatusAll && StatusFilter(m.Status) != status {
			continue
		}
		if query != "" && !matchesQuery(m, query) {
			continue
		}
		out = append(out, m)
	}
	return out
}

func matchesQuery(m domain.Member, query string) bool {
	return strings.Contains(strings.ToLower(m.EnglishName), query) ||
		strings.Contains(strings.ToLower(m.Email), query) ||
		strings.Contains(strings.ToLower(m.Profession), query)
}
