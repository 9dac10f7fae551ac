package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/ice-solution/bniwedding-application/internal/domain"
	"github.com/ice-solution/bniwedding-application/internal/logger"
	"github.com/ice-solution/bniwedding-application/internal/repository"
)

type memberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) repository.MemberRepository {
	return &memberRepository{db: db}
}

const memberColumns = `id, english_name, COALESCE(company_name, ''), chapter, profession, phone, email,
	       years_of_membership, is_gold_member, wedding_category, wedding_services,
	       COALESCE(service_area, ''), past_cases_count, COALESCE(unique_advantage, ''),
	       COALESCE(facebook_link, ''), COALESCE(instagram_link, ''), COALESCE(website_link, ''),
	       COALESCE(bni_member_discount, ''), COALESCE(referrer, ''), status, created_at, updated_at`

func (r *memberRepository) Create(ctx context.Context, m *domain.Member) error {
	// Status is forced here regardless of what the caller set. created_at and
	// updated_at come from the same now() so they are identical at insert.
	m.Status = domain.MemberStatusPending

	query := `INSERT INTO members (english_name, company_name, chapter, profession, phone, email,
	              years_of_membership, is_gold_member, wedding_category, wedding_services,
	              service_area, past_cases_count, unique_advantage,
	              facebook_link, instagram_link, website_link,
	              bni_member_discount, referrer, status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)
	          RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		m.EnglishName, nullIfEmpty(m.CompanyName), m.Chapter, m.Profession, m.Phone, m.Email,
		m.YearsOfMembership, string(m.IsGoldMember), m.WeddingCategory, m.WeddingServices,
		nullIfEmpty(m.ServiceArea), m.PastCasesCount, nullIfEmpty(m.UniqueAdvantage),
		nullIfEmpty(m.FacebookLink), nullIfEmpty(m.InstagramLink), nullIfEmpty(m.WebsiteLink),
		nullIfEmpty(m.BNIMemberDiscount), nullIfEmpty(m.Referrer), string(m.Status),
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return wrapPersistence("create member", err)
	}
	return nil
}

func (r *memberRepository) AttachFile(ctx context.Context, f *domain.MemberFile) error {
	query := `INSERT INTO member_files (member_id, file_key, file_url, file_name, file_size, mime_type)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING id, uploaded_at`

	err := r.db.QueryRowContext(ctx, query,
		f.MemberID, f.FileKey, f.FileURL, f.FileName, f.FileSize, f.MimeType,
	).Scan(&f.ID, &f.UploadedAt)
	if err != nil {
		return wrapPersistence("attach file", err)
	}
	return nil
}

func (r *memberRepository) GetByID(ctx context.Context, id int32) (*domain.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`

	m := &domain.Member{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&m.ID, &m.EnglishName, &m.CompanyName, &m.Chapter, &m.Profession, &m.Phone, &m.Email,
		&m.YearsOfMembership, &m.IsGoldMember, &m.WeddingCategory, &m.WeddingServices,
		&m.ServiceArea, &m.PastCasesCount, &m.UniqueAdvantage,
		&m.FacebookLink, &m.InstagramLink, &m.WebsiteLink,
		&m.BNIMemberDiscount, &m.Referrer, &m.Status, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, wrapPersistence("get member", err)
	}
	return m, nil
}

func (r *memberRepository) List(ctx context.Context) ([]domain.Member, error) {
	logger.EnterMethod("memberRepository.List")

	query := `SELECT ` + memberColumns + ` FROM members ORDER BY id DESC`
	logger.DatabaseCall("SELECT", "members")

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		logger.ExitMethodWithError("memberRepository.List", err)
		return nil, wrapPersistence("list members", err)
	}
	defer rows.Close()

	var members []domain.Member
	for rows.Next() {
		var m domain.Member
		if err := rows.Scan(
			&m.ID, &m.EnglishName, &m.CompanyName, &m.Chapter, &m.Profession, &m.Phone, &m.Email,
			&m.YearsOfMembership, &m.IsGoldMember, &m.WeddingCategory, &m.WeddingServices,
			&m.ServiceArea, &m.PastCasesCount, &m.UniqueAdvantage,
			&m.FacebookLink, &m.InstagramLink, &m.WebsiteLink,
			&m.BNIMemberDiscount, &m.Referrer, &m.Status, &m.CreatedAt, &m.UpdatedAt,
		); err != nil {
			logger.DatabaseResult("SELECT", int64(len(members)), err)
			logger.ExitMethodWithError("memberRepository.List", err)
			return nil, wrapPersistence("list members", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list members", err)
	}

	logger.DatabaseResult("SELECT", int64(len(members)), nil)
	logger.ExitMethod("memberRepository.List", "count", len(members))
	return members, nil
}

func (r *memberRepository) ListFiles(ctx context.Context, memberID int32) ([]domain.MemberFile, error) {
	query := `SELECT id, member_id, file_key, file_url, file_name, file_size, mime_type, uploaded_at
	          FROM member_files WHERE member_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, memberID)
	if err != nil {
		return nil, wrapPersistence("list member files", err)
	}
	defer rows.Close()

	var files []domain.MemberFile
	for rows.Next() {
		var f domain.MemberFile
		if err := rows.Scan(&f.ID, &f.MemberID, &f.FileKey, &f.FileURL, &f.FileName, &f.FileSize, &f.MimeType, &f.UploadedAt); err != nil {
			return nil, wrapPersistence("list member files", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapPersistence("list member files", err)
	}
	return files, nil
}

func (r *memberRepository) UpdateStatus(ctx context.Context, id int32, status domain.MemberStatus) error {
	query := `UPDATE members SET status = $1, updated_at = now() WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, string(status), id)
	if err != nil {
		return wrapPersistence("update member status", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return wrapPersistence("update member status", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// wrapPersistence classifies a database error. Constraint violations from
// lib/pq and everything else become PersistenceError; callers only need to
// know the failure is not client-correctable.
func wrapPersistence(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		logger.Error("postgres error", "op", op, "code", string(pqErr.Code), "constraint", pqErr.Constraint)
	}
	return &domain.PersistenceError{Op: op, Err: err}
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
