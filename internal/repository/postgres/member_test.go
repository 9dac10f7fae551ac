package postgres

import (
	"context"
	"testing"
	"time"

	"database/sql/driver"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

var memberCols = []string{
	"id", "english_name", "company_name", "chapter", "profession", "phone", "email",
	"years_of_membership", "is_gold_member", "wedding_category", "wedding_services",
	"service_area", "past_cases_count", "unique_advantage",
	"facebook_link", "instagram_link", "website_link",
	"bni_member_discount", "referrer", "status", "created_at", "updated_at",
}

func memberRow(id int32, name, email, status string, created, updated time.Time) []driverValue {
	return []driverValue{
		id, name, "", "Central", "Photographer", "+852 9123 4567", email,
		int32(5), "yes", "攝影", "Professional wedding photography services.",
		"", nil, "", "", "", "", "", "", status, created, updated,
	}
}

type driverValue = driver.Value

func TestMemberRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		m := &domain.Member{
			EnglishName:       "John Doe",
			Chapter:           "Central",
			Profession:        "Photographer",
			Phone:             "+852 9123 4567",
			Email:             "john@example.com",
			YearsOfMembership: 5,
			IsGoldMember:      domain.GoldMemberYes,
			WeddingCategory:   "攝影",
			WeddingServices:   "Professional wedding photography services.",
		}

		mock.ExpectQuery("INSERT INTO members").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(1, now, now))

		err := repo.Create(ctx, m)
		assert.NoError(t, err)
		assert.Equal(t, int32(1), m.ID)
		assert.Equal(t, domain.MemberStatusPending, m.Status)
		assert.True(t, m.CreatedAt.Equal(m.UpdatedAt))
	})

	t.Run("StatusForcedToPending", func(t *testing.T) {
		now := time.Now()
		m := &domain.Member{
			EnglishName:       "Sneaky",
			Chapter:           "Central",
			Profession:        "Planner",
			Phone:             "91234567",
			Email:             "sneaky@example.com",
			YearsOfMembership: 2,
			IsGoldMember:      domain.GoldMemberNo,
			WeddingCategory:   "婚禮統籌",
			WeddingServices:   "Full wedding planning packages.",
			Status:            domain.MemberStatusApproved,
		}

		mock.ExpectQuery("INSERT INTO members").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(2, now, now))

		err := repo.Create(ctx, m)
		assert.NoError(t, err)
		assert.Equal(t, domain.MemberStatusPending, m.Status)
	})

	t.Run("ConstraintViolation", func(t *testing.T) {
		m := &domain.Member{EnglishName: "No Email", Chapter: "Central"}

		mock.ExpectQuery("INSERT INTO members").
			WillReturnError(assert.AnError)

		err := repo.Create(ctx, m)
		var perr *domain.PersistenceError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestMemberRepository_AttachFile(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		f := &domain.MemberFile{
			MemberID: 1,
			FileKey:  "member-files/2026-01-01/abc.pdf",
			FileURL:  "https://files.example.com/abc.pdf",
			FileName: "proof.pdf",
			FileSize: 1024,
			MimeType: "application/pdf",
		}

		mock.ExpectQuery("INSERT INTO member_files").
			WithArgs(f.MemberID, f.FileKey, f.FileURL, f.FileName, f.FileSize, f.MimeType).
			WillReturnRows(sqlmock.NewRows([]string{"id", "uploaded_at"}).AddRow(10, time.Now()))

		err := repo.AttachFile(ctx, f)
		assert.NoError(t, err)
		assert.Equal(t, int32(10), f.ID)
	})

	t.Run("MissingMember", func(t *testing.T) {
		f := &domain.MemberFile{MemberID: 999, FileKey: "k", FileURL: "u", FileName: "n", FileSize: 1, MimeType: "m"}

		mock.ExpectQuery("INSERT INTO member_files").
			WillReturnError(assert.AnError)

		err := repo.AttachFile(ctx, f)
		var perr *domain.PersistenceError
		assert.ErrorAs(t, err, &perr)
	})
}

func TestMemberRepository_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		now := time.Now()
		rows := sqlmock.NewRows(memberCols).AddRow(memberRow(1, "John Doe", "john@example.com", "pending", now, now)...)

		mock.ExpectQuery("(?s)SELECT .+ FROM members WHERE id = \\$1").
			WithArgs(int32(1)).
			WillReturnRows(rows)

		m, err := repo.GetByID(ctx, 1)
		assert.NoError(t, err)
		assert.NotNil(t, m)
		assert.Equal(t, int32(1), m.ID)
		assert.Equal(t, domain.MemberStatusPending, m.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("(?s)SELECT .+ FROM members WHERE id = \\$1").
			WithArgs(int32(2)).
			WillReturnRows(sqlmock.NewRows(memberCols))

		m, err := repo.GetByID(ctx, 2)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.Nil(t, m)
	})
}

func TestMemberRepository_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	now := time.Now()
	rows := sqlmock.NewRows(memberCols).
		AddRow(memberRow(2, "Jane", "jane@example.com", "approved", now, now)...).
		AddRow(memberRow(1, "John Doe", "john@example.com", "pending", now, now)...)

	mock.ExpectQuery("(?s)SELECT .+ FROM members ORDER BY id DESC").
		WillReturnRows(rows)

	members, err := repo.List(ctx)
	assert.NoError(t, err)
	assert.Len(t, members, 2)
	assert.Equal(t, int32(2), members[0].ID)
	assert.Equal(t, domain.MemberStatusApproved, members[0].Status)
}

func TestMemberRepository_ListFiles(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	rows := sqlmock.NewRows([]string{"id", "member_id", "file_key", "file_url", "file_name", "file_size", "mime_type", "uploaded_at"}).
		AddRow(1, 1, "k1", "u1", "a.pdf", 100, "application/pdf", time.Now()).
		AddRow(2, 1, "k2", "u2", "b.pdf", 200, "application/pdf", time.Now()).
		AddRow(3, 1, "k3", "u3", "c.jpg", 300, "image/jpeg", time.Now())

	mock.ExpectQuery("(?s)SELECT .+ FROM member_files WHERE member_id = \\$1").
		WithArgs(int32(1)).
		WillReturnRows(rows)

	files, err := repo.ListFiles(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, files, 3)
	assert.Equal(t, "b.pdf", files[1].FileName)
}

func TestMemberRepository_UpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewMemberRepository(db)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE members SET status").
			WithArgs("approved", int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 1, domain.MemberStatusApproved)
		assert.NoError(t, err)
	})

	t.Run("Idempotent", func(t *testing.T) {
		// Setting the same status again still touches exactly one row.
		mock.ExpectExec("UPDATE members SET status").
			WithArgs("approved", int32(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(ctx, 1, domain.MemberStatusApproved)
		assert.NoError(t, err)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectExec("UPDATE members SET status").
			WithArgs("rejected", int32(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.UpdateStatus(ctx, 42, domain.MemberStatusRejected)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
