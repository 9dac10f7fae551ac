package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

func validSubmission() Submission {
	return Submission{
		EnglishName:       "John Doe",
		Chapter:           "Central",
		Profession:        "Photographer",
		Phone:             "+852 9123 4567",
		Email:             "john@example.com",
		YearsOfMembership: 5,
		IsGoldMember:      "yes",
		WeddingCategory:   "攝影",
		WeddingServices:   "Professional wedding photography services with 10 years.",
		Files: []FileDescriptor{
			{FileKey: "member-files/a.pdf", FileURL: "https://files.example.com/a.pdf", FileName: "a.pdf", FileSize: 1024, MimeType: "application/pdf"},
			{FileKey: "member-files/b.pdf", FileURL: "https://files.example.com/b.pdf", FileName: "b.pdf", FileSize: 2048, MimeType: "application/pdf"},
			{FileKey: "member-files/c.jpg", FileURL: "https://files.example.com/c.jpg", FileName: "c.jpg", FileSize: 4096, MimeType: "image/jpeg"},
		},
	}
}

func TestNormalize_Valid(t *testing.T) {
	m, files, err := Normalize(validSubmission())
	assert.NoError(t, err)
	assert.NotNil(t, m)
	assert.Equal(t, domain.MemberStatusPending, m.Status)
	assert.Equal(t, "john@example.com", m.Email)
	assert.Equal(t, domain.GoldMemberYes, m.IsGoldMember)
	assert.Len(t, files, 3)
	assert.Equal(t, "member-files/b.pdf", files[1].FileKey)
}

func TestNormalize_TrimsAndLowercases(t *testing.T) {
	s := validSubmission()
	s.EnglishName = "  John Doe  "
	s.Email = " John@Example.COM "

	m, _, err := Normalize(s)
	assert.NoError(t, err)
	assert.Equal(t, "John Doe", m.EnglishName)
	assert.Equal(t, "john@example.com", m.Email)
}

func TestNormalize_InvalidEmailAndYears(t *testing.T) {
	s := validSubmission()
	s.Email = "invalid-email"
	s.YearsOfMembership = 0

	m, files, err := Normalize(s)
	assert.Nil(t, m)
	assert.Nil(t, files)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "yearsOfMembership")
}

func TestNormalize_RequiredFields(t *testing.T) {
	s := validSubmission()
	s.EnglishName = ""
	s.Chapter = "   "
	s.Profession = ""

	_, _, err := Normalize(s)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "englishName")
	assert.Contains(t, verr.Fields, "chapter")
	assert.Contains(t, verr.Fields, "profession")
}

func TestNormalize_YearsOutOfRange(t *testing.T) {
	s := validSubmission()
	s.YearsOfMembership = 26

	_, _, err := Normalize(s)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "yearsOfMembership")
}

func TestNormalize_ShortServiceDescription(t *testing.T) {
	s := validSubmission()
	s.WeddingServices = "too short"

	_, _, err := Normalize(s)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "weddingServices")
}

func TestNormalize_ServiceDescriptionCountsRunes(t *testing.T) {
	// The minimum length is in characters, not bytes. A CJK description
	// under 10 runes is still short even though it exceeds 10 bytes.
	t.Run("SixRunesRejected", func(t *testing.T) {
		s := validSubmission()
		s.WeddingServices = "婚禮攝影服務"

		_, _, err := Normalize(s)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "weddingServices")
	})

	t.Run("TenRunesAccepted", func(t *testing.T) {
		s := validSubmission()
		s.WeddingServices = "提供專業婚禮攝影及錄影"

		_, _, err := Normalize(s)
		assert.NoError(t, err)
	})
}

func TestNormalize_OptionalLinks(t *testing.T) {
	t.Run("EmptyAllowed", func(t *testing.T) {
		s := validSubmission()
		s.FacebookLink = ""
		_, _, err := Normalize(s)
		assert.NoError(t, err)
	})

	t.Run("ValidURL", func(t *testing.T) {
		s := validSubmission()
		s.FacebookLink = "https://facebook.com/johndoe"
		_, _, err := Normalize(s)
		assert.NoError(t, err)
	})

	t.Run("Malformed", func(t *testing.T) {
		s := validSubmission()
		s.WebsiteLink = "not a url at all"
		_, _, err := Normalize(s)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "websiteLink")
	})
}

func TestNormalize_InvalidPhone(t *testing.T) {
	s := validSubmission()
	s.Phone = "call me maybe"

	_, _, err := Normalize(s)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "phone")
}

func TestNormalize_InvalidGoldMemberFlag(t *testing.T) {
	s := validSubmission()
	s.IsGoldMember = "maybe"

	_, _, err := Normalize(s)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "isGoldMember")
}

func TestNormalize_TrimsGoldMemberFlag(t *testing.T) {
	s := validSubmission()
	s.IsGoldMember = " yes "

	m, _, err := Normalize(s)
	assert.NoError(t, err)
	assert.Equal(t, domain.GoldMemberYes, m.IsGoldMember)
}

func TestNormalize_FileCount(t *testing.T) {
	t.Run("TooFew", func(t *testing.T) {
		s := validSubmission()
		s.Files = s.Files[:2]
		_, _, err := Normalize(s)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "files")
	})

	t.Run("None", func(t *testing.T) {
		s := validSubmission()
		s.Files = nil
		_, _, err := Normalize(s)
		var verr *domain.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "files")
	})
}

func TestNormalize_IncompleteFileDescriptor(t *testing.T) {
	s := validSubmission()
	s.Files[1].MimeType = ""

	_, _, err := Normalize(s)
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	found := false
	for field := range verr.Fields {
		if field == "files.1.mimeType" {
			found = true
		}
	}
	assert.True(t, found, "expected a nested error for the incomplete file, got %v", verr.Fields)
}
