package domain

import "time"

type MemberStatus string

const (
	MemberStatusPending  MemberStatus = "pending"
	MemberStatusApproved MemberStatus = "approved"
	MemberStatusRejected MemberStatus = "rejected"
)

// IsValid reports whether s is one of the three review states.
func (s MemberStatus) IsValid() bool {
	switch s {
	case MemberStatusPending, MemberStatusApproved, MemberStatusRejected:
		return true
	}
	return false
}

type GoldMemberFlag string

const (
	GoldMemberYes GoldMemberFlag = "yes"
	GoldMemberNo  GoldMemberFlag = "no"
)

// Member is one applicant's submitted registration record.
// Status is always pending at creation and only changes through an
// administrator decision.
type Member struct {
	ID                int32          `json:"id"`
	EnglishName       string         `json:"englishName"`
	CompanyName       string         `json:"companyName,omitempty"`
	Chapter           string         `json:"chapter"`
	Profession        string         `json:"profession"`
	Phone             string         `json:"phone"`
	Email             string         `json:"email"`
	YearsOfMembership int32          `json:"yearsOfMembership"`
	IsGoldMember      GoldMemberFlag `json:"isGoldMember"`
	WeddingCategory   string         `json:"weddingCategory"`
	WeddingServices   string         `json:"weddingServices"`
	ServiceArea       string         `json:"serviceArea,omitempty"`
	PastCasesCount    *int32         `json:"pastCasesCount,omitempty"`
	UniqueAdvantage   string         `json:"uniqueAdvantage,omitempty"`
	FacebookLink      string         `json:"facebookLink,omitempty"`
	InstagramLink     string         `json:"instagramLink,omitempty"`
	WebsiteLink       string         `json:"websiteLink,omitempty"`
	BNIMemberDiscount string         `json:"bniMemberDiscount,omitempty"`
	Referrer          string         `json:"referrer,omitempty"`
	Status            MemberStatus   `json:"status"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// MemberFile is one uploaded supporting document tied to a member.
// Rows are append-only and cannot outlive their member (cascade delete).
type MemberFile struct {
	ID         int32     `json:"id"`
	MemberID   int32     `json:"memberId"`
	FileKey    string    `json:"fileKey"`
	FileURL    string    `json:"fileUrl"`
	FileName   string    `json:"fileName"`
	FileSize   int64     `json:"fileSize"`
	MimeType   string    `json:"mimeType"`
	UploadedAt time.Time `json:"uploadedAt"`
}
