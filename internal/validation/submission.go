package validation

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

// Permissive: digits, spaces, plus, hyphen, parentheses.
var phonePattern = regexp.MustCompile(`^[0-9+\-() ]{6,50}$`)

const requiredFileCount = 3

// Submission is the wire form of a member registration. The field set is
// fixed; unknown fields are rejected at the decoding boundary.
type Submission struct {
	EnglishName       string           `json:"englishName"`
	CompanyName       string           `json:"companyName"`
	Chapter           string           `json:"chapter"`
	Profession        string           `json:"profession"`
	Phone             string           `json:"phone"`
	Email             string           `json:"email"`
	YearsOfMembership int32            `json:"yearsOfMembership"`
	IsGoldMember      string           `json:"isGoldMember"`
	WeddingCategory   string           `json:"weddingCategory"`
	WeddingServices   string           `json:"weddingServices"`
	ServiceArea       string           `json:"serviceArea"`
	PastCasesCount    *int32           `json:"pastCasesCount"`
	UniqueAdvantage   string           `json:"uniqueAdvantage"`
	FacebookLink      string           `json:"facebookLink"`
	InstagramLink     string           `json:"instagramLink"`
	WebsiteLink       string           `json:"websiteLink"`
	BNIMemberDiscount string           `json:"bniMemberDiscount"`
	Referrer          string           `json:"referrer"`
	Files             []FileDescriptor `json:"files"`
}

// FileDescriptor references a file already placed with the storage adapter.
type FileDescriptor struct {
	FileKey  string `json:"fileKey"`
	FileURL  string `json:"fileUrl"`
	FileName string `json:"fileName"`
	FileSize int64  `json:"fileSize"`
	MimeType string `json:"mimeType"`
}

// Validate checks a single file descriptor. All metadata must be populated.
func (f FileDescriptor) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FileKey, validation.Required),
		validation.Field(&f.FileURL, validation.Required),
		validation.Field(&f.FileName, validation.Required),
		validation.Field(&f.FileSize, validation.Required, validation.Min(1)),
		validation.Field(&f.MimeType, validation.Required),
	)
}

func (s Submission) validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.EnglishName, validation.Required),
		validation.Field(&s.Chapter, validation.Required),
		validation.Field(&s.Profession, validation.Required),
		validation.Field(&s.Phone, validation.Required, validation.Match(phonePattern)),
		validation.Field(&s.Email, validation.Required, is.EmailFormat),
		validation.Field(&s.YearsOfMembership, validation.Required, validation.Min(1), validation.Max(25)),
		validation.Field(&s.IsGoldMember, validation.Required,
			validation.In(string(domain.GoldMemberYes), string(domain.GoldMemberNo))),
		validation.Field(&s.WeddingCategory, validation.Required),
		validation.Field(&s.WeddingServices, validation.Required, validation.RuneLength(10, 0)),
		// Optional links: empty string or a well-formed URL.
		validation.Field(&s.FacebookLink, is.URL),
		validation.Field(&s.InstagramLink, is.URL),
		validation.Field(&s.WebsiteLink, is.URL),
		validation.Field(&s.Files, validation.Required, validation.Length(requiredFileCount, requiredFileCount)),
	)
}

// Normalize validates a raw submission and converts it to a fully-typed
// member plus its file rows, or returns a single aggregate ValidationError
// with per-field messages. Nothing is persisted here.
func Normalize(s Submission) (*domain.Member, []domain.MemberFile, error) {
	s.trim()

	if err := s.validate(); err != nil {
		return nil, nil, toValidationError(err)
	}

	m := &domain.Member{
		EnglishName:       s.EnglishName,
		CompanyName:       s.CompanyName,
		Chapter:           s.Chapter,
		Profession:        s.Profession,
		Phone:             s.Phone,
		Email:             strings.ToLower(s.Email),
		YearsOfMembership: s.YearsOfMembership,
		IsGoldMember:      domain.GoldMemberFlag(s.IsGoldMember),
		WeddingCategory:   s.WeddingCategory,
		WeddingServices:   s.WeddingServices,
		ServiceArea:       s.ServiceArea,
		PastCasesCount:    s.PastCasesCount,
		UniqueAdvantage:   s.UniqueAdvantage,
		FacebookLink:      s.FacebookLink,
		InstagramLink:     s.InstagramLink,
		WebsiteLink:       s.WebsiteLink,
		BNIMemberDiscount: s.BNIMemberDiscount,
		Referrer:          s.Referrer,
		Status:            domain.MemberStatusPending,
	}

	files := make([]domain.MemberFile, 0, len(s.Files))
	for _, f := range s.Files {
		files = append(files, domain.MemberFile{
			FileKey:  f.FileKey,
			FileURL:  f.FileURL,
			FileName: f.FileName,
			FileSize: f.FileSize,
			MimeType: f.MimeType,
		})
	}

	return m, files, nil
}

func (s *Submission) trim() {
	s.EnglishName = strings.TrimSpace(s.EnglishName)
	s.CompanyName = strings.TrimSpace(s.CompanyName)
	s.Chapter = strings.TrimSpace(s.Chapter)
	s.Profession = strings.TrimSpace(s.Profession)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Email = strings.TrimSpace(s.Email)
	s.IsGoldMember = strings.TrimSpace(s.IsGoldMember)
	s.WeddingCategory = strings.TrimSpace(s.WeddingCategory)
	s.WeddingServices = strings.TrimSpace(s.WeddingServices)
	s.ServiceArea = strings.TrimSpace(s.ServiceArea)
	s.UniqueAdvantage = strings.TrimSpace(s.UniqueAdvantage)
	s.FacebookLink = strings.TrimSpace(s.FacebookLink)
	s.InstagramLink = strings.TrimSpace(s.InstagramLink)
	s.WebsiteLink = strings.TrimSpace(s.WebsiteLink)
	s.BNIMemberDiscount = strings.TrimSpace(s.BNIMemberDiscount)
	s.Referrer = strings.TrimSpace(s.Referrer)
}

// toValidationError flattens ozzo's nested error map into per-field messages.
func toValidationError(err error) *domain.ValidationError {
	fields := make(map[string]string)
	flatten("", err, fields)
	return &domain.ValidationError{Fields: fields}
}

func flatten(prefix string, err error, out map[string]string) {
	errs, ok := err.(validation.Errors)
	if !ok {
		if prefix == "" {
			prefix = "submission"
		}
		out[prefix] = err.Error()
		return
	}
	for field, ferr := range errs {
		name := field
		if prefix != "" {
			name = prefix + "." + field
		}
		flatten(name, ferr, out)
	}
}
