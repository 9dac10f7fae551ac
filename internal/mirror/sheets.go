package mirror

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/ice-solution/bniwedding-application/internal/domain"
	"github.com/ice-solution/bniwedding-application/internal/logger"
)

// sheetHeaders is written to row 1 the first time the mirror touches an
// empty spreadsheet. Column order matches submissionRow.
var sheetHeaders = []interface{}{
	"提交時間",
	"英文名稱",
	"公司/品牌名稱",
	"所屬分會",
	"專業領域",
	"會員電話",
	"會員電郵",
	"入會年資",
	"金章會員",
	"婚宴分類",
	"婚宴服務描述",
	"服務區域",
	"過往婚宴案例數量",
	"特色服務/差異化優勢",
	"Facebook 連結",
	"Instagram 連結",
	"網站連結",
	"綠燈證明文件連結",
	"BNI 會員折扣",
	"介紹人",
}

// SheetMirror appends each accepted submission as one row of a Google
// Sheet. The sheet is a convenience copy for reviewers; the database stays
// the source of truth.
type SheetMirror struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheetMirror builds a mirror writing to the given spreadsheet using
// service account credentials.
func NewSheetMirror(ctx context.Context, credentialsFile, spreadsheetID string) (*SheetMirror, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets client: %w", err)
	}
	return &SheetMirror{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// MirrorSubmission appends the member as a new row, bootstrapping the
// header row when the first sheet is still empty.
func (s *SheetMirror) MirrorSubmission(ctx context.Context, m *domain.Member, files []domain.MemberFile) error {
	logger.ExternalServiceCall("sheets", "append", "spreadsheet", s.spreadsheetID)

	title, err := s.firstSheetTitle(ctx)
	if err != nil {
		logger.ExternalServiceResult("sheets", "append", err)
		return s.wrap(err)
	}

	if err := s.ensureHeaders(ctx, title); err != nil {
		logger.ExternalServiceResult("sheets", "append", err)
		return s.wrap(err)
	}

	row := submissionRow(m, files)
	_, err = s.svc.Spreadsheets.Values.Append(
		s.spreadsheetID,
		fmt.Sprintf("'%s'!A:A", title),
		&sheets.ValueRange{Values: [][]interface{}{row}},
	).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()

	logger.ExternalServiceResult("sheets", "append", err)
	if err != nil {
		return s.wrap(err)
	}
	return nil
}

func (s *SheetMirror) firstSheetTitle(ctx context.Context) (string, error) {
	spreadsheet, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return "", err
	}
	if len(spreadsheet.Sheets) == 0 || spreadsheet.Sheets[0].Properties == nil {
		return "", fmt.Errorf("spreadsheet %s has no sheets", s.spreadsheetID)
	}
	return spreadsheet.Sheets[0].Properties.Title, nil
}

func (s *SheetMirror) ensureHeaders(ctx context.Context, title string) error {
	headerRange := fmt.Sprintf("'%s'!A1:Z1", title)

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, headerRange).Context(ctx).Do()
	if err == nil && len(resp.Values) > 0 && len(resp.Values[0]) > 0 {
		return nil
	}
	// A read failure on an empty sheet also means no headers yet.

	_, err = s.svc.Spreadsheets.Values.Update(
		s.spreadsheetID,
		headerRange,
		&sheets.ValueRange{Values: [][]interface{}{sheetHeaders}},
	).ValueInputOption("RAW").Context(ctx).Do()
	return err
}

func submissionRow(m *domain.Member, files []domain.MemberFile) []interface{} {
	fileURLs := make([]string, 0, len(files))
	for _, f := range files {
		fileURLs = append(fileURLs, f.FileURL)
	}

	pastCases := ""
	if m.PastCasesCount != nil {
		pastCases = fmt.Sprintf("%d", *m.PastCasesCount)
	}

	return []interface{}{
		m.CreatedAt.Format("2006/01/02 15:04:05"),
		m.EnglishName,
		m.CompanyName,
		m.Chapter,
		m.Profession,
		m.Phone,
		m.Email,
		fmt.Sprintf("%d 年", m.YearsOfMembership),
		goldMemberLabel(m.IsGoldMember),
		m.WeddingCategory,
		m.WeddingServices,
		m.ServiceArea,
		pastCases,
		m.UniqueAdvantage,
		m.FacebookLink,
		m.InstagramLink,
		m.WebsiteLink,
		strings.Join(fileURLs, "; "),
		m.BNIMemberDiscount,
		m.Referrer,
	}
}

func goldMemberLabel(flag domain.GoldMemberFlag) string {
	if flag == domain.GoldMemberYes {
		return "是"
	}
	return "否"
}

func (s *SheetMirror) wrap(err error) error {
	return &domain.ExternalServiceError{Service: "sheets", Err: err}
}
