package dashboard

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

var csvHeaders = []string{
	"ID",
	"英文名稱",
	"公司名稱",
	"所屬分會",
	"專業領域",
	"電話",
	"電郵",
	"入會年資",
	"金章會員",
	"婚宴分類",
	"服務區域",
	"案例數量",
	"狀態",
	"提交時間",
}

// utf8BOM makes Excel open the file as UTF-8 instead of the locale
// encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV renders the members as a UTF-8 CSV with localized headers and
// a leading BOM.
func WriteCSV(w io.Writer, members []domain.Member) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeaders); err != nil {
		return err
	}

	for _, m := range members {
		if err := cw.Write(csvRow(m)); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func csvRow(m domain.Member) []string {
	pastCases := ""
	if m.PastCasesCount != nil {
		pastCases = fmt.Sprintf("%d", *m.PastCasesCount)
	}

	gold := "否"
	if m.IsGoldMember == domain.GoldMemberYes {
		gold = "是"
	}

	return []string{
		fmt.Sprintf("%d", m.ID),
		m.EnglishName,
		m.CompanyName,
		m.Chapter,
		m.Profession,
		m.Phone,
		m.Email,
		fmt.Sprintf("%d", m.YearsOfMembership),
		gold,
		m.WeddingCategory,
		m.ServiceArea,
		pastCases,
		statusLabel(m.Status),
		m.CreatedAt.Format("2006/01/02 15:04:05"),
	}
}

func statusLabel(status domain.MemberStatus) string {
	switch status {
	case domain.MemberStatusApproved:
		return "已批准"
	case domain.MemberStatusRejected:
		return "已拒絕"
	default:
		return "待審核"
	}
}
