package mirror

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

const rosterSheetName = "會員資訊"

var rosterHeaders = []interface{}{
	"編號",
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
	"BNI 會員折扣",
	"介紹人",
	"狀態",
	"提交時間",
}

// BuildRosterWorkbook renders all members into one xlsx worksheet, header
// row first. Used by the nightly roster export job.
func BuildRosterWorkbook(members []domain.Member) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), rosterSheetName); err != nil {
		return nil, fmt.Errorf("failed to name roster sheet: %w", err)
	}

	if err := f.SetSheetRow(rosterSheetName, "A1", &rosterHeaders); err != nil {
		return nil, fmt.Errorf("failed to write roster headers: %w", err)
	}

	for i, m := range members {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := rosterRow(m)
		if err := f.SetSheetRow(rosterSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write roster row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(rosterSheetName, "B", "U", 20); err != nil {
		return nil, err
	}

	return f.WriteToBuffer()
}

func rosterRow(m domain.Member) []interface{} {
	pastCases := ""
	if m.PastCasesCount != nil {
		pastCases = fmt.Sprintf("%d", *m.PastCasesCount)
	}

	return []interface{}{
		m.ID,
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
		m.BNIMemberDiscount,
		m.Referrer,
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
