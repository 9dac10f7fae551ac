package mirror

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"github.com/ice-solution/bniwedding-application/internal/domain"
)

func TestBuildRosterWorkbook(t *testing.T) {
	cases := int32(12)
	members := []domain.Member{
		{
			ID: 2, EnglishName: "Jane", Chapter: "Central", Profession: "Planner",
			Phone: "91234567", Email: "jane@example.com", YearsOfMembership: 3,
			IsGoldMember: domain.GoldMemberYes, WeddingCategory: "婚禮統籌",
			WeddingServices: "Full planning.", PastCasesCount: &cases,
			Status: domain.MemberStatusApproved, CreatedAt: time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC),
		},
		{
			ID: 1, EnglishName: "John", Chapter: "Harbour", Profession: "Photographer",
			Phone: "98765432", Email: "john@example.com", YearsOfMembership: 5,
			IsGoldMember: domain.GoldMemberNo, WeddingCategory: "攝影",
			WeddingServices: "Photography.", Status: domain.MemberStatusPending,
			CreatedAt: time.Date(2026, 1, 14, 9, 0, 0, 0, time.UTC),
		},
	}

	buf, err := BuildRosterWorkbook(members)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	assert.Equal(t, rosterSheetName, f.GetSheetName(0))

	rows, err := f.GetRows(rosterSheetName)
	assert.NoError(t, err)
	assert.Len(t, rows, 3)

	assert.Equal(t, "編號", rows[0][0])
	assert.Equal(t, "狀態", rows[0][19])

	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "是", rows[1][8])
	assert.Equal(t, "12", rows[1][12])
	assert.Equal(t, "已批准", rows[1][19])
	assert.Equal(t, "2026/01/15 10:30:00", rows[1][20])

	assert.Equal(t, "否", rows[2][8])
	assert.Equal(t, "待審核", rows[2][19])
}

func TestBuildRosterWorkbook_Empty(t *testing.T) {
	buf, err := BuildRosterWorkbook(nil)
	assert.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	assert.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(rosterSheetName)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
}
