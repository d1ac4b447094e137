package rounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgressEmptyRoster(t *testing.T) {
	s := NewSession("2026-03-14", ShiftMorning, SectionOwls, nil, "JD")

	p := s.Progress()
	assert.Equal(t, 0, p.Total)
	assert.Equal(t, 0, p.Completed)
	assert.Equal(t, 0, p.Percent)
	assert.False(t, p.IsComplete)
}

// 两只猫头鹰的完整场景：从空白到逐步完成
func TestProgressOwlScenario(t *testing.T) {
	s := newOwlSession()

	p := s.Progress()
	assert.Equal(t, 0, p.Completed)
	assert.Equal(t, 0, p.Percent)

	// A 确认围栏安全，鸟类分区即算完成
	_, err := s.ToggleSecure("1")
	require.NoError(t, err)

	p = s.Progress()
	assert.Equal(t, 1, p.Completed)
	assert.Equal(t, 50, p.Percent)
	assert.False(t, p.IsComplete)

	// A 健康正常，B 健康降级附问题文本
	_, err = s.ToggleHealth("1")
	require.NoError(t, err)
	_, err = s.ToggleHealth("2")
	require.NoError(t, err)
	_, err = s.ToggleHealth("2")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Limping"))

	// B 已降级算 "已处理"，两只都完成
	p = s.Progress()
	assert.Equal(t, 2, p.Completed)
	assert.Equal(t, 100, p.Percent)
	assert.True(t, p.IsComplete)

	drafts := s.BuildIncidents()
	require.Len(t, drafts, 1)
	assert.Equal(t, "2", drafts[0].AnimalID)
	assert.Equal(t, IncidentTypeInjury, drafts[0].Type)
	assert.Contains(t, drafts[0].Description, "Limping")
}

// 哺乳类需要饮水和围栏双条件
func TestProgressMammalRequiresWaterAndSecurity(t *testing.T) {
	roster := []Animal{{ID: "10", Name: "Badger"}}
	s := NewSession("2026-03-14", ShiftMorning, SectionMammals, roster, "JD")

	require.NoError(t, s.ToggleWater("10"))
	assert.False(t, s.Progress().IsComplete)

	_, err := s.ToggleSecure("10")
	require.NoError(t, err)
	assert.True(t, s.Progress().IsComplete)

	// 围栏降级并记录故障后仍算完成（问题已有文档），但会产生事件
	_, err = s.ToggleSecure("10")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Fence wire loose"))

	assert.True(t, s.Progress().IsComplete)
	assert.Equal(t, 1, s.IssuesFound())

	drafts := s.BuildIncidents()
	require.Len(t, drafts, 1)
	assert.Equal(t, IncidentTypeSecurity, drafts[0].Type)
}

func TestProgressAvianIgnoresWater(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleSecure("1")
	require.NoError(t, err)
	_, err = s.ToggleSecure("2")
	require.NoError(t, err)

	// 没有任何饮水确认，鸟类分区照样完成
	p := s.Progress()
	assert.True(t, p.IsComplete)
}

func TestProgressPercentRounding(t *testing.T) {
	roster := []Animal{
		{ID: "1", Name: "a"},
		{ID: "2", Name: "b"},
		{ID: "3", Name: "c"},
	}
	s := NewSession("2026-03-14", ShiftMorning, SectionOwls, roster, "JD")

	_, err := s.ToggleSecure("1")
	require.NoError(t, err)

	// 1/3 = 33.3% 四舍五入到 33
	assert.Equal(t, 33, s.Progress().Percent)

	_, err = s.ToggleSecure("2")
	require.NoError(t, err)

	// 2/3 = 66.7% 四舍五入到 67
	assert.Equal(t, 67, s.Progress().Percent)
}
