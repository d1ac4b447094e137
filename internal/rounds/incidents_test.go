package rounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIncidentsNoneWhenClean(t *testing.T) {
	s := completeOwlSession(t)

	assert.Empty(t, s.BuildIncidents())
	assert.Equal(t, 0, s.IssuesFound())
}

func TestBuildIncidentsOnePerFlaggedAnimal(t *testing.T) {
	s := newOwlSession()

	// 1 号健康降级，2 号围栏故障
	_, err := s.ToggleHealth("1")
	require.NoError(t, err)
	_, err = s.ToggleHealth("1")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Wing injury"))

	_, err = s.ToggleSecure("2")
	require.NoError(t, err)
	_, err = s.ToggleSecure("2")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Door hinge snapped"))

	drafts := s.BuildIncidents()
	require.Len(t, drafts, 2)
	assert.Equal(t, 2, s.IssuesFound())

	byID := map[string]IncidentDraft{}
	for _, d := range drafts {
		byID[d.AnimalID] = d
	}

	injury := byID["1"]
	assert.Equal(t, IncidentTypeInjury, injury.Type)
	assert.Equal(t, "Morning round, Owls: Wing injury", injury.Description)
	assert.Equal(t, "JD", injury.ReportedBy)
	assert.Equal(t, "Hedwig", injury.AnimalName)

	security := byID["2"]
	assert.Equal(t, IncidentTypeSecurity, security.Type)
	assert.Equal(t, "Morning round, Owls: Door hinge snapped", security.Description)
}

// 同一动物健康和围栏都降级时只产生一条 injury 事件
func TestBuildIncidentsHealthWinsOverSecurity(t *testing.T) {
	roster := []Animal{{ID: "1", Name: "Hedwig"}}
	s := NewSession("2026-03-14", ShiftEvening, SectionOwls, roster, "JD")

	_, err := s.ToggleSecure("1")
	require.NoError(t, err)
	_, err = s.ToggleSecure("1")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Mesh torn"))

	_, err = s.ToggleHealth("1")
	require.NoError(t, err)
	_, err = s.ToggleHealth("1")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Not eating"))

	drafts := s.BuildIncidents()
	require.Len(t, drafts, 1)
	assert.Equal(t, IncidentTypeInjury, drafts[0].Type)
	assert.Equal(t, "Evening round, Owls: Not eating", drafts[0].Description)
}

func TestBuildIncidentsNeverSpeculative(t *testing.T) {
	s := newOwlSession()

	// 降级请求未确认时不产生事件
	_, err := s.ToggleHealth("1")
	require.NoError(t, err)
	_, err = s.ToggleHealth("1")
	require.NoError(t, err)

	assert.Empty(t, s.BuildIncidents())
}
