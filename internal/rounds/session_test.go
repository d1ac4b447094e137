package rounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AllWell/pkg/errors"
)

func owlRoster() []Animal {
	return []Animal{
		{ID: "1", Name: "Hedwig"},
		{ID: "2", Name: "Archimedes"},
	}
}

func newOwlSession() *Session {
	return NewSession("2026-03-14", ShiftMorning, SectionOwls, owlRoster(), "JD")
}

func TestNewSessionInitializesEmptyChecks(t *testing.T) {
	s := newOwlSession()

	assert.Equal(t, ModeEditable, s.Mode)
	assert.Len(t, s.Checks, 2)
	for _, cs := range s.Checks {
		assert.Nil(t, cs.Alive)
		assert.False(t, cs.Watered)
		assert.False(t, cs.Secure)
	}
}

func TestToggleHealthMarksAliveWhenUnassessed(t *testing.T) {
	s := newOwlSession()

	prompt, err := s.ToggleHealth("1")
	require.NoError(t, err)
	assert.Nil(t, prompt)

	cs := s.Checks["1"]
	require.NotNil(t, cs.Alive)
	assert.True(t, *cs.Alive)
	assert.Empty(t, cs.HealthIssue)
}

func TestToggleHealthDowngradeRequiresConfirmation(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleHealth("1")
	require.NoError(t, err)

	prompt, err := s.ToggleHealth("1")
	require.NoError(t, err)
	require.NotNil(t, prompt)
	assert.Equal(t, "1", prompt.AnimalID)
	assert.Equal(t, IssueHealth, prompt.Kind)

	// 确认前 CheckState 不变
	cs := s.Checks["1"]
	require.NotNil(t, cs.Alive)
	assert.True(t, *cs.Alive)

	err = s.ConfirmIssue("Limping")
	require.NoError(t, err)

	cs = s.Checks["1"]
	require.NotNil(t, cs.Alive)
	assert.False(t, *cs.Alive)
	assert.Equal(t, "Limping", cs.HealthIssue)
	assert.Nil(t, s.Pending)
}

func TestToggleHealthRecoveryClearsIssue(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleHealth("1")
	require.NoError(t, err)
	_, err = s.ToggleHealth("1")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Limping"))

	// 再点一次恢复 alive 并清除问题文本
	prompt, err := s.ToggleHealth("1")
	require.NoError(t, err)
	assert.Nil(t, prompt)

	cs := s.Checks["1"]
	require.NotNil(t, cs.Alive)
	assert.True(t, *cs.Alive)
	assert.Empty(t, cs.HealthIssue)
}

func TestFlaggedDeadDisablesWaterAndSecurity(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleHealth("1")
	require.NoError(t, err)
	_, err = s.ToggleHealth("1")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Found unresponsive"))

	err = s.ToggleWater("1")
	assert.ErrorIs(t, err, errors.ToggleDisabled)

	_, err = s.ToggleSecure("1")
	assert.ErrorIs(t, err, errors.ToggleDisabled)
}

func TestToggleWaterIsPlainFlip(t *testing.T) {
	s := newOwlSession()

	require.NoError(t, s.ToggleWater("1"))
	assert.True(t, s.Checks["1"].Watered)

	require.NoError(t, s.ToggleWater("1"))
	assert.False(t, s.Checks["1"].Watered)
}

func TestToggleSecureDowngradePreservesWatered(t *testing.T) {
	s := newOwlSession()

	require.NoError(t, s.ToggleWater("1"))
	_, err := s.ToggleSecure("1")
	require.NoError(t, err)
	require.True(t, s.Checks["1"].Secure)

	prompt, err := s.ToggleSecure("1")
	require.NoError(t, err)
	require.NotNil(t, prompt)
	assert.Equal(t, IssueSecurity, prompt.Kind)

	require.NoError(t, s.ConfirmIssue("Latch broken"))

	cs := s.Checks["1"]
	assert.False(t, cs.Secure)
	assert.Equal(t, "Latch broken", cs.SecurityIssue)
	assert.True(t, cs.Watered)
}

func TestToggleSecureUpgradeClearsIssue(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleSecure("1")
	require.NoError(t, err)
	_, err = s.ToggleSecure("1")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Latch broken"))

	prompt, err := s.ToggleSecure("1")
	require.NoError(t, err)
	assert.Nil(t, prompt)

	cs := s.Checks["1"]
	assert.True(t, cs.Secure)
	assert.Empty(t, cs.SecurityIssue)
}

func TestCancelIssueLeavesStateUntouched(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleHealth("1")
	require.NoError(t, err)
	_, err = s.ToggleHealth("1")
	require.NoError(t, err)
	require.NotNil(t, s.Pending)

	require.NoError(t, s.CancelIssue())
	assert.Nil(t, s.Pending)

	cs := s.Checks["1"]
	require.NotNil(t, cs.Alive)
	assert.True(t, *cs.Alive)
	assert.Empty(t, cs.HealthIssue)
}

func TestConfirmIssueRejectsEmptyNote(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleSecure("1")
	require.NoError(t, err)
	_, err = s.ToggleSecure("1")
	require.NoError(t, err)

	err = s.ConfirmIssue("")
	assert.ErrorIs(t, err, errors.IssueNoteRequired)
	assert.NotNil(t, s.Pending)
}

func TestConfirmIssueWithoutPromptFails(t *testing.T) {
	s := newOwlSession()

	err := s.ConfirmIssue("anything")
	assert.ErrorIs(t, err, errors.IssueFlowNotActive)
	assert.ErrorIs(t, s.CancelIssue(), errors.IssueFlowNotActive)
}

func TestPendingPromptBlocksOtherToggles(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleSecure("1")
	require.NoError(t, err)
	_, err = s.ToggleSecure("1")
	require.NoError(t, err)
	require.NotNil(t, s.Pending)

	assert.ErrorIs(t, s.ToggleWater("2"), errors.IssueFlowActive)
	_, err = s.ToggleHealth("2")
	assert.ErrorIs(t, err, errors.IssueFlowActive)
	_, err = s.ToggleSecure("2")
	assert.ErrorIs(t, err, errors.IssueFlowActive)
}

func TestUnknownAnimalRejected(t *testing.T) {
	s := newOwlSession()

	err := s.ToggleWater("99")
	assert.ErrorIs(t, err, errors.AnimalNotInRound)
}

func TestReadOnlySessionRejectsAllMutation(t *testing.T) {
	s := RehydrateSession("2026-03-14", ShiftMorning, SectionOwls, owlRoster(),
		map[string]CheckState{}, "all well", "JD")

	assert.True(t, s.ReadOnly())

	_, err := s.ToggleHealth("1")
	assert.ErrorIs(t, err, errors.RoundReadOnly)
	assert.ErrorIs(t, s.ToggleWater("1"), errors.RoundReadOnly)
	_, err = s.ToggleSecure("1")
	assert.ErrorIs(t, err, errors.RoundReadOnly)
	assert.ErrorIs(t, s.SetGeneralNotes("x"), errors.RoundReadOnly)
	assert.ErrorIs(t, s.SetInitials("AB"), errors.RoundReadOnly)
}

func TestConfirmIssueForRejectsMismatchedPrompt(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleSecure("1")
	require.NoError(t, err)
	_, err = s.ToggleSecure("1")
	require.NoError(t, err)
	require.NotNil(t, s.Pending)

	err = s.ConfirmIssueFor("2", IssueSecurity, "Latch broken")
	assert.ErrorIs(t, err, errors.IssueFlowMismatch)

	err = s.ConfirmIssueFor("1", IssueHealth, "Latch broken")
	assert.ErrorIs(t, err, errors.IssueFlowMismatch)
	require.NotNil(t, s.Pending)

	require.NoError(t, s.ConfirmIssueFor("1", IssueSecurity, "Latch broken"))
	assert.Equal(t, "Latch broken", s.Checks["1"].SecurityIssue)
	assert.Nil(t, s.Pending)
}

func TestConfirmIssueForEmptyTargetMatchesAnyPrompt(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleSecure("1")
	require.NoError(t, err)
	_, err = s.ToggleSecure("1")
	require.NoError(t, err)

	require.NoError(t, s.ConfirmIssueFor("", "", "Latch broken"))
	assert.Nil(t, s.Pending)
}

func TestRehydrateRestoresSnapshot(t *testing.T) {
	alive := false
	checks := map[string]CheckState{
		"1": {Alive: &alive, HealthIssue: "Limping"},
		"2": {Secure: true, Watered: true},
	}

	s := RehydrateSession("2026-03-14", ShiftEvening, SectionOwls, owlRoster(),
		checks, "notes", "JD")

	cs := s.Checks["1"]
	require.NotNil(t, cs.Alive)
	assert.False(t, *cs.Alive)
	assert.Equal(t, "Limping", cs.HealthIssue)
	assert.True(t, s.Checks["2"].Secure)
	assert.Equal(t, "JD", s.SignedBy)
	assert.Equal(t, "notes", s.GeneralNotes)
}

func TestRehydrateKeepsChecksForAnimalsGoneFromRoster(t *testing.T) {
	alive := false
	checks := map[string]CheckState{
		"1": {Secure: true, Watered: true},
		"2": {Secure: true, Watered: true},
		"3": {Alive: &alive, HealthIssue: "Found unresponsive"},
	}

	// "3" 签字后被归档，当前名单里已经没有它
	s := RehydrateSession("2026-03-14", ShiftMorning, SectionOwls, owlRoster(),
		checks, "", "JD")

	cs, ok := s.Checks["3"]
	require.True(t, ok)
	require.NotNil(t, cs.Alive)
	assert.False(t, *cs.Alive)
	assert.Equal(t, "Found unresponsive", cs.HealthIssue)

	require.Len(t, s.Animals, 3)
	assert.Equal(t, "3", s.Animals[2].ID)
	assert.Equal(t, 1, s.IssuesFound())
}

func TestRehydrateExcludesAnimalsAddedAfterSignOff(t *testing.T) {
	checks := map[string]CheckState{
		"1": {Secure: true, Watered: true},
	}

	// "2" 是签字后才入册的，不属于这一轮
	s := RehydrateSession("2026-03-14", ShiftMorning, SectionOwls, owlRoster(),
		checks, "", "JD")

	require.Len(t, s.Animals, 1)
	assert.Equal(t, "1", s.Animals[0].ID)
	_, ok := s.Checks["2"]
	assert.False(t, ok)
}
