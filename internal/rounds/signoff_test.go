package rounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AllWell/pkg/errors"
)

func completeOwlSession(t *testing.T) *Session {
	t.Helper()
	s := newOwlSession()
	for _, id := range []string{"1", "2"} {
		_, err := s.ToggleSecure(id)
		require.NoError(t, err)
		require.NoError(t, s.ToggleWater(id))
	}
	return s
}

func TestCanSignOffWhenComplete(t *testing.T) {
	s := completeOwlSession(t)

	assert.True(t, s.CanSignOff())
	assert.NoError(t, s.ValidateSignOff())
}

func TestSignOffRequiresCompleteProgress(t *testing.T) {
	s := newOwlSession()

	_, err := s.ToggleSecure("1")
	require.NoError(t, err)
	require.NoError(t, s.ToggleWater("1"))

	assert.ErrorIs(t, s.ValidateSignOff(), errors.RoundIncomplete)
}

func TestSignOffRequiresInitials(t *testing.T) {
	s := completeOwlSession(t)
	require.NoError(t, s.SetInitials(""))

	assert.ErrorIs(t, s.ValidateSignOff(), errors.SignatureRequired)
}

func TestSignOffRejectedWhenReadOnly(t *testing.T) {
	s := RehydrateSession("2026-03-14", ShiftMorning, SectionOwls, owlRoster(),
		map[string]CheckState{}, "", "JD")

	assert.ErrorIs(t, s.ValidateSignOff(), errors.RoundAlreadySigned)
}

// 鸟类分区有已检查但未饮水的动物时，必须先写分区备注
func TestNoteRequiredForSkippedWaterInAvianSection(t *testing.T) {
	s := newOwlSession()

	for _, id := range []string{"1", "2"} {
		_, err := s.ToggleSecure(id)
		require.NoError(t, err)
	}

	assert.True(t, s.NoteRequired())
	assert.ErrorIs(t, s.ValidateSignOff(), errors.NoteRequired)

	// 补充备注后不改任何 CheckState 就能签字
	require.NoError(t, s.SetGeneralNotes("Water bowls frozen, topped up at 9am"))
	assert.False(t, s.NoteRequired())
	assert.NoError(t, s.ValidateSignOff())
}

func TestNoteNotRequiredForNonAvianSection(t *testing.T) {
	roster := []Animal{{ID: "10", Name: "Badger"}}
	s := NewSession("2026-03-14", ShiftMorning, SectionMammals, roster, "JD")

	_, err := s.ToggleSecure("10")
	require.NoError(t, err)

	assert.False(t, s.NoteRequired())
}

func TestNoteNotRequiredWhenAnimalFlaggedDead(t *testing.T) {
	roster := []Animal{{ID: "1", Name: "Hedwig"}}
	s := NewSession("2026-03-14", ShiftMorning, SectionOwls, roster, "JD")

	_, err := s.ToggleHealth("1")
	require.NoError(t, err)
	_, err = s.ToggleHealth("1")
	require.NoError(t, err)
	require.NoError(t, s.ConfirmIssue("Found unresponsive"))

	// 已降级的动物不触发饮水备注规则
	assert.False(t, s.NoteRequired())
	assert.NoError(t, s.ValidateSignOff())
}

func TestNoteNotRequiredWhenAnimalsWatered(t *testing.T) {
	s := completeOwlSession(t)

	assert.False(t, s.NoteRequired())
}
