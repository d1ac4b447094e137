package rounds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AllWell/pkg/errors"
)

func TestParseShift(t *testing.T) {
	for raw, want := range map[string]Shift{
		"morning": ShiftMorning,
		"Morning": ShiftMorning,
		"EVENING": ShiftEvening,
		" evening ": ShiftEvening,
	} {
		got, err := ParseShift(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseShift("night")
	assert.ErrorIs(t, err, errors.InvalidShift)
}

func TestParseSection(t *testing.T) {
	got, err := ParseSection("owls")
	require.NoError(t, err)
	assert.Equal(t, SectionOwls, got)

	got, err = ParseSection("Raptors")
	require.NoError(t, err)
	assert.Equal(t, SectionRaptors, got)

	_, err = ParseSection("Fish")
	assert.ErrorIs(t, err, errors.InvalidSection)
}

func TestIsAvian(t *testing.T) {
	assert.True(t, SectionOwls.IsAvian())
	assert.True(t, SectionRaptors.IsAvian())
	assert.False(t, SectionMammals.IsAvian())
	assert.False(t, SectionReptiles.IsAvian())
	assert.False(t, SectionExotics.IsAvian())
}

func TestDefaultShiftFor(t *testing.T) {
	morning := time.Date(2026, 3, 14, 8, 30, 0, 0, time.Local)
	assert.Equal(t, ShiftMorning, DefaultShiftFor(morning))

	lateMorning := time.Date(2026, 3, 14, 11, 59, 0, 0, time.Local)
	assert.Equal(t, ShiftMorning, DefaultShiftFor(lateMorning))

	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)
	assert.Equal(t, ShiftEvening, DefaultShiftFor(noon))

	evening := time.Date(2026, 3, 14, 19, 0, 0, 0, time.Local)
	assert.Equal(t, ShiftEvening, DefaultShiftFor(evening))
}
