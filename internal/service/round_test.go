package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AllWell/internal/rounds"
	"AllWell/pkg/errors"
)

func TestResolveScopeDefaultsShiftForToday(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

	sc, err := Round().resolveScope("", "", "Owls", now)
	require.NoError(t, err)
	assert.Equal(t, rounds.ShiftMorning, sc.shift)
	assert.Equal(t, "2026-03-14", sc.dateStr())

	// 显式给出今天的日期也允许推断
	sc, err = Round().resolveScope("2026-03-14", "", "Owls", now)
	require.NoError(t, err)
	assert.Equal(t, rounds.ShiftMorning, sc.shift)
}

func TestResolveScopeRequiresShiftForPastDates(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.Local)

	_, err := Round().resolveScope("2026-03-01", "", "Owls", now)
	assert.ErrorIs(t, err, errors.InvalidShift)

	sc, err := Round().resolveScope("2026-03-01", "evening", "Owls", now)
	require.NoError(t, err)
	assert.Equal(t, rounds.ShiftEvening, sc.shift)
	assert.Equal(t, "2026-03-01", sc.dateStr())
}

func TestSnapshotReplayable(t *testing.T) {
	checks := map[string]rounds.CheckState{
		"1": {Secure: true, Watered: true},
	}
	details, err := rounds.BuildDetails(checks)
	require.NoError(t, err)

	assert.True(t, snapshotReplayable(details))

	// 损坏或未知版本的快照不锁 scope
	assert.False(t, snapshotReplayable([]byte(`{"version": 99, "checks": {}}`)))
	assert.False(t, snapshotReplayable([]byte(`not json`)))
	assert.False(t, snapshotReplayable(nil))
}
