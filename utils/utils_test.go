package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPINStableAndSalted(t *testing.T) {
	h1 := HashPIN("AA1234", "0000")
	h2 := HashPIN("AA1234", "0000")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)

	// 同一 PIN 不同工牌，哈希必须不同
	h3 := HashPIN("BB1234", "0000")
	assert.NotEqual(t, h1, h3)
}

func TestVerifyPIN(t *testing.T) {
	stored := HashPIN("AA1234", "4321")

	assert.True(t, VerifyPIN("AA1234", "4321", stored))
	assert.False(t, VerifyPIN("AA1234", "4322", stored))
	assert.False(t, VerifyPIN("AB1234", "4321", stored))
	assert.False(t, VerifyPIN("AA1234", "4321", ""))
}

func TestValidateBadgeCode(t *testing.T) {
	assert.True(t, ValidateBadgeCode("ZK1024"))
	assert.True(t, ValidateBadgeCode("AW20260101"))

	assert.False(t, ValidateBadgeCode("zk1024"))
	assert.False(t, ValidateBadgeCode("Z1024"))
	assert.False(t, ValidateBadgeCode("ZKX1024"))
	assert.False(t, ValidateBadgeCode("ZK102"))
	assert.False(t, ValidateBadgeCode(""))
}

func TestValidatePIN(t *testing.T) {
	assert.True(t, ValidatePIN("1234"))
	assert.True(t, ValidatePIN("123456"))

	assert.False(t, ValidatePIN("123"))
	assert.False(t, ValidatePIN("1234567"))
	assert.False(t, ValidatePIN("12a4"))
}

func TestParseDateEmptyDefaultsToToday(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)

	got, err := ParseDate("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local), got)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local)

	got, err := ParseDate("2026-01-02", now)
	require.NoError(t, err)
	assert.Equal(t, 2026, got.Year())
	assert.Equal(t, time.January, got.Month())
	assert.Equal(t, 2, got.Day())

	_, err = ParseDate("01/02/2026", now)
	assert.Error(t, err)
}

func TestParseTimeOntoDate(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)

	got, err := ParseTime("08:30:00", date)
	require.NoError(t, err)
	assert.Equal(t, 8, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, 14, got.Day())

	// 空串直接返回原日期
	got, err = ParseTime("", date)
	require.NoError(t, err)
	assert.Equal(t, date, got)
}
