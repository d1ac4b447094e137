package rounds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetailsRoundTrip(t *testing.T) {
	alive := false
	checks := map[string]CheckState{
		"1": {Alive: &alive, HealthIssue: "Limping"},
		"2": {Watered: true, Secure: true},
	}

	raw, err := BuildDetails(checks)
	require.NoError(t, err)

	parsed, err := ParseDetails(raw)
	require.NoError(t, err)

	require.NotNil(t, parsed["1"].Alive)
	assert.False(t, *parsed["1"].Alive)
	assert.Equal(t, "Limping", parsed["1"].HealthIssue)
	assert.True(t, parsed["2"].Watered)
	assert.True(t, parsed["2"].Secure)
}

func TestParseDetailsRejectsMalformed(t *testing.T) {
	_, err := ParseDetails([]byte("{not json"))
	assert.Error(t, err)

	_, err = ParseDetails(nil)
	assert.Error(t, err)
}

func TestParseDetailsRejectsUnknownVersion(t *testing.T) {
	_, err := ParseDetails([]byte(`{"version": 99, "checks": {}}`))
	assert.Error(t, err)

	// 无版本字段的历史格式同样拒绝，由调用方按可编辑处理
	_, err = ParseDetails([]byte(`{"checks": {}}`))
	assert.Error(t, err)
}

func TestParseDetailsEmptyChecksOK(t *testing.T) {
	parsed, err := ParseDetails([]byte(`{"version": 1}`))
	require.NoError(t, err)
	assert.NotNil(t, parsed)
	assert.Empty(t, parsed)
}
