package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundDetailsValue(t *testing.T) {
	var empty RoundDetails
	v, err := empty.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	d := RoundDetails(`{"version":1}`)
	v, err = d.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"version":1}`), v)
}

func TestRoundDetailsScan(t *testing.T) {
	var d RoundDetails

	require.NoError(t, d.Scan(nil))
	assert.Nil(t, []byte(d))

	require.NoError(t, d.Scan([]byte(`{"version":1}`)))
	assert.Equal(t, RoundDetails(`{"version":1}`), d)

	require.NoError(t, d.Scan(`{"version":1,"checks":{}}`))
	assert.Equal(t, RoundDetails(`{"version":1,"checks":{}}`), d)

	assert.Error(t, d.Scan(42))
}

func TestRoundDetailsScanCopiesInput(t *testing.T) {
	src := []byte(`{"version":1}`)
	var d RoundDetails
	require.NoError(t, d.Scan(src))

	// Scan 后修改源切片不应影响已存的快照
	src[0] = 'X'
	assert.Equal(t, RoundDetails(`{"version":1}`), d)
}
