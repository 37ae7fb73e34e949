package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeIDTravelsAsString(t *testing.T) {
	id := SnowflakeID(1803123456789012345)

	data, err := json.Marshal(map[string]SnowflakeID{"id": id})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1803123456789012345"}`, string(data))

	var fromString, fromNumber SnowflakeID
	require.NoError(t, json.Unmarshal([]byte(`"1803123456789012345"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`42`), &fromNumber))
	assert.Equal(t, id, fromString)
	assert.Equal(t, SnowflakeID(42), fromNumber)

	assert.Error(t, json.Unmarshal([]byte(`"abc"`), &fromString))
	assert.Error(t, json.Unmarshal([]byte(`true`), &fromString))
}

func TestSnowflakeIDScan(t *testing.T) {
	var id SnowflakeID
	require.NoError(t, id.Scan(int64(7)))
	assert.Equal(t, SnowflakeID(7), id)
	require.NoError(t, id.Scan([]byte("8")))
	assert.Equal(t, SnowflakeID(8), id)
	require.NoError(t, id.Scan("9"))
	assert.Equal(t, "9", id.String())
	assert.Error(t, id.Scan(1.5))
}
