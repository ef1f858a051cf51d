package exchange

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestamp(t *testing.T) {
	since := time.Date(2018, time.January, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600))

	t.Run("encodes with numeric offset", func(t *testing.T) {
		data, err := json.Marshal(NewTimestamp(since))
		require.NoError(t, err)
		assert.Equal(t, `"2018-01-01T01:00:00+0100"`, string(data))
	})

	t.Run("decodes to the same instant", func(t *testing.T) {
		var decoded Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"2018-01-01T01:00:00+0100"`), &decoded))
		assert.True(t, since.Equal(decoded.Time))
	})

	t.Run("utc uses a zero offset", func(t *testing.T) {
		data, err := json.Marshal(NewTimestamp(since.UTC()))
		require.NoError(t, err)
		assert.Equal(t, `"2018-01-01T00:00:00+0000"`, string(data))
	})

	t.Run("rejects other layouts", func(t *testing.T) {
		var decoded Timestamp
		err := json.Unmarshal([]byte(`"2018-01-01T01:00:00+01:00"`), &decoded)
		assert.Error(t, err)
	})
}
