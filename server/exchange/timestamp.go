package exchange

import (
	"time"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// TimestampLayout is the date-time format used on the wire, an ISO 8601
// variant with a numeric UTC offset and no colon (2018-01-01T01:00:00+0100).
const TimestampLayout = "2006-01-02T15:04:05-0700"

// Timestamp is a point in time encoded with TimestampLayout.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return errors.Wrap(err, "timestamp is not a string")
	}

	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return errors.Wrapf(err, "failed to parse timestamp %q", s)
	}

	t.Time = parsed
	return nil
}
