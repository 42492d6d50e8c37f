package types

import (
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// Time is a wall-clock timestamp that serializes as integer milliseconds
// since epoch, the wire format shared with the remote metadata snapshot.
type Time struct {
	time.Time
}

func NewTime(t time.Time) Time {
	return Time{t.UTC().Truncate(time.Millisecond)}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	ms, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid epoch millisecond timestamp", goerr.V("data", string(data)))
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}
