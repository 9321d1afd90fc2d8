package availability

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Time is a wall-clock time of day with minute precision.
type Time struct {
	Hour   int
	Minute int
}

// NewTime builds a Time, it does not validate ranges.
func NewTime(hour, minute int) Time {
	return Time{Hour: hour, Minute: minute}
}

// ParseTime accepts "HH:MM" and "HH:MM:SS" (seconds are dropped).
func ParseTime(s string) (Time, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Time{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return Time{}, fmt.Errorf("invalid hour in time %q", s)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return Time{}, fmt.Errorf("invalid minute in time %q", s)
	}
	return Time{Hour: hour, Minute: minute}, nil
}

// String formats the time as HH:MM. This is the only formatter used for
// both the query string and chat output.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before reports whether t is strictly earlier than u.
func (t Time) Before(u Time) bool {
	if t.Hour != u.Hour {
		return t.Hour < u.Hour
	}
	return t.Minute < u.Minute
}

func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON normalises the shapes the search API has been seen to
// return: "08:00", "08:00:00" and {"hour":8,"minute":0}.
func (t *Time) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Time{}
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := ParseTime(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var obj struct {
		Hour   *int `json:"hour"`
		Minute int  `json:"minute"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid time value %s: %w", string(data), err)
	}
	if obj.Hour == nil {
		return fmt.Errorf("invalid time value %s: missing hour", string(data))
	}
	*t = Time{Hour: *obj.Hour, Minute: obj.Minute}
	return nil
}
