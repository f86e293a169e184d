package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// DateList is an ordered list of calendar dates stored as a jsonb array.
type DateList []time.Time

func (d DateList) Value() (driver.Value, error) {
	if d == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]time.Time(d))
}

func (d *DateList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*d = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into DateList", src)
	}

	var dates []time.Time
	if err := json.Unmarshal(raw, &dates); err != nil {
		return fmt.Errorf("decoding date list: %w", err)
	}
	*d = dates
	return nil
}

// UnmarshalJSON accepts both "YYYY-MM-DD" and RFC 3339 entries.
func (d *DateList) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("dates must be an array of strings: %w", err)
	}
	if raw == nil {
		*d = nil
		return nil
	}

	dates := make(DateList, 0, len(raw))
	for _, s := range raw {
		t, err := ParseDate(s)
		if err != nil {
			return err
		}
		dates = append(dates, t)
	}
	*d = dates
	return nil
}

// ParseDate parses a calendar date as UTC midnight, or a full RFC 3339
// timestamp as given.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return t, nil
}
