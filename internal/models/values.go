package models

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ErrInvalidDate is returned by ParseDate for unparseable input.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts a calendar date (2024-03-01) or an RFC 3339 timestamp and
// returns midnight UTC of that day. A timestamp keeps the calendar day of its
// own offset.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, ErrInvalidDate
}

// FormatDate renders the calendar part of t in UTC, dropping the time of day.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// FormatTimestamp renders t as an ISO-8601 UTC timestamp with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// Number is a JSON number that also accepts numeric strings such as "2500",
// which is what HTML form inputs tend to send. A value that is present but not
// a finite number is kept as Invalid so validation can report it per field
// instead of failing the whole body.
type Number struct {
	Value   float64
	Present bool
	Invalid bool
}

// NewNumber returns a present, valid Number.
func NewNumber(v float64) Number {
	return Number{Value: v, Present: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		*n = Number{}
		return nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = s
	}
	return n.UnmarshalText([]byte(raw))
}

// UnmarshalText implements encoding.TextUnmarshaler so form bodies coerce the same way.
func (n *Number) UnmarshalText(b []byte) error {
	*n = Number{Present: true}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		n.Invalid = true
		return nil
	}
	n.Value = v
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.Present || n.Invalid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Ptr returns the value as a pointer, nil when absent.
func (n Number) Ptr() *float64 {
	if !n.Present || n.Invalid {
		return nil
	}
	v := n.Value
	return &v
}
