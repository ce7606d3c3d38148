package row

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Row is one record as returned by the remote store: column name to value,
// with values limited to what JSON decoding produces (string, float64,
// bool, nil, nested map, slice).
type Row = map[string]any

// Str coerces a single value to a non-empty trimmed string.
// Numeric identifiers are formatted without a decimal point when whole.
// PRE: v is a JSON-decoded value
// POST: Returns ("", false) for nil, empty strings, and unsupported types
func Str(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10), true
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case bool:
		return strconv.FormatBool(t), true
	}
	return "", false
}

// Pick returns the first populated value among the given column names.
// This is the ordered first-match lookup used for alternate field names:
// when two or more differently-named columns carry the same semantic
// value, the first populated one in priority order wins.
// PRE: keys are listed in priority order
// POST: Returns ("", false) when no key holds a usable value
func Pick(m Row, keys ...string) (string, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if s, ok := Str(v); ok {
				return s, ok
			}
		}
	}
	return "", false
}

// PickOr is Pick with a fallback placeholder.
func PickOr(m Row, fallback string, keys ...string) string {
	if s, ok := Pick(m, keys...); ok {
		return s
	}
	return fallback
}

// SubRow returns a nested object value, e.g. a joined relation.
// POST: Returns (nil, false) when the key is absent, null, or not an object
func SubRow(m Row, keys ...string) (Row, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if sub, ok := v.(map[string]any); ok && len(sub) > 0 {
				return sub, true
			}
		}
	}
	return nil, false
}

// timeLayouts are tried in order when parsing date/timestamp columns.
// The remote store emits RFC 3339 timestamps; date columns come back as
// bare YYYY-MM-DD strings.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Time parses a single value as a timestamp.
// POST: Returns (zero, false) when the value is absent or unparseable
func Time(v any) (time.Time, bool) {
	s, ok := Str(v)
	if !ok {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PickTime returns the first parseable timestamp among the given columns.
func PickTime(m Row, keys ...string) (time.Time, bool) {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			if t, ok := Time(v); ok {
				return t, ok
			}
		}
	}
	return time.Time{}, false
}

// String renders a value for the raw-record inspector.
func String(v any) string {
	if v == nil {
		return "null"
	}
	if s, ok := Str(v); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
