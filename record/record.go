// Package record provides Model, the base entity embedded by generated Go
// units. A Model holds the attribute values of one table row keyed by
// column name and converts them on read:
//
//	type ModelUser struct {
//		record.Model
//	}
//
//	func (m *ModelUser) GetId() int { return m.Model.GetInteger("id") }
package record

import (
	"database/sql"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Model holds the attributes of one row. Attribute names are case-insensitive.
// The zero value is an empty model ready to use.
type Model struct {
	attrs map[string]any
	dirty map[string]struct{}
}

func key(name string) string { return strings.ToLower(name) }

// Get returns the raw value of the attribute, or nil if it is not set.
func (m *Model) Get(name string) any {
	return m.attrs[key(name)]
}

// Set sets the raw value of the attribute and marks it modified.
func (m *Model) Set(name string, v any) {
	if m.attrs == nil {
		m.attrs = make(map[string]any)
		m.dirty = make(map[string]struct{})
	}
	k := key(name)
	m.attrs[k] = v
	m.dirty[k] = struct{}{}
}

// Has reports if the attribute is set.
func (m *Model) Has(name string) bool {
	_, ok := m.attrs[key(name)]
	return ok
}

// Attributes returns a copy of the attribute values.
func (m *Model) Attributes() map[string]any {
	return maps.Clone(m.attrs)
}

// Modified returns the names of the attributes set since the model was
// loaded, sorted.
func (m *Model) Modified() []string {
	return slices.Sorted(maps.Keys(m.dirty))
}

// Load replaces the attributes with the given row values. Loaded values are
// not marked modified.
func (m *Model) Load(columns []string, values []any) error {
	if len(columns) != len(values) {
		return fmt.Errorf("record: %d columns but %d values", len(columns), len(values))
	}
	m.attrs = make(map[string]any, len(columns))
	m.dirty = make(map[string]struct{})
	for i, c := range columns {
		m.attrs[key(c)] = values[i]
	}
	return nil
}

// Scan loads the current row of rows into the model.
func (m *Model) Scan(rows *sql.Rows) error {
	columns, err := rows.Columns()
	if err != nil {
		return err
	}
	values := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range values {
		ptrs[i] = &values[i]
	}
	if err := rows.Scan(ptrs...); err != nil {
		return err
	}
	return m.Load(columns, values)
}

// GetString returns the attribute converted to a string. Nil values
// convert to the empty string.
func (m *Model) GetString(name string) string {
	switch v := m.Get(name).(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// SetString sets a string attribute.
func (m *Model) SetString(name, v string) { m.Set(name, v) }

// GetInteger returns the attribute converted to an int. Values that cannot
// be converted yield 0.
func (m *Model) GetInteger(name string) int {
	switch v := m.Get(name).(type) {
	case int:
		return v
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint8:
		return int(v)
	case uint16:
		return int(v)
	case uint32:
		return int(v)
	case uint64:
		return int(v)
	case float32:
		return int(v)
	case float64:
		return int(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		return atoi(v)
	case []byte:
		return atoi(string(v))
	default:
		return 0
	}
}

func atoi(s string) int {
	s = strings.TrimSpace(s)
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}

// SetInteger sets an integer attribute.
func (m *Model) SetInteger(name string, v int) { m.Set(name, v) }

// GetDouble returns the attribute converted to a float64. Values that
// cannot be converted yield 0.
func (m *Model) GetDouble(name string) float64 {
	switch v := m.Get(name).(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	case []byte:
		f, _ := strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
		return f
	default:
		return float64(m.GetInteger(name))
	}
}

// SetDouble sets a floating point attribute.
func (m *Model) SetDouble(name string, v float64) { m.Set(name, v) }

// Layouts tried, in order, when a time attribute holds text.
var layouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	time.DateOnly,
	time.TimeOnly,
	"15:04:05.999999999-07",
}

func (m *Model) getTime(name string) time.Time {
	switch v := m.Get(name).(type) {
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	case string:
		return parseTime(v)
	case []byte:
		return parseTime(string(v))
	case int64:
		return time.Unix(v, 0).UTC()
	}
	return time.Time{}
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// GetDate returns the attribute as a date, truncated to midnight in the
// location of the value.
func (m *Model) GetDate(name string) time.Time {
	t := m.getTime(name)
	if t.IsZero() {
		return t
	}
	y, mo, d := t.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, t.Location())
}

// SetDate sets a date attribute.
func (m *Model) SetDate(name string, v time.Time) { m.Set(name, v) }

// GetTime returns the attribute as a time of day on the zero date.
func (m *Model) GetTime(name string) time.Time {
	t := m.getTime(name)
	if t.IsZero() {
		return t
	}
	return time.Date(0, time.January, 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// SetTime sets a time-of-day attribute.
func (m *Model) SetTime(name string, v time.Time) { m.Set(name, v) }

// GetTimestamp returns the attribute as a point in time.
func (m *Model) GetTimestamp(name string) time.Time {
	return m.getTime(name)
}

// SetTimestamp sets a timestamp attribute.
func (m *Model) SetTimestamp(name string, v time.Time) { m.Set(name, v) }
