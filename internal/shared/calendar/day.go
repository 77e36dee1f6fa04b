package calendar

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const layout = "2006-01-02"

// Day is a calendar date without a time component. It is persisted and rendered as YYYY-MM-DD
// so equality holds across every supported database driver.
type Day struct {
	Year  int
	Month time.Month
	Date  int
}

// DayOf returns the calendar day of t in t's own location.
func DayOf(t time.Time) Day {
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Date: d}
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(raw string) (Day, error) {
	t, err := time.Parse(layout, strings.TrimSpace(raw))
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", raw, err)
	}
	return DayOf(t), nil
}

func (d Day) IsZero() bool {
	return d == Day{}
}

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Date)
}

func (d Day) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Day) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseDay(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the day as text; postgres coerces it into the date column.
func (d Day) Value() (driver.Value, error) {
	return d.String(), nil
}

func (d *Day) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = DayOf(v)
		return nil
	case string:
		return d.scanText(v)
	case []byte:
		return d.scanText(string(v))
	case nil:
		*d = Day{}
		return nil
	default:
		return fmt.Errorf("calendar: cannot scan %T into Day", src)
	}
}

func (d *Day) scanText(raw string) error {
	raw = strings.TrimSpace(raw)
	if len(raw) > len(layout) {
		raw = raw[:len(layout)]
	}
	parsed, err := ParseDay(raw)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType makes AutoMigrate create a DATE column.
func (Day) GormDataType() string {
	return "date"
}

// Clock yields "today" in the server's configured time zone.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Location: loc, Now: time.Now}
}

// Fixed returns a clock frozen at t, used by tests.
func Fixed(t time.Time) Clock {
	return Clock{Location: t.Location(), Now: func() time.Time { return t }}
}

// Instant returns the current time in the clock's location.
func (c Clock) Instant() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	return now().In(loc)
}

func (c Clock) Today() Day {
	return DayOf(c.Instant())
}
