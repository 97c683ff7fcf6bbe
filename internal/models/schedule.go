package models

import (
	"errors"
	"strings"
	"time"
)

// Weekday is a day-of-week name as shown in the schedule editor.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the days in editor order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ScheduleEntry is a single cleaning slot.
type ScheduleEntry struct {
	Day  Weekday `json:"day"`
	Time string  `json:"time"` // HH:MM, 24h
}

var (
	ErrInvalidDay  = errors.New("invalid day: must be one of Monday..Sunday")
	ErrInvalidTime = errors.New("invalid time: expected HH:MM (24h)")
)

// ParseWeekday accepts a day name in any case, with surrounding spaces, or its
// three-letter abbreviation.
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", ErrInvalidDay
	}
	for _, d := range Weekdays {
		name := strings.ToLower(string(d))
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return "", ErrInvalidDay
}

// Weekday maps the day to time.Weekday.
func (d Weekday) Weekday() time.Weekday {
	for i, w := range Weekdays {
		if w == d {
			return time.Weekday((i + 1) % 7)
		}
	}
	return -1
}

// NormalizeClock returns s as HH:MM. Seconds are accepted and dropped.
func NormalizeClock(s string) (string, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), nil
		}
	}
	return "", ErrInvalidTime
}

// Normalize validates e and returns it with canonical day and time.
func (e ScheduleEntry) Normalize() (ScheduleEntry, error) {
	day, err := ParseWeekday(string(e.Day))
	if err != nil {
		return ScheduleEntry{}, err
	}
	clock, err := NormalizeClock(e.Time)
	if err != nil {
		return ScheduleEntry{}, err
	}
	return ScheduleEntry{Day: day, Time: clock}, nil
}
