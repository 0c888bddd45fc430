package domain

import "time"

// DateLayout is the calendar date key format used across persisted state.
const DateLayout = "2006-01-02"

// DateKey returns the local calendar date of t.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDateKey parses a calendar date key as midnight UTC.
func ParseDateKey(key string) (time.Time, error) {
	return time.Parse(DateLayout, key)
}

// DaysBetween returns the number of calendar days from one date key to another.
// The keys are compared as UTC midnights so daylight-saving shifts never matter.
func DaysBetween(from, to string) (int, error) {
	a, err := ParseDateKey(from)
	if err != nil {
		return 0, err
	}
	b, err := ParseDateKey(to)
	if err != nil {
		return 0, err
	}
	return int(b.Sub(a).Hours() / 24), nil
}

// AddDays shifts a date key by n calendar days.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// WeekStart returns the date key of the Monday beginning the week containing t.
// Sunday belongs to the week that started six days earlier.
func WeekStart(t time.Time) string {
	offset := int(t.Weekday()) - 1
	if t.Weekday() == time.Sunday {
		offset = 6
	}
	monday := time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, t.Location())
	return DateKey(monday)
}
