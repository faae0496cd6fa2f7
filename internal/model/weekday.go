package model

import (
	"fmt"
	"time"
)

// Weekday is a closed enumeration of the 7 calendar weekdays with a
// total order starting at Monday. The wire format is the lowercase
// English name ("monday".."sunday").
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = [7]string{
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
	"sunday",
}

// AllWeekdays lists the weekdays in chronological order, Monday first.
func AllWeekdays() []Weekday {
	return []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}
}

func (w Weekday) Valid() bool {
	return w >= Monday && w <= Sunday
}

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("weekday(%d)", int(w))
	}
	return weekdayNames[w]
}

// ParseWeekday resolves a lowercase weekday name to its enum value.
func ParseWeekday(name string) (Weekday, error) {
	for i, n := range weekdayNames {
		if n == name {
			return Weekday(i), nil
		}
	}
	return 0, fmt.Errorf("invalid weekday: %q", name)
}

// WeekdayOf converts a calendar date to its Weekday. time.Weekday counts
// from Sunday=0, this enum counts from Monday=0.
func WeekdayOf(t time.Time) Weekday {
	return Weekday((int(t.Weekday()) + 6) % 7)
}

func (w Weekday) MarshalText() ([]byte, error) {
	if !w.Valid() {
		return nil, fmt.Errorf("invalid weekday: %d", int(w))
	}
	return []byte(weekdayNames[w]), nil
}

func (w *Weekday) UnmarshalText(text []byte) error {
	parsed, err := ParseWeekday(string(text))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}
