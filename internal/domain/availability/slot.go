package availability

import (
	"fmt"
	"strings"
)

// Weekday is the day name the search API filters on.
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

// Days lists the week in display order.
var Days = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday matches a day name case-insensitively.
func ParseWeekday(s string) (Weekday, error) {
	for _, d := range Days {
		if strings.EqualFold(string(d), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown weekday %q", s)
}

// Short returns the three letter abbreviation, e.g. "Mon".
func (d Weekday) Short() string {
	if len(d) < 3 {
		return string(d)
	}
	return string(d[:3])
}

// Window is a time range within a day.
type Window struct {
	Start Time
	End   Time
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// Windows are the fixed two-hour blocks offered for every day.
var Windows = []Window{
	{Start: NewTime(8, 0), End: NewTime(10, 0)},
	{Start: NewTime(10, 0), End: NewTime(12, 0)},
	{Start: NewTime(12, 0), End: NewTime(14, 0)},
	{Start: NewTime(14, 0), End: NewTime(16, 0)},
	{Start: NewTime(16, 0), End: NewTime(18, 0)},
	{Start: NewTime(18, 0), End: NewTime(20, 0)},
	{Start: NewTime(20, 0), End: NewTime(22, 0)},
}

// Slot is one (day, start, end) cell. It is a comparable value, two slots
// are the same slot iff all three fields match.
type Slot struct {
	Day   Weekday
	Start Time
	End   Time
}

// NewSlot builds a Slot from a day and a window.
func NewSlot(day Weekday, w Window) Slot {
	return Slot{Day: day, Start: w.Start, End: w.End}
}

// ParseSlot parses the three string parts of a slot.
func ParseSlot(day, start, end string) (Slot, error) {
	d, err := ParseWeekday(day)
	if err != nil {
		return Slot{}, err
	}
	s, err := ParseTime(start)
	if err != nil {
		return Slot{}, err
	}
	e, err := ParseTime(end)
	if err != nil {
		return Slot{}, err
	}
	return Slot{Day: d, Start: s, End: e}, nil
}

// Window returns the time range of the slot.
func (s Slot) Window() Window {
	return Window{Start: s.Start, End: s.End}
}

func (s Slot) String() string {
	return fmt.Sprintf("%s %s-%s", s.Day, s.Start, s.End)
}

// Grid is the set of cells a user may toggle.
type Grid struct {
	Days    []Weekday
	Windows []Window
}

// DefaultGrid is 7 days by 7 windows.
func DefaultGrid() Grid {
	return Grid{Days: Days, Windows: Windows}
}

// Cells returns the number of addressable cells.
func (g Grid) Cells() int {
	return len(g.Days) * len(g.Windows)
}

// Contains reports whether the slot is one of the grid's cells.
func (g Grid) Contains(s Slot) bool {
	dayOK := false
	for _, d := range g.Days {
		if d == s.Day {
			dayOK = true
			break
		}
	}
	if !dayOK {
		return false
	}
	for _, w := range g.Windows {
		if w == s.Window() {
			return true
		}
	}
	return false
}
