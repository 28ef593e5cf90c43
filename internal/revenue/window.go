package revenue

import (
	"time"

	pkgerrors "github.com/angelmondragon/retailops-backend/pkg/errors"
)

const (
	minYear = 1
	maxYear = 9999
)

// endOfDayNanos places a window end on the last millisecond of a day.
const endOfDayNanos = int(999 * time.Millisecond)

// Window is a closed time interval; both Start and End are included.
type Window struct {
	Start time.Time
	End   time.Time
}

// Key identifies the window in cache keys.
func (w Window) Key() string {
	return w.Start.UTC().Format(time.RFC3339Nano) + "_" + w.End.UTC().Format(time.RFC3339Nano)
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func startOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 23, 59, 59, endOfDayNanos, loc)
}

// DayWindow covers the calendar day of date (as written, not converted) in loc.
func DayWindow(date time.Time, loc *time.Location) Window {
	loc = orUTC(loc)
	y, m, d := date.Date()
	return Window{Start: startOfDay(y, m, d, loc), End: endOfDay(y, m, d, loc)}
}

// WeekWindow covers seven calendar days starting on the day of start.
func WeekWindow(start time.Time, loc *time.Location) Window {
	loc = orUTC(loc)
	y, m, d := start.Date()
	return Window{Start: startOfDay(y, m, d, loc), End: endOfDay(y, m, d+6, loc)}
}

// MonthWindow covers a whole calendar month. Month length comes from the calendar.
func MonthWindow(year, month int, loc *time.Location) (Window, error) {
	if err := checkYear(year); err != nil {
		return Window{}, err
	}
	if month < 1 || month > 12 {
		return Window{}, pkgerrors.New(pkgerrors.CodeValidation, "month must be between 1 and 12").
			WithDetails(map[string]any{"month": month})
	}
	loc = orUTC(loc)
	m := time.Month(month)
	return Window{
		Start: startOfDay(year, m, 1, loc),
		End:   endOfDay(year, m+1, 0, loc),
	}, nil
}

func YearWindow(year int, loc *time.Location) (Window, error) {
	if err := checkYear(year); err != nil {
		return Window{}, err
	}
	loc = orUTC(loc)
	return Window{
		Start: startOfDay(year, time.January, 1, loc),
		End:   endOfDay(year, time.December, 31, loc),
	}, nil
}

// RangeWindow spans whole days from the day of start through the day of end.
func RangeWindow(start, end time.Time, loc *time.Location) (Window, error) {
	loc = orUTC(loc)
	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	w := Window{Start: startOfDay(sy, sm, sd, loc), End: endOfDay(ey, em, ed, loc)}
	if w.Start.After(w.End) {
		return Window{}, pkgerrors.New(pkgerrors.CodeValidation, "start date must not be after end date").
			WithDetails(map[string]any{"start_date": start, "end_date": end})
	}
	return w, nil
}

func checkYear(year int) error {
	if year < minYear || year > maxYear {
		return pkgerrors.New(pkgerrors.CodeValidation, "year must be between 1 and 9999").
			WithDetails(map[string]any{"year": year})
	}
	return nil
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
