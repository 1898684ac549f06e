package grid

import "almanac/internal/date"

// ToggleSingle applies a cell click to a single-value selection.
// Clicking the selected date deselects it unless preventDeselect;
// clicking any other date replaces the value outright.
func ToggleSingle(current *date.CalendarDate, clicked date.CalendarDate, preventDeselect bool) *date.CalendarDate {
	if current != nil && date.SameDay(*current, clicked) {
		if preventDeselect {
			return current
		}
		return nil
	}
	c := clicked
	return &c
}

// ToggleMultiple applies a cell click to a multi-value selection.
// Unselected dates append; selected dates remove, except that the sole
// remaining selection is kept under preventDeselect. Appending a date
// that would stretch the selection's day span beyond maxDays replaces
// the entire selection with just the clicked date.
func ToggleMultiple(current []date.CalendarDate, clicked date.CalendarDate, maxDays int, preventDeselect bool) []date.CalendarDate {
	for i, d := range current {
		if date.SameDay(d, clicked) {
			if len(current) == 1 && preventDeselect {
				return current
			}
			out := make([]date.CalendarDate, 0, len(current)-1)
			out = append(out, current[:i]...)
			return append(out, current[i+1:]...)
		}
	}

	next := make([]date.CalendarDate, 0, len(current)+1)
	next = append(next, current...)
	next = append(next, clicked)
	if maxDays > 0 && daySpan(next) > maxDays {
		return []date.CalendarDate{clicked}
	}
	return next
}

// daySpan is the day distance between the earliest and latest dates.
func daySpan(dates []date.CalendarDate) int {
	min, max := dates[0].JulianDay(), dates[0].JulianDay()
	for _, d := range dates[1:] {
		jd := d.JulianDay()
		if jd < min {
			min = jd
		}
		if jd > max {
			max = jd
		}
	}
	return max - min
}
