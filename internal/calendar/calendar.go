// Package calendar provides business-day aware date arithmetic for the
// reminder engine. All helpers operate on UTC calendar days so results do
// not drift across daylight-saving transitions.
package calendar

import "time"

// Reminder offsets in calendar days, counted from today before business-day
// adjustment.
const (
	FirstReminderOffset  = 9
	SecondReminderOffset = 2
)

// Midnight truncates t to UTC midnight of its calendar date.
func Midnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}

// IsWorkDay reports whether d is a weekday that is not a holiday of d's year.
func IsWorkDay(d time.Time) bool {
	switch d.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !IsHoliday(d)
}

// LastWorkDayOfMonth returns the last calendar day of the given month in
// today's year, shifted backward past a holiday and then past a weekend.
//
// The adjustment only happens when today itself is a non-work day; on
// normal work days the raw last calendar day is returned. Long-standing
// production behavior, kept as-is.
func LastWorkDayOfMonth(today time.Time, month time.Month) time.Time {
	today = Midnight(today)
	last := time.Date(today.Year(), month+1, 0, 0, 0, 0, 0, time.UTC)

	if IsWorkDay(today) {
		return last
	}

	if IsHoliday(last) {
		last = last.AddDate(0, 0, -1)
	}
	switch last.Weekday() {
	case time.Sunday:
		last = last.AddDate(0, 0, -2)
	case time.Saturday:
		last = last.AddDate(0, 0, -1)
	}
	return last
}

// MondaysOfMonth returns every Monday of the given month in today's year,
// ascending.
func MondaysOfMonth(today time.Time, month time.Month) []time.Time {
	d := time.Date(Midnight(today).Year(), month, 1, 0, 0, 0, 0, time.UTC)
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, 1)
	}

	var mondays []time.Time
	for d.Month() == month {
		mondays = append(mondays, d)
		d = d.AddDate(0, 0, 7)
	}
	return mondays
}

// DateRange produces the inclusive, ascending sequence of dates from start
// to end stepped by stepDays. A non-positive step is treated as 1.
func DateRange(start, end time.Time, stepDays int) []time.Time {
	if stepDays <= 0 {
		stepDays = 1
	}
	start, end = Midnight(start), Midnight(end)

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, stepDays) {
		dates = append(dates, d)
	}
	return dates
}

// ReminderDate resolves the reminder day offsetDays calendar days after
// today, pushed forward for every weekend day in the initial window, then
// for every holiday of today's year that falls inside the (growing) window
// or on the candidate itself. A candidate still landing on a weekend is
// finally moved to the following Monday.
//
// The weekend pass deliberately walks the window as it was before any
// pushes: each weekend day found adds one day to the candidate, even when
// the candidate has already been pushed past further weekend days.
func ReminderDate(today time.Time, offsetDays int) time.Time {
	today = Midnight(today)
	candidate := today.AddDate(0, 0, offsetDays)

	for _, d := range DateRange(today, candidate, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
			candidate = candidate.AddDate(0, 0, 1)
		}
	}

	for _, h := range Holidays(today.Year()) {
		if (!h.Before(today) && !h.After(candidate)) || SameDay(h, candidate) {
			candidate = candidate.AddDate(0, 0, 1)
		}
	}

	if !IsWorkDay(candidate) {
		switch candidate.Weekday() {
		case time.Sunday:
			candidate = candidate.AddDate(0, 0, 1)
		case time.Saturday:
			candidate = candidate.AddDate(0, 0, 2)
		}
	}
	return candidate
}
