package calendar

import (
	"sort"
	"time"
)

// easterSunday computes the date of Easter Sunday for a year using the
// Gauss algorithm.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year % 4
	c := year % 7
	k := year / 100
	p := k / 4
	q := k / 3
	m := (15 + k - p - q) % 30
	n := (4 + k - p) % 7
	d := (19*a + m) % 30
	e := (2*b + 4*c + 6*d + n) % 7
	day := 22 + d + e
	month := time.March
	if day > 31 {
		day -= 31
		month = time.April
	}
	// Gauss exceptions: April 26 moves to April 19, and April 25 moves to
	// April 18 when d == 28, e == 6 and a > 10.
	if month == time.April && day == 26 {
		day = 19
	} else if month == time.April && day == 25 && d == 28 && e == 6 && a > 10 {
		day = 18
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Holidays returns the German federal holidays for a year as UTC midnights
// in ascending order.
func Holidays(year int) []time.Time {
	easter := easterSunday(year)
	days := []time.Time{
		time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC),   // New Year's Day
		easter.AddDate(0, 0, -2),                                 // Good Friday
		easter.AddDate(0, 0, 1),                                  // Easter Monday
		time.Date(year, time.May, 1, 0, 0, 0, 0, time.UTC),       // Labour Day
		easter.AddDate(0, 0, 39),                                 // Ascension Day
		easter.AddDate(0, 0, 50),                                 // Whit Monday
		time.Date(year, time.October, 3, 0, 0, 0, 0, time.UTC),   // German Unity Day
		time.Date(year, time.December, 25, 0, 0, 0, 0, time.UTC), // Christmas Day
		time.Date(year, time.December, 26, 0, 0, 0, 0, time.UTC), // Boxing Day
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

// IsHoliday reports whether d falls on a holiday of d's year.
func IsHoliday(d time.Time) bool {
	d = Midnight(d)
	for _, h := range Holidays(d.Year()) {
		if h.Equal(d) {
			return true
		}
	}
	return false
}
