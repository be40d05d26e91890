package plan

import "time"

const hoursPerDay = 24

// NormalizeDate truncates a timestamp to midnight UTC. All date arithmetic in
// this package operates on normalized dates so that local timezone shifts
// cannot introduce off-by-one day numbers.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayNumberFor computes the 1-based day number of target relative to the
// anchor date. The anchor itself is day 1.
func DayNumberFor(anchor, target time.Time) int {
	anchor = NormalizeDate(anchor)
	target = NormalizeDate(target)
	return int(target.Sub(anchor).Hours()/hoursPerDay) + 1
}

// EnumerateMonth returns every calendar day of the given month in ascending
// order, normalized to midnight UTC.
func EnumerateMonth(year int, month time.Month) []time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)

	var days []time.Time
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func formatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
