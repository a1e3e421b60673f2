package fsrs

import "time"

const minutesPerDay = 1440

// DateDiffInDays returns the number of UTC calendar days from last to cur.
// Times of day are ignored, so 23:59 to 00:01 the next day is one day.
func DateDiffInDays(last, cur time.Time) int {
	l := last.UTC()
	c := cur.UTC()
	ld := time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)
	cd := time.Date(c.Year(), c.Month(), c.Day(), 0, 0, 0, 0, time.UTC)
	return int(cd.Sub(ld).Hours() / 24)
}

func addDays(t time.Time, days int) time.Time {
	return t.Add(time.Duration(days) * 24 * time.Hour)
}

func addMinutes(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}
