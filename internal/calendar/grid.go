package calendar

import "time"

// Week is one row of a month grid, Sunday first. Days outside the month are
// zero times.
type Week [7]time.Time

// MonthGrid returns the weeks covering year/month.
func MonthGrid(year int, month time.Month) []Week {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	var weeks []Week
	var w Week
	col := int(first.Weekday())
	for day := 1; day <= days; day++ {
		w[col] = time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		col++
		if col == 7 {
			weeks = append(weeks, w)
			w = Week{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, w)
	}
	return weeks
}

// MonthKey formats t as "YYYY-MM".
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
