package analytics

import (
	"sort"
	"time"
)

// DayCell is one cell of a calendar month grid. Pad marks the leading
// and trailing cells that fall outside the month; for real days Cost is
// the summed delay cost, with missing days reported as zero. A day with
// no recorded flights is indistinguishable from a zero-cost day here,
// matching the upstream data contract.
type DayCell struct {
	Day  int     `json:"day,omitempty"`
	Cost float64 `json:"cost"`
	Pad  bool    `json:"pad,omitempty"`
}

// Week is a Monday-first row of seven cells.
type Week [7]DayCell

// MonthGrid is one month's calendar laid out as week rows.
type MonthGrid struct {
	Month int    `json:"month"`
	Name  string `json:"name"`
	Weeks []Week `json:"weeks"`
}

// Calendar is a full year of month grids.
type Calendar struct {
	Year   int         `json:"year"`
	Months []MonthGrid `json:"months"`
}

// LatestYear returns the most recent year present in a daily cost
// series, with ok=false for an empty series.
func LatestYear(daily map[time.Time]float64) (int, bool) {
	year := 0
	for d := range daily {
		if d.Year() > year {
			year = d.Year()
		}
	}
	return year, year != 0
}

// BuildCalendar lays one year of daily costs into twelve month grids.
// Each grid's rows are calendar weeks starting on Monday; the first
// week is padded before the 1st and the last week after the month's
// final day. Days absent from the series bin as zero cost.
func BuildCalendar(year int, daily map[time.Time]float64) Calendar {
	cal := Calendar{Year: year, Months: make([]MonthGrid, 0, 12)}
	for m := time.January; m <= time.December; m++ {
		cal.Months = append(cal.Months, buildMonth(year, m, daily))
	}
	return cal
}

func buildMonth(year int, month time.Month, daily map[time.Time]float64) MonthGrid {
	grid := MonthGrid{Month: int(month), Name: month.String()}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var week Week
	col := mondayIndex(first.Weekday())
	for i := 0; i < col; i++ {
		week[i] = DayCell{Pad: true}
	}

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		week[col] = DayCell{Day: day, Cost: daily[date]}
		col++
		if col == 7 {
			grid.Weeks = append(grid.Weeks, week)
			week = Week{}
			col = 0
		}
	}

	if col > 0 {
		for ; col < 7; col++ {
			week[col] = DayCell{Pad: true}
		}
		grid.Weeks = append(grid.Weeks, week)
	}

	return grid
}

// mondayIndex maps time.Weekday (Sunday=0) to a Monday-first column.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}

// SortedDates returns the series' dates in ascending order. Handy for
// deterministic iteration in callers and tests.
func SortedDates(daily map[time.Time]float64) []time.Time {
	out := make([]time.Time, 0, len(daily))
	for d := range daily {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}
