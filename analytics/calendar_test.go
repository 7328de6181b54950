package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestLatestYear(t *testing.T) {
	daily := map[time.Time]float64{
		day(2023, time.March, 1):    100,
		day(2024, time.January, 15): 200,
		day(2022, time.June, 30):    300,
	}

	year, ok := LatestYear(daily)
	require.True(t, ok)
	assert.Equal(t, 2024, year)

	_, ok = LatestYear(nil)
	assert.False(t, ok)
}

func TestBuildCalendarTwelveMonths(t *testing.T) {
	cal := BuildCalendar(2023, nil)
	require.Len(t, cal.Months, 12)
	assert.Equal(t, 2023, cal.Year)
	assert.Equal(t, "January", cal.Months[0].Name)
	assert.Equal(t, 12, cal.Months[11].Month)
}

// March 2023 has 31 days and starts on a Wednesday, so the grid needs
// five weeks: two leading pad cells, 31 days, two trailing pad cells.
func TestBuildMonthPadding(t *testing.T) {
	grid := buildMonth(2023, time.March, nil)
	require.Len(t, grid.Weeks, 5)

	first := grid.Weeks[0]
	assert.True(t, first[0].Pad, "Monday cell before the 1st is padding")
	assert.True(t, first[1].Pad, "Tuesday cell before the 1st is padding")
	assert.Equal(t, 1, first[2].Day, "March 1st lands on Wednesday")

	last := grid.Weeks[4]
	assert.Equal(t, 31, last[4].Day, "March 31st lands on Friday")
	assert.True(t, last[5].Pad)
	assert.True(t, last[6].Pad)

	var days, pads int
	for _, w := range grid.Weeks {
		for _, c := range w {
			if c.Pad {
				pads++
			} else {
				days++
			}
		}
	}
	assert.Equal(t, 31, days)
	assert.Equal(t, 4, pads)
}

// May 2023 starts on a Monday; the first cell is day 1 with no padding.
func TestBuildMonthNoLeadingPad(t *testing.T) {
	grid := buildMonth(2023, time.May, nil)
	assert.Equal(t, 1, grid.Weeks[0][0].Day)
	assert.False(t, grid.Weeks[0][0].Pad)
}

func TestBuildMonthCosts(t *testing.T) {
	daily := map[time.Time]float64{
		day(2023, time.March, 1):  1500,
		day(2023, time.March, 15): 720.5,
	}

	grid := buildMonth(2023, time.March, daily)

	assert.Equal(t, 1500.0, grid.Weeks[0][2].Cost)
	// Day with no entry bins as zero.
	assert.Equal(t, 0.0, grid.Weeks[0][3].Cost)

	var found bool
	for _, w := range grid.Weeks {
		for _, c := range w {
			if c.Day == 15 {
				assert.Equal(t, 720.5, c.Cost)
				found = true
			}
		}
	}
	assert.True(t, found)
}

func TestMondayIndex(t *testing.T) {
	assert.Equal(t, 0, mondayIndex(time.Monday))
	assert.Equal(t, 5, mondayIndex(time.Saturday))
	assert.Equal(t, 6, mondayIndex(time.Sunday))
}

func TestSortedDates(t *testing.T) {
	daily := map[time.Time]float64{
		day(2023, time.March, 3): 1,
		day(2023, time.March, 1): 2,
		day(2023, time.March, 2): 3,
	}

	dates := SortedDates(daily)
	require.Len(t, dates, 3)
	assert.True(t, dates[0].Before(dates[1]))
	assert.True(t, dates[1].Before(dates[2]))
}
